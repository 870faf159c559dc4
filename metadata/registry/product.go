package registry

import (
	"database/sql"
	"github.com/viant/sqlmerge/metadata/database"
	"reflect"
	"strings"
)

//MatchProduct matches product with sql driver
func MatchProduct(db *sql.DB) *database.Product {
	driverTypeName := reflect.TypeOf(db.Driver()).String()
	driverTypeName = strings.TrimPrefix(driverTypeName, "*")
	driverTypePair := strings.SplitN(driverTypeName, ".", 2)
	driverPkg := driverTypePair[0]
	driverName := ""
	if len(driverTypePair) > 1 {
		driverName = driverTypePair[1]
	}
	for name, candidate := range Products() {
		if strings.Contains(driverPkg, name) ||
			(candidate.DriverPkg != "" && strings.Contains(driverPkg, candidate.DriverPkg)) {
			product := *candidate
			product.DriverPkg = driverPkg
			product.Driver = driverName
			return &product
		}
	}
	return nil
}
