package database

import "fmt"

//Product represents database product
type Product struct {
	Name      string
	Driver    string
	DriverPkg string
	Major     int
	Minor     int
	Release   int
}

//Equal checks if product are equal
func (p *Product) Equal(product *Product) bool {
	if p.Name != product.Name {
		return false
	}
	return p.Major == product.Major && p.Minor == product.Minor
}

//New crates new product with supplied version
func (p *Product) New(major, minor, release int) *Product {
	return &Product{
		Name:      p.Name,
		Driver:    p.Driver,
		DriverPkg: p.DriverPkg,
		Major:     major,
		Minor:     minor,
		Release:   release,
	}
}

func (p *Product) String() string {
	return fmt.Sprintf("%v %v.%v.%v", p.Name, p.Major, p.Minor, p.Release)
}
