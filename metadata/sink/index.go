package sink

import "strings"

//Index represent index metadata
type Index struct {
	Catalog  string `sqlx:"TABLE_CATALOG"`
	Schema   string `sqlx:"TABLE_SCHEMA"`
	Table    string `sqlx:"TABLE_NAME"`
	Name     string `sqlx:"INDEX_NAME"`
	Type     string `sqlx:"INDEX_TYPE"`
	Unique   bool   `sqlx:"INDEX_UNIQUE"`
	Disabled bool   `sqlx:"INDEX_DISABLED"`
}

//IsClustered returns true for clustered index (table data), it can not be disabled without making table inaccessible
func (i *Index) IsClustered() bool {
	return strings.EqualFold(i.Type, "CLUSTERED") || strings.EqualFold(i.Type, "HEAP")
}
