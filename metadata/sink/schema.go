package sink

//Schema represents current schema
type Schema struct {
	Catalog string `sqlx:"CATALOG_NAME"`
	Name    string `sqlx:"SCHEMA_NAME"`
}
