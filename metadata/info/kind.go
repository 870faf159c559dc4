package info

import "fmt"

const (
	//Catalog defines catalog kind literal
	Catalog = "Catalog"
	//Schema defines schema kind literal
	Schema = "Schema"
	//Table defines table kind literal
	Table = "Table"
)

//Kind represents dictionary info kind
type Kind int

const (
	//KindVersion defines information kind
	KindVersion = Kind(iota)
	//KindCurrentSchema defines current schema kind
	KindCurrentSchema
	//KindTable defines table kind
	KindTable
	//KindIndexes defines indexes kind
	KindIndexes
	//KindSession defines session kind
	KindSession
	//KindReserved defines reserved kind
	KindReserved
)

func (k Kind) String() string {
	switch k {
	case KindVersion:
		return "Version"
	case KindCurrentSchema:
		return "CurrentSchema"
	case KindTable:
		return "Table"
	case KindIndexes:
		return "Indexes"
	case KindSession:
		return "Session"
	}
	return fmt.Sprintf("undefined kind: %v", int(k))
}

var emptyCriteria = []string{}

//Criteria defines criteria for each query kind
func (k Kind) Criteria() []string {
	switch k {
	case KindTable, KindIndexes:
		return []string{Catalog, Schema, Table}
	}
	return emptyCriteria
}
