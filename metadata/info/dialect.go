package info

import (
	"github.com/viant/sqlmerge/metadata/database"
	"github.com/viant/sqlmerge/metadata/info/placeholder"
	"strings"
)

//Dialect represents dialect
type Dialect struct {
	database.Product
	Placeholder         string // prepare statement placeholder, default '?', sql server uses '@p'
	PlaceholderResolver placeholder.Generator
	Transactional       bool
	CanMerge            bool // supports MERGE statement with session temp tables
	QuoteCharacter      byte
	DefaultSchema       string
}

//Dialects represents dialects
type Dialects []*Dialect

//PlaceholderGetter returns PlaceholderResolver if not nil, otherwise returns function that returns Placeholder
func (d *Dialect) PlaceholderGetter() func() string {
	if d.PlaceholderResolver != nil {
		return d.PlaceholderResolver.Resolver()
	}
	return (&placeholder.DefaultGenerator{}).Resolver()
}

//Quote quotes identifier with dialect quote character
func (d *Dialect) Quote(name string) string {
	switch d.QuoteCharacter {
	case 0:
		return name
	case '[':
		return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
	}
	quote := string(d.QuoteCharacter)
	return quote + strings.ReplaceAll(name, quote, quote+quote) + quote
}

func (a Dialects) Len() int      { return len(a) }
func (a Dialects) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a Dialects) Less(i, j int) bool {
	return 100000*a[i].Major+a[i].Minor < 100000*a[j].Major+a[j].Minor
}
