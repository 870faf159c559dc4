package config

import (
	"database/sql"
	"fmt"
	"github.com/viant/sqlmerge/io/errx"
	"strings"
)

//Direction represents identity direction
type Direction int

const (
	//IdentityInput identity is used for matching only, never written
	IdentityInput = Direction(iota)
	//IdentityInputOutput identity is used for matching, server generated values are assigned back to records
	IdentityInputOutput
	//IdentityPreset identity values are supplied by records and inserted as is
	IdentityPreset
)

func (d Direction) String() string {
	switch d {
	case IdentityInput:
		return "Input"
	case IdentityInputOutput:
		return "InputOutput"
	case IdentityPreset:
		return "Preset"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

type (
	//Column represents record field to target column mapping
	Column struct {
		Field string
		Name  string
	}

	//Identity represents identity column descriptor
	Identity struct {
		Field     string
		Column    string
		Direction Direction
	}

	//Config represents validated, read-only merge configuration; column references are target column names
	Config struct {
		Tag                  string
		Schema               string
		Columns              []Column
		MatchOn              []string
		ExcludeFromUpdate    []string
		Collations           map[string]string
		Identity             *Identity
		DeleteWhenNotMatched bool
		Conditions           []*Condition
		Parameters           []sql.NamedArg
		DisableIndexes       []string
		DisableAllIndexes    bool
	}
)

//RoundTrip returns true if generated identities are assigned back to records
func (i *Identity) RoundTrip() bool {
	return i != nil && i.Direction == IdentityInputOutput
}

//Preset returns true if identities are supplied by records
func (i *Identity) Preset() bool {
	return i != nil && i.Direction == IdentityPreset
}

//Validate validates config
func (c *Config) Validate() error {
	if c == nil {
		return errx.Config("validate", "config was nil")
	}
	if len(c.Columns) == 0 {
		return errx.Config("validate", "no columns were added")
	}
	columns := c.columnIndex()
	if len(columns) != len(c.Columns) {
		return errx.Config("validate", "duplicate column", c.ColumnNames()...)
	}
	if len(c.MatchOn) == 0 {
		return errx.Config("validate", "match target key was not specified")
	}
	if missing := notIn(c.MatchOn, columns); len(missing) > 0 {
		return errx.Config("validate", "match target column was not added to columns", missing...)
	}
	if missing := notIn(c.ExcludeFromUpdate, columns); len(missing) > 0 {
		return errx.Config("validate", "excluded column was not added to columns", missing...)
	}
	for column, collation := range c.Collations {
		if !columns[strings.ToLower(column)] {
			return errx.Config("validate", "collation column was not added to columns", column)
		}
		if !isIdentifier(collation) {
			return errx.Config("validate", fmt.Sprintf("invalid collation: %q", collation), column)
		}
	}
	if c.Identity != nil {
		if c.Identity.Column == "" {
			return errx.Config("validate", "identity column was empty")
		}
		if !columns[strings.ToLower(c.Identity.Column)] {
			return errx.Config("validate", "identity column was not added to columns", c.Identity.Column)
		}
	}
	for _, condition := range c.Conditions {
		if !columns[strings.ToLower(condition.Column)] {
			return errx.Config("validate", "predicate column was not added to columns", condition.Column)
		}
		if condition.Kind == KindDelete && !c.DeleteWhenNotMatched {
			return errx.Config("validate", "delete predicate requires DeleteWhenNotMatched", condition.Column)
		}
	}
	if c.DisableAllIndexes && len(c.DisableIndexes) > 0 {
		return errx.Config("validate", "can not disable all indexes and selected indexes at the same time", c.DisableIndexes...)
	}
	return nil
}

//ColumnNames returns target column names
func (c *Config) ColumnNames() []string {
	var result = make([]string, len(c.Columns))
	for i, column := range c.Columns {
		result[i] = column.Name
	}
	return result
}

//Fields returns record field names
func (c *Config) Fields() []string {
	var result = make([]string, len(c.Columns))
	for i, column := range c.Columns {
		result[i] = column.Field
	}
	return result
}

//IsIdentity returns true if column is declared identity
func (c *Config) IsIdentity(column string) bool {
	return c.Identity != nil && strings.EqualFold(c.Identity.Column, column)
}

//UpdateColumns returns columns assigned by WHEN MATCHED THEN UPDATE
func (c *Config) UpdateColumns() []string {
	excluded := make(map[string]bool)
	for _, column := range c.ExcludeFromUpdate {
		excluded[strings.ToLower(column)] = true
	}
	var result []string
	for _, column := range c.Columns {
		if c.IsIdentity(column.Name) || excluded[strings.ToLower(column.Name)] {
			continue
		}
		result = append(result, column.Name)
	}
	return result
}

//InsertColumns returns columns inserted by WHEN NOT MATCHED BY TARGET
func (c *Config) InsertColumns() []string {
	var result []string
	for _, column := range c.Columns {
		if c.IsIdentity(column.Name) && !c.Identity.Preset() {
			continue
		}
		result = append(result, column.Name)
	}
	return result
}

//ConditionsOf returns conditions of supplied kind in sort order
func (c *Config) ConditionsOf(kind Kind) []*Condition {
	var result []*Condition
	for _, condition := range c.Conditions {
		if condition.Kind == kind {
			result = append(result, condition)
		}
	}
	return result
}

//Collation returns collation override for column
func (c *Config) Collation(column string) string {
	if collation, ok := c.Collations[column]; ok {
		return collation
	}
	for candidate, collation := range c.Collations {
		if strings.EqualFold(candidate, column) {
			return collation
		}
	}
	return ""
}

//WithColumnNames returns a copy of config with column references spelled as supplied, names are keyed by lower case column
func (c *Config) WithColumnNames(names map[string]string) *Config {
	rename := func(column string) string {
		if name, ok := names[strings.ToLower(column)]; ok {
			return name
		}
		return column
	}
	result := *c
	result.Columns = make([]Column, len(c.Columns))
	for i, column := range c.Columns {
		result.Columns[i] = Column{Field: column.Field, Name: rename(column.Name)}
	}
	result.MatchOn = renameAll(c.MatchOn, rename)
	result.ExcludeFromUpdate = renameAll(c.ExcludeFromUpdate, rename)
	result.Collations = make(map[string]string, len(c.Collations))
	for column, collation := range c.Collations {
		result.Collations[rename(column)] = collation
	}
	if c.Identity != nil {
		identity := *c.Identity
		identity.Column = rename(identity.Column)
		result.Identity = &identity
	}
	result.Conditions = make([]*Condition, len(c.Conditions))
	for i, condition := range c.Conditions {
		renamed := *condition
		renamed.Column = rename(condition.Column)
		result.Conditions[i] = &renamed
	}
	return &result
}

func renameAll(columns []string, rename func(string) string) []string {
	if columns == nil {
		return nil
	}
	var result = make([]string, len(columns))
	for i, column := range columns {
		result[i] = rename(column)
	}
	return result
}

func (c *Config) columnIndex() map[string]bool {
	var result = make(map[string]bool)
	for _, column := range c.Columns {
		result[strings.ToLower(column.Name)] = true
	}
	return result
}

func notIn(names []string, index map[string]bool) []string {
	var result []string
	for _, name := range names {
		if !index[strings.ToLower(name)] {
			result = append(result, name)
		}
	}
	return result
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}
