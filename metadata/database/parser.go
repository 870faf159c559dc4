package database

import (
	"github.com/viant/parsly"
	"strings"
)

//Parse parses product version text i.e. "Microsoft SQL Server - 15.0.4261.1"
func Parse(input []byte) (*Product, error) {
	cursor := parsly.NewCursor("", input, 0)
	product := &Product{}
	if err := matchMajorVersion(cursor, product); err != nil {
		return nil, err
	}
	matched := cursor.MatchOne(separator)
	if matched.Code != separator.Code {
		cursor.Pos++
		if err := matchMajorVersion(cursor, product); err != nil {
			return product, nil
		}
		if matched = cursor.MatchOne(separator); matched.Code != separator.Code {
			return product, nil
		}
	}
	matched = cursor.MatchOne(digits)
	minor, _ := matched.Int(cursor)
	product.Minor = int(minor)

	if matched = cursor.MatchOne(separator); matched.Code != separator.Code {
		return product, nil
	}
	matched = cursor.MatchOne(digits)
	release, _ := matched.Int(cursor)
	product.Release = int(release)
	return product, nil
}

func matchMajorVersion(cursor *parsly.Cursor, product *Product) error {
	matched := cursor.FindMatch(digits)
	if matched.Code != digits.Code {
		return cursor.NewError(digits)
	}
	if matched.Offset > 0 {
		product.Name = strings.Trim(string(cursor.Input[:matched.Offset-1]), " -\t\n")
	}
	major, _ := matched.Int(cursor)
	product.Major = int(major)
	return nil
}
