package database

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

var digits = parsly.NewToken(1, "digits", matcher.NewDigits())

var separator = parsly.NewToken(2, "separator", matcher.NewCharset(".:-"))
