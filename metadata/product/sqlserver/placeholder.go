package sqlserver

import (
	"strconv"
)

//PlaceholderGenerator generates ordinal placeholders i.e. @p1, @p2
type PlaceholderGenerator struct{}

//Resolver returns function that returns next placeholder
func (p *PlaceholderGenerator) Resolver() func() string {
	counter := 0
	return func() string {
		counter++
		return placeholderPrefix + strconv.Itoa(counter)
	}
}
