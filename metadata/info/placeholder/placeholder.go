package placeholder

//Default default placeholder
const Default = "?"

//Generator represents placeholder generator
type Generator interface {
	//Resolver returns a function producing consecutive placeholders
	Resolver() func() string
}

//DefaultGenerator produces '?' placeholders
type DefaultGenerator struct{}

//Resolver returns function that returns Default placeholder
func (p *DefaultGenerator) Resolver() func() string {
	return func() string {
		return Default
	}
}
