package appconf

// Environment describes the operating environment the server was started in.
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFromString maps the -env flag / config value to an Environment.
// Unknown values fall back to Development.
func EnvFromString(s string) Environment {
	switch s {
	case "test":
		return Test
	case "production":
		return Production
	default:
		return Development
	}
}
