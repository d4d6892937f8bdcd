package sim

import (
	"fmt"
	"regexp"
)

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_:.\[\]]+$`)

// NameMustBeValid panics if the name is not an acceptable component, port, or
// buffer name.
func NameMustBeValid(name string) {
	if name == "" {
		panic("name must not be empty")
	}

	if !nameRegex.MatchString(name) {
		panic(fmt.Sprintf("invalid name %q", name))
	}
}
