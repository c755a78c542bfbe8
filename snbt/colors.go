package snbt

import (
	"fmt"

	"github.com/fatih/color"
)

// Role identifies the part of the output a color applies to.
type Role int

const (
	NameRole   Role = iota // compound entry names
	StringRole             // string payloads
	NumberRole             // numeric payloads
	SuffixRole             // kind suffixes and array prefixes
	PunctRole              // brackets, braces and separators
)

// Colors maps output roles to coloring functions.
type Colors struct {
	Default func(a ...any) string
	Map     map[Role]func(a ...any) string
}

// NewColors returns the default palette.
func NewColors() *Colors {
	return &Colors{
		Default: colorDefault,
		Map: map[Role]func(a ...any) string{
			NameRole:   color.RGB(128, 168, 196).SprintFunc(),
			StringRole: color.RGB(8, 196, 16).SprintFunc(),
			NumberRole: color.RGB(128, 216, 236).SprintFunc(),
			SuffixRole: color.RGB(74, 92, 138).SprintFunc(),
			PunctRole:  color.RGB(196, 128, 128).SprintFunc(),
		},
	}
}

func colorDefault(a ...any) string { return fmt.Sprint(a...) }

// Color applies the function for role to s.
func (c *Colors) Color(role Role, s string) string {
	if c == nil {
		return s
	}
	if f := c.Map[role]; f != nil {
		return f(s)
	}
	if c.Default != nil {
		return c.Default(s)
	}

	return s
}
