// Copyright © 2018 One Concern

package merge

import "fmt"

// ChoiceKind tells which alternative resolves a conflict
type ChoiceKind uint8

// Resolution alternatives
const (
	ChooseBase ChoiceKind = iota + 1
	ChooseLocal
	ChooseRemote
	ChooseLiteral
)

func (k ChoiceKind) String() string {
	switch k {
	case ChooseBase:
		return "base"
	case ChooseLocal:
		return "local"
	case ChooseRemote:
		return "remote"
	case ChooseLiteral:
		return "literal"
	default:
		return fmt.Sprintf("choice(%d)", uint8(k))
	}
}

// Choice resolves a conflict: one of the three sides, or a literal replacement value
type Choice struct {
	kind  ChoiceKind
	value interface{}
}

// TakeBase resolves a conflict with the common ancestor's value
func TakeBase() Choice { return Choice{kind: ChooseBase} }

// TakeLocal resolves a conflict with the local value
func TakeLocal() Choice { return Choice{kind: ChooseLocal} }

// TakeRemote resolves a conflict with the remote value
func TakeRemote() Choice { return Choice{kind: ChooseRemote} }

// Literal resolves a conflict with an explicit value.
//
// Content conflicts only accept string literals.
func Literal(value interface{}) Choice { return Choice{kind: ChooseLiteral, value: value} }

// ParseChoice reads a choice from the command line: "base", "local" and "remote" select a side,
// anything else is a literal.
func ParseChoice(s string) Choice {
	switch s {
	case "base":
		return TakeBase()
	case "local":
		return TakeLocal()
	case "remote":
		return TakeRemote()
	default:
		return Literal(s)
	}
}

// Kind of choice
func (c Choice) Kind() ChoiceKind {
	return c.kind
}

// Value of a literal choice
func (c Choice) Value() interface{} {
	return c.value
}

func (c Choice) String() string {
	if c.kind == ChooseLiteral {
		return fmt.Sprintf("literal(%v)", c.value)
	}
	return c.kind.String()
}

func (c Choice) pick(base, local, remote interface{}) interface{} {
	switch c.kind {
	case ChooseBase:
		return base
	case ChooseLocal:
		return local
	case ChooseRemote:
		return remote
	default:
		return c.value
	}
}
