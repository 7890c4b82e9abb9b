package diag

import (
	"fmt"
)

type Code uint16

// Codes are grouped by hundreds; the group picks the letter of the stable
// short id (S = syntax, R = resolution, L = lowering).
const (
	UnknownCode Code = 0

	// синтаксис
	SynUnexpectedToken    Code = 101
	SynExpectedItem       Code = 102
	SynExpectedExpression Code = 103
	SynExpectedType       Code = 104
	SynUnknownChar        Code = 105
	SynBadNumber          Code = 106

	// разрешение имён и типов
	ResUnboundReference    Code = 201
	ResDuplicateDefinition Code = 202
	ResMissingType         Code = 203
	ResUnknownAttribute    Code = 204
	ResUndefinedName       Code = 205

	// lowering
	LowNotValueType  Code = 301
	LowNotCoercible  Code = 302
	LowMissingReturn Code = 303
	LowBadIntWidth   Code = 304
	LowBackend       Code = 305
)

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown error",
	SynUnexpectedToken:     "Unexpected token",
	SynExpectedItem:        "Expected an item",
	SynExpectedExpression:  "Expected an expression",
	SynExpectedType:        "Expected a type",
	SynUnknownChar:         "Unknown character",
	SynBadNumber:           "Malformed number literal",
	ResUnboundReference:    "Reference is not bound to a definition",
	ResDuplicateDefinition: "Duplicate definition",
	ResMissingType:         "Type is not resolved",
	ResUnknownAttribute:    "Unknown attribute",
	ResUndefinedName:       "Undefined name",
	LowNotValueType:        "Type cannot be used as a value",
	LowNotCoercible:        "Value cannot be coerced to the return type",
	LowMissingReturn:       "Missing return in function",
	LowBadIntWidth:         "Integer width is not supported by the backend",
	LowBackend:             "Backend rejected the construct",
}

// ID returns the stable short code, e.g. "S01" or "L04".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 100 && ic < 200:
		return fmt.Sprintf("S%02d", ic-100)
	case ic >= 200 && ic < 300:
		return fmt.Sprintf("R%02d", ic-200)
	case ic >= 300 && ic < 400:
		return fmt.Sprintf("L%02d", ic-300)
	}
	return "E00"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
