// Package validate implements schema-driven input validation: named,
// immutable schemas map field names to ordered constraint lists, and one
// generic engine evaluates them into either an accepted, normalized value or
// an ordered collection of field-level errors with stable machine codes.
package validate

import "regexp"

// Code is a stable machine-readable error code. Codes are part of the API
// contract consumed by clients; the human-readable catalog lives separately
// in messages.go.
type Code string

const (
	CodeRequired        Code = "any.required"
	CodeOnly            Code = "any.only"
	CodeStringEmpty     Code = "string.empty"
	CodeStringBase      Code = "string.base"
	CodeStringEmail     Code = "string.email"
	CodeStringMin       Code = "string.min"
	CodeStringMax       Code = "string.max"
	CodeStringLength    Code = "string.length"
	CodeStringPattern   Code = "string.pattern"
	CodeNumberBase      Code = "number.base"
	CodeNumberInteger   Code = "number.integer"
	CodeNumberMin       Code = "number.min"
	CodeNumberMax       Code = "number.max"
	CodeNumberPositive  Code = "number.positive"
	CodeNumberPrecision Code = "number.precision"
	CodeDateBase        Code = "date.base"
	CodeDateMin         Code = "date.min"
)

// Kind tags a constraint variant. The engine switches on the kind; parameters
// ride along in the Constraint itself.
type Kind int

const (
	KindRequired Kind = iota
	KindNonEmpty
	KindString
	KindEmail
	KindMinLen
	KindMaxLen
	KindExactLen
	KindPattern
	KindNumber
	KindInteger
	KindMin
	KindMax
	KindPositive
	KindPrecision
	KindOneOf
	KindEqualsField
	KindISODate
	KindMinDateField
)

// Constraint is one named, parameterized rule a field's value must satisfy.
type Constraint struct {
	Kind    Kind
	Code    Code
	IntParam int
	NumParam float64
	Pattern  *regexp.Regexp
	Allowed  []string
	RefField string
}

// Constructors keep schema declarations readable and pin the default code per
// kind in one place.

func Required() Constraint  { return Constraint{Kind: KindRequired, Code: CodeRequired} }
func NonEmpty() Constraint  { return Constraint{Kind: KindNonEmpty, Code: CodeStringEmpty} }
func String() Constraint    { return Constraint{Kind: KindString, Code: CodeStringBase} }
func Email() Constraint     { return Constraint{Kind: KindEmail, Code: CodeStringEmail} }
func Number() Constraint    { return Constraint{Kind: KindNumber, Code: CodeNumberBase} }
func Integer() Constraint   { return Constraint{Kind: KindInteger, Code: CodeNumberInteger} }
func Positive() Constraint  { return Constraint{Kind: KindPositive, Code: CodeNumberPositive} }
func ISODate() Constraint   { return Constraint{Kind: KindISODate, Code: CodeDateBase} }

func MinLen(n int) Constraint   { return Constraint{Kind: KindMinLen, Code: CodeStringMin, IntParam: n} }
func MaxLen(n int) Constraint   { return Constraint{Kind: KindMaxLen, Code: CodeStringMax, IntParam: n} }
func ExactLen(n int) Constraint { return Constraint{Kind: KindExactLen, Code: CodeStringLength, IntParam: n} }

func Min(v float64) Constraint { return Constraint{Kind: KindMin, Code: CodeNumberMin, NumParam: v} }
func Max(v float64) Constraint { return Constraint{Kind: KindMax, Code: CodeNumberMax, NumParam: v} }

func Precision(digits int) Constraint {
	return Constraint{Kind: KindPrecision, Code: CodeNumberPrecision, IntParam: digits}
}

func Pattern(re *regexp.Regexp) Constraint {
	return Constraint{Kind: KindPattern, Code: CodeStringPattern, Pattern: re}
}

func OneOf(allowed ...string) Constraint {
	return Constraint{Kind: KindOneOf, Code: CodeOnly, Allowed: allowed}
}

// EqualsField is a cross-field equality constraint. It is evaluated only after
// the referenced field individually passed its own constraints.
func EqualsField(name string) Constraint {
	return Constraint{Kind: KindEqualsField, Code: CodeOnly, RefField: name}
}

// MinDateField requires the value to be on or after the referenced date field.
// Like EqualsField it is gated on the referenced field passing.
func MinDateField(name string) Constraint {
	return Constraint{Kind: KindMinDateField, Code: CodeDateMin, RefField: name}
}

// Field is one schema entry: an ordered constraint list plus an optional
// default applied to the normalized output when the field is absent.
type Field struct {
	Name        string
	Constraints []Constraint
	Default     any
}

// Schema is a named, ordered collection of per-field constraint lists.
// Schemas are defined once at startup and never mutated.
type Schema struct {
	Name        string
	Fields      []Field
	Passthrough []string
}

// F declares a field with its constraints in evaluation order.
func F(name string, cs ...Constraint) Field {
	return Field{Name: name, Constraints: cs}
}

// FDefault declares an optional field whose absence normalizes to a default.
func FDefault(name string, def any, cs ...Constraint) Field {
	return Field{Name: name, Constraints: cs, Default: def}
}
