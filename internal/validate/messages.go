package validate

import (
	"regexp"
	"strings"

	"propertyhub/pkg/strutil"
)

// emailPattern is deliberately permissive: real verification happens by
// sending mail, this only catches obvious typos.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// catalog maps error codes to human-readable message templates. It is kept
// apart from the evaluation logic so wording (or localization) changes never
// touch the engine. Placeholders: {field}, {limit}, {allowed}, {other}.
var catalog = map[Code]string{
	CodeRequired:        "{field} is required",
	CodeOnly:            "{field} must match {other}",
	CodeStringEmpty:     "{field} must not be empty",
	CodeStringBase:      "{field} must be a string",
	CodeStringEmail:     "{field} must be a valid email",
	CodeStringMin:       "{field} must be at least {limit} characters",
	CodeStringMax:       "{field} must be at most {limit} characters",
	CodeStringLength:    "{field} must be exactly {limit} characters",
	CodeStringPattern:   "{field} has an invalid format",
	CodeNumberBase:      "{field} must be a number",
	CodeNumberInteger:   "{field} must be an integer",
	CodeNumberMin:       "{field} must be at least {limit}",
	CodeNumberMax:       "{field} must be at most {limit}",
	CodeNumberPositive:  "{field} must be a positive number",
	CodeNumberPrecision: "{field} must have at most {limit} decimal places",
	CodeDateBase:        "{field} must be an ISO date (YYYY-MM-DD)",
	CodeDateMin:         "{field} must not be before {other}",
}

// onlyMessages overrides the generic CodeOnly template for enum violations,
// which carry an allowed-set instead of a referenced field.
const allowedTemplate = "{field} must be one of [{allowed}]"

// Message renders the catalog entry for a code. Field names are converted to
// snake_case so messages match the wire casing clients see.
func Message(code Code, field string, params map[string]string) string {
	tmpl, ok := catalog[code]
	if !ok {
		tmpl = "{field} is invalid"
	}
	if code == CodeOnly {
		if _, hasAllowed := params["allowed"]; hasAllowed {
			tmpl = allowedTemplate
		}
	}

	msg := strings.ReplaceAll(tmpl, "{field}", strutil.ToSnakeCase(field))
	for k, v := range params {
		if k == "other" {
			v = strutil.ToSnakeCase(v)
		}
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
}
