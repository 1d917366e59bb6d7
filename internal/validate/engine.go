package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	dErrors "propertyhub/pkg/domain-errors"
)

// isoDateLayout is the accepted wire format for date filters.
const isoDateLayout = "2006-01-02"

// FieldError is one field-level violation. Errors preserve constraint
// evaluation order within a field and field declaration order within the
// schema; the first error per field is what UIs display.
type FieldError struct {
	Field   string `json:"field"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Result is either an accepted, normalized value or an ordered error list.
type Result struct {
	Value  map[string]any
	Errors []FieldError
}

// Accepted reports whether validation passed.
func (r Result) Accepted() bool { return len(r.Errors) == 0 }

// AsError converts a rejection into a domain error carrying the first
// message, for callers that only propagate. Returns nil when accepted.
func (r Result) AsError() error {
	if r.Accepted() {
		return nil
	}
	return dErrors.New(dErrors.CodeValidation, r.Errors[0].Message)
}

// Validate evaluates the input against the schema in one pass.
//
// For each field in declared order the constraint list runs in declared
// order; the first failing constraint yields that field's error and the rest
// of its constraints are skipped. Every field is still checked - this is
// stop-on-first-constraint-per-field, not stop-on-first-field. Cross-field
// constraints run only when their referenced field individually passed.
// Defaults fill the normalized output for absent optional fields. The
// function is pure: same schema and input always produce the same result and
// neither is mutated.
func (s Schema) Validate(input map[string]any) Result {
	normalized := make(map[string]any, len(s.Fields))
	passed := make(map[string]bool, len(s.Fields))
	parsedDates := make(map[string]time.Time)
	var errs []FieldError

	for _, field := range s.Fields {
		raw, present := input[field.Name]

		// Empty string and nil are treated identically to "missing".
		missing := !present || raw == nil
		if str, ok := raw.(string); ok && str == "" {
			missing = true
		}

		if missing {
			if hasRequired(field.Constraints) {
				errs = append(errs, fieldError(field.Name, CodeRequired, nil))
				passed[field.Name] = false
				continue
			}
			if field.Default != nil {
				normalized[field.Name] = field.Default
			}
			passed[field.Name] = true
			continue
		}

		if fe, norm := s.evaluateField(field, raw, normalized, passed, parsedDates); fe != nil {
			errs = append(errs, *fe)
			passed[field.Name] = false
		} else {
			normalized[field.Name] = norm
			passed[field.Name] = true
		}
	}

	for _, name := range s.Passthrough {
		if v, ok := input[name]; ok {
			normalized[name] = v
		}
	}

	if len(errs) > 0 {
		return Result{Errors: errs}
	}
	return Result{Value: normalized}
}

// evaluateField runs one field's constraint list. It returns the first
// violation, or the normalized value on success.
func (s Schema) evaluateField(
	field Field,
	raw any,
	normalized map[string]any,
	passed map[string]bool,
	parsedDates map[string]time.Time,
) (*FieldError, any) {
	var norm any = raw

	for _, c := range field.Constraints {
		switch c.Kind {
		case KindRequired:
			// Presence was already established.

		case KindNonEmpty, KindString, KindEmail, KindMinLen, KindMaxLen, KindExactLen, KindPattern, KindOneOf:
			str, ok := raw.(string)
			if !ok {
				return fieldErrorPtr(field.Name, CodeStringBase, nil), nil
			}
			if fe := checkString(field.Name, str, c); fe != nil {
				return fe, nil
			}
			norm = str

		case KindNumber, KindMin, KindMax, KindPositive, KindPrecision:
			num, literal, ok := toNumber(raw)
			if !ok {
				return fieldErrorPtr(field.Name, CodeNumberBase, nil), nil
			}
			if fe := checkNumber(field.Name, num, literal, c); fe != nil {
				return fe, nil
			}
			if _, isInt := norm.(int64); !isInt {
				norm = num
			}

		case KindInteger:
			num, _, ok := toNumber(raw)
			if !ok {
				return fieldErrorPtr(field.Name, CodeNumberBase, nil), nil
			}
			if num != math.Trunc(num) {
				return fieldErrorPtr(field.Name, CodeNumberInteger, nil), nil
			}
			norm = int64(num)

		case KindISODate:
			str, ok := raw.(string)
			if !ok {
				return fieldErrorPtr(field.Name, CodeDateBase, nil), nil
			}
			t, err := time.Parse(isoDateLayout, str)
			if err != nil {
				return fieldErrorPtr(field.Name, CodeDateBase, nil), nil
			}
			parsedDates[field.Name] = t
			norm = str

		case KindEqualsField:
			// Gated: not separately reported when the referenced field failed.
			if !passed[c.RefField] {
				continue
			}
			other, _ := normalized[c.RefField].(string)
			str, ok := raw.(string)
			if !ok || str != other {
				return fieldErrorPtr(field.Name, c.Code, map[string]string{"other": c.RefField}), nil
			}

		case KindMinDateField:
			if !passed[c.RefField] {
				continue
			}
			ref, ok := parsedDates[c.RefField]
			if !ok {
				// Referenced field absent: nothing to compare against.
				continue
			}
			cur, ok := parsedDates[field.Name]
			if !ok {
				continue
			}
			if cur.Before(ref) {
				return fieldErrorPtr(field.Name, c.Code, map[string]string{"other": c.RefField}), nil
			}
		}
	}

	return nil, norm
}

func checkString(name, str string, c Constraint) *FieldError {
	switch c.Kind {
	case KindNonEmpty:
		if strings.TrimSpace(str) == "" {
			return fieldErrorPtr(name, c.Code, nil)
		}
	case KindEmail:
		if !emailPattern.MatchString(str) {
			return fieldErrorPtr(name, c.Code, nil)
		}
	case KindMinLen:
		if len(str) < c.IntParam {
			return fieldErrorPtr(name, c.Code, map[string]string{"limit": strconv.Itoa(c.IntParam)})
		}
	case KindMaxLen:
		if len(str) > c.IntParam {
			return fieldErrorPtr(name, c.Code, map[string]string{"limit": strconv.Itoa(c.IntParam)})
		}
	case KindExactLen:
		if len(str) != c.IntParam {
			return fieldErrorPtr(name, c.Code, map[string]string{"limit": strconv.Itoa(c.IntParam)})
		}
	case KindPattern:
		if !c.Pattern.MatchString(str) {
			return fieldErrorPtr(name, c.Code, nil)
		}
	case KindOneOf:
		for _, allowed := range c.Allowed {
			if str == allowed {
				return nil
			}
		}
		return fieldErrorPtr(name, c.Code, map[string]string{"allowed": strings.Join(c.Allowed, ", ")})
	}
	return nil
}

func checkNumber(name string, num float64, literal string, c Constraint) *FieldError {
	switch c.Kind {
	case KindMin:
		if num < c.NumParam {
			return fieldErrorPtr(name, c.Code, map[string]string{"limit": formatNum(c.NumParam)})
		}
	case KindMax:
		if num > c.NumParam {
			return fieldErrorPtr(name, c.Code, map[string]string{"limit": formatNum(c.NumParam)})
		}
	case KindPositive:
		if num <= 0 {
			return fieldErrorPtr(name, c.Code, nil)
		}
	case KindPrecision:
		// Values with more fractional digits than allowed are rejected, never
		// rounded. The literal input representation decides.
		if fractionDigits(literal) > c.IntParam {
			return fieldErrorPtr(name, c.Code, map[string]string{"limit": strconv.Itoa(c.IntParam)})
		}
	}
	return nil
}

// toNumber coerces JSON and query-string shapes of a number. It returns the
// numeric value, the decimal literal used for precision checks, and whether
// coercion succeeded.
func toNumber(v any) (float64, string, bool) {
	switch n := v.(type) {
	case json.Number:
		// Handlers decode with UseNumber so the wire literal survives for
		// precision checks.
		f, err := n.Float64()
		if err != nil {
			return 0, "", false
		}
		return f, n.String(), true
	case float64:
		return n, strconv.FormatFloat(n, 'f', -1, 64), true
	case float32:
		f := float64(n)
		return f, strconv.FormatFloat(f, 'f', -1, 64), true
	case int:
		return float64(n), strconv.Itoa(n), true
	case int64:
		return float64(n), strconv.FormatInt(n, 10), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, "", false
		}
		return f, n, true
	}
	return 0, "", false
}

func fractionDigits(literal string) int {
	if i := strings.IndexByte(literal, '.'); i >= 0 {
		return len(literal) - i - 1
	}
	return 0
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func hasRequired(cs []Constraint) bool {
	for _, c := range cs {
		if c.Kind == KindRequired {
			return true
		}
	}
	return false
}

func fieldError(name string, code Code, params map[string]string) FieldError {
	return FieldError{Field: name, Code: code, Message: Message(code, name, params)}
}

func fieldErrorPtr(name string, code Code, params map[string]string) *FieldError {
	fe := fieldError(name, code, params)
	return &fe
}

// Stringer so test failures read well.
func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
}
