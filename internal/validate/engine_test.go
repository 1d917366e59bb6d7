package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstFailingConstraintPerField(t *testing.T) {
	s := Schema{
		Name: "t",
		Fields: []Field{
			F("email", Required(), NonEmpty(), Email()),
		},
	}

	res := s.Validate(map[string]any{"email": "   "})
	require.False(t, res.Accepted())
	require.Len(t, res.Errors, 1)
	// NonEmpty fires first; Email is never evaluated.
	assert.Equal(t, CodeStringEmpty, res.Errors[0].Code)
}

func TestEveryFieldChecked(t *testing.T) {
	s := Schema{
		Name: "t",
		Fields: []Field{
			F("a", Required()),
			F("b", Required()),
			F("c", Required()),
		},
	}

	res := s.Validate(map[string]any{})
	require.Len(t, res.Errors, 3, "validation continues past a failing field")
	assert.Equal(t, "a", res.Errors[0].Field)
	assert.Equal(t, "b", res.Errors[1].Field)
	assert.Equal(t, "c", res.Errors[2].Field)
	for _, fe := range res.Errors {
		assert.Equal(t, CodeRequired, fe.Code)
	}
}

func TestEmptyStringAndNilAreMissing(t *testing.T) {
	s := Schema{Name: "t", Fields: []Field{F("v", Required())}}

	for name, input := range map[string]map[string]any{
		"absent":       {},
		"nil":          {"v": nil},
		"empty string": {"v": ""},
	} {
		res := s.Validate(input)
		require.False(t, res.Accepted(), name)
		assert.Equal(t, CodeRequired, res.Errors[0].Code, name)
	}
}

func TestIdempotentAndPure(t *testing.T) {
	s := Schema{
		Name: "t",
		Fields: []Field{
			FDefault("page", int64(1), Integer(), Min(1)),
			F("name", Required(), NonEmpty()),
		},
	}
	input := map[string]any{"name": "a"}

	first := s.Validate(input)
	second := s.Validate(input)

	assert.Equal(t, first, second)
	assert.Equal(t, map[string]any{"name": "a"}, input, "input must not be mutated")
	assert.Equal(t, int64(1), first.Value["page"], "default applied to output, not input")
}

func TestNumericCoercion(t *testing.T) {
	s := Schema{Name: "t", Fields: []Field{F("n", Required(), Integer(), Min(1))}}

	t.Run("json float", func(t *testing.T) {
		res := s.Validate(map[string]any{"n": float64(3)})
		require.True(t, res.Accepted(), "%v", res.Errors)
		assert.Equal(t, int64(3), res.Value["n"])
	})

	t.Run("query string", func(t *testing.T) {
		res := s.Validate(map[string]any{"n": "7"})
		require.True(t, res.Accepted(), "%v", res.Errors)
		assert.Equal(t, int64(7), res.Value["n"])
	})

	t.Run("fractional rejected as integer", func(t *testing.T) {
		res := s.Validate(map[string]any{"n": 2.5})
		require.False(t, res.Accepted())
		assert.Equal(t, CodeNumberInteger, res.Errors[0].Code)
	})

	t.Run("garbage rejected as number", func(t *testing.T) {
		res := s.Validate(map[string]any{"n": "two"})
		require.False(t, res.Accepted())
		assert.Equal(t, CodeNumberBase, res.Errors[0].Code)
	})
}

func TestPrecisionRejectsWithoutRounding(t *testing.T) {
	s := Schema{Name: "t", Fields: []Field{F("amount", Required(), Number(), Positive(), Precision(2))}}

	res := s.Validate(map[string]any{"amount": 10.999})
	require.False(t, res.Accepted())
	assert.Equal(t, CodeNumberPrecision, res.Errors[0].Code)

	res = s.Validate(map[string]any{"amount": 10.99})
	require.True(t, res.Accepted(), "%v", res.Errors)
	assert.Equal(t, 10.99, res.Value["amount"])

	res = s.Validate(map[string]any{"amount": "10.990"})
	require.False(t, res.Accepted(), "string literal decides the digit count")
}

func TestCrossFieldGating(t *testing.T) {
	s := Schema{
		Name: "t",
		Fields: []Field{
			F("newPassword", Required(), MinLen(8)),
			F("confirmPassword", Required(), EqualsField("newPassword")),
		},
	}

	t.Run("mismatch reported when both individually pass", func(t *testing.T) {
		res := s.Validate(map[string]any{"newPassword": "password1", "confirmPassword": "password2"})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "confirmPassword", res.Errors[0].Field)
		assert.Equal(t, CodeOnly, res.Errors[0].Code)
	})

	t.Run("not separately reported when referenced field failed", func(t *testing.T) {
		res := s.Validate(map[string]any{"newPassword": "short", "confirmPassword": "short"})
		require.Len(t, res.Errors, 1, "only the min-length failure appears")
		assert.Equal(t, "newPassword", res.Errors[0].Field)
	})

	t.Run("match accepted", func(t *testing.T) {
		res := s.Validate(map[string]any{"newPassword": "password1", "confirmPassword": "password1"})
		assert.True(t, res.Accepted(), "%v", res.Errors)
	})
}

func TestDateRange(t *testing.T) {
	s := Schema{
		Name: "t",
		Fields: []Field{
			F("startDate", ISODate()),
			F("endDate", ISODate(), MinDateField("startDate")),
		},
	}

	t.Run("end before start rejected", func(t *testing.T) {
		res := s.Validate(map[string]any{"startDate": "2024-01-10", "endDate": "2024-01-01"})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, CodeDateMin, res.Errors[0].Code)
		assert.Equal(t, "endDate", res.Errors[0].Field)
	})

	t.Run("end omitted accepted regardless of start", func(t *testing.T) {
		res := s.Validate(map[string]any{"startDate": "2024-01-10"})
		assert.True(t, res.Accepted(), "%v", res.Errors)
	})

	t.Run("equal dates accepted", func(t *testing.T) {
		res := s.Validate(map[string]any{"startDate": "2024-01-10", "endDate": "2024-01-10"})
		assert.True(t, res.Accepted(), "%v", res.Errors)
	})

	t.Run("bad format rejected with date code", func(t *testing.T) {
		res := s.Validate(map[string]any{"startDate": "10/01/2024"})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, CodeDateBase, res.Errors[0].Code)
	})

	t.Run("range not re-reported when start malformed", func(t *testing.T) {
		res := s.Validate(map[string]any{"startDate": "garbage", "endDate": "2024-01-01"})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "startDate", res.Errors[0].Field)
	})
}

func TestPassthroughFields(t *testing.T) {
	s := Schema{
		Name:        "t",
		Fields:      []Field{F("name", Required(), NonEmpty())},
		Passthrough: []string{"id"},
	}

	res := s.Validate(map[string]any{"name": "x", "id": float64(12)})
	require.True(t, res.Accepted())
	assert.Equal(t, float64(12), res.Value["id"])

	res = s.Validate(map[string]any{"name": "x"})
	require.True(t, res.Accepted())
	_, present := res.Value["id"]
	assert.False(t, present)
}

func TestMessageCatalogSeparation(t *testing.T) {
	// Codes are stable even if wording changes; messages render snake_case
	// field names with parameters substituted.
	msg := Message(CodeStringMax, "propertyAddress", map[string]string{"limit": "255"})
	assert.Equal(t, "property_address must be at most 255 characters", msg)

	msg = Message(CodeOnly, "confirmPassword", map[string]string{"other": "newPassword"})
	assert.Equal(t, "confirm_password must match new_password", msg)

	msg = Message(CodeOnly, "status", map[string]string{"allowed": "Active, Inactive"})
	assert.Equal(t, "status must be one of [Active, Inactive]", msg)
}
