package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives.
//
// Justification: these are the error primitives used at every trust boundary.
// Unit tests ensure invariants like "wrapped domain errors preserve original code"
// and "errors.Is matches by code" are maintained.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeNotFound, Message: "owner not found"}
		s.Equal("owner not found", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeNotFound}
		s.Equal("not_found", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	inner := errors.New("connection reset")
	err := Wrap(inner, CodeInternal, "store unavailable")
	s.ErrorIs(err, inner)
}

func (s *DomainErrorsSuite) TestIsMatchesByCode() {
	err := New(CodeUnauthorized, "token expired")
	s.ErrorIs(err, &Error{Code: CodeUnauthorized})
	s.NotErrorIs(err, &Error{Code: CodeForbidden})
}

func (s *DomainErrorsSuite) TestWrapPreservesOriginalCode() {
	base := New(CodeValidation, "amount must be positive")
	wrapped := Wrap(fmt.Errorf("create order: %w", base), CodeInternal, "payment failed")

	var de *Error
	s.Require().True(errors.As(wrapped, &de))
	s.Equal(CodeValidation, de.Code)
}

func (s *DomainErrorsSuite) TestHasCode() {
	err := New(CodeAlreadyRefunded, "refund already issued")
	s.True(HasCode(err, CodeAlreadyRefunded))
	s.False(HasCode(err, CodeNotRefundable))
	s.False(HasCode(errors.New("plain"), CodeAlreadyRefunded))
}
