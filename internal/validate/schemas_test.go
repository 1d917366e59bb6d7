package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// SchemasSuite exercises the named PropertyHub schemas end to end.
type SchemasSuite struct {
	suite.Suite
}

func TestSchemasSuite(t *testing.T) {
	suite.Run(t, new(SchemasSuite))
}

func (s *SchemasSuite) TestLogin() {
	s.Run("well-formed accepted", func() {
		res := Login.Validate(map[string]any{"email": "pg@example.com", "password": "secret"})
		s.True(res.Accepted(), "%v", res.Errors)
	})

	s.Run("missing fields rejected in declared order", func() {
		res := Login.Validate(map[string]any{})
		s.Require().Len(res.Errors, 2)
		s.Equal("email", res.Errors[0].Field)
		s.Equal(CodeRequired, res.Errors[0].Code)
		s.Equal("password", res.Errors[1].Field)
	})

	s.Run("bad email rejected", func() {
		res := Login.Validate(map[string]any{"email": "nope", "password": "secret"})
		s.Require().Len(res.Errors, 1)
		s.Equal(CodeStringEmail, res.Errors[0].Code)
	})
}

func (s *SchemasSuite) TestChangePassword() {
	s.Run("mismatch yields only the confirm error", func() {
		res := ChangePassword.Validate(map[string]any{
			"currentPassword": "oldpassword",
			"newPassword":     "password1",
			"confirmPassword": "password2",
		})
		s.Require().Len(res.Errors, 1)
		s.Equal("confirmPassword", res.Errors[0].Field)
		s.Equal(CodeOnly, res.Errors[0].Code)
	})

	s.Run("match accepted", func() {
		res := ChangePassword.Validate(map[string]any{
			"currentPassword": "oldpassword",
			"newPassword":     "password1",
			"confirmPassword": "password1",
		})
		s.True(res.Accepted(), "%v", res.Errors)
	})

	s.Run("short new password rejected before confirm comparison", func() {
		res := ChangePassword.Validate(map[string]any{
			"currentPassword": "oldpassword",
			"newPassword":     "short",
			"confirmPassword": "short",
		})
		s.Require().Len(res.Errors, 1)
		s.Equal("newPassword", res.Errors[0].Field)
		s.Equal(CodeStringMin, res.Errors[0].Code)
	})
}

func (s *SchemasSuite) TestProperty() {
	valid := func() map[string]any {
		return map[string]any{
			"state":           "Karnataka",
			"city":            "Bengaluru",
			"propertyName":    "Sunrise PG",
			"propertyContact": "9876543210",
			"propertyAddress": "12 MG Road",
		}
	}

	s.Run("valid accepted with passthrough", func() {
		in := valid()
		in["id"] = float64(3)
		in["useExistingImage"] = true
		res := Property.Validate(in)
		s.True(res.Accepted(), "%v", res.Errors)
		s.Equal(float64(3), res.Value["id"])
		s.Equal(true, res.Value["useExistingImage"])
	})

	s.Run("contact must be exactly 10 characters", func() {
		in := valid()
		in["propertyContact"] = "12345"
		res := Property.Validate(in)
		s.Require().Len(res.Errors, 1)
		s.Equal(CodeStringLength, res.Errors[0].Code)
	})
}

func (s *SchemasSuite) TestOwnerListQuery() {
	s.Run("empty query normalizes pagination defaults", func() {
		res := OwnerListQuery.Validate(map[string]any{})
		s.Require().True(res.Accepted(), "%v", res.Errors)
		s.Equal(int64(1), res.Value["page"])
		s.Equal(int64(10), res.Value["limit"])
	})

	s.Run("empty search allowed", func() {
		res := OwnerListQuery.Validate(map[string]any{"search": ""})
		s.True(res.Accepted(), "%v", res.Errors)
	})

	s.Run("unknown status rejected", func() {
		res := OwnerListQuery.Validate(map[string]any{"status": "Banned"})
		s.Require().Len(res.Errors, 1)
		s.Equal(CodeOnly, res.Errors[0].Code)
	})

	s.Run("page zero rejected", func() {
		res := OwnerListQuery.Validate(map[string]any{"page": "0"})
		s.Require().Len(res.Errors, 1)
		s.Equal(CodeNumberMin, res.Errors[0].Code)
	})
}

func (s *SchemasSuite) TestOwnerStatusUpdate() {
	res := OwnerStatusUpdate.Validate(map[string]any{"ownerId": float64(5), "status": "Suspended"})
	s.Require().True(res.Accepted(), "%v", res.Errors)
	s.Equal(int64(5), res.Value["ownerId"])

	res = OwnerStatusUpdate.Validate(map[string]any{"ownerId": float64(0), "status": "Active"})
	s.Require().Len(res.Errors, 1)
	s.Equal("ownerId", res.Errors[0].Field)
}

func (s *SchemasSuite) TestPaymentOrder() {
	valid := func() map[string]any {
		return map[string]any{
			"tenantId":   float64(1),
			"propertyId": float64(2),
			"roomId":     float64(3),
			"amount":     1500.50,
		}
	}

	s.Run("valid accepted", func() {
		res := PaymentOrder.Validate(valid())
		s.True(res.Accepted(), "%v", res.Errors)
	})

	s.Run("amount precision enforced", func() {
		in := valid()
		in["amount"] = 10.999
		res := PaymentOrder.Validate(in)
		s.Require().Len(res.Errors, 1)
		s.Equal(CodeNumberPrecision, res.Errors[0].Code)
	})

	s.Run("negative amount rejected before precision", func() {
		in := valid()
		in["amount"] = -10.0
		res := PaymentOrder.Validate(in)
		s.Require().Len(res.Errors, 1)
		s.Equal(CodeNumberPositive, res.Errors[0].Code)
	})

	s.Run("long description rejected", func() {
		in := valid()
		in["description"] = string(make([]byte, 256))
		res := PaymentOrder.Validate(in)
		s.Require().Len(res.Errors, 1)
		s.Equal(CodeStringMax, res.Errors[0].Code)
	})
}

func (s *SchemasSuite) TestPaymentVerify() {
	s.Run("gateway formats accepted", func() {
		res := PaymentVerify.Validate(map[string]any{
			"orderId":   "order_Nxq7abc123",
			"paymentId": "pay_Zzz999",
			"signature": "0f32a1cd",
		})
		s.True(res.Accepted(), "%v", res.Errors)
	})

	s.Run("wrong prefixes rejected", func() {
		res := PaymentVerify.Validate(map[string]any{
			"orderId":   "ord_123",
			"paymentId": "payment_123",
			"signature": "sig",
		})
		s.Require().Len(res.Errors, 2)
		s.Equal("orderId", res.Errors[0].Field)
		s.Equal(CodeStringPattern, res.Errors[0].Code)
		s.Equal("paymentId", res.Errors[1].Field)
	})
}

func (s *SchemasSuite) TestPaymentListQuery() {
	s.Run("defaults applied", func() {
		res := PaymentListQuery.Validate(map[string]any{})
		s.Require().True(res.Accepted(), "%v", res.Errors)
		s.Equal(int64(1), res.Value["page"])
		s.Equal(int64(10), res.Value["limit"])
	})

	s.Run("limit above max rejected", func() {
		res := PaymentListQuery.Validate(map[string]any{"limit": "150"})
		s.Require().Len(res.Errors, 1)
		s.Equal(CodeNumberMax, res.Errors[0].Code)
	})

	s.Run("inverted date range rejected with min-date code", func() {
		res := PaymentListQuery.Validate(map[string]any{
			"startDate": "2024-01-10",
			"endDate":   "2024-01-01",
		})
		s.Require().Len(res.Errors, 1)
		s.Equal(CodeDateMin, res.Errors[0].Code)
	})

	s.Run("start date alone accepted", func() {
		res := PaymentListQuery.Validate(map[string]any{"startDate": "2024-01-10"})
		s.True(res.Accepted(), "%v", res.Errors)
	})
}

func (s *SchemasSuite) TestRefundAndCancel() {
	s.Run("refund amount optional", func() {
		res := Refund.Validate(map[string]any{"paymentId": float64(9)})
		s.True(res.Accepted(), "%v", res.Errors)
	})

	s.Run("refund precision enforced", func() {
		res := Refund.Validate(map[string]any{"paymentId": float64(9), "amount": 5.001})
		s.Require().Len(res.Errors, 1)
		s.Equal(CodeNumberPrecision, res.Errors[0].Code)
	})

	s.Run("cancel reason defaults", func() {
		res := CancelPayment.Validate(map[string]any{"paymentId": float64(9)})
		s.Require().True(res.Accepted(), "%v", res.Errors)
		s.Equal(DefaultCancelReason, res.Value["reason"])
	})

	s.Run("explicit cancel reason kept", func() {
		res := CancelPayment.Validate(map[string]any{"paymentId": float64(9), "reason": "duplicate order"})
		s.Require().True(res.Accepted(), "%v", res.Errors)
		s.Equal("duplicate order", res.Value["reason"])
	})
}

func TestLookup(t *testing.T) {
	s, ok := Lookup("paymentOrder")
	require.True(t, ok)
	assert.Equal(t, "paymentOrder", s.Name)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}
