package validate

import (
	"regexp"

	"propertyhub/pkg/domain"
)

// Gateway identifier formats. The signature itself is an opaque HMAC digest
// validated server-side by the gateway, so it only gets a presence check.
var (
	orderIDPattern   = regexp.MustCompile(`^order_[A-Za-z0-9]+$`)
	paymentIDPattern = regexp.MustCompile(`^pay_[A-Za-z0-9]+$`)
)

// DefaultCancelReason fills the cancel request's reason when omitted.
const DefaultCancelReason = "Cancelled by requester"

// Pagination defaults shared by list queries.
const (
	DefaultPage  = int64(1)
	DefaultLimit = int64(10)
	MaxLimit     = 100
)

// Named schemas, defined once at startup and never mutated. Field order is an
// observable contract: rejection errors list fields in this order.
var (
	Login = Schema{
		Name: "login",
		Fields: []Field{
			F("email", Required(), NonEmpty(), Email()),
			F("password", Required(), NonEmpty()),
		},
	}

	Register = Schema{
		Name: "register",
		Fields: []Field{
			F("firstName", Required(), NonEmpty()),
			F("lastName", Required(), NonEmpty()),
			F("email", Required(), NonEmpty(), Email()),
			F("password", Required(), MinLen(8)),
		},
		Passthrough: []string{"role"},
	}

	Profile = Schema{
		Name: "profile",
		Fields: []Field{
			F("firstName", Required(), NonEmpty()),
			F("lastName", Required(), NonEmpty()),
		},
	}

	ChangePassword = Schema{
		Name: "changePassword",
		Fields: []Field{
			F("currentPassword", Required(), NonEmpty()),
			F("newPassword", Required(), MinLen(8)),
			F("confirmPassword", Required(), EqualsField("newPassword")),
		},
	}

	Property = Schema{
		Name: "property",
		Fields: []Field{
			F("state", Required(), NonEmpty()),
			F("city", Required(), NonEmpty()),
			F("propertyName", Required(), NonEmpty()),
			F("propertyContact", Required(), NonEmpty(), ExactLen(10)),
			F("propertyAddress", Required(), NonEmpty()),
		},
		Passthrough: []string{"id", "useExistingImage", "image"},
	}

	OwnerListQuery = Schema{
		Name: "ownerListQuery",
		Fields: []Field{
			FDefault("page", DefaultPage, Integer(), Min(1)),
			FDefault("limit", DefaultLimit, Integer(), Min(1), Max(MaxLimit)),
			F("search"),
			F("status", OneOf(domain.OwnerStatuses...)),
			F("stateId", Integer(), Min(1)),
			F("cityId", Integer(), Min(1)),
		},
	}

	OwnerStatusUpdate = Schema{
		Name: "ownerStatusUpdate",
		Fields: []Field{
			F("ownerId", Required(), Integer(), Min(1)),
			F("status", Required(), OneOf(domain.OwnerStatuses...)),
		},
	}

	PaymentOrder = Schema{
		Name: "paymentOrder",
		Fields: []Field{
			F("tenantId", Required(), Integer(), Positive()),
			F("propertyId", Required(), Integer(), Positive()),
			F("roomId", Required(), Integer(), Positive()),
			F("amount", Required(), Number(), Positive(), Precision(2)),
			F("description", MaxLen(255)),
		},
	}

	PaymentVerify = Schema{
		Name: "paymentVerify",
		Fields: []Field{
			F("orderId", Required(), Pattern(orderIDPattern)),
			F("paymentId", Required(), Pattern(paymentIDPattern)),
			F("signature", Required()),
		},
	}

	PaymentListQuery = Schema{
		Name: "paymentListQuery",
		Fields: []Field{
			FDefault("page", DefaultPage, Integer(), Min(1)),
			FDefault("limit", DefaultLimit, Integer(), Min(1), Max(MaxLimit)),
			F("status", OneOf(domain.PaymentStatuses...)),
			F("tenantId", Integer(), Positive()),
			F("propertyId", Integer(), Positive()),
			F("startDate", ISODate()),
			F("endDate", ISODate(), MinDateField("startDate")),
		},
	}

	Refund = Schema{
		Name: "refund",
		Fields: []Field{
			F("paymentId", Required(), Integer(), Positive()),
			F("amount", Number(), Positive(), Precision(2)),
			F("reason", MaxLen(255)),
		},
	}

	CancelPayment = Schema{
		Name: "cancelPayment",
		Fields: []Field{
			F("paymentId", Required(), Integer(), Positive()),
			FDefault("reason", DefaultCancelReason, MaxLen(255)),
		},
	}
)

// registry indexes schemas by name for callers that resolve them dynamically.
var registry = map[string]Schema{
	Login.Name:             Login,
	Register.Name:          Register,
	Profile.Name:           Profile,
	ChangePassword.Name:    ChangePassword,
	Property.Name:          Property,
	OwnerListQuery.Name:    OwnerListQuery,
	OwnerStatusUpdate.Name: OwnerStatusUpdate,
	PaymentOrder.Name:      PaymentOrder,
	PaymentVerify.Name:     PaymentVerify,
	PaymentListQuery.Name:  PaymentListQuery,
	Refund.Name:            Refund,
	CancelPayment.Name:     CancelPayment,
}

// Lookup resolves a schema by name.
func Lookup(name string) (Schema, bool) {
	s, ok := registry[name]
	return s, ok
}
