package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `json:"customer_name" validate:"required"`
	Kind  string `json:"delivery_type" validate:"required,oneof=pickup delivery"`
	Addr  string `json:"delivery_address" validate:"required_if=Kind delivery"`
	Email string `json:"customer_email" validate:"omitempty,email"`
}

func TestValidate_UsesJSONNames(t *testing.T) {
	errs := Validate(sample{Kind: "delivery", Email: "nope"})

	assert.Equal(t, map[string]string{
		"customer_name":    "required",
		"delivery_address": "required_if",
		"customer_email":   "email",
	}, errs)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(sample{Name: "Ana", Kind: "pickup"}))

	err := Check(sample{Kind: "boat", Name: "Ana"})
	var fe FieldErrors
	assert.True(t, errors.As(err, &fe))
	assert.Equal(t, "oneof", fe["delivery_type"])
	assert.Equal(t, "validation failed: delivery_type:oneof", err.Error())
}
