package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/qrmenu/pkg/validate"
)

type item struct {
	Name  string  `json:"name"  validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

type signupInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Website  string `json:"website"  validate:"omitempty,url"`
	Items    []item `json:"items"    validate:"required,min=1,dive"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(signupInput{
		Email:    "cafe@x.com",
		Password: "secret123",
		Items:    []item{{Name: "Pizza", Price: 9.99}},
	})
	assert.False(t, validate.HasErrors(errs), "got %v", errs)
}

func TestRequiredUsesJSONNames(t *testing.T) {
	errs := validate.Struct(signupInput{})
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "items")
	assert.Equal(t, "The email field is required.", errs["email"])
}

func TestNestedFieldPath(t *testing.T) {
	errs := validate.Struct(signupInput{
		Email:    "cafe@x.com",
		Password: "secret123",
		Items:    []item{{Name: "Pizza", Price: 1}, {Price: -2}},
	})
	assert.Contains(t, errs, "items[1].name")
	assert.Contains(t, errs, "items[1].price")
	assert.NotContains(t, errs, "items[0].name")
}

func TestFormatRules(t *testing.T) {
	errs := validate.Struct(signupInput{
		Email:    "not-an-email",
		Password: "short",
		Website:  "nope",
		Items:    []item{{Name: "x"}},
	})
	assert.Contains(t, errs["email"], "valid email")
	assert.Contains(t, errs["password"], "at least 8")
	assert.Contains(t, errs["website"], "valid URL")
}
