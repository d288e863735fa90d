package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Customer is the only resource served by this service.
type Customer struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"type:varchar(63);not null" json:"name" validate:"required,max=63"`
	Address     string  `gorm:"type:varchar(256);not null" json:"address" validate:"required,max=256"`
	Email       string  `gorm:"type:varchar(63);not null" json:"email" validate:"required,max=63"`
	Password    string  `gorm:"type:varchar(20);not null" json:"password" validate:"required,max=20"`
	PhoneNumber *string `gorm:"type:varchar(63)" json:"phone_number" validate:"omitempty,max=63"`
	Available   bool    `gorm:"not null;default:false" json:"available"`
}

// ValidationError reports why a payload could not be turned into a Customer.
// Field is empty when the payload as a whole was unusable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "Invalid Customer: " + e.Reason
}

// MissingFieldError is returned when a required key is absent from the payload.
func MissingFieldError(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "missing " + field}
}

// BadDataError is returned when the payload is not a JSON object at all.
func BadDataError(cause error) *ValidationError {
	return &ValidationError{
		Reason: "body of request contained bad or no data - Error message: " + cause.Error(),
	}
}

// UnsavedUpdateError is returned when an update is attempted on a customer
// that has never been persisted.
func UnsavedUpdateError() *ValidationError {
	return &ValidationError{Field: "id", Reason: "update called with empty id field"}
}

// IsValidationError reports whether err is, or wraps, a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json keys instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// IsPersisted reports whether the customer has a server-assigned id.
func (c *Customer) IsPersisted() bool {
	return c.ID != 0
}

// Suspend marks the customer unavailable.
func (c *Customer) Suspend() {
	c.Available = false
}

// Activate marks the customer available.
func (c *Customer) Activate() {
	c.Available = true
}

// Serialize returns the wire form of the customer. A transient customer has a null id.
func (c *Customer) Serialize() map[string]any {
	var id any
	if c.IsPersisted() {
		id = c.ID
	}
	var phone any
	if c.PhoneNumber != nil {
		phone = *c.PhoneNumber
	}
	return map[string]any{
		"id":           id,
		"name":         c.Name,
		"address":      c.Address,
		"email":        c.Email,
		"phone_number": phone,
		"password":     c.Password,
		"available":    c.Available,
	}
}

// Deserialize copies a decoded JSON payload onto c. Required keys are checked in the
// order name, address, email, password, available and the first missing one is reported.
// phone_number is optional. The id is never read from the payload, and c is left
// untouched when an error is returned.
func (c *Customer) Deserialize(data any) error {
	fields, ok := data.(map[string]any)
	if !ok {
		return BadDataError(fmt.Errorf("expected a JSON object, got %T", data))
	}

	name, err := requiredString(fields, "name")
	if err != nil {
		return err
	}
	address, err := requiredString(fields, "address")
	if err != nil {
		return err
	}
	email, err := requiredString(fields, "email")
	if err != nil {
		return err
	}
	password, err := requiredString(fields, "password")
	if err != nil {
		return err
	}
	rawAvailable, ok := fields["available"]
	if !ok {
		return MissingFieldError("available")
	}
	available, ok := rawAvailable.(bool)
	if !ok {
		return &ValidationError{Field: "available", Reason: "available must be a boolean"}
	}

	var phone *string
	switch v := fields["phone_number"].(type) {
	case nil:
	case string:
		phone = &v
	default:
		return &ValidationError{Field: "phone_number", Reason: "phone_number must be a string"}
	}

	candidate := Customer{
		ID:          c.ID,
		Name:        name,
		Address:     address,
		Email:       email,
		Password:    password,
		PhoneNumber: phone,
		Available:   available,
	}
	if err := validateLimits(&candidate); err != nil {
		return err
	}

	*c = candidate
	return nil
}

func requiredString(fields map[string]any, key string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", MissingFieldError(key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", &ValidationError{Field: key, Reason: key + " must be a string"}
	}
	return s, nil
}

func validateLimits(c *Customer) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Reason: err.Error()}
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: fe.Field(), Reason: fe.Field() + " must not be empty"}
	case "max":
		return &ValidationError{
			Field:  fe.Field(),
			Reason: fmt.Sprintf("%s exceeds %s characters", fe.Field(), fe.Param()),
		}
	default:
		return &ValidationError{Field: fe.Field(), Reason: fe.Field() + " is invalid"}
	}
}
