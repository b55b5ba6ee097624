package signup

import (
	"fmt"

	"github.com/arzonkitob/storefront/params"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldErrors maps form field names to validation messages. It satisfies
// error so controller callers can branch on it with errors.As.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return "invalid form input"
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters.", fe.Param())
	default:
		return "Invalid value."
	}
}

// ValidateDraft checks the registration form fields and returns per-field
// messages, empty when the draft is valid.
func ValidateDraft(draft Draft) FieldErrors {
	formErrors := make(FieldErrors)
	err := validate.Struct(draft)
	if err == nil {
		return formErrors
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		formErrors["form"] = "Invalid form input."
		return formErrors
	}
	for _, fe := range validationErrors {
		switch fe.Field() {
		case "Email":
			formErrors["email"] = fieldMessage(fe)
		case "Password":
			formErrors["password"] = fieldMessage(fe)
		case "FullName":
			formErrors["fullName"] = fieldMessage(fe)
		}
	}
	return formErrors
}

// ValidateCode checks the one-time code shape before it is sent anywhere.
func ValidateCode(code string) FieldErrors {
	formErrors := make(FieldErrors)
	if err := validate.Var(code, fmt.Sprintf("required,len=%d", params.OTPCodeLength)); err != nil {
		formErrors["otp"] = fmt.Sprintf("Code must be exactly %d characters.", params.OTPCodeLength)
	}
	return formErrors
}
