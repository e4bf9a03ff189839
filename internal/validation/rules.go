// Package validation provides custom validation rules for the application.
package validation

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/devdox-ai/devdox-api/internal/errors"
)

var tokenValueRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Details flattens jellydator field errors into a field → message map suitable for the
// details member of an error response. Returns nil for any other error.
func Details(err error) map[string]string {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return nil
	}
	details := make(map[string]string, len(fieldErrs))
	for field, fieldErr := range fieldErrs {
		if fieldErr != nil {
			details[field] = fieldErr.Error()
		}
	}
	return details
}

// TokenValue accepts provider access tokens: letters, digits, underscores and dashes.
var TokenValue = validation.NewStringRuleWithError(
	func(s string) bool {
		return tokenValueRegex.MatchString(s)
	},
	validation.NewError(
		"validation_token_value",
		"must contain only letters, numbers, underscores and dashes",
	),
)

// HTTPURL validates an absolute http or https URL with a host.
var HTTPURL = validation.NewStringRuleWithError(
	func(s string) bool {
		u, err := url.Parse(s)
		if err != nil {
			return false
		}
		return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	},
	validation.NewError("validation_http_url", "must be a valid http or https URL"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
