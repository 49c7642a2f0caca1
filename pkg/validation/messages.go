package validation

import (
	"github.com/go-playground/validator/v10"
)

// contactMessages maps struct field + failed tag to the user-facing message.
// The wording is part of the public API contract and consumed verbatim by the
// frontend, so it must not drift.
var contactMessages = map[string]map[string]string{
	"Name": {
		"notblank": "Name is required",
		"max":      "Name must be less than 100 characters",
	},
	"Email": {
		"required":      "Valid email is required",
		"contact_email": "Valid email is required",
	},
	"Message": {
		"notblank": "Message is required",
		"max":      "Message must be less than 2000 characters",
	},
}

// FormatContactErrors converts validator.ValidationErrors into the ordered
// message list the API returns: fields in struct declaration order, at most
// one message per field (the first failing tag wins, so "required" outranks
// the length check).
func FormatContactErrors(err error) []string {
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	var messages []string
	seen := make(map[string]bool)
	for _, e := range validationErrors {
		field := e.StructField()
		if seen[field] {
			continue
		}
		seen[field] = true

		if msg, ok := contactMessages[field][e.Tag()]; ok {
			messages = append(messages, msg)
			continue
		}
		messages = append(messages, field+" is invalid")
	}

	return messages
}
