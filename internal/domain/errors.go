package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

const (
	FieldTitle    = "title"
	FieldPrice    = "price"
	FieldDiscount = "discount"
	FieldImage    = "image"
	FieldBadge    = "badge"
)

const (
	MsgInvalidValue    = "Invalid value"
	MsgPercentOver100  = "Percentage cannot exceed 100%"
	MsgDiscountExceeds = "Discount exceeds price"
	MsgRequired        = "is required"
	MsgImageType       = "Invalid file type. Please upload an image (PNG, JPG, GIF)."
	MsgImageTooLarge   = "File size too large. Please upload an image smaller than 5MB."
	MsgProductNotFound = "Product not found. Please check the Product ID and try again."
)

// Issue is one field-scoped validation message.
type Issue struct {
	Field   string
	Message string
}

// ValidationError carries every blocking issue found in one submission.
type ValidationError struct {
	Issues []Issue
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Issues: []Issue{{Field: field, Message: msg}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.Field == "" {
			parts = append(parts, is.Message)
			continue
		}
		parts = append(parts, is.Field+": "+is.Message)
	}
	return "validation: " + strings.Join(parts, "; ")
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
