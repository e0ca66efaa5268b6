package services

import "github.com/go-playground/validator/v10"

// Validate checks struct tags on models before they are written to the store
var Validate = validator.New(validator.WithRequiredStructEnabled())
