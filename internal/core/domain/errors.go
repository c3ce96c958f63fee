package domain

import "errors"

// Переменные-ошибки, которые возвращаются из Use Cases и адаптеров.
var (
	ErrContactNotFound    = errors.New("contact not found")
	ErrHistoryNotFound    = errors.New("history entry not found")
	ErrNameRequired       = errors.New("name is required")
	ErrInvalidField       = errors.New("invalid field value")
	ErrInvalidStatsWindow = errors.New("invalid statistics window")
	ErrInvalidSnapshot    = errors.New("invalid snapshot")
	ErrImportNotConfirmed = errors.New("import must be confirmed before replacing contacts")
	ErrNoRecipients       = errors.New("no contacts selected")
	ErrTokenInvalid       = errors.New("invalid jwt token")
	ErrMissingEmail       = errors.New("contact has no email")
)
