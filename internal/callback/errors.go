package callback

import "errors"

// Each of these ends the request. The HTTP layer maps them to a status code.
var (
	ErrModuleInactive       = errors.New("module not activated")
	ErrInvalidInvoiceID     = errors.New("invalid invoice id")
	ErrDuplicateTransaction = errors.New("transaction id already exists")
	ErrInvalidMetadata      = errors.New("invalid callback metadata")
)
