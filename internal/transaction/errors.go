package transaction

import "errors"

var (
	ErrMissingUser     = errors.New("missing user id")
	ErrEmptyName       = errors.New("name is required")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
	ErrZeroAmount      = errors.New("amount must be greater than zero")
	ErrMissingCategory = errors.New("category is required")
	ErrMalformedData   = errors.New("malformed transaction data")
)

// IsValidation reports whether err was caused by invalid registration input.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrEmptyName, ErrInvalidType, ErrNegativeAmount, ErrZeroAmount, ErrMissingCategory,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
