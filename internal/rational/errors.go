package rational

import "errors"

// Error kinds returned by this package. Callers match them with errors.Is;
// most are returned wrapped with the offending value.
var (
	ErrInvalidArgument = errors.New("denominator cannot be zero")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrInvalidKey      = errors.New("use 'n' for numerator or 'd' for denominator")
	ErrTypeMismatch    = errors.New("only Rational or int allowed")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrParse           = errors.New("invalid literal")
	ErrOverflow        = errors.New("integer overflow")
)

// Kinds lists every error kind, in the order they are documented.
var Kinds = []error{
	ErrInvalidArgument,
	ErrDivisionByZero,
	ErrInvalidKey,
	ErrTypeMismatch,
	ErrIndexOutOfRange,
	ErrParse,
	ErrOverflow,
}

// IsKind reports whether err wraps one of the package error kinds.
func IsKind(err error) bool {
	for _, kind := range Kinds {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
