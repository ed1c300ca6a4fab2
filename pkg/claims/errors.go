package claims

import (
	"errors"
	"fmt"
)

// ErrInvalid matches every *InvalidError with errors.Is.
var ErrInvalid = errors.New("claims: invalid claim value")

// InvalidError reports a claim value that failed its format rule.
type InvalidError struct {
	Key    string
	Reason string
}

func invalid(key, reason string) *InvalidError {
	return &InvalidError{Key: key, Reason: reason}
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("claims: %s: %s", e.Key, e.Reason)
}

// Is lets errors.Is(err, ErrInvalid) match.
func (e *InvalidError) Is(target error) bool {
	return target == ErrInvalid
}

// Reasons flattens err into a key -> reason map. It understands joined
// errors so callers can render every failure of a claim set at once.
func Reasons(err error) map[string]string {
	if err == nil {
		return nil
	}
	out := make(map[string]string)
	collectReasons(err, out)
	return out
}

func collectReasons(err error, out map[string]string) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			collectReasons(e, out)
		}
		return
	}
	var ie *InvalidError
	if errors.As(err, &ie) {
		out[ie.Key] = ie.Reason
	}
}
