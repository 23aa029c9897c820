package sheets

import "errors"

// ErrorKind classifies API call failures.
type ErrorKind int

const (
	// KindNetwork covers transport failures other than timeouts.
	KindNetwork ErrorKind = iota
	// KindTimeout means the per-call deadline expired before a response
	// arrived.
	KindTimeout
	// KindDecode means the server responded with something that is not
	// the expected JSON shape.
	KindDecode
	// KindDomain means the server answered ok:false; Message carries the
	// server-provided error string verbatim.
	KindDomain
)

// Error is the only error type the client returns for failed calls.
type Error struct {
	Kind    ErrorKind
	Action  string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsTimeout reports whether err is a timed-out API call.
func IsTimeout(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindTimeout
}

// IsDomain reports whether err is a business rejection from the server
// (ok:false) rather than a transport problem.
func IsDomain(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindDomain
}
