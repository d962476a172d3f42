package znap

import "errors"

var (
	// ErrInvalidArgument reports malformed stops, durations or transforms.
	ErrInvalidArgument = errors.New("znap: invalid argument")

	// ErrDomain reports a query time that is not a finite number.
	ErrDomain = errors.New("znap: time out of domain")
)
