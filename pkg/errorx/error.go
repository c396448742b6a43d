package errorx

import "fmt"

type Code int

const (
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009
	TooManyRequests  Code = 100010
)

// Unknown is returned to the client whenever the real error must not leak out
// of the domain layer. The original error is expected to be logged at the
// place Unknown is returned.
var Unknown = Error{Code: 100000, Message: "Request failed"}

type Error struct {
	Code    Code
	Message string
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) Error() string {
	return e.Message
}
