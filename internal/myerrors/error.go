package myerrors

// RequestError carries the message shown to the operator. Err keeps the
// underlying cause for logging.
type RequestError struct {
	Message string
	Err     error
}

func (r *RequestError) Error() string {
	return r.Message
}

func (r *RequestError) Unwrap() error {
	return r.Err
}
