package network

// HttpError is a request-handling failure with an HTTP status. Expose
// controls whether Message is sent to the client or only logged;
// internal errors keep their detail server-side.
type HttpError struct {
	Status  int
	Message string
	Expose  bool
}

func (e *HttpError) Error() string {
	return e.Message
}

// NewHttpError returns an exposed error: the message is sent to the
// client as-is.
func NewHttpError(status int, message string) *HttpError {
	return &HttpError{Status: status, Message: message, Expose: true}
}

// NewInternalError returns an unexposed error: the client sees a
// generic message while the detail stays in the logs.
func NewInternalError(status int, message string) *HttpError {
	return &HttpError{Status: status, Message: message, Expose: false}
}
