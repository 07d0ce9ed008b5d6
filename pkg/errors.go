package pkg

// AppError is the error shape returned by HTTP handlers.
//
// Handlers never expose internal error details to clients: ToHTTPError renders
// only the stable code/message pair, while Err is kept for logging/wrapping.

type AppError struct {
	Code       string
	Message    string
	Err        error
	HTTPStatus int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewDomainError(code, message string, err error, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPStatus: httpStatus}
}

func NewDomainErrorSimple(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// HTTPError is the JSON error body. The `error` field carries the
// human-readable message per the public API contract.
type HTTPError struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{Code: e.Code, Error: e.Message}
}
