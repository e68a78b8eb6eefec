package httperr

import "errors"

// BusinessError carries a stable string code across the usecase boundary
// so handlers can map it to a status without string matching.
type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessMsg(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func BusinessCode(err error) (string, string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, be.Message, true
	}
	return "", "", false
}
