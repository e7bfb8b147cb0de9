package http

import "fmt"

type invalidQueryParamError struct {
	param string
}

func (e invalidQueryParamError) Error() string {
	return fmt.Sprintf("invalid value for query parameter '%s'", e.param)
}

func errInvalidQueryParam(param string) error {
	return invalidQueryParamError{param: param}
}
