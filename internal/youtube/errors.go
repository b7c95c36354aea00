package youtube

import (
	"errors"
	"fmt"
)

// Invocation-level errors. These abort a tool call before any network request.
var (
	ErrMissingArguments  = errors.New("missing required arguments")
	ErrUnknownTool       = errors.New("unknown tool")
	ErrMissingParam      = errors.New("missing required parameter")
	ErrMissingCredential = errors.New("RAPIDAPI_KEY environment variable is not set; set your RapidAPI key first")
)

// MissingParamError names the required parameter that was absent.
type MissingParamError struct {
	Param string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingParam, e.Param)
}

// Is reports whether target is ErrMissingParam.
func (e *MissingParamError) Is(target error) bool {
	return target == ErrMissingParam
}
