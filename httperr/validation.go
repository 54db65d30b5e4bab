package httperr

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// FromValidation converts validator errors into a 400 error whose detail
// maps each failing field to the rule it broke. Other errors become a plain
// 400 with err as the cause. A nil err returns nil.
func FromValidation(err error) *ResponseError {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return BadRequest(WithCause(err))
	}

	detail := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		detail[fe.Field()] = fe.Tag()
	}
	return BadRequest(WithDetail(detail), WithCause(err))
}
