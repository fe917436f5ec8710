package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/jobboard-dev/jobboard/internal/apperrors"
	"github.com/jobboard-dev/jobboard/internal/validator"
)

type clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

// invalid reports the first offending field of a validator failure as ValidationFailed.
func invalid(err error) error {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		field := verr.Fields()[0]
		return apperrors.Validation(field, field+" "+verr.Errors[field])
	}
	return apperrors.Internal(err)
}

func unexpected(action string, err error) error {
	return apperrors.Internal(fmt.Errorf("%s: %w", action, err))
}
