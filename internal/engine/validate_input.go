package engine

import (
	"github.com/go-playground/validator/v10"

	apperrors "github.com/noah-isme/timetable-core/pkg/errors"
)

var structValidator *validator.Validate

// ValidateProblem runs struct-tag validation over every entity in p
// (required fields, day/hour ranges, minimum slice lengths), returning
// the first violation found. It does not check cross-entity references
// or capacity; Solve's internal pre-flight pass covers those.
func ValidateProblem(p *Problem) error {
	if structValidator == nil {
		structValidator = validator.New()
	}
	if err := structValidator.Struct(p); err != nil {
		return apperrors.Wrap(err, apperrors.ErrValidation.Code, "problem failed validation")
	}
	return nil
}

// ValidateOptions runs struct-tag validation over o.
func ValidateOptions(o *Options) error {
	if structValidator == nil {
		structValidator = validator.New()
	}
	if err := structValidator.Struct(o); err != nil {
		return apperrors.Wrap(err, apperrors.ErrValidation.Code, "options failed validation")
	}
	return nil
}
