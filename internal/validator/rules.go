package validator

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/jobboard-dev/jobboard/internal/models"
)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("jobtype", validateJobType)
	mustRegister("role", validateRole)
}

// Empty values pass; "required" covers presence.

func validateJobType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.JobType(value).Valid()
}

func validateRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.Role(value).Valid()
}

func jobTypeValues() []string {
	values := make([]string, 0, len(models.JobTypes))
	for _, t := range models.JobTypes {
		values = append(values, string(t))
	}
	return values
}
