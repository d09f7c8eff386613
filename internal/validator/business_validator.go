package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/jungle-hr/pulse-match-service/internal/models"
)

func registerDomainRules(v *validator.Validate) {
	v.RegisterValidation("office_day", validateOfficeDay)
	v.RegisterValidation("interest_tag", validateInterestTag)
	v.RegisterValidation("activity_tag", validateActivityTag)
	v.RegisterValidation("pulse_role", validateRole)
}

func validateOfficeDay(fl validator.FieldLevel) bool {
	return contains(models.OfficeDays, fl.Field().String())
}

func validateInterestTag(fl validator.FieldLevel) bool {
	return contains(models.InterestTags, fl.Field().String())
}

func validateActivityTag(fl validator.FieldLevel) bool {
	return contains(models.ActivityTags, fl.Field().String())
}

func validateRole(fl validator.FieldLevel) bool {
	return models.UserRole(fl.Field().String()).IsValid()
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
