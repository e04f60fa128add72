package validator

import (
	"errors"
	"fmt"
	"strings"
	"tembea/pkg/logger"
	"tembea/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type SearchValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewSearchValidator(log *logger.Logger) *SearchValidator {
	v := validator.New()

	if err := v.RegisterValidation("category", validateCategory); err != nil {
		log.Fatal("Failed to register 'category' validator",
			"error", err,
		)
	}

	return &SearchValidator{
		validate: v,
		logger:   log,
	}
}

func validateCategory(fl validator.FieldLevel) bool {
	_, err := model.ParseCategory(fl.Field().String())
	return err == nil
}

func (v *SearchValidator) Validate(req *model.SearchRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *SearchValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		field := strings.ToLower(err.Field())
		message := err.Error()

		switch err.Tag() {
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, err.Param())
		case "category":
			message = fmt.Sprintf("%s must be a category name or slug", field)
		case "required_with":
			message = fmt.Sprintf("%s is required when %s is set", field, strings.ToLower(err.Param()))
		case "latitude":
			message = fmt.Sprintf("%s must be a latitude between -90 and 90", field)
		case "longitude":
			message = fmt.Sprintf("%s must be a longitude between -180 and 180", field)
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   field,
			Message: message,
		})
	}

	return validationErrors
}
