package validators

import (
	"net/http"

	"github.com/anonto42/nano-midea/discovery/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator adapts go-playground/validator to echo.Validator
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates the validator installed as echo's e.Validator
func NewValidator() *CustomValidator {
	v := validator.New()
	// search_category accepts the categories understood by the search endpoint
	_ = v.RegisterValidation("search_category", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseSearchCategory(fl.Field().String())
		return ok
	})
	return &CustomValidator{validator: v}
}

// Validate checks i's `validate` tags and reports failures as 400
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
