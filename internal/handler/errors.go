package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func (h *Handlers) renderError(w http.ResponseWriter, status int, message string) {
	h.renderStatus(w, status, "error", map[string]interface{}{
		"Status":  status,
		"Message": message,
	})
}

func (h *Handlers) NotFound(w http.ResponseWriter) {
	h.renderError(w, http.StatusNotFound, "Page not found")
}

func (h *Handlers) Forbidden(w http.ResponseWriter) {
	h.renderError(w, http.StatusForbidden, "Access denied")
}

func (h *Handlers) ServerError(w http.ResponseWriter, err error) {
	h.Log.Error("request failed", zap.Error(err))
	h.renderError(w, http.StatusInternalServerError, "Something went wrong")
}

// formErrors turns validator output into per-field messages for inline
// display next to the offending input.
func formErrors(err error) map[string]string {
	errs := make(map[string]string)

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["Form"] = "Invalid input"
		return errs
	}

	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "required":
			errs[fe.Field()] = "This field is required"
		case "alpha":
			errs[fe.Field()] = "Only letters are allowed"
		case "email":
			errs[fe.Field()] = "Enter a valid email address"
		case "max":
			errs[fe.Field()] = "Value is too long"
		case "min":
			errs[fe.Field()] = "Value is too short"
		default:
			errs[fe.Field()] = "Invalid value"
		}
	}

	return errs
}
