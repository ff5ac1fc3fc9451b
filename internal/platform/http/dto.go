package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rgdevment/scam-scanner/internal/domain"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	return v
}

type CallRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type CreateReportRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,max=64"`
	Comment     string `json:"comment" validate:"max=500"`
}

func (r *CreateReportRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) && len(vErrs) > 0 {
			return errors.New(fieldMessage(vErrs[0]))
		}
		return err
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " is too long"
	}
	return fe.Field() + " is invalid"
}

type NumbersResponse struct {
	Numbers []string `json:"numbers"`
}

type CheckResponse struct {
	PhoneNumber string `json:"phone_number"`
	IsScam      bool   `json:"is_scam"`
}

type RejectionResponse struct {
	State   domain.FlowState `json:"state"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
