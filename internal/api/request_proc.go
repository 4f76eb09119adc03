package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/yakoovad/hackathon-registration/internal/service"
	"github.com/yakoovad/hackathon-registration/internal/validation"
)

// ProcessRequest runs the steps in order and stops at the first failure.
func ProcessRequest[T any](e echo.Context, req *T, steps ...func(echo.Context, *T) error) error {
	for _, step := range steps {
		if err := step(e, req); err != nil {
			return err
		}
	}
	return nil
}

func bindBody[T any](e echo.Context, req *T) error {
	if err := e.Bind(req); err != nil {
		return service.NewError(service.ErrorCodeInvalidBody, "Request body must be valid JSON.")
	}
	return nil
}

func validateBody[T any](e echo.Context, req *T) error {
	err := e.Validate(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return service.NewError(service.ErrorCodeInvalidBody, "Validation failed.").
			WithDetails(validation.Details(verrs)...)
	}
	return service.NewError(service.ErrorCodeInvalidBody, errors.Wrap(err, "request validation failed").Error())
}

// asServiceError unwraps a step failure into the error the transport renders.
func asServiceError(err error) *service.Error {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return service.NewError(service.ErrorCodeUnspecified, err.Error())
}
