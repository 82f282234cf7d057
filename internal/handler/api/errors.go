package api

import (
	"context"
	"errors"

	"CardPulse/internal/domain/models"
	xhttp "CardPulse/pkg/http"
)

// toAppError maps domain error kinds to HTTP errors.
func toAppError(err error) *xhttp.AppError {
	return xhttp.MapError(err, domainErrors, canceled)
}

func domainErrors(err error) *xhttp.AppError {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.Is(err, models.ErrCardNotFound):
		return xhttp.NotFoundError("card not found").WithError(err)
	}
	return nil
}

func canceled(err error) *xhttp.AppError {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return xhttp.InternalError("request canceled").WithError(err)
	}
	return nil
}
