package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/offer-composer/internal/document"
	"github.com/jonathan/offer-composer/internal/offers"
	"github.com/jonathan/offer-composer/internal/schemas"
	"github.com/jonathan/offer-composer/internal/types"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		offerNotFound *offers.NotFoundError
		docNotFound   *document.NotFoundError
		stale         *document.StaleReferenceError
		request       *offers.RequestError
		selection     *types.SelectionError
		invalid       *types.ValidationError
		schema        *schemas.ValidationError
		fields        validator.ValidationErrors
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &offerNotFound), errors.As(err, &docNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrEmployeeAlreadyProposed), errors.As(err, &stale):
		return http.StatusConflict
	case errors.As(err, &request), errors.As(err, &selection), errors.As(err, &invalid),
		errors.As(err, &schema), errors.As(err, &fields):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
