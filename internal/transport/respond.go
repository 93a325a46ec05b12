package transport

import (
	"errors"
	"net/http"

	"graceshopper/internal/middleware"
	"graceshopper/internal/repository"
	"graceshopper/internal/service"

	"go.uber.org/zap"
)

// errorMapping pairs a sentinel error with its boundary name and status.
type errorMapping struct {
	target error
	status int
	name   string
}

// mappings is the closed error taxonomy. Anything a repository surfaced
// that no sentinel claims falls through to a DataStoreError and carries
// the underlying message to the client.
var mappings = []errorMapping{
	{service.ErrShortPassword, http.StatusBadRequest, middleware.NameShortPassword},
	{repository.ErrUserAlreadyExists, http.StatusConflict, middleware.NameUserExists},
	{service.ErrMissingCredentials, http.StatusBadRequest, middleware.NameMissingCredentials},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, middleware.NameIncorrectCredentials},
	{service.ErrInvalidToken, http.StatusUnauthorized, middleware.NameUnauthorized},
	{service.ErrForbidden, http.StatusForbidden, middleware.NameForbidden},
	{service.ErrProductAlreadyExists, http.StatusConflict, middleware.NameProductExists},
	{service.ErrNegativePrice, http.StatusBadRequest, middleware.NameValidation},
	{service.ErrInvalidQuantity, http.StatusBadRequest, middleware.NameValidation},
	{service.ErrInvalidStars, http.StatusBadRequest, middleware.NameValidation},
	{service.ErrInvalidStatus, http.StatusBadRequest, middleware.NameValidation},
	{service.ErrInvalidTransition, http.StatusBadRequest, middleware.NameValidation},
	{repository.ErrUserNotFound, http.StatusNotFound, middleware.NameNotFound},
	{repository.ErrProductNotFound, http.StatusNotFound, middleware.NameNotFound},
	{repository.ErrOrderNotFound, http.StatusNotFound, middleware.NameNotFound},
	{repository.ErrOrderProductNotFound, http.StatusNotFound, middleware.NameNotFound},
	{repository.ErrReviewNotFound, http.StatusNotFound, middleware.NameNotFound},
	{repository.ErrCartNotFound, http.StatusNotFound, middleware.NameNotFound},
}

// writeError maps a service/repository failure onto the HTTP boundary.
// Handlers never recover; they forward every error here unchanged.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			middleware.RespondWithError(w, m.status, m.name, m.target.Error())
			return
		}
	}

	logger.Error("Unhandled data store error", zap.Error(err))
	middleware.RespondWithError(w, http.StatusInternalServerError, middleware.NameDataStore, err.Error())
}

// decodeError distinguishes malformed JSON from field validation failures
func decodeError(w http.ResponseWriter, err error) {
	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}
	middleware.RespondWithError(w, http.StatusBadRequest, middleware.NameValidation, "invalid request body")
}

// requesterFrom builds the ownership-check identity from the request
// context populated by the auth guard.
func requesterFrom(r *http.Request) (service.Requester, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		return service.Requester{}, false
	}
	return service.Requester{
		UserID:  userID,
		IsAdmin: middleware.GetIsAdmin(r.Context()),
	}, true
}
