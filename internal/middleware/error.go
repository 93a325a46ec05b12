package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Error name constants for the closed response taxonomy. Every failure that
// leaves the HTTP boundary carries one of these names.
const (
	NameShortPassword        = "ShortPasswordError"
	NameUserExists           = "UserExistsError"
	NameProductExists        = "ProductExistsError"
	NameMissingCredentials   = "MissingCredentialsError"
	NameIncorrectCredentials = "IncorrectCredentialsError"
	NameValidation           = "ValidationError"
	NameUnauthorized         = "Unauthorized"
	NameForbidden            = "Forbidden"
	NameNotFound             = "NotFound"
	NameTooManyRequests      = "TooManyRequestsError"
	NameDataStore            = "DataStoreError"
)

// ErrorResponse is the wire shape of every error: a name from the closed
// taxonomy and a human-readable message.
type ErrorResponse struct {
	Name    string            `json:"name"`
	Message string            `json:"message"`
	Fields  []ValidationError `json:"fields,omitempty"`
}

// RespondWithError sends a {name, message} error body
func RespondWithError(w http.ResponseWriter, statusCode int, name, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Name: name, Message: message})
}

// RespondWithValidationErrors sends a ValidationError body with field details
func RespondWithValidationErrors(w http.ResponseWriter, errors []ValidationError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(ErrorResponse{
		Name:    NameValidation,
		Message: "validation failed",
		Fields:  errors,
	})
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// ErrorHandlingMiddleware catches panics and converts them to 500 errors
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("Panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithError(w, http.StatusInternalServerError, NameDataStore, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
