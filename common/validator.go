package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateAndDecode decodes the request body into payload and validates it
// against its struct tags. On failure it writes a 400 with the offending
// fields and returns false; the caller just returns.
func ValidateAndDecode(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		NewAppError(http.StatusBadRequest, "Malformed request body", err).Send(w)
		return false
	}

	if err := validate.Struct(payload); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			NewAppError(http.StatusBadRequest, "Invalid request", err).Send(w)
			return false
		}

		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field()))
		}
		NewAppError(http.StatusBadRequest,
			"Validation failed on: "+strings.Join(fields, ", "), err).Send(w)
		return false
	}

	return true
}
