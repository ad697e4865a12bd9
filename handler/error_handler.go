package handler

import (
	"net/http"

	"edu-platform-api/common"
)

// ErrorHandlingMiddleware adapts AppError-returning handlers to http.Handler,
// sending whatever error bubbles up as the response.
func ErrorHandlingMiddleware(next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := next(w, r); err != nil {
			err.Send(w)
		}
	}
}
