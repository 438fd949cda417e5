package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/utils"

	"github.com/rs/zerolog"
)

// Recoverer turns a handler panic into a 500 with the request and stack
// logged, so one bad request cannot take the process down.
func Recoverer(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					l.Error().
						Interface("panic", rec).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Bytes("stack", debug.Stack()).
						Msg("request panicked")
					utils.Error(w, http.StatusInternalServerError, "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
