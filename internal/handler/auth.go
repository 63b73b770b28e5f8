package handler

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/prasetya/loan-tracker/pkg/response"

	"github.com/gorilla/mux"
)

// AuthMiddleware guards loan routes with a shared secret. Callers present
// hex(sha256(api key)) in the Authorization header; the comparison is
// constant-time. Anything else gets a 403 with an empty body.
func AuthMiddleware(apiKey string) mux.MiddlewareFunc {
	sum := sha256.Sum256([]byte(apiKey))
	expected := []byte(hex.EncodeToString(sum[:]))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := []byte(r.Header.Get("Authorization"))
			if subtle.ConstantTimeCompare(presented, expected) != 1 {
				response.Forbidden(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
