// middleware/logging.go
package middleware

import (
	"log"
	"net/http"
	"time"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs every request with the acting user when a JWT is present.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		userID := "-"
		if claims := GetClaims(r); claims != nil {
			userID = claims.UserID
		}
		log.Printf("[HTTP] %s %s status=%d user=%s ip=%s took=%s",
			r.Method, r.URL.Path, rec.status, userID, GetClientIP(r), time.Since(start))
	})
}
