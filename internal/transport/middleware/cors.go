package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/carbontrack-backend/internal/config"
)

// exposedHeaders lets browsers read the CSV filename and correlation id.
const exposedHeaders = "Content-Disposition, " + RequestIDHeader

// CORS decorates responses for allowed origins and answers preflight
// requests without reaching the router. Origins are a comma-separated
// list; "*" allows any origin but the concrete origin is still echoed so
// credentials keep working.
func CORS(cfg config.CORSConfig) Middleware {
	allowAny, allowed := parseOrigins(cfg.AllowedOrigins)
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if origin := r.Header.Get("Origin"); origin != "" && (allowAny || allowed[origin]) {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Expose-Headers", exposedHeaders)
				if cfg.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
				h.Add("Vary", "Origin")
			}

			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			h.Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
			h.Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
			h.Set("Access-Control-Max-Age", maxAge)
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

func parseOrigins(list string) (bool, map[string]bool) {
	allowed := make(map[string]bool)
	for _, o := range strings.Split(list, ",") {
		o = strings.TrimSpace(o)
		switch o {
		case "":
		case "*":
			return true, nil
		default:
			allowed[o] = true
		}
	}
	return false, allowed
}
