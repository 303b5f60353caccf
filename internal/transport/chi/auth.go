package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/johnleydelgado/legacy-app-sub005/internal/logger"
)

// Health checks and metric scrapes stay reachable without a key.
var publicPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

const bearerChallenge = `Bearer realm="searchd"`

// authFailure is a rejected request: the client message and the
// RFC 6750 error attribute for WWW-Authenticate.
type authFailure struct {
	message string
	errAttr string
}

var (
	errMissingCredentials = authFailure{message: "missing api key"}
	errWrongScheme        = authFailure{message: "authorization must use the Bearer scheme", errAttr: "invalid_request"}
	errUnknownKey         = authFailure{message: "invalid api key", errAttr: "invalid_token"}
)

// BearerAuthMiddleware guards the search API with static API keys sent as
// "Authorization: Bearer <key>". The scheme is case-insensitive. Empty key
// lists disable auth.
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	var keys [][]byte
	for _, k := range apiKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, []byte(k))
		}
	}

	return func(next http.Handler) http.Handler {
		if len(keys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			if fail, ok := authenticate(r.Header.Get("Authorization"), keys); !ok {
				logger.FromContext(r.Context()).Debug("request rejected",
					zap.String("path", r.URL.Path),
					zap.String("reason", fail.message),
				)
				challenge := bearerChallenge
				if fail.errAttr != "" {
					challenge += `, error="` + fail.errAttr + `"`
				}
				w.Header().Set("WWW-Authenticate", challenge)
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, fail.message)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func authenticate(header string, keys [][]byte) (authFailure, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return errMissingCredentials, false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return errWrongScheme, false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return errMissingCredentials, false
	}

	// Compare against every key so timing does not reveal which one matched.
	matched := 0
	for _, k := range keys {
		matched |= subtle.ConstantTimeCompare([]byte(token), k)
	}
	if matched != 1 {
		return errUnknownKey, false
	}
	return authFailure{}, true
}
