package web

import (
	"net/http"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/server/auth"
)

// authMiddleware derives the request principal once, before any resolver
// runs. The Authorization header carries the raw session token. An absent
// header and a token that fails verification both yield the anonymous
// principal: authentication failures never reject the request here, the
// role gates downstream decide what anonymity may do.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(common.AuthHeaderName)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		p, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
	})
}
