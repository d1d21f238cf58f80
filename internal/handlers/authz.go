package handlers

import (
	"net/http"

	"github.com/crucial707/tagwatch/internal/middleware"
	"github.com/crucial707/tagwatch/internal/policy"
)

// allow is the single authorization checkpoint for handlers: it reads the
// caller identity and checks the policy BEFORE any store access. On denial
// it writes the 403 body and returns ok=false.
func allow(w http.ResponseWriter, r *http.Request, action policy.Action) (middleware.Identity, bool) {
	ident := middleware.IdentityFrom(r.Context())
	if !policy.Authorize(ident.Role, action) {
		JSONError(w, ErrMessageForbidden, http.StatusForbidden)
		return ident, false
	}
	return ident, true
}
