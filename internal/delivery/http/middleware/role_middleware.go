package middleware

import (
	"net/http"

	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/response"
)

// RequireRole admits only the listed roles. It must run after Authenticate: a request
// without claims is answered 401, a request with another role 403.
func RequireRole(roleIDs ...int) func(http.Handler) http.Handler {
	allowed := make(map[int]struct{}, len(roleIDs))
	for _, id := range roleIDs {
		allowed[id] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID, ok := GetRoleIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, i18n.MsgUnauthorized)
				return
			}
			if _, ok := allowed[roleID]; !ok {
				response.Forbidden(w, i18n.MsgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

var (
	RequireAdmin    = RequireRole(entity.RoleIDAdmin)
	RequirePatient  = RequireRole(entity.RoleIDPatient)
	RequirePharmacy = RequireRole(entity.RoleIDPharmacy)
	RequireDoctor   = RequireRole(entity.RoleIDDoctor)
)
