package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gharsapp/ghars-backend/internal/metrics"
	"github.com/gharsapp/ghars-backend/internal/model"
	"github.com/gharsapp/ghars-backend/internal/response"
	"github.com/gharsapp/ghars-backend/internal/service"
)

// RequirePermissions checks that the admin claims carry every listed
// permission (logical AND — there is no OR composition). The decision is
// made entirely from the token; stored permission changes apply only after
// the admin logs in again.
//
// Unknown permission names are a programming error and panic at route
// registration time rather than silently denying forever.
func RequirePermissions(perms ...model.Permission) gin.HandlerFunc {
	for _, p := range perms {
		if !model.ValidPermission(string(p)) {
			panic("rbac: unknown permission " + string(p))
		}
	}

	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if err := service.Authorize(claims, model.RoleAdmin, perms...); err != nil {
			var pe *service.PermissionError
			if errors.As(err, &pe) {
				metrics.PermissionDenialsTotal.WithLabelValues(string(pe.Missing)).Inc()
				response.AbortFailWithDetail(c, http.StatusForbidden, response.ErrPermissionDenied,
					"Requires: "+string(pe.Missing))
				return
			}
			metrics.PermissionDenialsTotal.WithLabelValues("role").Inc()
			response.AbortFail(c, http.StatusForbidden, response.ErrAdminAccessOnly)
			return
		}

		c.Next()
	}
}
