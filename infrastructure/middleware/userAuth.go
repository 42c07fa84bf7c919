package middlewares

import (
	"strings"

	"botosafe.io/application/interfaces"
	"botosafe.io/application/middlewares"
	"github.com/gin-gonic/gin"
)

// UserAuthenticationMiddleware extracts the session token from the
// Authorization header or the session cookie and validates it before the
// controller runs. Pass requireStrongAuth for routes that must only admit
// face verified sessions.
func UserAuthenticationMiddleware(requireStrongAuth bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authToken := strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
		if authToken == "" {
			if cookie, err := ctx.Cookie("session"); err == nil {
				authToken = cookie
			}
		}
		appContext, next := middlewares.UserAuthenticationMiddleware(&interfaces.ApplicationContext[any]{
			Ctx:    ctx,
			Keys:   ctx.Keys,
			Header: ctx.Request.Header,
		}, authToken, requireStrongAuth)
		if next {
			ctx.Set("AppContext", appContext)
			ctx.Next()
		}
	}
}
