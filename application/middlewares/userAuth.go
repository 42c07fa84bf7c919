package middlewares

import (
	apperrors "botosafe.io/application/appErrors"
	"botosafe.io/application/interfaces"
	auth_usecases "botosafe.io/application/usecases/auth"
)

// UserAuthenticationMiddleware gates a route behind a valid login session.
// Routes that authorize votes additionally require the session to have been
// established with face verification.
func UserAuthenticationMiddleware(ctx *interfaces.ApplicationContext[any], authToken string, requireStrongAuth bool) (*interfaces.ApplicationContext[any], bool) {
	authResult := auth_usecases.IsUserSignedIn(authToken)

	if !authResult.IsAuthenticated {
		apperrors.AuthenticationError(ctx.Ctx, authResult.ErrorMessage)
		return nil, false
	}

	if requireStrongAuth && !authResult.StrongAuth {
		apperrors.ForbiddenError(ctx.Ctx, "complete face verification before performing this action")
		return nil, false
	}

	ctx.SetContextData("UserID", authResult.UserID)
	ctx.SetContextData("Email", authResult.Email)
	ctx.SetContextData("FullName", authResult.FullName)
	ctx.SetContextData("Role", authResult.Role)
	ctx.SetContextData("StrongAuth", authResult.StrongAuth)

	return ctx, true
}
