package routev1

import (
	apperrors "botosafe.io/application/appErrors"
	"botosafe.io/application/controller"
	"botosafe.io/application/controller/dto"
	"botosafe.io/application/interfaces"
	middlewares "botosafe.io/infrastructure/middleware"
	"github.com/gin-gonic/gin"
)

func AuthRouter(router *gin.RouterGroup) {
	authRouter := router.Group("/auth")
	{
		authRouter.POST("/register", func(ctx *gin.Context) {
			var body dto.CreateVoterDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.CreateVoter(&interfaces.ApplicationContext[dto.CreateVoterDTO]{
				Ctx:  ctx,
				Body: &body,
			})
		})

		authRouter.POST("/login", func(ctx *gin.Context) {
			var body dto.LoginDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.Login(&interfaces.ApplicationContext[dto.LoginDTO]{
				Ctx:  ctx,
				Body: &body,
			})
		})

		authRouter.POST("/otp/resend", func(ctx *gin.Context) {
			var body dto.ResendOTPDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.ResendOTP(&interfaces.ApplicationContext[dto.ResendOTPDTO]{
				Ctx:  ctx,
				Body: &body,
			})
		})

		authRouter.POST("/otp/verify", func(ctx *gin.Context) {
			var body dto.VerifyOTPDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.VerifyOTP(&interfaces.ApplicationContext[dto.VerifyOTPDTO]{
				Ctx:  ctx,
				Body: &body,
			})
		})

		authRouter.POST("/logout", middlewares.UserAuthenticationMiddleware(false), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.Logout(&interfaces.ApplicationContext[any]{
				Ctx:  ctx,
				Keys: appContext.Keys,
			})
		})
	}
}
