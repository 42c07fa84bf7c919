package routev1

import (
	apperrors "botosafe.io/application/appErrors"
	"botosafe.io/application/controller"
	"botosafe.io/application/controller/dto"
	"botosafe.io/application/interfaces"
	middlewares "botosafe.io/infrastructure/middleware"
	"github.com/gin-gonic/gin"
)

func BiometricRouter(router *gin.RouterGroup) {
	biometricRouter := router.Group("/face")
	{
		biometricRouter.POST("/register", middlewares.UserAuthenticationMiddleware(false), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.RegisterFaceDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.RegisterFace(&interfaces.ApplicationContext[dto.RegisterFaceDTO]{
				Ctx:  ctx,
				Body: &body,
				Keys: appContext.Keys,
			})
		})

		biometricRouter.POST("/session", middlewares.UserAuthenticationMiddleware(false), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.FaceSessionDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.FaceSession(&interfaces.ApplicationContext[dto.FaceSessionDTO]{
				Ctx:  ctx,
				Body: &body,
				Keys: appContext.Keys,
			})
		})

		biometricRouter.POST("/verify", middlewares.UserAuthenticationMiddleware(false), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.VerifyFaceDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.VerifyFace(&interfaces.ApplicationContext[dto.VerifyFaceDTO]{
				Ctx:  ctx,
				Body: &body,
				Keys: appContext.Keys,
			})
		})
	}
}
