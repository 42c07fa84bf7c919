package routev1

import (
	apperrors "botosafe.io/application/appErrors"
	"botosafe.io/application/controller"
	"botosafe.io/application/controller/dto"
	"botosafe.io/application/interfaces"
	middlewares "botosafe.io/infrastructure/middleware"
	"github.com/gin-gonic/gin"
)

func VoteRouter(router *gin.RouterGroup) {
	voteRouter := router.Group("/vote")
	{
		voteRouter.POST("/token", middlewares.UserAuthenticationMiddleware(true), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.GenerateVoteTokenDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.GenerateVoteToken(&interfaces.ApplicationContext[dto.GenerateVoteTokenDTO]{
				Ctx:  ctx,
				Body: &body,
				Keys: appContext.Keys,
			})
		})

		// the vote token is the credential here, no session required
		voteRouter.POST("/cast", func(ctx *gin.Context) {
			var body dto.CastVoteDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.CastVote(&interfaces.ApplicationContext[dto.CastVoteDTO]{
				Ctx:  ctx,
				Body: &body,
			})
		})
	}
}
