package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "botosafe.io/application/appErrors"
	"botosafe.io/application/constants"
	"botosafe.io/application/controller/dto"
	"botosafe.io/application/interfaces"
	"botosafe.io/application/repository"
	"botosafe.io/entities"
	"botosafe.io/infrastructure/auth"
	"botosafe.io/infrastructure/cryptography"
	"botosafe.io/infrastructure/database/repository/cache"
	"botosafe.io/infrastructure/logger"
	messagequeue "botosafe.io/infrastructure/message_queue"
	queue_tasks "botosafe.io/infrastructure/message_queue/tasks"
	mq_types "botosafe.io/infrastructure/message_queue/types"
	server_response "botosafe.io/infrastructure/serverResponse"
	"botosafe.io/infrastructure/validator"
)

func CreateVoter(ctx *interfaces.ApplicationContext[dto.CreateVoterDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	email := strings.ToLower(ctx.Body.Email)
	existing, err := repository.VoterRepo().FindOneByFilter(nil, map[string]interface{}{
		"email": email,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if existing != nil {
		apperrors.EntityAlreadyExistsError(ctx.Ctx, "An account with this email already exists")
		return
	}
	passwordHash, err := cryptography.CryptoHasher.HashString(ctx.Body.Password, nil)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	voter, err := repository.VoterRepo().CreateOne(nil, entities.Voter{
		FullName: ctx.Body.FullName,
		Email:    email,
		Password: string(passwordHash),
		Role:     "voter",
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	logger.Info("new voter registered", logger.LoggerOptions{
		Key:  "voterID",
		Data: voter.ID,
	})
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated,
		"Account created. You can sign in once an election officer approves your registration.", nil, nil, nil)
}

func Login(ctx *interfaces.ApplicationContext[dto.LoginDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	email := strings.ToLower(ctx.Body.Email)
	voter, err := repository.VoterRepo().FindOneByFilter(nil, map[string]interface{}{
		"email": email,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if voter == nil || !cryptography.CryptoHasher.VerifyHashData(voter.Password, ctx.Body.Password) {
		apperrors.AuthenticationError(ctx.Ctx, "Invalid email or password")
		return
	}
	if !voter.Approved || voter.Deactivated {
		apperrors.ForbiddenError(ctx.Ctx, fmt.Sprintf("Your account is not eligible to sign in. Contact %s if you believe this is a mistake.", constants.SUPPORT_EMAIL))
		return
	}

	if !sendLoginOTP(ctx.Ctx, voter) {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK,
		"A verification code has been sent to your email", nil, nil, &constants.OTP_VERIFICATION_REQUIRED)
}

func ResendOTP(ctx *interfaces.ApplicationContext[dto.ResendOTPDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	voter, err := repository.VoterRepo().FindOneByFilter(nil, map[string]interface{}{
		"email": strings.ToLower(ctx.Body.Email),
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	// do not leak which emails have accounts
	if voter != nil && voter.Approved && !voter.Deactivated {
		if !sendLoginOTP(ctx.Ctx, voter) {
			return
		}
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK,
		"If this email has an account, a verification code has been sent to it", nil, nil, nil)
}

func VerifyOTP(ctx *interfaces.ApplicationContext[dto.VerifyOTPDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	email := strings.ToLower(ctx.Body.Email)
	msg, success := auth.VerifyOTP(email, ctx.Body.OTP)
	if !success {
		apperrors.AuthenticationError(ctx.Ctx, msg)
		return
	}
	voter, err := repository.VoterRepo().FindOneByFilter(nil, map[string]interface{}{
		"email": email,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if voter == nil {
		apperrors.NotFoundError(ctx.Ctx, "Account not found")
		return
	}

	token, ok := establishSession(ctx.Ctx, voter, false)
	if !ok {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK,
		"Almost there. Complete face verification to finish signing in.", map[string]any{
			"token": token,
		}, nil, &constants.FACE_VERIFICATION_REQUIRED)
}

func Logout(ctx *interfaces.ApplicationContext[any]) {
	auth.SignOutUser(fmt.Sprintf("%s-session", ctx.GetStringContextData("UserID")), "user requested signout")
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Signed out", nil, nil, nil)
}

func sendLoginOTP(ctx interface{}, voter *entities.Voter) bool {
	otp, err := auth.GenerateOTP(6, voter.Email)
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return false
	}
	payload, err := json.Marshal(queue_tasks.EmailPayload{
		To:       voter.Email,
		Subject:  "Your BotoSafe verification code",
		Template: "otp",
		Opts: map[string]any{
			"FullName": voter.FullName,
			"OTP":      *otp,
		},
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return false
	}
	messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
		Name:     queue_tasks.HandleEmailDeliveryTaskName,
		Payload:  payload,
		Priority: mq_types.High,
	})
	return true
}

// establishSession mints a session token and records its hash server side so
// signout can revoke it before expiry.
func establishSession(ctx interface{}, voter *entities.Voter, strongAuth bool) (*string, bool) {
	now := time.Now()
	token, err := auth.GenerateSessionToken(auth.SessionClaimsData{
		UserID:     voter.ID,
		Email:      &voter.Email,
		FullName:   voter.FullName,
		Role:       voter.Role,
		StrongAuth: strongAuth,
		IssuedAt:   now.Unix(),
		ExpiresAt:  now.Add(auth.SessionTokenTTL).Unix(),
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, false
	}
	tokenHash, err := cryptography.CryptoHasher.HashString(*token, nil)
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, false
	}
	saved := cache.Cache.CreateEntry(fmt.Sprintf("%s-session", voter.ID), string(tokenHash), auth.SessionTokenTTL)
	if !saved {
		apperrors.FatalServerError(ctx, fmt.Errorf("could not persist session record for %s", voter.ID))
		return nil, false
	}
	return token, true
}
