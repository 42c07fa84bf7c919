package controller

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	apperrors "botosafe.io/application/appErrors"
	"botosafe.io/application/constants"
	"botosafe.io/application/controller/dto"
	"botosafe.io/application/interfaces"
	"botosafe.io/application/repository"
	verification_usecases "botosafe.io/application/usecases/verification"
	"botosafe.io/entities"
	"botosafe.io/infrastructure/auth"
	"botosafe.io/infrastructure/biometric"
	"botosafe.io/infrastructure/logger"
	server_response "botosafe.io/infrastructure/serverResponse"
	"botosafe.io/infrastructure/validator"
	"github.com/gin-gonic/gin"
)

func faceMatcher() *biometric.Matcher {
	return biometric.NewMatcher(repository.FaceEmbeddingStore{})
}

// RegisterFace enrolls or replaces the signed in voter's face descriptor.
// Enrollment is unconditional; it never compares against a previous
// descriptor.
func RegisterFace(ctx *interfaces.ApplicationContext[dto.RegisterFaceDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	userID := ctx.GetStringContextData("UserID")
	created, err := faceMatcher().Enroll(nil, userID, ctx.Body.Embedding)
	if err != nil {
		if errors.Is(err, biometric.ErrInvalidEmbeddingFormat) {
			apperrors.ClientError(ctx.Ctx, "The face descriptor is malformed. Rescan and try again.", nil, nil)
			return
		}
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	logger.Info("face descriptor enrolled", logger.LoggerOptions{
		Key:  "voterID",
		Data: userID,
	}, logger.LoggerOptions{
		Key:  "firstEnrollment",
		Data: created,
	})
	if created {
		server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "Face registered", nil, nil, nil)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Face updated", nil, nil, nil)
}

// VerifyFace matches a freshly captured descriptor against the signed in
// voter's enrolled one. A login match upgrades the session to strong auth; a
// voting match mints a vote authorization token for the named election.
func VerifyFace(ctx *interfaces.ApplicationContext[dto.VerifyFaceDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	userID := ctx.GetStringContextData("UserID")

	result, err := faceMatcher().Match(nil, userID, ctx.Body.Embedding)
	if err != nil {
		if errors.Is(err, biometric.ErrInvalidEmbeddingFormat) {
			apperrors.ClientError(ctx.Ctx, "The face descriptor is malformed. Rescan and try again.", nil, nil)
			return
		}
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if !result.Matched {
		if result.Reason == biometric.ReasonNoEmbeddingOnFile {
			apperrors.CustomError(ctx.Ctx, "You have not registered your face yet", &constants.NO_FACE_ON_FILE)
			return
		}
		apperrors.CustomError(ctx.Ctx, "We could not recognize you. Adjust your lighting and try again.", &constants.FACE_NOT_RECOGNIZED)
		return
	}

	switch ctx.Body.Purpose {
	case "login":
		verifyFaceForLogin(ctx, userID)
	case "voting":
		verifyFaceForVoting(ctx, userID, *ctx.Body.ElectionID)
	}
}

// FaceSession runs the full liveness and matching pipeline over a clip of
// frames captured client side. Descriptors are extracted by the remote face
// model, so this is the path for clients that cannot run the model on
// device.
func FaceSession(ctx *interfaces.ApplicationContext[dto.FaceSessionDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	userID := ctx.GetStringContextData("UserID")

	frames := make([]biometric.Frame, len(ctx.Body.Frames))
	for i, encoded := range ctx.Body.Frames {
		frame, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			apperrors.ClientError(ctx.Ctx, "One of the captured frames is not valid base64", nil, nil)
			return
		}
		frames[i] = frame
	}

	electionID := ""
	if ctx.Body.Purpose == "voting" {
		election := openElection(ctx.Ctx, *ctx.Body.ElectionID)
		if election == nil {
			return
		}
		electionID = election.ID
	}

	orchestrator := verification_usecases.NewOrchestrator(
		verification_usecases.NewFrameReplay(frames), biometric.FaceService, faceMatcher())
	result, err := orchestrator.Run(requestContext(ctx.Ctx), userID,
		verification_usecases.Purpose(ctx.Body.Purpose), electionID)
	if err != nil {
		switch {
		case errors.Is(err, verification_usecases.ErrCameraUnavailable):
			apperrors.CustomError(ctx.Ctx,
				"The clip ended before the liveness challenges were completed. Record a fresh one and try again.",
				&constants.FACE_NOT_RECOGNIZED)
		case errors.Is(err, biometric.ErrFaceServiceUnavailable):
			apperrors.ExternalDependencyError(ctx.Ctx, "face model service", "503", err)
		case errors.Is(err, context.DeadlineExceeded):
			apperrors.ExternalDependencyError(ctx.Ctx, "face model service", "timeout", err)
		default:
			apperrors.FatalServerError(ctx.Ctx, err)
		}
		return
	}
	if !result.Verified {
		switch result.Reason {
		case biometric.ReasonNoEmbeddingOnFile:
			apperrors.CustomError(ctx.Ctx, "You have not registered your face yet", &constants.NO_FACE_ON_FILE)
		case biometric.ReasonNoFaceDetected:
			apperrors.ClientError(ctx.Ctx, "We could not find a face in the captured frames. Adjust your lighting and try again.", nil, nil)
		default:
			apperrors.CustomError(ctx.Ctx, "We could not recognize you. Adjust your lighting and try again.", &constants.FACE_NOT_RECOGNIZED)
		}
		return
	}

	switch verification_usecases.Purpose(ctx.Body.Purpose) {
	case verification_usecases.PurposeEnrollment:
		if result.Created {
			server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "Face registered", nil, nil, nil)
			return
		}
		server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Face updated", nil, nil, nil)
	case verification_usecases.PurposeLogin:
		// the token minted inside the session run carries only the voter id;
		// the web session needs the full claim set plus a revocation record,
		// so the cookie credential comes from establishSession
		if !upgradeSessionToStrongAuth(ctx.Ctx, userID) {
			return
		}
		server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Welcome back!", map[string]any{
			"matched": true,
		}, nil, nil)
	case verification_usecases.PurposeVoting:
		server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "You are cleared to vote", map[string]any{
			"matched":   true,
			"voteToken": result.Token,
		}, nil, nil)
	}
}

func verifyFaceForLogin(ctx *interfaces.ApplicationContext[dto.VerifyFaceDTO], userID string) {
	if !upgradeSessionToStrongAuth(ctx.Ctx, userID) {
		return
	}
	// the credential travels in the cookie only
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Welcome back!", map[string]any{
		"matched": true,
	}, nil, nil)
}

func verifyFaceForVoting(ctx *interfaces.ApplicationContext[dto.VerifyFaceDTO], userID string, electionID string) {
	election := openElection(ctx.Ctx, electionID)
	if election == nil {
		return
	}
	now := time.Now()
	voteToken, err := auth.GenerateVoteToken(auth.VoteClaimsData{
		VoterID:    userID,
		ElectionID: election.ID,
		IssuedAt:   now.Unix(),
		ExpiresAt:  now.Add(auth.VoteTokenTTL).Unix(),
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "You are cleared to vote", map[string]any{
		"matched":   true,
		"voteToken": voteToken,
	}, nil, nil)
}

// openElection loads the election and confirms it is accepting votes. It
// responds on failure and returns nil.
func openElection(ctx interface{}, electionID string) *entities.Election {
	election, err := repository.ElectionRepo().FindByID(nil, electionID)
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil
	}
	if election == nil {
		apperrors.NotFoundError(ctx, "Election not found")
		return nil
	}
	if !election.Open(time.Now()) {
		apperrors.ClientError(ctx, "This election is not open for voting", nil, nil)
		return nil
	}
	return election
}

// upgradeSessionToStrongAuth reissues the session credential with the
// strongAuth claim and sets it as the session cookie. It responds on failure
// and returns false.
func upgradeSessionToStrongAuth(ctx interface{}, userID string) bool {
	voter, err := repository.VoterRepo().FindByID(nil, userID)
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return false
	}
	if voter == nil {
		apperrors.NotFoundError(ctx, "Account not found")
		return false
	}
	token, ok := establishSession(ctx, voter, true)
	if !ok {
		return false
	}
	if ginCtx, isGin := ctx.(*gin.Context); isGin {
		ginCtx.SetCookie("session", *token, int(auth.SessionTokenTTL/time.Second), "/", "", true, true)
	}
	return true
}

func requestContext(ctx interface{}) context.Context {
	if c, ok := ctx.(context.Context); ok {
		return c
	}
	return context.Background()
}
