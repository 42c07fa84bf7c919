package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	apperrors "botosafe.io/application/appErrors"
	"botosafe.io/application/constants"
	"botosafe.io/application/controller/dto"
	"botosafe.io/application/interfaces"
	"botosafe.io/application/repository"
	"botosafe.io/entities"
	"botosafe.io/infrastructure/auth"
	"botosafe.io/infrastructure/cryptography"
	"botosafe.io/infrastructure/logger"
	messagequeue "botosafe.io/infrastructure/message_queue"
	queue_tasks "botosafe.io/infrastructure/message_queue/tasks"
	mq_types "botosafe.io/infrastructure/message_queue/types"
	server_response "botosafe.io/infrastructure/serverResponse"
	"botosafe.io/infrastructure/validator"
	"go.mongodb.org/mongo-driver/mongo"
)

// GenerateVoteToken mints a vote authorization token for a strong-auth
// session without a fresh face scan. The ballot store still rejects a second
// ballot, so a reissued token cannot double vote.
func GenerateVoteToken(ctx *interfaces.ApplicationContext[dto.GenerateVoteTokenDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	userID := ctx.GetStringContextData("UserID")
	election, err := repository.ElectionRepo().FindByID(nil, ctx.Body.ElectionID)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if election == nil {
		apperrors.NotFoundError(ctx.Ctx, "Election not found")
		return
	}
	now := time.Now()
	if !election.Open(now) {
		apperrors.ClientError(ctx.Ctx, "This election is not open for voting", nil, nil)
		return
	}
	voted, err := repository.BallotRepo().CountDocs(nil, map[string]interface{}{
		"voterID":    userID,
		"electionID": election.ID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if voted != 0 {
		apperrors.CustomError(ctx.Ctx, "You have already voted in this election", &constants.ALREADY_VOTED)
		return
	}
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
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "Vote token issued", map[string]any{
		"voteToken": voteToken,
		"expiresIn": int(auth.VoteTokenTTL / time.Second),
	}, nil, nil)
}

// CastVote validates a vote authorization token, seals the voter's choices
// and records the ballot. The compound unique index on the ballot
// collection is the final word on one vote per voter per election.
func CastVote(ctx *interfaces.ApplicationContext[dto.CastVoteDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	claims, err := auth.DecodeVoteToken(ctx.Body.VoteToken)
	if err != nil {
		if errors.Is(err, auth.ErrVoteTokenExpired) {
			apperrors.CustomError(ctx.Ctx, "Your vote token has expired. Verify your face again to get a new one.", &constants.VOTE_TOKEN_EXPIRED)
			return
		}
		apperrors.AuthenticationError(ctx.Ctx, "Invalid vote token")
		return
	}

	election, err := repository.ElectionRepo().FindByID(nil, claims.ElectionID)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if election == nil {
		apperrors.NotFoundError(ctx.Ctx, "Election not found")
		return
	}
	now := time.Now()
	if !election.Open(now) {
		apperrors.ClientError(ctx.Ctx, "This election is not open for voting", nil, nil)
		return
	}

	choices := make([]entities.SealedChoice, 0, len(ctx.Body.Choices))
	for _, choice := range ctx.Body.Choices {
		plaintext, err := json.Marshal(choice)
		if err != nil {
			apperrors.FatalServerError(ctx.Ctx, err)
			return
		}
		sealed, err := cryptography.SealBallotData(plaintext, nil)
		if err != nil {
			apperrors.FatalServerError(ctx.Ctx, err)
			return
		}
		choices = append(choices, entities.SealedChoice{
			PositionID: choice.PositionID,
			Ciphertext: *sealed,
		})
	}

	ballot, err := repository.BallotRepo().CreateOne(nil, entities.Ballot{
		VoterID:    claims.VoterID,
		ElectionID: claims.ElectionID,
		Choices:    choices,
		CastAt:     now,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			apperrors.CustomError(ctx.Ctx, "You have already voted in this election", &constants.ALREADY_VOTED)
			return
		}
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	logger.Info("ballot recorded", logger.LoggerOptions{
		Key:  "ballotID",
		Data: ballot.ID,
	}, logger.LoggerOptions{
		Key:  "electionID",
		Data: claims.ElectionID,
	})
	sendVoteReceipt(claims.VoterID, election.Name, ballot)

	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "Your vote has been recorded", map[string]any{
		"receipt": ballot.ID,
		"castAt":  ballot.CastAt,
	}, nil, nil)
}

// sendVoteReceipt is best effort. A lost receipt email never unwinds a
// recorded ballot.
func sendVoteReceipt(voterID string, electionName string, ballot *entities.Ballot) {
	voter, err := repository.VoterRepo().FindByID(nil, voterID)
	if err != nil || voter == nil {
		logger.Error("could not load voter for vote receipt", logger.LoggerOptions{
			Key:  "voterID",
			Data: voterID,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}
	payload, err := json.Marshal(queue_tasks.EmailPayload{
		To:       voter.Email,
		Subject:  "Your vote has been recorded",
		Template: "vote_receipt",
		Opts: map[string]any{
			"FullName":     voter.FullName,
			"ElectionName": electionName,
			"CastAt":       ballot.CastAt.Format(time.RFC1123),
			"BallotID":     ballot.ID,
		},
	})
	if err != nil {
		logger.Error("could not marshal vote receipt payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}
	messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
		Name:     queue_tasks.HandleEmailDeliveryTaskName,
		Payload:  payload,
		Priority: mq_types.Medium,
	})
}
