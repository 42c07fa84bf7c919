package dto

import (
	"testing"

	"botosafe.io/infrastructure/validator"
)

func TestVerifyFaceDTOValidation(t *testing.T) {
	embedding := []float64{0.1, 0.2}
	electionID := "election-1"

	cases := []struct {
		name    string
		payload VerifyFaceDTO
		valid   bool
	}{
		{
			"login without election",
			VerifyFaceDTO{Embedding: embedding, Purpose: "login"},
			true,
		},
		{
			"voting with election",
			VerifyFaceDTO{Embedding: embedding, Purpose: "voting", ElectionID: &electionID},
			true,
		},
		{
			"voting without election",
			VerifyFaceDTO{Embedding: embedding, Purpose: "voting"},
			false,
		},
		{
			"unknown purpose",
			VerifyFaceDTO{Embedding: embedding, Purpose: "enrollment"},
			false,
		},
		{
			"empty embedding",
			VerifyFaceDTO{Embedding: []float64{}, Purpose: "login"},
			false,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			errs := validator.ValidatorInstance.ValidateStruct(c.payload)
			if c.valid && errs != nil {
				t.Errorf("expected valid payload, got %v", *errs)
			}
			if !c.valid && errs == nil {
				t.Error("expected validation to fail")
			}
		})
	}
}

func TestFaceSessionDTOValidation(t *testing.T) {
	frames := []string{"aGVsbG8=", "d29ybGQ="}
	electionID := "election-1"

	cases := []struct {
		name    string
		payload FaceSessionDTO
		valid   bool
	}{
		{
			"enrollment clip",
			FaceSessionDTO{Frames: frames, Purpose: "enrollment"},
			true,
		},
		{
			"voting with election",
			FaceSessionDTO{Frames: frames, Purpose: "voting", ElectionID: &electionID},
			true,
		},
		{
			"voting without election",
			FaceSessionDTO{Frames: frames, Purpose: "voting"},
			false,
		},
		{
			"empty clip",
			FaceSessionDTO{Frames: []string{}, Purpose: "login"},
			false,
		},
		{
			"frame not base64",
			FaceSessionDTO{Frames: []string{"not base64!!"}, Purpose: "login"},
			false,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			errs := validator.ValidatorInstance.ValidateStruct(c.payload)
			if c.valid && errs != nil {
				t.Errorf("expected valid payload, got %v", *errs)
			}
			if !c.valid && errs == nil {
				t.Error("expected validation to fail")
			}
		})
	}
}

func TestCastVoteDTOValidation(t *testing.T) {
	cases := []struct {
		name    string
		payload CastVoteDTO
		valid   bool
	}{
		{
			"complete ballot",
			CastVoteDTO{
				VoteToken: "token",
				Choices: []VoteChoiceDTO{
					{PositionID: "president", CandidateID: "cand-1"},
				},
			},
			true,
		},
		{
			"missing token",
			CastVoteDTO{
				Choices: []VoteChoiceDTO{
					{PositionID: "president", CandidateID: "cand-1"},
				},
			},
			false,
		},
		{
			"no choices",
			CastVoteDTO{VoteToken: "token", Choices: []VoteChoiceDTO{}},
			false,
		},
		{
			"choice missing candidate",
			CastVoteDTO{
				VoteToken: "token",
				Choices: []VoteChoiceDTO{
					{PositionID: "president"},
				},
			},
			false,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			errs := validator.ValidatorInstance.ValidateStruct(c.payload)
			if c.valid && errs != nil {
				t.Errorf("expected valid payload, got %v", *errs)
			}
			if !c.valid && errs == nil {
				t.Error("expected validation to fail")
			}
		})
	}
}
