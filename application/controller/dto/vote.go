package dto

type GenerateVoteTokenDTO struct {
	ElectionID string `json:"electionId" validate:"required"`
}

type VoteChoiceDTO struct {
	PositionID  string `json:"positionId" validate:"required"`
	CandidateID string `json:"candidateId" validate:"required"`
}

type CastVoteDTO struct {
	VoteToken string          `json:"voteToken" validate:"required"`
	Choices   []VoteChoiceDTO `json:"choices" validate:"required,min=1,dive"`
}
