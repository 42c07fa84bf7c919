package auth

import "time"

// VoteTokenTTL bounds how long an authorized voter has to submit a ballot
// before re-verifying.
const VoteTokenTTL = 5 * time.Minute

// SessionTokenTTL is the lifetime of a login session established through
// face verification.
const SessionTokenTTL = time.Hour

// SessionClaimsData carries the claims for a login session token. StrongAuth
// records that the session was established with a second factor on top of
// the password.
type SessionClaimsData struct {
	UserID     string
	Email      *string
	FullName   string
	Role       string
	StrongAuth bool
	ExpiresAt  int64
	IssuedAt   int64
}

// VoteClaimsData carries the claims for a single-election vote authorization
// token.
type VoteClaimsData struct {
	VoterID    string
	ElectionID string
	ExpiresAt  int64
	IssuedAt   int64
}
