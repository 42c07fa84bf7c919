package auth

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
)

func setSigningKey(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SIGNING_KEY", "test-signing-key")
	t.Setenv("JWT_ISSUER", "botosafe.io")
}

func TestVoteTokenRoundTrip(t *testing.T) {
	setSigningKey(t)
	now := time.Now()

	token, err := GenerateVoteToken(VoteClaimsData{
		VoterID:    "voter-1",
		ElectionID: "election-1",
		IssuedAt:   now.Unix(),
		ExpiresAt:  now.Add(VoteTokenTTL).Unix(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := DecodeVoteToken(*token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.VoterID != "voter-1" {
		t.Errorf("expected voter id voter-1, got %q", claims.VoterID)
	}
	if claims.ElectionID != "election-1" {
		t.Errorf("expected election id election-1, got %q", claims.ElectionID)
	}
	if claims.ExpiresAt-claims.IssuedAt != int64(VoteTokenTTL/time.Second) {
		t.Errorf("expected a %v lifetime, got %d seconds", VoteTokenTTL, claims.ExpiresAt-claims.IssuedAt)
	}
}

func TestDecodeVoteTokenExpired(t *testing.T) {
	setSigningKey(t)
	now := time.Now()

	token, err := GenerateVoteToken(VoteClaimsData{
		VoterID:    "voter-1",
		ElectionID: "election-1",
		IssuedAt:   now.Add(-10 * time.Minute).Unix(),
		ExpiresAt:  now.Add(-5 * time.Minute).Unix(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := DecodeVoteToken(*token); !errors.Is(err, ErrVoteTokenExpired) {
		t.Errorf("expected ErrVoteTokenExpired, got %v", err)
	}
}

func TestDecodeVoteTokenMalformed(t *testing.T) {
	setSigningKey(t)
	now := time.Now()

	t.Run("garbage input", func(t *testing.T) {
		if _, err := DecodeVoteToken("not-a-token"); !errors.Is(err, ErrVoteTokenMalformed) {
			t.Errorf("expected ErrVoteTokenMalformed, got %v", err)
		}
	})

	t.Run("wrong signing key", func(t *testing.T) {
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"id":         "voter-1",
			"electionId": "election-1",
			"tokenType":  "vote",
			"exp":        now.Add(VoteTokenTTL).Unix(),
		}).SignedString([]byte("some-other-key"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := DecodeVoteToken(forged); !errors.Is(err, ErrVoteTokenMalformed) {
			t.Errorf("expected ErrVoteTokenMalformed, got %v", err)
		}
	})

	t.Run("session token is not a vote token", func(t *testing.T) {
		session, err := GenerateSessionToken(SessionClaimsData{
			UserID:    "voter-1",
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(SessionTokenTTL).Unix(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := DecodeVoteToken(*session); !errors.Is(err, ErrVoteTokenMalformed) {
			t.Errorf("expected ErrVoteTokenMalformed, got %v", err)
		}
	})
}

func TestDecodeVoteTokenMissingClaims(t *testing.T) {
	setSigningKey(t)

	incomplete, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":        "voter-1",
		"tokenType": "vote",
		"exp":       time.Now().Add(VoteTokenTTL).Unix(),
	}).SignedString([]byte(os.Getenv("JWT_SIGNING_KEY")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := DecodeVoteToken(incomplete); !errors.Is(err, ErrVoteTokenMissingClaims) {
		t.Errorf("expected ErrVoteTokenMissingClaims, got %v", err)
	}
}

func TestSessionTokenCarriesStrongAuth(t *testing.T) {
	setSigningKey(t)
	now := time.Now()

	token, err := GenerateSessionToken(SessionClaimsData{
		UserID:     "voter-1",
		FullName:   "Ada Lovelace",
		Role:       "voter",
		StrongAuth: true,
		IssuedAt:   now.Unix(),
		ExpiresAt:  now.Add(SessionTokenTTL).Unix(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := DecodeAuthToken(*token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims := decoded.Claims.(jwt.MapClaims)
	if claims["userID"] != "voter-1" {
		t.Errorf("expected userID voter-1, got %v", claims["userID"])
	}
	if strongAuth, _ := claims["strongAuth"].(bool); !strongAuth {
		t.Error("expected strongAuth claim to be true")
	}
	if claims["tokenType"] != "session" {
		t.Errorf("expected tokenType session, got %v", claims["tokenType"])
	}
}
