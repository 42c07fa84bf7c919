package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"time"

	"botosafe.io/infrastructure/cryptography"
	"botosafe.io/infrastructure/database/repository/cache"
	"botosafe.io/infrastructure/logger"
	"github.com/golang-jwt/jwt"
)

const otpChars = "1234567890"

var (
	ErrVoteTokenExpired       = errors.New("vote token has expired")
	ErrVoteTokenMalformed     = errors.New("vote token is malformed")
	ErrVoteTokenMissingClaims = errors.New("vote token is missing required claims")
)

func GenerateOTP(length int, channel string) (*string, error) {
	var otp string
	if os.Getenv("ENV") == "staging" || os.Getenv("ENV") == "development" {
		otp = "000000"
	} else {
		buffer := make([]byte, length)
		_, err := rand.Read(buffer)
		if err != nil {
			return nil, err
		}
		otpCharsLength := len(otpChars)
		for i := 0; i < length; i++ {
			buffer[i] = otpChars[int(buffer[i])%otpCharsLength]
		}
		otp = string(buffer)
	}
	otpSaved := saveOTP(channel, otp)
	if !otpSaved {
		return nil, errors.New("could not save otp")
	}
	return &otp, nil
}

func saveOTP(channel string, otp string) bool {
	hashedOTP, err := cryptography.CryptoHasher.HashString(otp, nil)
	if err != nil {
		logger.Error("auth module error - error while saving otp", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return false
	}
	return cache.Cache.CreateEntry(fmt.Sprintf("%s-otp", channel), string(hashedOTP), 10*time.Minute) // otp is valid for 10 mins
}

const maxOTPAttempts = 5

func VerifyOTP(key string, otp string) (string, bool) {
	data := cache.Cache.FindOne(fmt.Sprintf("%s-otp", key))
	if data == nil {
		logger.Info(fmt.Sprintf("%s otp not found", key))
		return "this otp has expired", false
	}
	success := cryptography.CryptoHasher.VerifyHashData(*data, otp)
	if !success {
		attempts := cache.Cache.IncrementField(fmt.Sprintf("%s-otp-attempts", key), 1)
		if attempts >= maxOTPAttempts {
			cache.Cache.DeleteOne(fmt.Sprintf("%s-otp", key))
			cache.Cache.DeleteOne(fmt.Sprintf("%s-otp-attempts", key))
			return "too many wrong attempts. request a new otp", false
		}
		return "wrong otp provided", false
	}
	cache.Cache.DeleteOne(fmt.Sprintf("%s-otp", key))
	cache.Cache.DeleteOne(fmt.Sprintf("%s-otp-attempts", key))
	return "", true
}

// GenerateSessionToken signs a login session token. Expiry and issue times
// come from the caller so the session layer owns the clock.
func GenerateSessionToken(claimsData SessionClaimsData) (*string, error) {
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":        os.Getenv("JWT_ISSUER"),
		"userID":     claimsData.UserID,
		"email":      claimsData.Email,
		"fullName":   claimsData.FullName,
		"role":       claimsData.Role,
		"strongAuth": claimsData.StrongAuth,
		"iat":        claimsData.IssuedAt,
		"exp":        claimsData.ExpiresAt,
		"tokenType":  "session",
	}).SignedString([]byte(os.Getenv("JWT_SIGNING_KEY")))
	if err != nil {
		return nil, err
	}
	return &tokenString, nil
}

// GenerateVoteToken signs a short lived token authorizing exactly one voter
// to vote in exactly one election. It proves authorization only; ballot
// uniqueness is enforced at submission.
func GenerateVoteToken(claimsData VoteClaimsData) (*string, error) {
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":        os.Getenv("JWT_ISSUER"),
		"id":         claimsData.VoterID,
		"electionId": claimsData.ElectionID,
		"iat":        claimsData.IssuedAt,
		"exp":        claimsData.ExpiresAt,
		"tokenType":  "vote",
	}).SignedString([]byte(os.Getenv("JWT_SIGNING_KEY")))
	if err != nil {
		return nil, err
	}
	return &tokenString, nil
}

func DecodeAuthToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SIGNING_KEY")), nil
	})
	if err != nil {
		if err == jwt.ErrSignatureInvalid {
			err = errors.New("invalid token signature used")
			return nil, err
		}
		logger.Error("error decoding jwt", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	if !token.Valid {
		err := errors.New("invalid token used")
		logger.Error(err.Error())
		return nil, err
	}
	return token, nil
}

// DecodeVoteToken verifies a vote authorization token and returns its
// claims. Expired, tampered and malformed tokens map to distinct errors so
// the vote endpoint can tell the voter to re-verify rather than reject them
// outright.
func DecodeVoteToken(tokenString string) (*VoteClaimsData, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(os.Getenv("JWT_SIGNING_KEY")), nil
	})
	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrVoteTokenExpired
		}
		return nil, ErrVoteTokenMalformed
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrVoteTokenMalformed
	}
	if tokenType, _ := claims["tokenType"].(string); tokenType != "vote" {
		return nil, ErrVoteTokenMalformed
	}
	voterID, _ := claims["id"].(string)
	electionID, _ := claims["electionId"].(string)
	if voterID == "" || electionID == "" {
		return nil, ErrVoteTokenMissingClaims
	}
	decoded := VoteClaimsData{
		VoterID:    voterID,
		ElectionID: electionID,
	}
	if exp, ok := claims["exp"].(float64); ok {
		decoded.ExpiresAt = int64(exp)
	}
	if iat, ok := claims["iat"].(float64); ok {
		decoded.IssuedAt = int64(iat)
	}
	return &decoded, nil
}

func SignOutUser(id string, reason string) {
	logger.Info("user signout initiated", logger.LoggerOptions{
		Key:  "reason",
		Data: reason,
	})
	deleted := cache.Cache.DeleteOne(id)
	if !deleted {
		logger.Error("failed to sign out user", logger.LoggerOptions{
			Key:  "id",
			Data: id,
		})
	}
}
