package auth_usecases

import (
	"fmt"
	"os"

	"botosafe.io/infrastructure/auth"
	"botosafe.io/infrastructure/cryptography"
	"botosafe.io/infrastructure/database/repository/cache"
	"botosafe.io/infrastructure/logger"
	"github.com/golang-jwt/jwt"
)

type UserAuthResult struct {
	IsAuthenticated bool
	UserID          string
	Email           string
	FullName        string
	Role            string
	StrongAuth      bool
	ErrorMessage    string
}

// IsUserSignedIn validates a session token, cross checks it against the
// server side session record and extracts the signed in voter's identity.
func IsUserSignedIn(authToken string) UserAuthResult {
	result := UserAuthResult{
		IsAuthenticated: false,
	}

	if authToken == "" {
		result.ErrorMessage = "missing auth token"
		return result
	}

	validAccessToken, err := auth.DecodeAuthToken(authToken)
	if err != nil {
		result.ErrorMessage = "this session has expired"
		return result
	}

	if !validAccessToken.Valid {
		result.ErrorMessage = "unauthorised access"
		return result
	}

	authTokenClaims := validAccessToken.Claims.(jwt.MapClaims)

	if authTokenClaims["iss"] != os.Getenv("JWT_ISSUER") {
		logger.Warning("attempt to access account with tampered jwt", logger.LoggerOptions{
			Key:  "token claims",
			Data: validAccessToken,
		})
		result.ErrorMessage = "unauthorised access"
		return result
	}

	if authTokenClaims["tokenType"] != "session" {
		result.ErrorMessage = "unauthorised access"
		return result
	}

	userID, _ := authTokenClaims["userID"].(string)

	// a signed out session leaves no server side record
	sessionRecord := cache.Cache.FindOne(fmt.Sprintf("%s-session", userID))
	if sessionRecord == nil {
		result.ErrorMessage = "this session has expired"
		return result
	}
	match := cryptography.CryptoHasher.VerifyHashData(*sessionRecord, authToken)
	if !match {
		result.ErrorMessage = "this session has expired"
		return result
	}

	result.IsAuthenticated = true
	result.UserID = userID
	if email, ok := authTokenClaims["email"].(string); ok {
		result.Email = email
	}
	if fullName, ok := authTokenClaims["fullName"].(string); ok {
		result.FullName = fullName
	}
	if role, ok := authTokenClaims["role"].(string); ok {
		result.Role = role
	}
	if strongAuth, ok := authTokenClaims["strongAuth"].(bool); ok {
		result.StrongAuth = strongAuth
	}

	return result
}
