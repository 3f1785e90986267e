package utils

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Single-use tokens for email verification and password reset. Tokens live in
// the token Redis DB under a purpose-scoped key and are deleted on first use.

const (
	VerifyEmailPurpose   = "verify-email"
	PasswordResetPurpose = "password-reset"

	verifyEmailTTL   = 48 * time.Hour
	passwordResetTTL = 30 * time.Minute
)

// generateSecureToken returns a base32 random string (without padding) of the given length.
func generateSecureToken(length int) (string, error) {
	numBytes := (length*5 + 7) / 8
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	token := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(token) > length {
		token = token[:length]
	}
	return token, nil
}

func tokenKey(purpose, token string) string {
	return fmt.Sprintf("token:%s:%s", purpose, token)
}

// IssueToken generates a token bound to userID and stores it with the purpose's TTL.
func IssueToken(purpose, userID string) (string, error) {
	token, err := generateSecureToken(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	ttl := verifyEmailTTL
	if purpose == PasswordResetPurpose {
		ttl = passwordResetTTL
	}

	ctx := context.Background()
	client := GetTokenCacheClient()
	if err := client.Set(ctx, tokenKey(purpose, token), userID, ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store %s token: %w", purpose, err)
	}
	return token, nil
}

// ConsumeToken resolves a token to its userID and deletes it. A missing or
// expired token returns an error.
func ConsumeToken(purpose, token string) (string, error) {
	ctx := context.Background()
	client := GetTokenCacheClient()

	key := tokenKey(purpose, token)
	userID, err := client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", fmt.Errorf("token not found or expired")
		}
		return "", fmt.Errorf("failed to retrieve token: %w", err)
	}

	if err := client.Del(ctx, key).Err(); err != nil {
		GetLogger().Sugar().Warnf("failed to delete %s token after use: %v", purpose, err)
	}
	return userID, nil
}
