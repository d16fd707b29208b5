package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

var hashSalt string

func init() {
	// In production, set LOG_HASH_SALT.
	hashSalt = os.Getenv("LOG_HASH_SALT")
	if hashSalt == "" {
		hashSalt = "default-salt-change-in-production"
	}
}

// HashPlatformID creates a privacy-preserving hash of a chat-platform user ID.
// This allows tracing a user's flow through the logs without exposing who they are.
func HashPlatformID(platformUserID int64) string {
	return hashValue(fmt.Sprintf("%d", platformUserID))
}

// HashAccountID creates a privacy-preserving hash of a Bexly account ID.
func HashAccountID(accountID string) string {
	return hashValue(accountID)
}

func hashValue(value string) string {
	data := value + ":" + hashSalt
	hash := sha256.Sum256([]byte(data))
	// First 8 characters are enough to correlate log lines.
	return hex.EncodeToString(hash[:])[:8]
}

// SanitizeText redacts user-provided text while keeping enough shape for debugging.
func SanitizeText(text string) string {
	if text == "" {
		return "<empty>"
	}

	words := len(strings.Fields(text))
	return fmt.Sprintf("<redacted: %d words, %d chars>", words, len(text))
}
