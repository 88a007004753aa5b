package cryptox

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// ApprovalTokenLen is the length of tokens produced by NewApprovalToken.
const ApprovalTokenLen = blake2b.Size256 * 2

// NewApprovalToken derives an unguessable approval token for a PI. The email
// is hashed under a fresh random key so two tokens for the same PI differ.
func NewApprovalToken(email string) (string, error) {
	key := make([]byte, blake2b.Size256)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate approval salt: %w", err)
	}

	h, err := blake2b.New256(key)
	if err != nil {
		return "", fmt.Errorf("failed to init blake2b: %w", err)
	}
	h.Write([]byte(strings.ToLower(strings.TrimSpace(email))))

	return hex.EncodeToString(h.Sum(nil)), nil
}

// ValidApprovalToken reports whether s has the shape of an approval token.
func ValidApprovalToken(s string) bool {
	if len(s) != ApprovalTokenLen {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
