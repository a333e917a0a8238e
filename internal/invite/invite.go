// Package invite generates group invite codes and renders them as QR codes.
package invite

import (
	"context"
	crand "crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	// CodeLength is the length of generated invite codes.
	CodeLength = 6

	// CodeChars are the characters used for invite codes (excluding ambiguous chars).
	CodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// maxAttempts bounds the collision-check loop.
	maxAttempts = 20

	qrSize = 256
)

// ErrExhausted is returned when no unused code was found within maxAttempts.
var ErrExhausted = errors.New("could not generate a unique invite code")

// Checker reports whether a code is already in use.
type Checker interface {
	InviteCodeExists(ctx context.Context, code string) (bool, error)
}

// Generator produces collision-checked invite codes.
type Generator struct {
	checker Checker
	random  func() (string, error)
}

// NewGenerator creates a Generator that checks candidates against checker.
func NewGenerator(checker Checker) *Generator {
	return &Generator{checker: checker, random: GenerateCode}
}

// Generate returns a code no existing group uses.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		code, err := g.random()
		if err != nil {
			return "", err
		}
		exists, err := g.checker.InviteCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check invite code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrExhausted
}

// GenerateCode creates a random invite code.
func GenerateCode() (string, error) {
	code := make([]byte, CodeLength)
	max := big.NewInt(int64(len(CodeChars)))
	for i := range code {
		n, err := crand.Int(crand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read randomness: %w", err)
		}
		code[i] = CodeChars[n.Int64()]
	}
	return string(code), nil
}

// Normalize canonicalizes user-typed codes for comparison.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// JoinURL builds the link encoded in invite QR codes.
func JoinURL(baseURL, code string) string {
	return strings.TrimRight(baseURL, "/") + "/join?code=" + url.QueryEscape(Normalize(code))
}

// QRCode renders the join link for code as a PNG.
func QRCode(baseURL, code string) ([]byte, error) {
	png, err := qrcode.Encode(JoinURL(baseURL, code), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}
