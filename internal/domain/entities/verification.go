package entities

import (
	"regexp"
	"strings"
	"time"
)

// Channel represents a verification channel
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPhone Channel = "phone"
)

// CodeLength is the fixed width of a verification code
const CodeLength = 6

// CodeTTL is the default validity window for an issued code
const CodeTTL = 5 * time.Minute

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var nonDigits = regexp.MustCompile(`\D`)

// ParseChannel parses a channel string
func ParseChannel(s string) (Channel, bool) {
	switch Channel(strings.ToLower(s)) {
	case ChannelEmail:
		return ChannelEmail, true
	case ChannelPhone:
		return ChannelPhone, true
	}
	return "", false
}

// NormalizeRecipient canonicalizes a raw recipient for the given channel.
// Email addresses are trimmed and lowercased; phone numbers are reduced to
// digits with leading zeros stripped and must come out exactly 10 digits.
// Returns false when the input fails channel-specific validation.
func NormalizeRecipient(channel Channel, raw string) (string, bool) {
	switch channel {
	case ChannelEmail:
		email := strings.ToLower(strings.TrimSpace(raw))
		if !emailPattern.MatchString(email) {
			return "", false
		}
		return email, true
	case ChannelPhone:
		digits := nonDigits.ReplaceAllString(raw, "")
		digits = strings.TrimLeft(digits, "0")
		if len(digits) != 10 {
			return "", false
		}
		return digits, true
	}
	return "", false
}

// IsCodeShaped reports whether the submitted string has the exact shape of a
// verification code: CodeLength ASCII digits. Leading zeros are significant,
// codes are compared as strings, never as numbers.
func IsCodeShaped(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// VerificationRecord is the single live code record for a (channel, recipient)
// pair. The code itself is stored only as a bcrypt hash.
type VerificationRecord struct {
	Channel   Channel   `json:"channel"`
	Recipient string    `json:"recipient"`
	CodeHash  string    `json:"codeHash"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the record is logically expired at now.
func (r *VerificationRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// IssueInput represents input for issuing a verification code
type IssueInput struct {
	Recipient string `json:"recipient" binding:"required"`
}

// ValidateInput represents input for validating a submitted code
type ValidateInput struct {
	Recipient string `json:"recipient" binding:"required"`
	Code      string `json:"code" binding:"required"`
}
