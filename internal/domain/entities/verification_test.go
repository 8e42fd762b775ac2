package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseChannel(t *testing.T) {
	ch, ok := ParseChannel("email")
	assert.True(t, ok)
	assert.Equal(t, ChannelEmail, ch)

	ch, ok = ParseChannel("PHONE")
	assert.True(t, ok)
	assert.Equal(t, ChannelPhone, ch)

	_, ok = ParseChannel("fax")
	assert.False(t, ok)
}

func TestNormalizeRecipient_Email(t *testing.T) {
	got, ok := NormalizeRecipient(ChannelEmail, "  User@Example.COM ")
	assert.True(t, ok)
	assert.Equal(t, "user@example.com", got)

	for _, bad := range []string{"", "not-an-email", "a@b", "@example.com", "user@"} {
		_, ok := NormalizeRecipient(ChannelEmail, bad)
		assert.False(t, ok, "expected %q to be rejected", bad)
	}
}

func TestNormalizeRecipient_Phone(t *testing.T) {
	a, ok := NormalizeRecipient(ChannelPhone, "098-765-43210")
	assert.True(t, ok)
	b, ok2 := NormalizeRecipient(ChannelPhone, "9876543210")
	assert.True(t, ok2)
	assert.Equal(t, a, b, "formatted and bare numbers must normalize to the same key")
	assert.Equal(t, "9876543210", a)

	got, ok := NormalizeRecipient(ChannelPhone, "(987) 654-3210")
	assert.True(t, ok)
	assert.Equal(t, "9876543210", got)

	for _, bad := range []string{"", "12345", "98765432101", "000000000"} {
		_, ok := NormalizeRecipient(ChannelPhone, bad)
		assert.False(t, ok, "expected %q to be rejected", bad)
	}
}

func TestIsCodeShaped(t *testing.T) {
	assert.True(t, IsCodeShaped("000123"))
	assert.True(t, IsCodeShaped("999999"))
	assert.False(t, IsCodeShaped("12345"))
	assert.False(t, IsCodeShaped("1234567"))
	assert.False(t, IsCodeShaped("12a456"))
	assert.False(t, IsCodeShaped(""))
}

func TestVerificationRecord_Expired(t *testing.T) {
	now := time.Now()
	rec := &VerificationRecord{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, rec.Expired(now))
	assert.True(t, rec.Expired(now.Add(2*time.Minute)))
}

func TestVerificationStage_CanAdvanceTo(t *testing.T) {
	assert.True(t, StageUnverifiedEmail.CanAdvanceTo(StageEmailVerified))
	assert.True(t, StageUnverifiedEmail.CanAdvanceTo(StageFullyVerified))
	assert.True(t, StageEmailVerified.CanAdvanceTo(StageFullyVerified))

	// never regress
	assert.False(t, StageFullyVerified.CanAdvanceTo(StageEmailVerified))
	assert.False(t, StageEmailVerified.CanAdvanceTo(StageUnverifiedEmail))
	assert.False(t, StageEmailVerified.CanAdvanceTo(StageEmailVerified))
}
