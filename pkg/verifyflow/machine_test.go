package verifyflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendCode(t *testing.T, m *Machine, recipient string) {
	t.Helper()
	require.Equal(t, EffectIssueCode, m.SubmitRecipient(recipient))
	require.Equal(t, StateCodeSent, m.State())
}

func TestMachine_HappyPathTypedEntry(t *testing.T) {
	m := NewMachine(ChannelEmail)
	assert.Equal(t, StateCollectingRecipient, m.State())

	sendCode(t, m, "a@b.com")
	assert.Equal(t, "a@b.com", m.Recipient())
	assert.Equal(t, ResendCooldownSeconds, m.CooldownRemaining())

	for i, d := range []byte("00012") {
		assert.Equal(t, EffectNone, m.TypeDigit(d))
		assert.Equal(t, i+1, m.Cursor())
	}
	// typing the final digit auto-submits
	assert.Equal(t, EffectSubmitCode, m.TypeDigit('3'))
	assert.Equal(t, StateSubmitting, m.State())
	assert.Equal(t, "000123", m.Code())

	assert.Equal(t, EffectAdvanceStage, m.SubmitSucceeded())
	assert.Equal(t, StateVerified, m.State())
}

func TestMachine_PasteAutoSubmits(t *testing.T) {
	m := NewMachine(ChannelPhone)
	sendCode(t, m, "9876543210")

	assert.Equal(t, EffectSubmitCode, m.Paste("000123"))
	assert.Equal(t, StateSubmitting, m.State())
	assert.Equal(t, "000123", m.Code())
}

func TestMachine_PasteRejectsPartialOrNonDigit(t *testing.T) {
	m := NewMachine(ChannelEmail)
	sendCode(t, m, "a@b.com")

	assert.Equal(t, EffectNone, m.Paste("123"))
	assert.Equal(t, EffectNone, m.Paste("12a456"))
	assert.Equal(t, EffectNone, m.Paste("1234567"))
	assert.Equal(t, StateCodeSent, m.State())
}

func TestMachine_SingleShotSubmitGuard(t *testing.T) {
	m := NewMachine(ChannelEmail)
	sendCode(t, m, "a@b.com")

	require.Equal(t, EffectSubmitCode, m.Paste("000123"))

	// rapid paste + manual submit must not fire a second submission
	assert.Equal(t, EffectNone, m.PressSubmit())
	assert.Equal(t, EffectNone, m.Paste("000123"))
	assert.Equal(t, EffectNone, m.TypeDigit('9'))
	assert.Equal(t, StateSubmitting, m.State())
}

func TestMachine_FailureClearsInputAndReturnsFocus(t *testing.T) {
	m := NewMachine(ChannelEmail)
	sendCode(t, m, "a@b.com")

	require.Equal(t, EffectSubmitCode, m.Paste("000123"))
	m.SubmitFailed(FailureMismatch)

	assert.Equal(t, StateCodeSent, m.State())
	assert.Equal(t, "", m.Code())
	assert.Equal(t, 0, m.Cursor())
	f, ok := m.LastFailure()
	assert.True(t, ok)
	assert.Equal(t, FailureMismatch, f)

	// a fresh attempt is possible right away
	assert.Equal(t, EffectSubmitCode, m.Paste("999999"))
}

func TestMachine_Backspace(t *testing.T) {
	m := NewMachine(ChannelEmail)
	sendCode(t, m, "a@b.com")

	m.TypeDigit('1')
	m.TypeDigit('2')
	assert.Equal(t, 2, m.Cursor())

	// focused slot is empty: retreat without clearing
	m.Backspace()
	assert.Equal(t, 1, m.Cursor())
	assert.Equal(t, "12", m.Code())

	// focused slot holds a digit: clear it in place
	m.Backspace()
	assert.Equal(t, 1, m.Cursor())
	assert.Equal(t, "1", m.Code())
	m.Backspace()
	m.Backspace()
	assert.Equal(t, "", m.Code())
	m.Backspace() // already at the first empty slot, no-op
	assert.Equal(t, 0, m.Cursor())
}

func TestMachine_ResendCooldown(t *testing.T) {
	m := NewMachine(ChannelPhone)
	sendCode(t, m, "9876543210")

	assert.False(t, m.CanResend())
	assert.Equal(t, EffectNone, m.PressResend())

	for i := 0; i < ResendCooldownSeconds; i++ {
		m.Tick()
	}
	assert.Equal(t, 0, m.CooldownRemaining())
	assert.True(t, m.CanResend())

	// extra ticks do not underflow
	m.Tick()
	assert.Equal(t, 0, m.CooldownRemaining())

	assert.Equal(t, EffectIssueCode, m.PressResend())
	assert.Equal(t, ResendCooldownSeconds, m.CooldownRemaining())
	assert.False(t, m.CanResend())
}

func TestMachine_ResendClearsEnteredDigits(t *testing.T) {
	m := NewMachine(ChannelEmail)
	sendCode(t, m, "a@b.com")
	m.TypeDigit('1')
	m.TypeDigit('2')

	for i := 0; i < ResendCooldownSeconds; i++ {
		m.Tick()
	}
	require.Equal(t, EffectIssueCode, m.PressResend())
	assert.Equal(t, "", m.Code())
	assert.Equal(t, 0, m.Cursor())
}

func TestMachine_SkipIsPhoneOnly(t *testing.T) {
	email := NewMachine(ChannelEmail)
	sendCode(t, email, "a@b.com")
	assert.False(t, email.Skip(), "email verification may not be deferred")

	phone := NewMachine(ChannelPhone)
	sendCode(t, phone, "9876543210")
	assert.True(t, phone.Skip())
	assert.Equal(t, StateSkipped, phone.State())
}

func TestMachine_SkipNotAllowedMidSubmitOrAfterVerify(t *testing.T) {
	m := NewMachine(ChannelPhone)
	sendCode(t, m, "9876543210")
	require.Equal(t, EffectSubmitCode, m.Paste("000123"))
	assert.False(t, m.Skip())

	require.Equal(t, EffectAdvanceStage, m.SubmitSucceeded())
	assert.False(t, m.Skip())
}

func TestMachine_EventsIgnoredOutsideTheirStates(t *testing.T) {
	m := NewMachine(ChannelEmail)

	// nothing works before a recipient is collected
	assert.Equal(t, EffectNone, m.TypeDigit('1'))
	assert.Equal(t, EffectNone, m.Paste("123456"))
	assert.Equal(t, EffectNone, m.PressSubmit())
	assert.Equal(t, EffectNone, m.PressResend())
	m.Backspace()
	m.SubmitFailed(FailureMismatch)
	_, failed := m.LastFailure()
	assert.False(t, failed)

	// blank recipients are rejected
	assert.Equal(t, EffectNone, m.SubmitRecipient("   "))

	sendCode(t, m, "a@b.com")
	// a second recipient submission is ignored once the code is out
	assert.Equal(t, EffectNone, m.SubmitRecipient("other@b.com"))
	assert.Equal(t, "a@b.com", m.Recipient())

	// result callbacks only apply to an in-flight submission
	assert.Equal(t, EffectNone, m.SubmitSucceeded())
}

func TestMachine_IncompleteSubmitIsRejected(t *testing.T) {
	m := NewMachine(ChannelEmail)
	sendCode(t, m, "a@b.com")
	m.TypeDigit('1')
	assert.Equal(t, EffectNone, m.PressSubmit())
	assert.Equal(t, StateCodeSent, m.State())
}

func TestMachine_NonDigitInputIgnored(t *testing.T) {
	m := NewMachine(ChannelEmail)
	sendCode(t, m, "a@b.com")
	assert.Equal(t, EffectNone, m.TypeDigit('x'))
	assert.Equal(t, "", m.Code())
}
