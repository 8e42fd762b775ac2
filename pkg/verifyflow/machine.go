// Package verifyflow models the client-side verification workflow as an
// explicit state machine: collect a recipient, wait for the code, submit,
// succeed or fall back to the code-entry screen. All timing arrives through
// Tick and all I/O leaves through effects, so the machine is independent of
// any UI framework's lifecycle and fully deterministic under test.
package verifyflow

import "strings"

// Channel mirrors the server-side verification channel.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPhone Channel = "phone"
)

// State is the workflow position for one channel.
type State int

const (
	StateCollectingRecipient State = iota
	StateCodeSent
	StateSubmitting
	StateVerified
	StateSkipped
)

// Effect tells the caller what I/O to perform after an event. The machine
// itself never does I/O.
type Effect int

const (
	EffectNone Effect = iota
	// EffectIssueCode: call the issuance service for Recipient().
	EffectIssueCode
	// EffectSubmitCode: call the validation service with Recipient() and Code().
	EffectSubmitCode
	// EffectAdvanceStage: verification succeeded; advance onboarding and navigate on.
	EffectAdvanceStage
)

// Failure classifies a rejected submission.
type Failure int

const (
	FailureMismatch Failure = iota
	FailureExpired
	FailureNoActiveCode
	FailureTransient
)

const (
	// CodeSlots is the number of single-digit input fields.
	CodeSlots = 6
	// ResendCooldownSeconds gates how soon a resend may be requested. The
	// cooldown is a UX throttle only; the server-side record TTL is the
	// source of truth for code validity.
	ResendCooldownSeconds = 60
)

// Machine is the per-channel verification workflow. Not safe for concurrent
// use; drive it from a single UI loop.
type Machine struct {
	channel   Channel
	state     State
	recipient string

	slots  [CodeSlots]byte // 0 = empty, otherwise ASCII digit
	cursor int

	cooldown    int
	lastFailure Failure
	failed      bool
}

// NewMachine creates a machine at the recipient-collection step.
func NewMachine(channel Channel) *Machine {
	return &Machine{channel: channel}
}

// State returns the current workflow state.
func (m *Machine) State() State { return m.state }

// Recipient returns the recipient the code was requested for.
func (m *Machine) Recipient() string { return m.recipient }

// CooldownRemaining returns seconds until resend re-enables.
func (m *Machine) CooldownRemaining() int { return m.cooldown }

// LastFailure returns the most recent submission failure, if any.
func (m *Machine) LastFailure() (Failure, bool) { return m.lastFailure, m.failed }

// Code returns the digits entered so far, in slot order.
func (m *Machine) Code() string {
	var b strings.Builder
	for _, d := range m.slots {
		if d != 0 {
			b.WriteByte(d)
		}
	}
	return b.String()
}

// Cursor returns the focused slot index.
func (m *Machine) Cursor() int { return m.cursor }

// SubmitRecipient records the recipient and requests the first code.
func (m *Machine) SubmitRecipient(recipient string) Effect {
	if m.state != StateCollectingRecipient {
		return EffectNone
	}
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return EffectNone
	}
	m.recipient = recipient
	m.enterCodeSent()
	return EffectIssueCode
}

// Tick advances the countdown by one second. Safe to call in any state.
func (m *Machine) Tick() {
	if m.state == StateCodeSent && m.cooldown > 0 {
		m.cooldown--
	}
}

// CanResend reports whether the resend action is currently enabled.
func (m *Machine) CanResend() bool {
	return m.state == StateCodeSent && m.cooldown == 0
}

// PressResend requests a fresh code once the cooldown has elapsed. The prior
// input is cleared; the server revokes the old code on reissue.
func (m *Machine) PressResend() Effect {
	if !m.CanResend() {
		return EffectNone
	}
	m.enterCodeSent()
	return EffectIssueCode
}

// TypeDigit places a digit in the focused slot and advances focus. Typing
// into the final slot submits without an explicit action.
func (m *Machine) TypeDigit(d byte) Effect {
	if m.state != StateCodeSent || d < '0' || d > '9' {
		return EffectNone
	}
	m.slots[m.cursor] = d
	if m.cursor < CodeSlots-1 {
		m.cursor++
		return EffectNone
	}
	return m.trySubmit()
}

// Backspace clears the focused slot; on an already-empty slot it only
// retreats focus.
func (m *Machine) Backspace() {
	if m.state != StateCodeSent {
		return
	}
	if m.slots[m.cursor] == 0 {
		if m.cursor > 0 {
			m.cursor--
		}
		return
	}
	m.slots[m.cursor] = 0
}

// Paste fills all slots from a full 6-digit string and submits immediately.
// Anything else is ignored.
func (m *Machine) Paste(s string) Effect {
	if m.state != StateCodeSent {
		return EffectNone
	}
	s = strings.TrimSpace(s)
	if len(s) != CodeSlots {
		return EffectNone
	}
	for i := 0; i < CodeSlots; i++ {
		if s[i] < '0' || s[i] > '9' {
			return EffectNone
		}
	}
	for i := 0; i < CodeSlots; i++ {
		m.slots[i] = s[i]
	}
	m.cursor = CodeSlots - 1
	return m.trySubmit()
}

// PressSubmit is the explicit submission path for accessibility and as a
// fallback when auto-submit did not fire.
func (m *Machine) PressSubmit() Effect {
	if m.state != StateCodeSent {
		return EffectNone
	}
	return m.trySubmit()
}

// SubmitSucceeded resolves an in-flight submission as verified.
func (m *Machine) SubmitSucceeded() Effect {
	if m.state != StateSubmitting {
		return EffectNone
	}
	m.state = StateVerified
	m.failed = false
	return EffectAdvanceStage
}

// SubmitFailed resolves an in-flight submission as rejected: input clears,
// focus returns to the first slot, and the machine awaits another attempt.
func (m *Machine) SubmitFailed(f Failure) {
	if m.state != StateSubmitting {
		return
	}
	m.state = StateCodeSent
	m.lastFailure = f
	m.failed = true
	m.clearInput()
}

// Skip defers verification. Only the phone channel may be skipped; email
// verification is mandatory.
func (m *Machine) Skip() bool {
	if m.channel != ChannelPhone {
		return false
	}
	if m.state == StateVerified || m.state == StateSubmitting {
		return false
	}
	m.state = StateSkipped
	return true
}

// trySubmit fires at most one submission per completed fill. Once the
// machine is Submitting, repeated completion events are no-ops until the
// result arrives.
func (m *Machine) trySubmit() Effect {
	if len(m.Code()) != CodeSlots {
		return EffectNone
	}
	m.state = StateSubmitting
	return EffectSubmitCode
}

func (m *Machine) enterCodeSent() {
	m.state = StateCodeSent
	m.cooldown = ResendCooldownSeconds
	m.clearInput()
}

func (m *Machine) clearInput() {
	m.slots = [CodeSlots]byte{}
	m.cursor = 0
}
