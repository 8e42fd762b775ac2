package transport

import "context"

// CodeSender delivers a verification code to a recipient. The pipeline hands
// over only the raw (recipient, code) pair; message formatting and
// localization are the sender's concern.
type CodeSender interface {
	Send(ctx context.Context, recipient, code string) error
}
