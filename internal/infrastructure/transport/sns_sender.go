package transport

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSSender delivers verification codes over SMS via AWS SNS.
type SNSSender struct {
	client *sns.Client
}

// NewSNSSender creates a new SNS-backed SMS sender
func NewSNSSender(region string) (*SNSSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, err
	}
	return &SNSSender{client: sns.NewFromConfig(awsCfg)}, nil
}

// Send publishes the code to the recipient's phone number. The recipient is
// the normalized 10-digit number; SNS wants E.164.
func (s *SNSSender) Send(ctx context.Context, recipient, code string) error {
	phone := "+1" + recipient
	message := fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code)

	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: &phone,
		Message:     &message,
	})
	return err
}
