package utils

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/sirupsen/logrus"
)

var (
	sesClient *ses.Client
	sesSender string
)

func InitSES(region, sender string) error {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		return fmt.Errorf("unable to load AWS config for SES: %w", err)
	}
	sesClient = ses.NewFromConfig(cfg)
	sesSender = sender
	return nil
}

func sendEmail(ctx context.Context, to, subject, body string) error {
	if sesClient == nil {
		return fmt.Errorf("ses is not configured")
	}

	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(sesSender),
	}

	if _, err := sesClient.SendEmail(ctx, input); err != nil {
		logrus.WithError(err).Warn("SES send failed")
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

func SendResetEmail(ctx context.Context, to, code string) error {
	subject := "Password Reset Code"
	body := fmt.Sprintf("Your password reset code is: %s\n\nUse this in the app to set a new password.", code)
	return sendEmail(ctx, to, subject, body)
}
