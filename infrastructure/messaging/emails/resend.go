package emails

import (
	"fmt"
	"os"

	"attendly.io/infrastructure/logger"
	"github.com/resend/resend-go/v2"
)

// SendEmail delivers a plain notification email through resend. Returns
// false on failure; callers treat delivery as best effort.
func SendEmail(toEmail string, subject string, body string) bool {
	apiKey := os.Getenv("RESEND_API_KEY")

	client := resend.NewClient(apiKey)

	params := &resend.SendEmailRequest{
		From:    os.Getenv("RESEND_DEFAULT_EMAIL"),
		To:      []string{toEmail},
		Subject: subject,
		Text:    body,
	}

	_, err := client.Emails.Send(params)
	if err != nil {
		logger.Error("an error occured while trying to send email using resend service", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "toEmail",
			Data: toEmail,
		})
		return false
	}
	logger.Info(fmt.Sprintf("successfully sent email to %s", toEmail))
	return true
}
