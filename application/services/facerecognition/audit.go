package facerecognition

import (
	"context"

	"attendly.io/application/repository"
	"attendly.io/entities"
)

// mongoAttemptLogger appends attempts to the VerificationLogs collection.
type mongoAttemptLogger struct{}

func (mongoAttemptLogger) Record(ctx context.Context, attempt entities.VerificationLog) error {
	_, err := repository.VerificationLogRepo().CreateOne(ctx, attempt)
	return err
}
