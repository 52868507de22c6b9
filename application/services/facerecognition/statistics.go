package facerecognition

import (
	"context"
	"encoding/json"
	"time"

	"attendly.io/application/repository"
	"attendly.io/application/utils"
	"attendly.io/entities"
)

const statisticsCacheKey = "face_recognition_statistics"

const statisticsCacheTTL = 5 * time.Minute

// Statistics summarizes enrollment coverage and recent recognition accuracy.
type Statistics struct {
	TotalEmployees          int64   `json:"totalEmployees"`
	RegisteredFaces         int64   `json:"registeredFaces"`
	RegistrationPercentage  float64 `json:"registrationPercentage"`
	TotalVerifications      int64   `json:"totalVerifications"`
	SuccessfulVerifications int64   `json:"successfulVerifications"`
	RecognitionAccuracy     float64 `json:"recognitionAccuracy"`
}

// GetStatistics derives statistics from the audit trail, serving a cached
// copy for up to five minutes. Registration invalidates the cache.
func (s *FaceService) GetStatistics(ctx context.Context) (*Statistics, error) {
	if s.stats != nil {
		if cached := s.stats.FindOne(statisticsCacheKey); cached != nil {
			var stats Statistics
			if err := json.Unmarshal([]byte(*cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	totalEmployees, err := repository.EmployeeRepo().CountDocs(ctx, map[string]interface{}{
		"deletedAt": nil,
	})
	if err != nil {
		return nil, err
	}
	registered, err := repository.FaceTemplateRepo().CountDocs(ctx, map[string]interface{}{
		"deletedAt": nil,
	})
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -30)
	successes, err := repository.VerificationLogRepo().CountDocs(ctx, map[string]interface{}{
		"action":    entities.ActionVerifySuccess,
		"createdAt": map[string]interface{}{"$gte": since},
	})
	if err != nil {
		return nil, err
	}
	attempts, err := repository.VerificationLogRepo().CountDocs(ctx, map[string]interface{}{
		"action": map[string]interface{}{
			"$in": []entities.VerificationAction{entities.ActionVerifySuccess, entities.ActionVerifyFailed},
		},
		"createdAt": map[string]interface{}{"$gte": since},
	})
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		TotalEmployees:          totalEmployees,
		RegisteredFaces:         registered,
		TotalVerifications:      attempts,
		SuccessfulVerifications: successes,
	}
	if totalEmployees > 0 {
		stats.RegistrationPercentage = utils.RoundTo2DP(float64(registered) / float64(totalEmployees) * 100)
	}
	if attempts > 0 {
		stats.RecognitionAccuracy = utils.RoundTo2DP(float64(successes) / float64(attempts) * 100)
	}

	if s.stats != nil {
		if payload, err := json.Marshal(stats); err == nil {
			s.stats.CreateEntry(statisticsCacheKey, payload, statisticsCacheTTL)
		}
	}
	return stats, nil
}
