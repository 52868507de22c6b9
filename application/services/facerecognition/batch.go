package facerecognition

import (
	"context"
	"errors"

	"attendly.io/application/utils"
	"attendly.io/infrastructure/biometric/types"
)

// BatchIdentifyResult pairs one input sample with its identification
// outcome. A malformed sample fails its own slot without aborting the rest
// of the batch.
type BatchIdentifyResult struct {
	Index  int                       `json:"index"`
	Result *types.VerificationResult `json:"result,omitempty"`
	Error  *string                   `json:"error,omitempty"`
}

// IdentifyBatch runs a 1:N identification for every sample in order. Kiosks
// buffer captures while offline and replay them in one call. Infrastructure
// failures abort the whole batch; per-sample input errors do not.
func (s *FaceService) IdentifyBatch(ctx context.Context, samples []types.CaptureSample, device types.DeviceMeta) ([]BatchIdentifyResult, error) {
	results := make([]BatchIdentifyResult, 0, len(samples))
	for i, sample := range samples {
		result, err := s.Identify(ctx, sample, device)
		if err != nil {
			if errors.Is(err, ErrInvalidDescriptor) {
				results = append(results, BatchIdentifyResult{
					Index: i,
					Error: utils.GetStringPointer(err.Error()),
				})
				continue
			}
			return nil, err
		}
		results = append(results, BatchIdentifyResult{Index: i, Result: result})
	}
	return results, nil
}
