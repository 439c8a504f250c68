package domain

import (
	"math"
	"strings"
)

// AvgTokensPerSample is the engine-wide token count assumed for one dataset sample.
const AvgTokensPerSample = 500

// MaxTrainingTokens bounds dataset_size * AvgTokensPerSample * epochs.
const MaxTrainingTokens = math.MaxInt64

// TrainingWorkload describes a fine-tuning job.
type TrainingWorkload struct {
	ModelSize      ModelSize
	DatasetSize    int64 // samples
	Epochs         int64
	GPU            string
	Platform       string
	PEFT           bool
	MixedPrecision bool
}

// NewTrainingWorkload returns a workload with mixed precision enabled, the default.
func NewTrainingWorkload(size ModelSize, datasetSize, epochs int64, gpu, platform string) TrainingWorkload {
	return TrainingWorkload{
		ModelSize:      size,
		DatasetSize:    datasetSize,
		Epochs:         epochs,
		GPU:            NormalizeID(gpu),
		Platform:       NormalizeID(platform),
		MixedPrecision: true,
	}
}

// Validate checks the workload fields that do not need catalog access.
func (w TrainingWorkload) Validate() error {
	if _, err := ParseModelSize(string(w.ModelSize)); err != nil {
		return err
	}
	if w.DatasetSize <= 0 {
		return &ValidationError{Field: "dataset_size", Value: w.DatasetSize, Reason: "must be a positive sample count"}
	}
	if w.Epochs <= 0 {
		return &ValidationError{Field: "epochs", Value: w.Epochs, Reason: "must be positive"}
	}
	if w.Epochs > MaxTrainingTokens/AvgTokensPerSample {
		return &ValidationError{Field: "epochs", Value: w.Epochs, Reason: "total tokens exceed the supported range"}
	}
	if w.DatasetSize > MaxTrainingTokens/(AvgTokensPerSample*w.Epochs) {
		return &ValidationError{Field: "dataset_size", Value: w.DatasetSize, Reason: "total tokens exceed the supported range"}
	}
	if w.GPU == "" {
		return &ValidationError{Field: "gpu", Value: `""`, Reason: "is required"}
	}
	if w.Platform == "" {
		return &ValidationError{Field: "platform", Value: `""`, Reason: "is required"}
	}
	return nil
}

// TotalTokens is dataset_size * AvgTokensPerSample * epochs. It is only
// meaningful for a workload that passed Validate.
func (w TrainingWorkload) TotalTokens() int64 {
	return w.DatasetSize * AvgTokensPerSample * w.Epochs
}

// InferenceWorkload describes a steady request volume served from one GPU type.
type InferenceWorkload struct {
	RequestsPerDay    int64
	AvgLatencySeconds float64
	GPU               string
	Platform          string
	Deployment        Deployment
	BatchInference    bool
}

// Validate checks the workload fields that do not need catalog access.
func (w InferenceWorkload) Validate() error {
	if w.RequestsPerDay <= 0 {
		return &ValidationError{Field: "requests_per_day", Value: w.RequestsPerDay, Reason: "must be positive"}
	}
	if math.IsNaN(w.AvgLatencySeconds) || math.IsInf(w.AvgLatencySeconds, 0) {
		return &ValidationError{Field: "avg_latency_seconds", Value: w.AvgLatencySeconds, Reason: "must be a finite number"}
	}
	if w.AvgLatencySeconds <= 0 {
		return &ValidationError{Field: "avg_latency_seconds", Value: w.AvgLatencySeconds, Reason: "must be positive"}
	}
	if _, err := ParseDeployment(string(w.Deployment)); err != nil {
		return err
	}
	if w.GPU == "" {
		return &ValidationError{Field: "gpu", Value: `""`, Reason: "is required"}
	}
	if w.Platform == "" {
		return &ValidationError{Field: "platform", Value: `""`, Reason: "is required"}
	}
	return nil
}

// NormalizeID lower-cases and trims a GPU or platform identifier.
func NormalizeID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
