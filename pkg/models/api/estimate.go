package api

// TrainingRequest is the wire form of a training workload.
type TrainingRequest struct {
	ModelSize      string `json:"model_size" yaml:"model_size"`
	DatasetSize    int64  `json:"dataset_size" yaml:"dataset_size"`
	Epochs         int64  `json:"epochs" yaml:"epochs"`
	GPU            string `json:"gpu" yaml:"gpu"`
	Platform       string `json:"platform" yaml:"platform"`
	PEFT           bool   `json:"peft" yaml:"peft"`
	MixedPrecision *bool  `json:"mixed_precision,omitempty" yaml:"mixed_precision,omitempty"`
}

type CostBreakdown struct {
	ComputeCost float64 `json:"compute_cost" yaml:"compute_cost"`
	StorageCost float64 `json:"storage_cost" yaml:"storage_cost"`
	TotalCost   float64 `json:"total_cost" yaml:"total_cost"`
}

type CostOptimizations struct {
	WithPEFT float64 `json:"with_peft" yaml:"with_peft"`
	Savings  float64 `json:"savings" yaml:"savings"`
}

type TrainingEstimate struct {
	Workload             TrainingRequest    `json:"workload" yaml:"workload"`
	TotalTokens          int64              `json:"total_tokens" yaml:"total_tokens"`
	TokensPerSecond      float64            `json:"tokens_per_second" yaml:"tokens_per_second"`
	EstimatedHours       float64            `json:"estimated_hours" yaml:"estimated_hours"`
	HourlyRate           float64            `json:"hourly_rate" yaml:"hourly_rate"`
	CostBreakdown        CostBreakdown      `json:"cost_breakdown" yaml:"cost_breakdown"`
	CostOptimizations    CostOptimizations  `json:"cost_optimizations" yaml:"cost_optimizations"`
	AlternativePlatforms map[string]float64 `json:"alternative_platforms" yaml:"alternative_platforms"`
	CoveredByFreeCredits bool               `json:"covered_by_free_credits" yaml:"covered_by_free_credits"`
	Warnings             []string           `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// InferenceRequest is the wire form of an inference workload.
type InferenceRequest struct {
	RequestsPerDay    int64   `json:"requests_per_day" yaml:"requests_per_day"`
	AvgLatencySeconds float64 `json:"avg_latency_seconds" yaml:"avg_latency_seconds"`
	GPU               string  `json:"gpu" yaml:"gpu"`
	Platform          string  `json:"platform" yaml:"platform"`
	Deployment        string  `json:"deployment" yaml:"deployment"`
	BatchInference    bool    `json:"batch_inference" yaml:"batch_inference"`
}

type InferenceCostBreakdown struct {
	DailyComputeSeconds float64 `json:"daily_compute_seconds" yaml:"daily_compute_seconds"`
	DailyCost           float64 `json:"daily_cost" yaml:"daily_cost"`
	MonthlyCost         float64 `json:"monthly_cost" yaml:"monthly_cost"`
	CostPerRequest      float64 `json:"cost_per_request" yaml:"cost_per_request"`
}

type ScalingPoint struct {
	DailyCost   float64 `json:"daily_cost" yaml:"daily_cost"`
	MonthlyCost float64 `json:"monthly_cost" yaml:"monthly_cost"`
}

type DedicatedAlternative struct {
	MonthlyCost          *float64 `json:"monthly_cost" yaml:"monthly_cost"`
	BreakEvenRequestsDay *float64 `json:"break_even_requests_day" yaml:"break_even_requests_day"`
}

type InferenceEstimate struct {
	Workload             InferenceRequest        `json:"workload" yaml:"workload"`
	EffectiveLatency     float64                 `json:"effective_latency_seconds" yaml:"effective_latency_seconds"`
	Rate                 float64                 `json:"rate" yaml:"rate"`
	RateUnit             string                  `json:"rate_unit" yaml:"rate_unit"`
	CostBreakdown        InferenceCostBreakdown  `json:"cost_breakdown" yaml:"cost_breakdown"`
	ScalingAnalysis      map[string]ScalingPoint `json:"scaling_analysis" yaml:"scaling_analysis"`
	DedicatedAlternative DedicatedAlternative    `json:"dedicated_alternative" yaml:"dedicated_alternative"`
}
