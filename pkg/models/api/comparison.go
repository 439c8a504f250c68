package api

type PlatformCost struct {
	Platform          string   `json:"platform" yaml:"platform"`
	Available         bool     `json:"available" yaml:"available"`
	HourlyRate        *float64 `json:"hourly_rate,omitempty" yaml:"hourly_rate,omitempty"`
	Cost              *float64 `json:"cost,omitempty" yaml:"cost,omitempty"`
	Savings           *float64 `json:"savings,omitempty" yaml:"savings,omitempty"`
	SavingsPercentage *float64 `json:"savings_percentage,omitempty" yaml:"savings_percentage,omitempty"`
}

type CheapestPlatform struct {
	Platform string  `json:"platform" yaml:"platform"`
	Cost     float64 `json:"cost" yaml:"cost"`
}

type ComparisonResult struct {
	GPU       string           `json:"gpu" yaml:"gpu"`
	Hours     float64          `json:"training_hours" yaml:"training_hours"`
	Platforms []PlatformCost   `json:"platforms" yaml:"platforms"`
	Cheapest  CheapestPlatform `json:"cheapest" yaml:"cheapest"`
}

type PlatformHours struct {
	Platform        string  `json:"platform" yaml:"platform"`
	HourlyRate      float64 `json:"hourly_rate" yaml:"hourly_rate"`
	Hours           float64 `json:"hours" yaml:"hours"`
	FreeCreditHours float64 `json:"free_credit_hours,omitempty" yaml:"free_credit_hours,omitempty"`
}

type HoursConversion struct {
	GPU       string          `json:"gpu" yaml:"gpu"`
	Budget    float64         `json:"budget" yaml:"budget"`
	Platforms []PlatformHours `json:"platforms" yaml:"platforms"`
}

type Platform struct {
	ID          string  `json:"id" yaml:"id"`
	Billing     string  `json:"billing" yaml:"billing"`
	Granularity string  `json:"granularity" yaml:"granularity"`
	FreeCredits float64 `json:"free_credits,omitempty" yaml:"free_credits,omitempty"`
}

type GPU struct {
	ID     string `json:"id" yaml:"id"`
	VRAMGB int    `json:"vram_gb" yaml:"vram_gb"`
}

type Rate struct {
	Platform  string   `json:"platform" yaml:"platform"`
	GPU       string   `json:"gpu" yaml:"gpu"`
	PerSecond *float64 `json:"per_second,omitempty" yaml:"per_second,omitempty"`
	PerHour   *float64 `json:"per_hour,omitempty" yaml:"per_hour,omitempty"`
}

type Throughput struct {
	GPU             string  `json:"gpu" yaml:"gpu"`
	ModelSize       string  `json:"model_size" yaml:"model_size"`
	Tier            string  `json:"tier" yaml:"tier"`
	TokensPerSecond float64 `json:"tokens_per_second" yaml:"tokens_per_second"`
}

type Catalog struct {
	Platforms  []Platform   `json:"platforms" yaml:"platforms"`
	GPUs       []GPU        `json:"gpus" yaml:"gpus"`
	Rates      []Rate       `json:"rates" yaml:"rates"`
	Throughput []Throughput `json:"throughput" yaml:"throughput"`
}

// Error is the body of every failed HTTP response.
type Error struct {
	Error string `json:"error" yaml:"error"`
}
