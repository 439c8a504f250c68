package pricing

import (
	"fmt"

	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// Store is the read-only rate catalog. It is safe for concurrent use.
type Store interface {
	// Platforms returns every platform in catalog order
	Platforms() []domain.Platform
	Platform(id string) (domain.Platform, bool)
	GPUs() []domain.GPU
	GPU(id string) (domain.GPU, bool)
	// Rate returns the prices a platform publishes for a GPU; false when the GPU is not offered there
	Rate(platform, gpu string) (domain.RateEntry, bool)
	// Price returns the native price for one granularity, without any unit conversion
	Price(platform, gpu string, per domain.Granularity) (domain.Price, bool)
	// Rates returns every entry ordered by platform then GPU catalog order
	Rates() []domain.RateEntry
}

type rateKey struct {
	platform string
	gpu      string
}

type pricingStore struct {
	platforms []domain.Platform
	gpus      []domain.GPU
	rates     map[rateKey]domain.RateEntry
}

// NewStore builds a catalog from raw table data.
func NewStore(data Data) (Store, error) {
	s := &pricingStore{rates: make(map[rateKey]domain.RateEntry)}

	gpuIndex := make(map[string]struct{}, len(data.GPUs))
	for _, g := range data.GPUs {
		id := domain.NormalizeID(g.ID)
		if id == "" {
			return nil, fmt.Errorf("gpu id cannot be empty")
		}
		if _, exists := gpuIndex[id]; exists {
			return nil, fmt.Errorf("duplicate gpu: %s", id)
		}
		if g.VRAMGB <= 0 {
			return nil, fmt.Errorf("gpu %s: vram must be positive, got %d", id, g.VRAMGB)
		}
		gpuIndex[id] = struct{}{}
		s.gpus = append(s.gpus, domain.GPU{ID: id, VRAMGB: g.VRAMGB})
	}

	platformIndex := make(map[string]struct{}, len(data.Platforms))
	for _, p := range data.Platforms {
		platform, err := p.toDomain()
		if err != nil {
			return nil, err
		}
		if _, exists := platformIndex[platform.ID]; exists {
			return nil, fmt.Errorf("duplicate platform: %s", platform.ID)
		}
		platformIndex[platform.ID] = struct{}{}
		s.platforms = append(s.platforms, platform)

		for gpuID, r := range p.Rates {
			gpu := domain.NormalizeID(gpuID)
			if _, ok := gpuIndex[gpu]; !ok {
				return nil, fmt.Errorf("platform %s: rate for unknown gpu %s", platform.ID, gpu)
			}
			entry, err := r.toDomain(platform.ID, gpu)
			if err != nil {
				return nil, err
			}
			s.rates[rateKey{platform: platform.ID, gpu: gpu}] = entry
		}
	}

	if len(s.platforms) == 0 {
		return nil, fmt.Errorf("at least one platform must be provided")
	}

	return s, nil
}

// NewDefaultStore returns the built-in catalog.
func NewDefaultStore() Store {
	s, err := NewStore(DefaultData())
	if err != nil {
		panic(fmt.Sprintf("built-in rate catalog is invalid: %v", err))
	}
	return s
}

func (s *pricingStore) Platforms() []domain.Platform {
	return append([]domain.Platform(nil), s.platforms...)
}

func (s *pricingStore) Platform(id string) (domain.Platform, bool) {
	id = domain.NormalizeID(id)
	for _, p := range s.platforms {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Platform{}, false
}

func (s *pricingStore) GPUs() []domain.GPU {
	return append([]domain.GPU(nil), s.gpus...)
}

func (s *pricingStore) GPU(id string) (domain.GPU, bool) {
	id = domain.NormalizeID(id)
	for _, g := range s.gpus {
		if g.ID == id {
			return g, true
		}
	}
	return domain.GPU{}, false
}

func (s *pricingStore) Rate(platform, gpu string) (domain.RateEntry, bool) {
	entry, ok := s.rates[rateKey{platform: domain.NormalizeID(platform), gpu: domain.NormalizeID(gpu)}]
	return entry, ok
}

func (s *pricingStore) Price(platform, gpu string, per domain.Granularity) (domain.Price, bool) {
	entry, ok := s.Rate(platform, gpu)
	if !ok {
		return domain.Price{}, false
	}

	var amount *decimal.Decimal
	switch per {
	case domain.PerSecond:
		amount = entry.PerSecond
	case domain.PerHour:
		amount = entry.PerHour
	}
	if amount == nil {
		return domain.Price{}, false
	}
	return domain.Price{Amount: *amount, Per: per}, true
}

func (s *pricingStore) Rates() []domain.RateEntry {
	var entries []domain.RateEntry
	for _, p := range s.platforms {
		for _, g := range s.gpus {
			if entry, ok := s.rates[rateKey{platform: p.ID, gpu: g.ID}]; ok {
				entries = append(entries, entry)
			}
		}
	}
	return entries
}
