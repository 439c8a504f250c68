package throughput

import (
	"fmt"

	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

const (
	// DefaultTokensPerSecond is an approximation used when no measured entry exists.
	DefaultTokensPerSecond = 150
	// PEFTFallbackFactor scales a full fine-tuning entry when no PEFT entry exists.
	PEFTFallbackFactor = 4
)

// Tier selects the fine-tuning mode of a throughput entry.
type Tier string

const (
	TierFull Tier = "full"
	TierPEFT Tier = "peft"
)

// TierFor maps the PEFT flag to a tier.
func TierFor(peft bool) Tier {
	if peft {
		return TierPEFT
	}
	return TierFull
}

// Source tells how a throughput value was resolved.
type Source string

const (
	SourceExact        Source = "exact"
	SourcePEFTFallback Source = "peft-fallback"
	SourceDefault      Source = "default"
)

// Resolution is a resolved throughput together with the rule that produced it.
type Resolution struct {
	TokensPerSecond decimal.Decimal
	Source          Source
}

// Model is the read-only throughput table. It is safe for concurrent use.
type Model interface {
	// Throughput resolves tokens/sec for a workload shape, never failing
	Throughput(gpu string, size domain.ModelSize, peft bool) decimal.Decimal
	Resolve(gpu string, size domain.ModelSize, peft bool) Resolution
	// Entry returns the exact table entry without fallback
	Entry(gpu string, size domain.ModelSize, tier Tier) (decimal.Decimal, bool)
	Entries() []Entry
}

// Entry is one measured throughput value.
type Entry struct {
	GPU             string
	ModelSize       domain.ModelSize
	Tier            Tier
	TokensPerSecond decimal.Decimal
}

type entryKey struct {
	gpu  string
	size domain.ModelSize
	tier Tier
}

type model struct {
	entries map[entryKey]decimal.Decimal
	order   []entryKey
}

// NewModel builds a throughput table from raw rows.
func NewModel(rows []Row) (Model, error) {
	m := &model{entries: make(map[entryKey]decimal.Decimal)}

	for _, r := range rows {
		gpu := domain.NormalizeID(r.GPU)
		if gpu == "" {
			return nil, fmt.Errorf("throughput row: gpu cannot be empty")
		}
		size, err := domain.ParseModelSize(r.ModelSize)
		if err != nil {
			return nil, fmt.Errorf("throughput row for %s: %w", gpu, err)
		}
		if r.Full == "" && r.PEFT == "" {
			return nil, fmt.Errorf("throughput row %s/%s has no value", gpu, size)
		}

		values := []struct {
			tier Tier
			raw  string
		}{{TierFull, r.Full}, {TierPEFT, r.PEFT}}
		for _, tv := range values {
			if tv.raw == "" {
				continue
			}
			v, err := decimal.NewFromString(tv.raw)
			if err != nil {
				return nil, fmt.Errorf("throughput %s/%s/%s: %w", gpu, size, tv.tier, err)
			}
			if !v.IsPositive() {
				return nil, fmt.Errorf("throughput %s/%s/%s must be positive, got %s", gpu, size, tv.tier, tv.raw)
			}
			key := entryKey{gpu: gpu, size: size, tier: tv.tier}
			if _, exists := m.entries[key]; exists {
				return nil, fmt.Errorf("duplicate throughput entry %s/%s/%s", gpu, size, tv.tier)
			}
			m.entries[key] = v
			m.order = append(m.order, key)
		}
	}

	return m, nil
}

// NewDefaultModel returns the built-in throughput table.
func NewDefaultModel() Model {
	m, err := NewModel(DefaultRows())
	if err != nil {
		panic(fmt.Sprintf("built-in throughput table is invalid: %v", err))
	}
	return m
}

func (m *model) Entry(gpu string, size domain.ModelSize, tier Tier) (decimal.Decimal, bool) {
	v, ok := m.entries[entryKey{gpu: domain.NormalizeID(gpu), size: size, tier: tier}]
	return v, ok
}

func (m *model) Resolve(gpu string, size domain.ModelSize, peft bool) Resolution {
	if v, ok := m.Entry(gpu, size, TierFor(peft)); ok {
		return Resolution{TokensPerSecond: v, Source: SourceExact}
	}

	if peft {
		if full, ok := m.Entry(gpu, size, TierFull); ok {
			return Resolution{
				TokensPerSecond: full.Mul(decimal.NewFromInt(PEFTFallbackFactor)),
				Source:          SourcePEFTFallback,
			}
		}
	}

	return Resolution{TokensPerSecond: decimal.NewFromInt(DefaultTokensPerSecond), Source: SourceDefault}
}

func (m *model) Throughput(gpu string, size domain.ModelSize, peft bool) decimal.Decimal {
	return m.Resolve(gpu, size, peft).TokensPerSecond
}

func (m *model) Entries() []Entry {
	entries := make([]Entry, 0, len(m.order))
	for _, k := range m.order {
		entries = append(entries, Entry{GPU: k.gpu, ModelSize: k.size, Tier: k.tier, TokensPerSecond: m.entries[k]})
	}
	return entries
}
