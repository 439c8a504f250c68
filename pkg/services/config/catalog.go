package config

import (
	"fmt"

	"github.com/de-tools/gpu-atlas/pkg/store/pricing"
	"github.com/de-tools/gpu-atlas/pkg/store/throughput"
	"github.com/spf13/viper"
)

// CatalogFile is the on-disk override of the built-in tables.
// Sections left out of the file keep their built-in values.
type CatalogFile struct {
	pricing.Data `mapstructure:",squash"`
	Throughput   []throughput.Row `mapstructure:"throughput"`
}

// Catalog is the read-only pricing and throughput data an engine is built from.
type Catalog struct {
	Rates      pricing.Store
	Throughput throughput.Model
}

func DefaultCatalog() *Catalog {
	return &Catalog{
		Rates:      pricing.NewDefaultStore(),
		Throughput: throughput.NewDefaultModel(),
	}
}

// LoadCatalog builds the catalog from path, or the built-in tables when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file CatalogFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return file.build()
}

func (f CatalogFile) build() (*Catalog, error) {
	defaults := pricing.DefaultData()
	data := f.Data
	if len(data.GPUs) == 0 {
		data.GPUs = defaults.GPUs
	}
	if len(data.Platforms) == 0 {
		data.Platforms = defaults.Platforms
	}
	rows := f.Throughput
	if len(rows) == 0 {
		rows = throughput.DefaultRows()
	}

	rates, err := pricing.NewStore(data)
	if err != nil {
		return nil, fmt.Errorf("invalid rate catalog: %w", err)
	}
	tp, err := throughput.NewModel(rows)
	if err != nil {
		return nil, fmt.Errorf("invalid throughput table: %w", err)
	}

	return &Catalog{Rates: rates, Throughput: tp}, nil
}
