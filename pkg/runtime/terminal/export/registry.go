package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// ReporterFactory creates a Reporter writing to w
type ReporterFactory func(w io.Writer) Reporter

// Registry maps output format names to reporter factories
type Registry interface {
	// Register adds a new output format
	Register(format string, factory ReporterFactory) error
	// Create instantiates the reporter for format writing to w
	Create(format string, w io.Writer) (Reporter, error)
	// ListFormats returns the registered formats in sorted order
	ListFormats() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]ReporterFactory
}

func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]ReporterFactory),
	}
}

// DefaultRegistry knows the table, markdown, json and yaml formats.
func DefaultRegistry() Registry {
	r := NewRegistry()
	_ = r.Register(FormatTable, func(w io.Writer) Reporter { return NewTableReporter(w) })
	_ = r.Register(FormatMarkdown, func(w io.Writer) Reporter { return NewMarkdownReporter(w) })
	_ = r.Register(FormatJSON, func(w io.Writer) Reporter { return NewJSONReporter(w) })
	_ = r.Register(FormatYAML, func(w io.Writer) Reporter { return NewYAMLReporter(w) })
	return r
}

func (r *registry) Register(format string, factory ReporterFactory) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return fmt.Errorf("format name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[format]; exists {
		return fmt.Errorf("format %q is already registered", format)
	}

	r.factories[format] = factory
	return nil
}

func (r *registry) Create(format string, w io.Writer) (Reporter, error) {
	r.mu.RLock()
	factory, exists := r.factories[strings.ToLower(strings.TrimSpace(format))]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unsupported output format %q, expected one of %v", format, r.ListFormats())
	}

	return factory(w), nil
}

func (r *registry) ListFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]string, 0, len(r.factories))
	for format := range r.factories {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}
