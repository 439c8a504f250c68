package export

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/de-tools/gpu-atlas/pkg/models/api"
	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleOutput() Output {
	return Output{
		Report: &domain.Report{
			Title:       "Platform Comparison",
			Inputs:      []domain.ReportDetail{{Name: "GPU", Value: "a100-40gb"}},
			TotalAmount: 129,
			Currency:    "USD",
			Sections: []domain.ReportSection{
				{
					Title:   "Platforms",
					Summary: map[string]interface{}{"Cheapest": "lambda"},
					Details: []domain.ReportDetail{
						{Name: "modal", Value: "210.00", Unit: "USD", Description: "81.00 more (38.6%)"},
						{Name: "lambda", Value: "129.00", Unit: "USD", Description: "cheapest"},
						{Name: "a|b", Value: "unavailable"},
					},
				},
			},
		},
		Record: api.CheapestPlatform{Platform: "lambda", Cost: 129},
	}
}

func TestTableReporter_RendersSectionsAsFixedWidthRows(t *testing.T) {
	// Given
	var buf bytes.Buffer
	reporter := NewTableReporter(&buf)

	// When
	err := reporter.Handle(sampleOutput())

	// Then
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Platform Comparison")
	assert.Contains(t, out, "Total Amount: USD 129.00")
	assert.Contains(t, out, "GPU: a100-40gb")
	assert.Contains(t, out, "=== Platforms ===")
	assert.Contains(t, out, "Cheapest: lambda")

	var rows []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "| ") {
			rows = append(rows, line)
		}
	}
	require.Len(t, rows, 4)
	for _, row := range rows[1:] {
		assert.Len(t, row, len(rows[0]))
	}
	assert.True(t, strings.HasPrefix(rows[2], "| lambda "))
}

func TestTableReporter_NilReport_ReturnsError(t *testing.T) {
	err := NewTableReporter(&bytes.Buffer{}).Handle(Output{})
	assert.Error(t, err)
}

func TestMarkdownReporter_EscapesPipes(t *testing.T) {
	// Given
	var buf bytes.Buffer

	// When
	err := NewMarkdownReporter(&buf).Handle(sampleOutput())

	// Then
	require.NoError(t, err)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Platform Comparison\n"))
	assert.Contains(t, out, "## Platforms")
	assert.Contains(t, out, "| lambda | 129.00 | USD | cheapest |")
	assert.Contains(t, out, `| a\|b | unavailable |`)
}

func TestJSONReporter_WritesRecord(t *testing.T) {
	var buf bytes.Buffer

	err := NewJSONReporter(&buf).Handle(sampleOutput())

	require.NoError(t, err)
	var got api.CheapestPlatform
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, api.CheapestPlatform{Platform: "lambda", Cost: 129}, got)
}

func TestYAMLReporter_WritesRecord(t *testing.T) {
	var buf bytes.Buffer

	err := NewYAMLReporter(&buf).Handle(sampleOutput())

	require.NoError(t, err)
	assert.Equal(t, "platform: lambda\ncost: 129\n", buf.String())

	var got api.CheapestPlatform
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "lambda", got.Platform)
}

func TestStructuredReporters_NilRecord_ReturnError(t *testing.T) {
	assert.Error(t, NewJSONReporter(&bytes.Buffer{}).Handle(Output{}))
	assert.Error(t, NewYAMLReporter(&bytes.Buffer{}).Handle(Output{}))
}

func TestRegistry(t *testing.T) {
	t.Run("default formats", func(t *testing.T) {
		assert.Equal(t, []string{"json", "markdown", "table", "yaml"}, DefaultRegistry().ListFormats())
	})

	t.Run("create is case-insensitive", func(t *testing.T) {
		reporter, err := DefaultRegistry().Create("JSON", &bytes.Buffer{})
		require.NoError(t, err)
		assert.IsType(t, &JSONReporter{}, reporter)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := DefaultRegistry().Create("csv", &bytes.Buffer{})
		assert.ErrorContains(t, err, `unsupported output format "csv"`)
	})

	t.Run("duplicate registration", func(t *testing.T) {
		err := DefaultRegistry().Register("table", func(w io.Writer) Reporter { return NewTableReporter(w) })
		assert.Error(t, err)
	})

	t.Run("invalid registration", func(t *testing.T) {
		r := NewRegistry()
		assert.Error(t, r.Register("", func(w io.Writer) Reporter { return nil }))
		assert.Error(t, r.Register("csv", nil))
	})
}
