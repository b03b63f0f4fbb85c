package output

import (
	"encoding/json"

	"github.com/jusliketht/bbofficial-sub003/internal/domain"
)

// JSONFormatter emits results as JSON
type JSONFormatter struct {
	Indent string
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) FormatComparison(result *domain.RegimeComparisonResult) ([]byte, error) {
	return j.marshal(result)
}

func (j JSONFormatter) FormatComputation(result *domain.TaxComputationResult) ([]byte, error) {
	return j.marshal(result)
}

type batchRowJSON struct {
	Label      string                         `json:"label"`
	Comparison *domain.RegimeComparisonResult `json:"comparison,omitempty"`
	Error      string                         `json:"error,omitempty"`
}

func (j JSONFormatter) FormatBatch(rows []BatchRow) ([]byte, error) {
	out := make([]batchRowJSON, 0, len(rows))
	for _, r := range rows {
		row := batchRowJSON{Label: r.Label, Comparison: r.Comparison}
		if r.Err != nil {
			row.Error = r.Err.Error()
			row.Comparison = nil
		}
		out = append(out, row)
	}
	return j.marshal(out)
}

func (j JSONFormatter) marshal(v any) ([]byte, error) {
	if j.Indent == "" {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", j.Indent)
}
