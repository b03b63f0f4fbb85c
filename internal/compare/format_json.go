package compare

import (
	"encoding/json"
)

// JSONFormatter formats plan comparisons as JSON
type JSONFormatter struct {
	Pretty bool

	// SummaryOnly drops the full regime breakdown of every plan and keeps
	// the ranking metrics
	SummaryOnly bool
}

// Format generates JSON output for a plan set
func (jf *JSONFormatter) Format(set *PlanSet) (string, error) {
	out := set
	if jf.SummaryOnly {
		out = summarize(set)
	}

	marshal := json.Marshal
	if jf.Pretty {
		marshal = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	}
	data, err := marshal(out)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// summarize copies set with every Comparison removed
func summarize(set *PlanSet) *PlanSet {
	cp := *set
	if set.Base != nil {
		base := *set.Base
		base.Comparison = nil
		cp.Base = &base
	}
	cp.Alternatives = make([]PlanResult, len(set.Alternatives))
	for i, alt := range set.Alternatives {
		alt.Comparison = nil
		cp.Alternatives[i] = alt
	}
	return &cp
}
