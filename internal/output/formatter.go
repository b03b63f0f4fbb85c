package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jusliketht/bbofficial-sub003/internal/domain"
)

// Formatter renders engine results in one output format
type Formatter interface {
	Name() string
	FormatComparison(result *domain.RegimeComparisonResult) ([]byte, error)
	FormatComputation(result *domain.TaxComputationResult) ([]byte, error)
	FormatBatch(rows []BatchRow) ([]byte, error)
}

// BatchRow is one labelled comparison of a batch run. Err is set when the
// comparison failed.
type BatchRow struct {
	Label      string
	Comparison *domain.RegimeComparisonResult
	Err        error
}

var formatters = map[string]func() Formatter{
	"console": func() Formatter { return ConsoleFormatter{} },
	"json":    func() Formatter { return JSONFormatter{Indent: "  "} },
	"csv":     func() Formatter { return CSVFormatter{} },
}

// GetFormatterByName returns the formatter registered under name (case-insensitive)
func GetFormatterByName(name string) (Formatter, error) {
	factory, ok := formatters[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s (available: %s)", name, strings.Join(AvailableFormatterNames(), ", "))
	}
	return factory(), nil
}

// AvailableFormatterNames lists the registered formats, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted writes formatter output, adding a trailing newline when missing
func WriteFormatted(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}
