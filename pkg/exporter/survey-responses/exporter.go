package surveyresponses

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

const (
	EXPORT_FORMAT_CSV  = "csv"
	EXPORT_FORMAT_JSON = "json"
)

type ResponseExporter struct {
	writer  io.Writer
	format  string
	columns []string
	counter int
}

// NewResponseExporter prepares an export. For CSV the columns must be known up front, see
// ColumnCollector.
func NewResponseExporter(
	writer io.Writer,
	format string,
	columns []string,
) (*ResponseExporter, error) {
	switch format {
	case EXPORT_FORMAT_CSV, EXPORT_FORMAT_JSON:
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return &ResponseExporter{
		writer:  writer,
		format:  format,
		columns: columns,
	}, nil
}

func (re *ResponseExporter) Init() error {
	re.counter = 0

	var err error
	switch re.format {
	case EXPORT_FORMAT_CSV:
		_, err = io.WriteString(re.writer, strings.Join(re.columns, ",")+"\n")
	case EXPORT_FORMAT_JSON:
		_, err = io.WriteString(re.writer, `{ "responses": [`)
	}
	return err
}

func (re *ResponseExporter) WriteResponse(r types.SurveyResponse) error {
	if re.writer == nil {
		return fmt.Errorf("writer not initialized")
	}

	switch re.format {
	case EXPORT_FORMAT_CSV:
		line := strings.Join(responseToCells(r, re.columns), ",") + "\n"
		if _, err := io.WriteString(re.writer, line); err != nil {
			return err
		}
	case EXPORT_FORMAT_JSON:
		rV, err := json.Marshal(r)
		if err != nil {
			return err
		}
		if re.counter > 0 {
			if _, err = io.WriteString(re.writer, ","); err != nil {
				return err
			}
		}
		if _, err = re.writer.Write(rV); err != nil {
			return err
		}
	}

	re.counter += 1
	return nil
}

func (re *ResponseExporter) Finish() error {
	if re.format == EXPORT_FORMAT_JSON {
		_, err := io.WriteString(re.writer, "]}")
		return err
	}
	return nil
}

func (re *ResponseExporter) Count() int {
	return re.counter
}

// Export writes all responses in one go. An empty CSV export writes nothing.
func Export(w io.Writer, format string, def types.SurveyDefinition, responses []types.SurveyResponse) error {
	if format == EXPORT_FORMAT_CSV && len(responses) == 0 {
		return nil
	}

	cc := NewColumnCollectorForDefinition(def)
	for _, r := range responses {
		cc.Add(r)
	}

	re, err := NewResponseExporter(w, format, cc.Columns())
	if err != nil {
		return err
	}
	if err := re.Init(); err != nil {
		return err
	}
	for _, r := range responses {
		if err := re.WriteResponse(r); err != nil {
			return err
		}
	}
	return re.Finish()
}
