// Package report renders indicator reports as JSON or YAML documents.
package report

import (
	"math"
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/shopspring/decimal"
)

// Document is the serializable form of an IndicatorReport.
//
// Scalar indicators map to a number, vector indicators (MACD) map to an
// object of their components.
type Document struct {
	ID         string                `json:"id" yaml:"id"`
	Symbol     string                `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Source     string                `json:"source,omitempty" yaml:"source,omitempty"`
	Samples    int                   `json:"samples" yaml:"samples"`
	Start      string                `json:"start,omitempty" yaml:"start,omitempty"`
	End        string                `json:"end,omitempty" yaml:"end,omitempty"`
	Indicators map[string]any        `json:"indicators" yaml:"indicators"`
	Errors     map[string]ErrorEntry `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// ErrorEntry describes why an indicator could not be computed.
type ErrorEntry struct {
	Code    errors.ErrorCode `json:"code" yaml:"code"`
	Message string           `json:"message" yaml:"message"`
}

// NewDocument converts a report, rounding every value to precision decimals.
func NewDocument(report types.IndicatorReport, precision int) Document {
	doc := Document{
		ID:         report.ID,
		Symbol:     report.Symbol,
		Source:     report.Source,
		Samples:    report.Samples,
		Indicators: make(map[string]any, len(report.Results)),
	}

	if report.Samples > 0 {
		doc.Start = report.Start.UTC().Format(time.RFC3339)
		doc.End = report.End.UTC().Format(time.RFC3339)
	}

	for name, result := range report.Results {
		if !isFinite(result) {
			doc.addError(name, errors.Newf(errors.ErrCodeNumericOverflow, "%s result is not finite", name))

			continue
		}

		if result.IsScalar() {
			doc.Indicators[string(name)] = Round(result.Value(), precision)

			continue
		}

		components := make(map[string]float64, len(result.Values))
		for key, value := range result.Values {
			components[key] = Round(value, precision)
		}

		doc.Indicators[string(name)] = components
	}

	for name, err := range report.Errors {
		doc.addError(name, err)
	}

	return doc
}

func (d *Document) addError(name types.IndicatorType, err error) {
	if d.Errors == nil {
		d.Errors = make(map[string]ErrorEntry)
	}

	d.Errors[string(name)] = ErrorEntry{
		Code:    errors.GetCode(err),
		Message: err.Error(),
	}
}

// isFinite reports whether every component of result can be rounded.
func isFinite(result types.IndicatorResult) bool {
	for _, value := range result.Values {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return false
		}
	}

	return true
}

// NewDocuments converts a batch of reports, keeping their order.
func NewDocuments(reports []types.IndicatorReport, precision int) []Document {
	docs := make([]Document, len(reports))
	for i, report := range reports {
		docs[i] = NewDocument(report, precision)
	}

	return docs
}

// Round rounds value half away from zero to the given number of decimals.
func Round(value float64, precision int) float64 {
	return decimal.NewFromFloat(value).Round(int32(precision)).InexactFloat64()
}
