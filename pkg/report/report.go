package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/metrics"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

const (
	pageMargin  = 15.0
	lineHeight  = 7.0
	labelWidth  = 70.0
	valueWidth  = 30.0
	maxCompRows = 15
)

// MetricsReport is everything printed in the brand-health PDF.
type MetricsReport struct {
	Bank        types.Bank
	Criteria    metrics.FilterCriteria
	Dashboard   metrics.DashboardMetrics
	Competitors []metrics.CompetitorRow
	Trend       []metrics.TrendPoint
	GeneratedAt time.Time
}

// WritePDF renders the report as an A4 document into w.
func (r MetricsReport) WritePDF(w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Brand health report: %s", r.Bank.Name))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, r.filterSummary(), "", "L", false)
	pdf.Ln(4)

	m := r.Dashboard.Metrics
	section(pdf, "Key metrics")
	tableHeader(pdf, []string{"Metric", "Value", "Rank", "Change"}, []float64{labelWidth, valueWidth, valueWidth, valueWidth})
	rankedRow(pdf, "Top of mind (%)", m.TopOfMind)
	rankedRow(pdf, "Total awareness (%)", m.TotalAwareness)
	rankedRow(pdf, "Net promoter score", m.NPS.RankedMetric)
	rankedRow(pdf, "Momentum (%)", m.Momentum.RankedMetric)
	rankedRow(pdf, "Consideration (%)", m.Consideration)
	pdf.Ln(4)

	section(pdf, "NPS breakdown")
	kvRow(pdf, "Promoters (%)", m.NPS.Promoters)
	kvRow(pdf, "Passives (%)", m.NPS.Passives)
	kvRow(pdf, "Detractors (%)", m.NPS.Detractors)
	pdf.Ln(4)

	section(pdf, "Loyalty segments")
	kvRow(pdf, "Committed (%)", m.Loyalty.Committed)
	kvRow(pdf, "Favors (%)", m.Loyalty.Favors)
	kvRow(pdf, "Potential (%)", m.Loyalty.Potential)
	kvRow(pdf, "Rejectors (%)", m.Loyalty.Rejectors)
	kvRow(pdf, "Accessibles (%)", m.Loyalty.Accessibles)
	pdf.Ln(4)

	section(pdf, "Usage funnel")
	kvRow(pdf, "Aware (%)", m.Snapshot.Aware)
	kvRow(pdf, "Triers (%)", m.Snapshot.Triers)
	kvRow(pdf, "Current users (%)", m.Snapshot.Current)
	kvRow(pdf, "Bank used most often (%)", m.Snapshot.BUMO)
	kvRow(pdf, "Conversion (%)", m.Momentum.Conversion)
	kvRow(pdf, "Retention (%)", m.Momentum.Retention)
	kvRow(pdf, "Adoption (%)", m.Momentum.Adoption)

	if len(r.Trend) > 0 {
		pdf.Ln(4)
		section(pdf, "Monthly trend")
		widths := []float64{40, 30, 30, 30, 30}
		tableHeader(pdf, []string{"Month", "Awareness", "NPS", "Usage", "Sample"}, widths)
		for _, p := range r.Trend {
			row(pdf, []string{p.Period, itoa(p.Awareness), itoa(p.NPS), itoa(p.Usage), itoa(p.Sample)}, widths)
		}
	}

	if len(r.Competitors) > 0 {
		pdf.AddPage()
		section(pdf, "Competitors")
		widths := []float64{60, 25, 25, 25, 35}
		tableHeader(pdf, []string{"Bank", "ToM", "Awareness", "NPS", "Consideration"}, widths)
		for i, c := range r.Competitors {
			if i >= maxCompRows {
				break
			}
			row(pdf, []string{c.Name, itoa(c.TopOfMind), itoa(c.TotalAwareness), itoa(c.NPS), itoa(c.Consideration)}, widths)
		}
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func (r MetricsReport) filterSummary() string {
	parts := []string{
		fmt.Sprintf("Sample size: %d", r.Dashboard.SampleSize),
		fmt.Sprintf("Generated: %s", r.GeneratedAt.UTC().Format("2006-01-02 15:04 MST")),
	}
	if r.Criteria.Country != "" {
		parts = append(parts, "Country: "+r.Criteria.Country)
	}
	if r.Criteria.TimePeriod != "" {
		parts = append(parts, "Period: "+r.Criteria.TimePeriod)
	}
	if len(r.Criteria.AgeGroups) > 0 {
		parts = append(parts, "Age groups: "+strings.Join(r.Criteria.AgeGroups, ", "))
	}
	if len(r.Criteria.Genders) > 0 {
		parts = append(parts, "Genders: "+strings.Join(r.Criteria.Genders, ", "))
	}
	return strings.Join(parts, "  |  ")
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
}

func tableHeader(pdf *gofpdf.Fpdf, cols []string, widths []float64) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, c := range cols {
		pdf.CellFormat(widths[i], lineHeight, c, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

func row(pdf *gofpdf.Fpdf, cols []string, widths []float64) {
	pdf.SetFont("Arial", "", 10)
	for i, c := range cols {
		pdf.CellFormat(widths[i], lineHeight, c, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func rankedRow(pdf *gofpdf.Fpdf, label string, m metrics.RankedMetric) {
	row(pdf, []string{label, itoa(m.Value), "#" + itoa(m.Rank), signed(m.Change)}, []float64{labelWidth, valueWidth, valueWidth, valueWidth})
}

func kvRow(pdf *gofpdf.Fpdf, label string, v int) {
	row(pdf, []string{label, itoa(v)}, []float64{labelWidth, valueWidth})
}

func itoa(v int) string {
	return fmt.Sprintf("%d", v)
}

func signed(v int) string {
	if v > 0 {
		return fmt.Sprintf("+%d", v)
	}
	return itoa(v)
}
