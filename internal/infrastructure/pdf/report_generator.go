// Package pdf genera el reporte ejecutivo de KPIs del dataset sintético.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte + fecha de corrida               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Clientes / Churn / Revenue / CAC / LTV / Health       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Top segmentos por LTV/CAC                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Revenue mensual cobrado                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"sort"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kpilab/saasmetrics/internal/domain/entity"
	"github.com/kpilab/saasmetrics/internal/domain/repository"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// maxSegmentRows segmentos mostrados en la tabla (los de mejor LTV/CAC).
const maxSegmentRows = 15

// printer formatea montos con separador de miles.
var printer = message.NewPrinter(language.English)

// ReportGenerator genera el reporte ejecutivo en PDF usando Maroto v2.
type ReportGenerator struct{}

// NewReportGenerator construye el generador.
func NewReportGenerator() *ReportGenerator { return &ReportGenerator{} }

// GenerateKPIReport genera el PDF y devuelve sus bytes.
func (g *ReportGenerator) GenerateKPIReport(
	summary *repository.DashboardSummary,
	segments []entity.SegmentEconomics,
	revenue []repository.MonthlyRevenuePoint,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Unit Economics", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRows(summary)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("TOP SEGMENTOS POR LTV/CAC"))
	m.AddRows(segmentHeaderRow())
	for _, r := range segmentRows(segments) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("REVENUE MENSUAL COBRADO"))
	m.AddRows(revenueHeaderRow())
	for _, r := range revenueRows(revenue) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE UNIT ECONOMICS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Dataset sintético SaaS B2B", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// kpiRows: dos filas de tres KPIs cada una.
func kpiRows(s *repository.DashboardSummary) []core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{
				Size: 7.5, Color: colorGray, Top: 1, Align: align.Center,
			}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary,
				Top: 5, Align: align.Center,
			}),
		)
	}
	return []core.Row{
		row.New(14).Add(
			kpi("CLIENTES", printer.Sprintf("%d", s.CustomerCount)),
			kpi("TASA DE CHURN", fmt.Sprintf("%.1f%%", s.ChurnRate*100)),
			kpi("REVENUE TOTAL", "$"+printer.Sprintf("%.0f", s.TotalRevenue.InexactFloat64())),
		),
		row.New(14).Add(
			kpi("CAC PROMEDIO", "$"+printer.Sprintf("%.0f", s.AvgCAC.InexactFloat64())),
			kpi("LTV PROMEDIO", "$"+printer.Sprintf("%.0f", s.AvgLTV.InexactFloat64())),
			kpi("HEALTH PROMEDIO", fmt.Sprintf("%.2f", s.AvgHealthScore)),
		),
	}
}

func sectionTitle(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

func segmentHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Industria", 3, align.Left),
		h("Tamaño", 2, align.Left),
		h("Plan", 2, align.Left),
		h("LTV/CAC", 2, align.Right),
		h("Payback (m)", 2, align.Right),
		h("Clientes", 1, align.Right),
	)
}

// segmentRows: top segmentos ordenados por LTV/CAC descendente.
func segmentRows(segments []entity.SegmentEconomics) []core.Row {
	sorted := make([]entity.SegmentEconomics, len(segments))
	copy(sorted, segments)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].AvgLTVCAC > sorted[j].AvgLTVCAC })
	if len(sorted) > maxSegmentRows {
		sorted = sorted[:maxSegmentRows]
	}

	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7.5, Align: a, Top: 0.5}))
	}
	result := make([]core.Row, 0, len(sorted))
	for _, s := range sorted {
		result = append(result, row.New(5).Add(
			cell(s.Industry, 3, align.Left),
			cell(s.CompanySize, 2, align.Left),
			cell(s.InitialPlan, 2, align.Left),
			cell(fmt.Sprintf("%.2f", s.AvgLTVCAC), 2, align.Right),
			cell(fmt.Sprintf("%.1f", s.AvgPaybackMonths), 2, align.Right),
			cell(printer.Sprintf("%d", s.CustomerCount), 1, align.Right),
		))
	}
	return result
}

func revenueHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Mes", 4, align.Left),
		h("Revenue", 4, align.Right),
		h("Pagos", 4, align.Right),
	)
}

func revenueRows(points []repository.MonthlyRevenuePoint) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7.5, Align: a, Top: 0.5}))
	}
	result := make([]core.Row, 0, len(points))
	for _, p := range points {
		result = append(result, row.New(5).Add(
			cell(p.Month.Format("2006-01"), 4, align.Left),
			cell("$"+printer.Sprintf("%.2f", p.Revenue.InexactFloat64()), 4, align.Right),
			cell(printer.Sprintf("%d", p.PaymentCount), 4, align.Right),
		))
	}
	return result
}
