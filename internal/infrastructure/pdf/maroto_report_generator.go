// Package pdf genera el reporte de inventario del catálogo con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Bajo stock │ Sin stock │ Total productos           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  POR ESTADO: Estado | Productos | Valor inventario           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BAJO STOCK: SKU | Nombre | Estado | Precio | Cantidad       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-admin-api/internal/application/dto"
	"github.com/jhoicas/catalogo-admin-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.StatsReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa ports.StatsReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	author string
}

// NewMarotoReportGenerator construye el generador; author va en los metadatos del PDF.
func NewMarotoReportGenerator(author string) *MarotoReportGenerator {
	return &MarotoReportGenerator{author: author}
}

// GenerateStatsReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStatsReport(_ context.Context, report ports.StatsReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report.Stats))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow("PRODUCTOS POR ESTADO"))
	m.AddRows(statusHeaderRow())
	m.AddRows(statusRows(report.Stats.ByStatus)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitleRow(fmt.Sprintf("BAJO STOCK (%d)", len(report.LowStock))))
	if len(report.LowStock) == 0 {
		m.AddRows(row.New(7).Add(col.New(12).Add(
			text.New("Sin productos con bajo stock.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	} else {
		m.AddRows(lowStockHeaderRow())
		m.AddRows(lowStockRows(report.LowStock)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(report ports.StatsReport) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(nonEmpty(report.Title, "Inventory report"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// summaryRow: tres indicadores en columnas iguales.
func summaryRow(stats dto.ProductStatsResponse) core.Row {
	var total int64
	for _, s := range stats.ByStatus {
		total += s.Count
	}
	kpi := func(label string, value int64, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%d", value), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: c, Top: 6,
			}),
		)
	}
	return row.New(16).Add(
		kpi("Bajo stock", stats.LowStock, colorAlert),
		kpi("Sin stock", stats.OutOfStock, colorAlert),
		kpi("Total productos", total, colorPrimary),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

func headerCol(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorWhite, Top: 2, Left: 1, Right: 1,
	}))
}

func cellCol(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

// statusHeaderRow: cabecera con fondo de color primario.
func statusHeaderRow() core.Row {
	return row.New(8).Add(
		headerCol("Estado", 6, align.Left),
		headerCol("Productos", 3, align.Center),
		headerCol("Valor inventario", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func statusRows(stats []dto.StatusStatResponse) []core.Row {
	rows := make([]core.Row, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, row.New(7).Add(
			cellCol(s.Status, 6, align.Left),
			cellCol(fmt.Sprintf("%d", s.Count), 3, align.Center),
			cellCol("$"+formatMoney(s.TotalValue), 3, align.Right),
		))
	}
	return rows
}

func lowStockHeaderRow() core.Row {
	return row.New(8).Add(
		headerCol("SKU", 2, align.Left),
		headerCol("Nombre", 5, align.Left),
		headerCol("Estado", 2, align.Center),
		headerCol("Precio", 2, align.Right),
		headerCol("Cant.", 1, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// lowStockRows: la cantidad en cero se resalta.
func lowStockRows(products []dto.ProductResponse) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		qty := text.New(fmt.Sprintf("%d", p.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})
		if p.Quantity == 0 {
			qty = text.New("0", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: colorAlert})
		}
		rows = append(rows, row.New(7).Add(
			cellCol(p.SKU, 2, align.Left),
			cellCol(truncate(p.Name, 48), 5, align.Left),
			cellCol(p.Status, 2, align.Center),
			cellCol("$"+formatMoney(p.Price), 2, align.Right),
			col.New(1).Add(qty),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney dos decimales y comas de miles.
// Ej: 25000 → "25,000.00", 1234567.891 → "1,234,567.89"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + frac
}

// truncate corta s a n runas con "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
