// Package pdf genera la guía de envío imprimible.
//
// Layout de la página A5:
//
//	┌──────────────────────────────────────────────┐
//	│  HEADER: SmartStock  │  N° Guía + Fecha       │
//	│  ──────────────────────────────────────────  │
//	│  DESTINATARIO: Cliente                        │
//	│  CONTENIDO: Producto + Cantidad               │
//	│  REPARTIDOR + ESTADO                          │
//	│  ──────────────────────────────────────────  │
//	│  QR con el código de rastreo                 │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/smartstock-api/internal/application/shipping"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
)

var _ shipping.LabelGenerator = (*LabelGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// LabelGenerator implementa shipping.LabelGenerator usando Maroto v2.
type LabelGenerator struct {
	issuer string
}

// NewLabelGenerator construye el generador; issuer aparece en la cabecera de la guía.
func NewLabelGenerator(issuer string) *LabelGenerator {
	return &LabelGenerator{issuer: nonEmpty(issuer, "SmartStock")}
}

// GenerateShippingLabel genera el PDF y devuelve sus bytes.
func (g *LabelGenerator) GenerateShippingLabel(ctx context.Context, sh *entity.Shipment) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sh == nil || sh.TrackingCode == "" {
		return nil, fmt.Errorf("pdf: envío sin código de rastreo")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Guía de envío "+sh.TrackingCode, true).
		WithAuthor(g.issuer, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sh))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(field("DESTINATARIO", nonEmpty(sh.CustomerName, "Cliente #"+strconv.FormatInt(sh.CustomerID, 10))))
	m.AddRows(field("CONTENIDO", fmt.Sprintf("%s  x %d", nonEmpty(sh.ProductName, "-"), sh.Quantity)))
	m.AddRows(field("REPARTIDOR", nonEmpty(sh.CourierName, "Sin asignar")))
	m.AddRows(field("PEDIDO / ESTADO", fmt.Sprintf("#%d  |  %s", sh.OrderID, sh.Status)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(qrRow(sh.TrackingCode))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar guía: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *LabelGenerator) headerRow(sh *entity.Shipment) core.Row {
	return row.New(16).Add(
		col.New(5).Add(
			text.New(g.issuer, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(7).Add(
			text.New("GUÍA DE ENVÍO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(sh.TrackingCode, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 6,
			}),
			text.New("Salida: "+sh.DepartedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 7, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

func field(label, value string) core.Row {
	return row.New(11).Add(
		col.New(12).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Size: 10, Top: 5}),
		),
	)
}

// qrRow: el QR codifica el código de rastreo tal cual, para consultarlo en /api/envios/tracking/:codigo.
func qrRow(tracking string) core.Row {
	return row.New(45).Add(
		col.New(5).Add(code.NewQr(tracking, props.Rect{Percent: 95, Center: true})),
		col.New(7).Add(
			text.New("Escanea el código para rastrear el envío.", props.Text{
				Size: 8, Top: 6, Left: 3, Color: colorGray,
			}),
			text.New("Entregar solo al titular del contrato.", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 22, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
