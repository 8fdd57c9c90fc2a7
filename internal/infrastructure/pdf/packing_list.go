// Package pdf implementa la generación del packing list (documento de
// preparación) de un despacho.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Packing List  │  N° Documento + Fecha              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: detalles de destino                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Pedido | Despachado                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DE UNIDADES + Notas                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/apetrovv/warehouse-api/internal/application/stock"
	"github.com/apetrovv/warehouse-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ stock.PackingListGenerator = (*MarotoPackingListGenerator)(nil)

// MarotoPackingListGenerator implementa stock.PackingListGenerator usando Maroto v2.
type MarotoPackingListGenerator struct{}

// NewMarotoPackingListGenerator construye el generador.
func NewMarotoPackingListGenerator() *MarotoPackingListGenerator { return &MarotoPackingListGenerator{} }

// GeneratePackingList genera el PDF y devuelve sus bytes.
func (g *MarotoPackingListGenerator) GeneratePackingList(_ context.Context, shipment *entity.OutboundShipment) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Packing List "+shipment.DocumentNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(shipment))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(shipment))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(shipment.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(shipment))
	if shipment.Notes != "" {
		m.AddRows(notesRow(shipment.Notes))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y número de documento + fecha planificada (der).
func headerRow(shipment *entity.OutboundShipment) core.Row {
	fecha := ""
	if shipment.PlannedShippingDate != nil {
		fecha = shipment.PlannedShippingDate.Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("PACKING LIST", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Documento de preparación de despacho", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(shipment.DocumentNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha planificada: "+fecha, props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente/destino.
func customerRow(shipment *entity.OutboundShipment) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray}),
			text.New(shipment.CustomerDetails, props.Text{Size: 10, Top: 4}),
		),
	)
}

func tableHeaderRow() core.Row {
	style := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorWhite, Top: 1.5}
	bg := colorPrimary
	return row.New(7).Add(
		col.New(3).Add(text.New("SKU", style)).WithStyle(&props.Cell{BackgroundColor: bg}),
		col.New(5).Add(text.New("Producto", style)).WithStyle(&props.Cell{BackgroundColor: bg}),
		col.New(2).Add(text.New("Pedido", mergeAlign(style, align.Right))).WithStyle(&props.Cell{BackgroundColor: bg}),
		col.New(2).Add(text.New("Despachado", mergeAlign(style, align.Right))).WithStyle(&props.Cell{BackgroundColor: bg}),
	)
}

func tableItemRows(items []*entity.OutboundItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(it.ProductSKU, props.Text{Size: 9, Top: 1})),
			col.New(5).Add(text.New(it.ProductName, props.Text{Size: 9, Top: 1})),
			col.New(2).Add(text.New(strconv.Itoa(it.QuantityOrdered), props.Text{Size: 9, Top: 1, Align: align.Right})),
			col.New(2).Add(text.New(strconv.Itoa(it.QuantityShipped), props.Text{Size: 9, Top: 1, Align: align.Right})),
		))
	}
	return rows
}

func totalsRow(shipment *entity.OutboundShipment) core.Row {
	total := 0
	for _, it := range shipment.Items {
		total += it.QuantityOrdered
	}
	return row.New(8).Add(
		col.New(8),
		col.New(4).Add(
			text.New(fmt.Sprintf("TOTAL DE UNIDADES: %d", total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2, Color: colorPrimary,
			}),
		),
	)
}

func notesRow(notes string) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("Notas: "+notes, props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

func mergeAlign(t props.Text, a align.Type) props.Text {
	t.Align = a
	return t
}
