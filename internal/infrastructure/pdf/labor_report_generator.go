// Package pdf implementa la generación del informe de costos de una labor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de labor + Estado  │  Lote + Fechas           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA INSUMOS: Insumo | Plan. | Usado | P.Unit | Costo      │
//	│  TABLA MAQUINARIA: Descripción | Proveedor | Costo           │
//	│  TABLA MANO DE OBRA: Descripción | Personas | Horas | Costo  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Insumos / Maquinaria / Mano de obra / TOTAL        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	applabor "github.com/luismorales81/agrocloud-sub002/internal/application/labor"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 34, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// LaborReportGenerator implementa labor.ReportePDFGenerator usando Maroto v2.
type LaborReportGenerator struct{}

var _ applabor.ReportePDFGenerator = (*LaborReportGenerator)(nil)

// NewLaborReportGenerator construye el generador.
func NewLaborReportGenerator() *LaborReportGenerator { return &LaborReportGenerator{} }

// GenerarReporteLabor genera el PDF del informe de costos y devuelve sus bytes.
func (g *LaborReportGenerator) GenerarReporteLabor(
	_ context.Context,
	lab *entity.Labor,
	lote *entity.Lote,
	nombresInsumo map[string]string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de costos de labor", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(lab, lote))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(lab.Insumos) > 0 {
		m.AddRows(sectionTitleRow("INSUMOS"))
		m.AddRows(insumosHeaderRow())
		for _, r := range insumosDetailRows(lab.Insumos, nombresInsumo) {
			m.AddRows(r)
		}
	}
	if len(lab.Maquinaria) > 0 {
		m.AddRows(sectionTitleRow("MAQUINARIA"))
		for _, r := range maquinariaRows(lab.Maquinaria) {
			m.AddRows(r)
		}
	}
	if len(lab.ManoObra) > 0 {
		m.AddRows(sectionTitleRow("MANO DE OBRA"))
		for _, r := range manoObraRows(lab.ManoObra) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(lab))

	if lab.Estado == entity.LaborAnulada {
		m.AddRows(anulacionRow(lab))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tipo de labor + estado (izq) y lote + fechas (der).
func headerRow(lab *entity.Labor, lote *entity.Lote) core.Row {
	fechaFin := "—"
	if lab.FechaFin != nil {
		fechaFin = lab.FechaFin.Format("02/01/2006")
	}
	loteNombre := lab.LoteID
	superficie := ""
	if lote != nil {
		loteNombre = lote.Nombre
		superficie = fmt.Sprintf(" (%s ha)", lote.SuperficieHa)
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New("LABOR: "+lab.TipoLabor, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Estado: "+string(lab.Estado), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Lote: "+loteNombre+superficie, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("Inicio: "+lab.FechaInicio.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Fin: "+fechaFin, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

// insumosHeaderRow: cabecera de la tabla de insumos.
func insumosHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Insumo", 4, align.Left),
		h("Planificado", 2, align.Right),
		h("Usado", 2, align.Right),
		h("P. Unit.", 2, align.Right),
		h("Costo", 2, align.Right),
	)
}

// insumosDetailRows: una fila por línea de insumo, con el motivo de desvío debajo.
func insumosDetailRows(lineas []entity.LaborInsumo, nombres map[string]string) []core.Row {
	result := make([]core.Row, 0, len(lineas))
	for _, li := range lineas {
		nombre := nombres[li.InsumoID]
		if nombre == "" {
			nombre = li.InsumoID
		}
		result = append(result, row.New(6).Add(
			col.New(4).Add(text.New(nombre, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(li.CantidadPlanificada.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(li.CantidadUsada.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+li.CostoUnitario.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+li.CostoTotal.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
		if li.MotivoDesvio != "" {
			result = append(result, row.New(5).Add(col.New(12).Add(
				text.New("Desvío justificado: "+li.MotivoDesvio, props.Text{
					Size: 7, Left: 3, Top: 0.5, Color: colorGray,
				}),
			)))
		}
	}
	return result
}

func maquinariaRows(lineas []entity.LaborMaquinaria) []core.Row {
	result := make([]core.Row, 0, len(lineas))
	for _, lm := range lineas {
		proveedor := lm.Proveedor
		if proveedor == "" {
			proveedor = "propia"
		}
		result = append(result, row.New(6).Add(
			col.New(6).Add(text.New(lm.Descripcion, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(proveedor, props.Text{Size: 8, Top: 1, Color: colorGray})),
			col.New(2).Add(text.New("$"+lm.Costo.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func manoObraRows(lineas []entity.LaborManoObra) []core.Row {
	result := make([]core.Row, 0, len(lineas))
	for _, lo := range lineas {
		detalle := fmt.Sprintf("%d persona(s) × %s h × $%s/h",
			lo.CantPersonas, lo.Horas, lo.CostoPorHora.StringFixed(2))
		result = append(result, row.New(6).Add(
			col.New(5).Add(text.New(lo.Descripcion, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(detalle, props.Text{Size: 8, Top: 1, Color: colorGray})),
			col.New(2).Add(text.New("$"+lo.CostoTotal.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: desglose de costos alineado a la derecha.
func totalsRow(lab *entity.Labor) core.Row {
	insumos := decimal.Zero
	for _, li := range lab.Insumos {
		insumos = insumos.Add(li.CostoTotal)
	}
	maquinaria := decimal.Zero
	for _, lm := range lab.Maquinaria {
		maquinaria = maquinaria.Add(lm.Costo)
	}
	manoObra := decimal.Zero
	for _, lo := range lab.ManoObra {
		manoObra = manoObra.Add(lo.CostoTotal)
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	return row.New(26).Add(
		col.New(4),
		col.New(4).Add(
			label("Insumos:"),
			label("Maquinaria:"),
			label("Mano de obra:"),
			text.New("COSTO TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
			}),
		),
		col.New(4).Add(
			value("$"+insumos.StringFixed(2)),
			value("$"+maquinaria.StringFixed(2)),
			value("$"+manoObra.StringFixed(2)),
			text.New("$"+lab.CostoTotal.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
			}),
		),
	)
}

// anulacionRow: auditoría de anulación al pie del informe.
func anulacionRow(lab *entity.Labor) core.Row {
	fecha := ""
	if lab.FechaAnulacion != nil {
		fecha = lab.FechaAnulacion.Format("02/01/2006 15:04")
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("LABOR ANULADA el %s por %s. Motivo: %s",
			fecha, lab.UsuarioAnulacion, lab.MotivoAnulacion), props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 3,
		}),
	))
}
