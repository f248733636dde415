package infra

// pdf.go - PDF generation using go-pdf/fpdf.
// Two documents are produced here:
//   - Comanda: a thermal-sized kitchen ticket printed when a pedido is taken,
//     showing the tab (mesa number or barra ticket) and its lines.
//   - Cierre: an A4 daily-close report with totals, the product ranking and
//     the extraction balance, mailed to the owner on request.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alejoalf/Sistema-bar/internal/dto"
	"github.com/alejoalf/Sistema-bar/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateComandaPDF writes the kitchen ticket for a pedido and returns the
// absolute path of the generated file.
func GenerateComandaPDF(pedido *model.Pedido, nombreLocal, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("comanda_%s.pdf", pedido.ID)
	filePath := filepath.Join(storagePath, fileName)

	// 74mm x 105mm, close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	// Core fonts take cp1252 input; tr maps the UTF-8 strings we store
	// (product names, sector labels) into it.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, tr(nombreLocal), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Comanda", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, tr(etiquetaTab(pedido)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, pedido.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 9)
	for _, d := range pedido.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		if r := []rune(nombre); len(r) > 26 {
			nombre = string(r[:25]) + "..."
		}
		pdf.CellFormat(contentW, 6, tr(fmt.Sprintf("%dx  %s", d.Cantidad, nombre)), "", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerateCierrePDF writes the daily-close report for one day bucket and
// returns the absolute path of the generated file.
func GenerateCierrePDF(cierre *dto.CierreDia, nombreLocal, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("cierre_%s.pdf", cierre.Fecha)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 10, tr(nombreLocal), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 7, tr("Cierre del día "+cierre.Fecha), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// ── Resumen ───────────────────────────────────────────────────────────────
	labelW := contentW * 0.6
	valueW := contentW * 0.4
	fila := func(label, value string, bold bool) {
		estilo := ""
		if bold {
			estilo = "B"
		}
		pdf.SetFont("Helvetica", estilo, 10)
		pdf.CellFormat(labelW, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 7, value, "", 1, "R", false, 0, "")
	}

	fila("Pedidos cobrados", fmt.Sprintf("%d", cierre.CantidadPedidos), false)
	fila("Cuentas cerradas", fmt.Sprintf("%d", cierre.CuentasCerradas), false)
	fila("Total recaudado", "$"+cierre.TotalRecaudado.StringFixed(2), false)
	fila("Total extraído", "-$"+cierre.TotalExtraido.StringFixed(2), false)
	fila("Neto", "$"+cierre.Neto.StringFixed(2), true)
	pdf.Ln(6)

	// ── Ranking de productos ──────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 8, tr("Productos más vendidos"), "", 1, "L", false, 0, "")

	col1 := contentW * 0.44
	col2 := contentW * 0.22
	col3 := contentW * 0.14
	col4 := contentW * 0.20

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 7, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, tr("Categoría"), "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 7, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 7, "Recaudado", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, r := range cierre.Ranking {
		pdf.CellFormat(col1, 6, tr(r.Nombre), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, tr(r.Categoria), "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, fmt.Sprintf("%d", r.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+r.Recaudado.StringFixed(2), "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

func etiquetaTab(p *model.Pedido) string {
	if p.Mesa != nil {
		return fmt.Sprintf("Mesa %d - %s", p.Mesa.NumeroMesa, p.Mesa.Sector)
	}
	if p.TicketBarra != nil {
		cliente := ""
		if p.Cliente != nil {
			cliente = " - " + *p.Cliente
		}
		return fmt.Sprintf("Barra #%d%s", *p.TicketBarra, cliente)
	}
	return "Pedido"
}
