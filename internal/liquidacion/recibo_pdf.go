package liquidacion

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// renderReciboPDF arma el recibo de sueldo en A4. Las dos columnas
// replican el formato clásico: haberes a la izquierda, deducciones a la
// derecha, totales al pie.
func renderReciboPDF(liq Liquidacion) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Recibo de Sueldo", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	periodo := fmt.Sprintf("Período: %s al %s",
		liq.FechaInicio.Format("02/01/2006"),
		liq.FechaFin.Format("02/01/2006"),
	)
	pdf.CellFormat(contentW, 6, periodo, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if liq.Contrato != nil {
		pdf.SetFont("Helvetica", "B", 10)
		empleado := liq.Contrato.EmpleadoID.String()
		if liq.Contrato.Empleado != nil {
			empleado = liq.Contrato.Empleado.NombreCompleto()
		}
		pdf.CellFormat(contentW, 6, "Empleado: "+empleado, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, 5, "Salario básico de convenio: $"+liq.Contrato.Salario.StringFixed(2), "", 1, "L", false, 0, "")
		pdf.Ln(3)
	}

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	colConcepto := contentW * 0.60
	colMonto := contentW * 0.40

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colConcepto, 6, "Concepto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colMonto, 6, "Monto", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	writeLinea := func(nombre string, monto decimal.Decimal, negativo bool) {
		if monto.IsZero() {
			return
		}
		signo := "$"
		if negativo {
			signo = "-$"
		}
		pdf.CellFormat(colConcepto, 6, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(colMonto, 6, signo+monto.StringFixed(2), "", 1, "R", false, 0, "")
	}

	writeLinea("Sueldo básico", liq.Basico, false)
	writeLinea("Antigüedad", liq.Antiguedad, false)
	writeLinea("Presentismo", liq.Presentismo, false)
	writeLinea("Horas extras", liq.HorasExtras, false)
	writeLinea("Vacaciones", liq.Vacaciones, false)
	writeLinea("SAC", liq.SAC, false)
	writeLinea("Inasistencias", liq.Inasistencias, true)

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colConcepto, 6, "Total bruto", "T", 0, "L", false, 0, "")
	pdf.CellFormat(colMonto, 6, "$"+liq.TotalBruto.StringFixed(2), "T", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	writeLinea("Retenciones", liq.TotalRetenciones, true)
	writeLinea("Vacaciones no gozadas", liq.VacacionesNoGozadas, false)

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(colConcepto, 8, "NETO A COBRAR", "T", 0, "L", false, 0, "")
	pdf.CellFormat(colMonto, 8, "$"+liq.Neto.StringFixed(2), "T", 1, "R", false, 0, "")

	if liq.EstaPagada && liq.FechaPago != nil {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(contentW, 5, "Pagada el "+liq.FechaPago.Format("02/01/2006"), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("recibo pdf: %w", err)
	}
	return buf.Bytes(), nil
}
