package liquidacion

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{
	"Empleado",
	"Contrato",
	"Período desde",
	"Período hasta",
	"Básico",
	"Antigüedad",
	"Presentismo",
	"Horas extras",
	"Vacaciones",
	"SAC",
	"Inasistencias",
	"Vac. no gozadas",
	"Total bruto",
	"Retenciones",
	"Neto",
	"Pagada",
}

// renderExcel vuelca el listado filtrado a una planilla, una fila por
// liquidación. Los montos van como float para que Excel los trate como
// números; la verdad contable sigue en la base.
func renderExcel(liquidaciones []Liquidacion) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Liquidaciones"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", "B", 38)
	f.SetColWidth(sheet, "C", "P", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range exportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s1", col)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, liq := range liquidaciones {
		row := i + 2

		empleado := ""
		contratoID := liq.ContratoID.String()
		if liq.Contrato != nil && liq.Contrato.Empleado != nil {
			empleado = liq.Contrato.Empleado.NombreCompleto()
		}

		pagada := "No"
		if liq.EstaPagada {
			pagada = "Sí"
		}

		values := []interface{}{
			empleado,
			contratoID,
			liq.FechaInicio.Format("2006-01-02"),
			liq.FechaFin.Format("2006-01-02"),
			liq.Basico.InexactFloat64(),
			liq.Antiguedad.InexactFloat64(),
			liq.Presentismo.InexactFloat64(),
			liq.HorasExtras.InexactFloat64(),
			liq.Vacaciones.InexactFloat64(),
			liq.SAC.InexactFloat64(),
			liq.Inasistencias.InexactFloat64(),
			liq.VacacionesNoGozadas.InexactFloat64(),
			liq.TotalBruto.InexactFloat64(),
			liq.TotalRetenciones.InexactFloat64(),
			liq.Neto.InexactFloat64(),
			pagada,
		}

		for j, v := range values {
			col, _ := excelize.ColumnNumberToName(j + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
