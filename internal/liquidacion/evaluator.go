package liquidacion

import (
	"fmt"

	"github.com/joaquinkuster/rrhh-sub001/internal/concepto"
	liquidacionerrors "github.com/joaquinkuster/rrhh-sub001/internal/liquidacion/errors"

	"github.com/shopspring/decimal"
)

var cien = decimal.NewFromInt(100)

// ItemsManuales son los ítems cargados por el operador; no salen del
// catálogo de conceptos.
type ItemsManuales struct {
	HorasExtras         decimal.Decimal
	Vacaciones          decimal.Decimal
	SAC                 decimal.Decimal
	Inasistencias       decimal.Decimal
	VacacionesNoGozadas decimal.Decimal
}

type EntradaEvaluacion struct {
	Salario                 decimal.Decimal
	AusenciasInjustificadas int
	LimiteAusencias         int
	Conceptos               []concepto.Concepto
	Manuales                ItemsManuales
}

type RetencionDetalle struct {
	Nombre string
	Monto  decimal.Decimal
}

// Detalle is the full evaluation result for one contract and period.
type Detalle struct {
	Basico              decimal.Decimal
	Antiguedad          decimal.Decimal
	Presentismo         decimal.Decimal
	HorasExtras         decimal.Decimal
	Vacaciones          decimal.Decimal
	SAC                 decimal.Decimal
	Inasistencias       decimal.Decimal
	VacacionesNoGozadas decimal.Decimal

	TotalBruto       decimal.Decimal
	TotalRetenciones decimal.Decimal
	Neto             decimal.Decimal

	Retenciones []RetencionDetalle
}

// Evaluar resuelve el catálogo contra un contrato en dos fases. Las
// deducciones porcentuales se aplican sobre el bruto, que no existe
// hasta sumar todos los remunerativos; por eso el orden es fijo:
// remunerativos → totalBruto → deducciones → neto.
//
// The function is pure: no I/O, no clock, decimal arithmetic only.
func Evaluar(in EntradaEvaluacion) (Detalle, error) {
	d := Detalle{
		Basico:              in.Salario,
		Antiguedad:          decimal.Zero,
		Presentismo:         decimal.Zero,
		HorasExtras:         in.Manuales.HorasExtras,
		Vacaciones:          in.Manuales.Vacaciones,
		SAC:                 in.Manuales.SAC,
		Inasistencias:       in.Manuales.Inasistencias,
		VacacionesNoGozadas: in.Manuales.VacacionesNoGozadas,
	}

	// Fase 1: remunerativos contra el salario básico.
	for _, c := range in.Conceptos {
		if !c.Activo || c.Tipo != concepto.TipoRemunerativo {
			continue
		}

		if c.Formula != nil && c.Formula.SobreBruto() {
			return Detalle{}, errorConfiguracion(c)
		}

		monto := resolverMonto(c, in.Salario)

		switch {
		case c.Formula == nil, *c.Formula == concepto.FormulaBasico:
			// Sin columna propia: suma al básico.
			d.Basico = d.Basico.Add(monto)
		case *c.Formula == concepto.FormulaAntiguedad:
			d.Antiguedad = d.Antiguedad.Add(monto)
		case *c.Formula == concepto.FormulaPresentismo:
			d.Presentismo = d.Presentismo.Add(monto)
		default:
			return Detalle{}, errorConfiguracion(c)
		}
	}

	// Pérdida del presentismo: estrictamente más ausencias que el
	// límite anula el ítem completo, sin tocar el resto.
	if in.AusenciasInjustificadas > in.LimiteAusencias {
		d.Presentismo = decimal.Zero
	}

	d.TotalBruto = d.Basico.
		Add(d.Antiguedad).
		Add(d.Presentismo).
		Add(d.HorasExtras).
		Add(d.Vacaciones).
		Add(d.SAC).
		Sub(d.Inasistencias)

	// Fase 2: deducciones contra el bruto recién derivado.
	retenciones, total, err := resolverDeducciones(in.Conceptos, d.TotalBruto)
	if err != nil {
		return Detalle{}, err
	}
	d.Retenciones = retenciones
	d.TotalRetenciones = total

	// Las vacaciones no gozadas se pagan después de retener: no
	// integran la base de las deducciones.
	d.Neto = d.TotalBruto.Sub(d.TotalRetenciones).Add(d.VacacionesNoGozadas)

	return d, nil
}

// RecalcularTotales rederiva bruto, retenciones y neto a partir de los
// ítems ya cargados en la liquidación, aplicando el catálogo de
// deducciones vigente. Lo usa la edición manual de una liquidación
// generada.
func RecalcularTotales(liq *Liquidacion, conceptos []concepto.Concepto) error {
	liq.TotalBruto = liq.Basico.
		Add(liq.Antiguedad).
		Add(liq.Presentismo).
		Add(liq.HorasExtras).
		Add(liq.Vacaciones).
		Add(liq.SAC).
		Sub(liq.Inasistencias)

	_, total, err := resolverDeducciones(conceptos, liq.TotalBruto)
	if err != nil {
		return err
	}

	liq.TotalRetenciones = total
	liq.Neto = liq.TotalBruto.Sub(liq.TotalRetenciones).Add(liq.VacacionesNoGozadas)

	return nil
}

func resolverDeducciones(
	conceptos []concepto.Concepto,
	totalBruto decimal.Decimal,
) ([]RetencionDetalle, decimal.Decimal, error) {
	var retenciones []RetencionDetalle
	total := decimal.Zero

	for _, c := range conceptos {
		if !c.Activo || c.Tipo != concepto.TipoDeduccion {
			continue
		}

		if c.Formula != nil && c.Formula.SobreBasico() {
			return nil, decimal.Zero, errorConfiguracion(c)
		}

		// Toda deducción porcentual resuelve contra el bruto, tenga o
		// no etiqueta: las fórmulas sobre básico ya fueron rechazadas.
		monto := resolverMonto(c, totalBruto)
		total = total.Add(monto)
		retenciones = append(retenciones, RetencionDetalle{Nombre: c.Nombre, Monto: monto})
	}

	return retenciones, total, nil
}

// resolverMonto aplica el valor del concepto sobre la base: puntos
// porcentuales divididos por 100, o el monto fijo tal cual. Cada
// contribución se redondea a centavos.
func resolverMonto(c concepto.Concepto, base decimal.Decimal) decimal.Decimal {
	if c.EsPorcentaje {
		return base.Mul(c.Valor).Div(cien).Round(2)
	}
	return c.Valor.Round(2)
}

func errorConfiguracion(c concepto.Concepto) error {
	formula := ""
	if c.Formula != nil {
		formula = string(*c.Formula)
	}
	return fmt.Errorf("%w: concepto %q (tipo %s, fórmula %s)",
		liquidacionerrors.ErrConceptoMalConfigurado, c.Nombre, c.Tipo, formula)
}
