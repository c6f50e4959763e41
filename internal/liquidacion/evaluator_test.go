package liquidacion_test

import (
	"errors"
	"testing"

	"github.com/joaquinkuster/rrhh-sub001/internal/concepto"
	"github.com/joaquinkuster/rrhh-sub001/internal/liquidacion"
	liquidacionerrors "github.com/joaquinkuster/rrhh-sub001/internal/liquidacion/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func formulaPtr(f concepto.Formula) *concepto.Formula {
	return &f
}

func pct(nombre string, tipo concepto.TipoConcepto, valor string, formula *concepto.Formula) concepto.Concepto {
	return concepto.Concepto{
		Nombre:       nombre,
		Tipo:         tipo,
		EsPorcentaje: true,
		Valor:        decimal.RequireFromString(valor),
		Formula:      formula,
		Activo:       true,
	}
}

func fijo(nombre string, tipo concepto.TipoConcepto, valor string, formula *concepto.Formula) concepto.Concepto {
	return concepto.Concepto{
		Nombre:  nombre,
		Tipo:    tipo,
		Valor:   decimal.RequireFromString(valor),
		Formula: formula,
		Activo:  true,
	}
}

func TestEvaluar_PresentismoYJubilacion(t *testing.T) {
	detalle, err := liquidacion.Evaluar(liquidacion.EntradaEvaluacion{
		Salario: decimal.RequireFromString("100000"),
		Conceptos: []concepto.Concepto{
			pct("Presentismo", concepto.TipoRemunerativo, "8.33", formulaPtr(concepto.FormulaPresentismo)),
			pct("Jubilación", concepto.TipoDeduccion, "11", formulaPtr(concepto.FormulaJubilacion)),
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "100000", detalle.Basico.String())
	assert.Equal(t, "8330", detalle.Presentismo.String())
	assert.Equal(t, "108330", detalle.TotalBruto.String())
	assert.Equal(t, "11916.3", detalle.TotalRetenciones.String())
	assert.Equal(t, "96413.7", detalle.Neto.String())
}

func TestEvaluar_PresentismoSePierdePorAusencias(t *testing.T) {
	conceptos := []concepto.Concepto{
		pct("Presentismo", concepto.TipoRemunerativo, "8.33", formulaPtr(concepto.FormulaPresentismo)),
	}

	perdido, err := liquidacion.Evaluar(liquidacion.EntradaEvaluacion{
		Salario:                 decimal.RequireFromString("100000"),
		AusenciasInjustificadas: 3,
		LimiteAusencias:         2,
		Conceptos:               conceptos,
	})
	assert.NoError(t, err)
	assert.True(t, perdido.Presentismo.IsZero())
	assert.Equal(t, "100000", perdido.TotalBruto.String())

	// Exactamente en el límite no se pierde.
	enLimite, err := liquidacion.Evaluar(liquidacion.EntradaEvaluacion{
		Salario:                 decimal.RequireFromString("100000"),
		AusenciasInjustificadas: 2,
		LimiteAusencias:         2,
		Conceptos:               conceptos,
	})
	assert.NoError(t, err)
	assert.Equal(t, "8330", enLimite.Presentismo.String())
}

func TestEvaluar_RemunerativoSinFormulaSumaAlBasico(t *testing.T) {
	detalle, err := liquidacion.Evaluar(liquidacion.EntradaEvaluacion{
		Salario: decimal.RequireFromString("100000"),
		Conceptos: []concepto.Concepto{
			fijo("Plus por título", concepto.TipoRemunerativo, "5000", nil),
			pct("Antigüedad", concepto.TipoRemunerativo, "2", formulaPtr(concepto.FormulaAntiguedad)),
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "105000", detalle.Basico.String())
	assert.Equal(t, "2000", detalle.Antiguedad.String())
	assert.Equal(t, "107000", detalle.TotalBruto.String())
}

func TestEvaluar_ConceptoInactivoSeIgnora(t *testing.T) {
	inactivo := pct("Jubilación", concepto.TipoDeduccion, "11", formulaPtr(concepto.FormulaJubilacion))
	inactivo.Activo = false

	detalle, err := liquidacion.Evaluar(liquidacion.EntradaEvaluacion{
		Salario:   decimal.RequireFromString("100000"),
		Conceptos: []concepto.Concepto{inactivo},
	})

	assert.NoError(t, err)
	assert.True(t, detalle.TotalRetenciones.IsZero())
	assert.Equal(t, "100000", detalle.Neto.String())
}

func TestEvaluar_RemunerativoSobreBrutoEsError(t *testing.T) {
	_, err := liquidacion.Evaluar(liquidacion.EntradaEvaluacion{
		Salario: decimal.RequireFromString("100000"),
		Conceptos: []concepto.Concepto{
			pct("Bonus", concepto.TipoRemunerativo, "5", formulaPtr(concepto.FormulaBruto)),
		},
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, liquidacionerrors.ErrConceptoMalConfigurado))
}

func TestEvaluar_DeduccionSobreBasicoEsError(t *testing.T) {
	_, err := liquidacion.Evaluar(liquidacion.EntradaEvaluacion{
		Salario: decimal.RequireFromString("100000"),
		Conceptos: []concepto.Concepto{
			pct("Rara", concepto.TipoDeduccion, "5", formulaPtr(concepto.FormulaPresentismo)),
		},
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, liquidacionerrors.ErrConceptoMalConfigurado))
}

func TestEvaluar_DeduccionMontoFijo(t *testing.T) {
	detalle, err := liquidacion.Evaluar(liquidacion.EntradaEvaluacion{
		Salario: decimal.RequireFromString("100000"),
		Conceptos: []concepto.Concepto{
			fijo("Cuota sindical fija", concepto.TipoDeduccion, "1500", formulaPtr(concepto.FormulaSindical)),
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "1500", detalle.TotalRetenciones.String())
	assert.Equal(t, "98500", detalle.Neto.String())
}

func TestEvaluar_VacacionesNoGozadasNoIntegranLaBase(t *testing.T) {
	detalle, err := liquidacion.Evaluar(liquidacion.EntradaEvaluacion{
		Salario: decimal.RequireFromString("100000"),
		Conceptos: []concepto.Concepto{
			pct("Jubilación", concepto.TipoDeduccion, "11", formulaPtr(concepto.FormulaJubilacion)),
		},
		Manuales: liquidacion.ItemsManuales{
			VacacionesNoGozadas: decimal.RequireFromString("20000"),
		},
	})

	assert.NoError(t, err)
	// La retención se calcula sobre 100000, no sobre 120000.
	assert.Equal(t, "11000", detalle.TotalRetenciones.String())
	assert.Equal(t, "109000", detalle.Neto.String())
}

func TestEvaluar_ItemsManualesEntranAlBruto(t *testing.T) {
	detalle, err := liquidacion.Evaluar(liquidacion.EntradaEvaluacion{
		Salario: decimal.RequireFromString("100000"),
		Manuales: liquidacion.ItemsManuales{
			HorasExtras:   decimal.RequireFromString("12000"),
			Inasistencias: decimal.RequireFromString("4000"),
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "108000", detalle.TotalBruto.String())
	assert.Equal(t, "108000", detalle.Neto.String())
}

func TestRecalcularTotales(t *testing.T) {
	liq := &liquidacion.Liquidacion{
		Basico:      decimal.RequireFromString("100000"),
		Presentismo: decimal.RequireFromString("8330"),
	}

	err := liquidacion.RecalcularTotales(liq, []concepto.Concepto{
		pct("Jubilación", concepto.TipoDeduccion, "11", formulaPtr(concepto.FormulaJubilacion)),
	})

	assert.NoError(t, err)
	assert.Equal(t, "108330", liq.TotalBruto.String())
	assert.Equal(t, "11916.3", liq.TotalRetenciones.String())
	assert.Equal(t, "96413.7", liq.Neto.String())
}

func TestRecalcularTotales_CatalogoMalConfigurado(t *testing.T) {
	liq := &liquidacion.Liquidacion{
		Basico: decimal.RequireFromString("100000"),
	}

	err := liquidacion.RecalcularTotales(liq, []concepto.Concepto{
		pct("Rara", concepto.TipoDeduccion, "5", formulaPtr(concepto.FormulaBasico)),
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, liquidacionerrors.ErrConceptoMalConfigurado))
}
