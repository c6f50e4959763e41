package liquidacionerrors

import (
	"net/http"

	"github.com/joaquinkuster/rrhh-sub001/internal/shared/apperror"
)

var (
	ErrLiquidacionNotFound = apperror.New(
		apperror.CodeNotFound,
		"liquidación no encontrada",
		http.StatusNotFound,
	)
	ErrLiquidacionPagada = apperror.New(
		apperror.CodeInvalidState,
		"la liquidación ya fue pagada y no admite modificaciones",
		http.StatusConflict,
	)
	ErrYaPagada = apperror.New(
		apperror.CodeInvalidState,
		"la liquidación ya fue marcada como pagada",
		http.StatusConflict,
	)
	ErrEjecucionEnCurso = apperror.New(
		apperror.CodeConflict,
		"ya hay una ejecución de liquidaciones en curso para el período",
		http.StatusConflict,
	)
	ErrConceptoMalConfigurado = apperror.New(
		apperror.CodeInvalidState,
		"el catálogo de conceptos tiene una combinación tipo/fórmula inválida",
		http.StatusConflict,
	)
	ErrMontoNegativo = apperror.New(
		apperror.CodeInvalidInput,
		"los ítems de la liquidación no pueden ser negativos",
		http.StatusBadRequest,
	)
	ErrFechaInvalida = apperror.New(
		apperror.CodeInvalidInput,
		"formato de fecha inválido, se espera YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrPeriodoInvalido = apperror.New(
		apperror.CodeInvalidInput,
		"período inválido, se espera YYYY-MM",
		http.StatusBadRequest,
	)
	ErrFiltroPagadaInvalido = apperror.New(
		apperror.CodeInvalidInput,
		"estaPagada debe ser true o false",
		http.StatusBadRequest,
	)
	ErrReciboNoGenerado = apperror.New(
		apperror.CodeNotFound,
		"el recibo todavía no fue generado",
		http.StatusNotFound,
	)
)
