package conceptoerrors

import (
	"net/http"

	"github.com/joaquinkuster/rrhh-sub001/internal/shared/apperror"
)

var (
	ErrConceptoNotFound = apperror.New(
		apperror.CodeNotFound,
		"concepto salarial no encontrado",
		http.StatusNotFound,
	)
	ErrNombreDuplicado = apperror.New(
		apperror.CodeConflict,
		"ya existe un concepto activo con ese nombre",
		http.StatusConflict,
	)
	ErrTipoInvalido = apperror.New(
		apperror.CodeInvalidInput,
		"tipo de concepto inválido, se espera remunerativo o deduccion",
		http.StatusBadRequest,
	)
	ErrFormulaInvalida = apperror.New(
		apperror.CodeInvalidInput,
		"fórmula desconocida",
		http.StatusBadRequest,
	)
	ErrFormulaIncompatible = apperror.New(
		apperror.CodeInvalidInput,
		"la fórmula no es compatible con el tipo de concepto",
		http.StatusBadRequest,
	)
	ErrValorNegativo = apperror.New(
		apperror.CodeInvalidInput,
		"el valor del concepto no puede ser negativo",
		http.StatusBadRequest,
	)
	ErrPorcentajeFueraDeRango = apperror.New(
		apperror.CodeInvalidInput,
		"el porcentaje debe estar entre 0 y 100",
		http.StatusBadRequest,
	)
	ErrConceptoObligatorio = apperror.New(
		apperror.CodePolicyViolation,
		"los conceptos obligatorios del sistema no pueden eliminarse",
		http.StatusConflict,
	)
	ErrConceptoInactivo = apperror.New(
		apperror.CodeInvalidState,
		"el concepto ya se encuentra inactivo",
		http.StatusBadRequest,
	)
)
