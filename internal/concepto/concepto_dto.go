package concepto

import "github.com/shopspring/decimal"

type CreateConceptoRequest struct {
	Nombre       string          `json:"nombre" binding:"required"`
	Tipo         string          `json:"tipo" binding:"required"`
	EsPorcentaje bool            `json:"esPorcentaje"`
	Valor        decimal.Decimal `json:"valor" binding:"required"`
	Formula      *string         `json:"formula"`
}

type UpdateConceptoRequest struct {
	Nombre       string          `json:"nombre" binding:"required"`
	Tipo         string          `json:"tipo" binding:"required"`
	EsPorcentaje bool            `json:"esPorcentaje"`
	Valor        decimal.Decimal `json:"valor" binding:"required"`
	Formula      *string         `json:"formula"`
}

type GetConceptosFilterRequest struct {
	IncluirInactivos bool `form:"incluirInactivos"`
}

type ConceptoResponse struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	Tipo          string          `json:"tipo"`
	EsPorcentaje  bool            `json:"esPorcentaje"`
	Valor         decimal.Decimal `json:"valor"`
	Formula       *string         `json:"formula,omitempty"`
	EsObligatorio bool            `json:"esObligatorio"`
	Activo        bool            `json:"activo"`
}
