package liquidacion

import "github.com/shopspring/decimal"

type GetLiquidacionesFilterRequest struct {
	EspacioTrabajoID string `form:"espacioTrabajoId"`
	EmpleadoID       string `form:"empleadoId"`
	EstaPagada       string `form:"estaPagada"`
	FechaDesde       string `form:"fechaDesde"`
	FechaHasta       string `form:"fechaHasta"`
	Page             int    `form:"page,default=1"`
	Limit            int    `form:"limit,default=10"`
}

// UpdateLiquidacionRequest carries the editable line items. Only the
// fields present in the body are applied; totals are always recomputed
// server-side.
type UpdateLiquidacionRequest struct {
	Basico              *decimal.Decimal `json:"basico"`
	Antiguedad          *decimal.Decimal `json:"antiguedad"`
	Presentismo         *decimal.Decimal `json:"presentismo"`
	HorasExtras         *decimal.Decimal `json:"horasExtras"`
	Vacaciones          *decimal.Decimal `json:"vacaciones"`
	SAC                 *decimal.Decimal `json:"sac"`
	Inasistencias       *decimal.Decimal `json:"inasistencias"`
	VacacionesNoGozadas *decimal.Decimal `json:"vacacionesNoGozadas"`
}

type ContratoResumen struct {
	ID               string          `json:"id"`
	EspacioTrabajoID string          `json:"espacioTrabajoId"`
	EmpleadoID       string          `json:"empleadoId"`
	EmpleadoNombre   string          `json:"empleadoNombre,omitempty"`
	Salario          decimal.Decimal `json:"salario"`
}

type LiquidacionResponse struct {
	ID          string           `json:"id"`
	ContratoID  string           `json:"contratoId"`
	Contrato    *ContratoResumen `json:"contrato,omitempty"`
	FechaInicio string           `json:"fechaInicio"`
	FechaFin    string           `json:"fechaFin"`

	Basico              decimal.Decimal `json:"basico"`
	Antiguedad          decimal.Decimal `json:"antiguedad"`
	Presentismo         decimal.Decimal `json:"presentismo"`
	HorasExtras         decimal.Decimal `json:"horasExtras"`
	Vacaciones          decimal.Decimal `json:"vacaciones"`
	SAC                 decimal.Decimal `json:"sac"`
	Inasistencias       decimal.Decimal `json:"inasistencias"`
	VacacionesNoGozadas decimal.Decimal `json:"vacacionesNoGozadas"`

	TotalBruto       decimal.Decimal `json:"totalBruto"`
	TotalRetenciones decimal.Decimal `json:"totalRetenciones"`
	Neto             decimal.Decimal `json:"neto"`

	EstaPagada bool    `json:"estaPagada"`
	FechaPago  *string `json:"fechaPago,omitempty"`
	ReciboURL  *string `json:"reciboUrl,omitempty"`
}

type EjecutarLiquidacionesRequest struct {
	// Periodo en formato YYYY-MM; vacío liquida el mes corriente.
	Periodo string `json:"periodo"`
}

type FallaContrato struct {
	ContratoID string `json:"contratoId"`
	Motivo     string `json:"motivo"`
}

// ResumenEjecucion is the per-run report of the batch generator: what
// got created, what was already settled, and what failed with why.
type ResumenEjecucion struct {
	Periodo   string          `json:"periodo"`
	Generadas int             `json:"generadas"`
	Omitidas  int             `json:"omitidas"`
	Fallidas  int             `json:"fallidas"`
	Fallas    []FallaContrato `json:"fallas,omitempty"`
}
