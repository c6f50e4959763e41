package events

import "time"

const LiquidacionPagadaTopic = "rrhh.liquidacion.pagada.v1"

type LiquidacionPagadaEvent struct {
	EventType     string    `json:"event_type"`
	LiquidacionID string    `json:"liquidacion_id"`
	ContratoID    string    `json:"contrato_id"`
	FechaPago     time.Time `json:"fecha_pago"`
	OccurredAt    time.Time `json:"occurred_at"`
}
