package events

import "time"

const LiquidacionGeneradaTopic = "rrhh.liquidacion.generada.v1"

type LiquidacionGeneradaEvent struct {
	EventType     string    `json:"event_type"`
	LiquidacionID string    `json:"liquidacion_id"`
	ContratoID    string    `json:"contrato_id"`
	Periodo       string    `json:"periodo"`
	OccurredAt    time.Time `json:"occurred_at"`
}
