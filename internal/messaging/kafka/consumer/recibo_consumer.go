package consumer

import (
	"context"
	"encoding/json"

	"github.com/joaquinkuster/rrhh-sub001/internal/events"
	"github.com/joaquinkuster/rrhh-sub001/internal/liquidacion"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLiquidacionGenerada genera el recibo PDF de cada liquidación
// recién creada. El render es idempotente, así que un mensaje
// reentregado solo sobreescribe el mismo archivo.
func ConsumeLiquidacionGenerada(
	ctx context.Context,
	reader *kafkago.Reader,
	liquidacionService liquidacion.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.recibo")
	log.Info("recibo consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("recibo consumer stopped")
				return
			}
			log.Error("fetch liquidacion generada message failed", zap.Error(err))
			continue
		}

		var event events.LiquidacionGeneradaEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode liquidacion generada event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if _, err := liquidacionService.GenerarRecibo(ctx, event.LiquidacionID); err != nil {
			log.Error("generar recibo failed",
				zap.String("liquidacion_id", event.LiquidacionID),
				zap.String("contrato_id", event.ContratoID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit liquidacion generada message failed", zap.Error(err))
			continue
		}

		log.Info("recibo generado desde evento",
			zap.String("liquidacion_id", event.LiquidacionID),
			zap.String("periodo", event.Periodo),
		)
	}
}
