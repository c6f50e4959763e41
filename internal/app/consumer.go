package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joaquinkuster/rrhh-sub001/internal/concepto"
	"github.com/joaquinkuster/rrhh-sub001/internal/events"
	"github.com/joaquinkuster/rrhh-sub001/internal/liquidacion"
	"github.com/joaquinkuster/rrhh-sub001/internal/messaging/kafka/consumer"
	"github.com/joaquinkuster/rrhh-sub001/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer escucha los eventos de liquidación generada y materializa
// los recibos PDF fuera del request path.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	conceptoRepo := concepto.NewRepository(gormDB)
	liquidacionRepo := liquidacion.NewRepository(gormDB)
	liquidacionService := liquidacion.NewServiceWithOutbox(
		sqlDB,
		liquidacionRepo,
		conceptoRepo,
		nil,
		nil,
		os.Getenv("RECIBOS_DIR"),
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.LiquidacionGeneradaTopic,
		GroupID:        "rrhh-liquidacion-recibos",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeLiquidacionGenerada(ctx, reader, liquidacionService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
