package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joaquinkuster/rrhh-sub001/internal/asistencia"
	"github.com/joaquinkuster/rrhh-sub001/internal/concepto"
	"github.com/joaquinkuster/rrhh-sub001/internal/contrato"
	"github.com/joaquinkuster/rrhh-sub001/internal/liquidacion"
	liquidacionerrors "github.com/joaquinkuster/rrhh-sub001/internal/liquidacion/errors"
	"github.com/joaquinkuster/rrhh-sub001/internal/messaging/kafka"
	"github.com/joaquinkuster/rrhh-sub001/internal/messaging/kafka/producer"
	"github.com/joaquinkuster/rrhh-sub001/internal/parametros"
	"github.com/joaquinkuster/rrhh-sub001/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker corre los procesos de fondo: el relay del outbox hacia
// kafka y la generación mensual de liquidaciones.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

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

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		logger.Warn("redis unavailable, generator runs without distributed lock", zap.Error(err))
		redisClient = nil
	}

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	conceptoRepo := concepto.NewRepository(gormDB)
	parametrosRepo := parametros.NewRepository(gormDB)
	contratoRepo := contrato.NewRepository(gormDB)
	asistenciaRepo := asistencia.NewRepository(gormDB)
	liquidacionRepo := liquidacion.NewRepository(gormDB)
	parametrosService := parametros.NewService(sqlDB, parametrosRepo, redisClient)

	generator := liquidacion.NewGenerator(
		sqlDB,
		liquidacionRepo,
		conceptoRepo,
		contratoRepo,
		asistenciaRepo,
		parametrosService,
		outboxRepo,
		redisClient,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	go runMonthlyGenerator(ctx, generator, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

// runMonthlyGenerator revisa cada hora si el mes corriente está
// liquidado. La corrida es idempotente, así que repetirla solo produce
// omitidas; el costo de chequear de más es casi nulo y el de no
// chequear es un mes sin liquidar.
func runMonthlyGenerator(ctx context.Context, generator *liquidacion.Generator, logger *zap.Logger) {
	log := logger.Named("generator.scheduler")

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	run := func() {
		periodo := liquidacion.PeriodoDelMes(time.Now().UTC())
		resumen, err := generator.Run(ctx, periodo)
		if err != nil {
			if errors.Is(err, liquidacionerrors.ErrEjecucionEnCurso) {
				log.Info("ejecución ya en curso en otro proceso", zap.String("periodo", periodo.String()))
				return
			}
			log.Error("ejecución mensual fallida", zap.String("periodo", periodo.String()), zap.Error(err))
			return
		}

		if resumen.Generadas > 0 || resumen.Fallidas > 0 {
			log.Info("ejecución mensual completada",
				zap.String("periodo", resumen.Periodo),
				zap.Int("generadas", resumen.Generadas),
				zap.Int("omitidas", resumen.Omitidas),
				zap.Int("fallidas", resumen.Fallidas),
			)
		}
	}

	run()

	for {
		select {
		case <-ctx.Done():
			log.Info("generator scheduler stopped")
			return
		case <-ticker.C:
			run()
		}
	}
}
