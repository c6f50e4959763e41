package app

import (
	"database/sql"
	"os"

	"github.com/joaquinkuster/rrhh-sub001/internal/asistencia"
	"github.com/joaquinkuster/rrhh-sub001/internal/concepto"
	"github.com/joaquinkuster/rrhh-sub001/internal/contrato"
	"github.com/joaquinkuster/rrhh-sub001/internal/liquidacion"
	"github.com/joaquinkuster/rrhh-sub001/internal/messaging/kafka"
	"github.com/joaquinkuster/rrhh-sub001/internal/middleware"
	"github.com/joaquinkuster/rrhh-sub001/internal/parametros"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Middleware global ---
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	// --- Repositories ---
	conceptoRepo := concepto.NewRepository(gormDB)
	parametrosRepo := parametros.NewRepository(gormDB)
	contratoRepo := contrato.NewRepository(gormDB)
	asistenciaRepo := asistencia.NewRepository(gormDB)
	liquidacionRepo := liquidacion.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	conceptoService := concepto.NewService(db, conceptoRepo)
	parametrosService := parametros.NewService(db, parametrosRepo, rdb)
	generator := liquidacion.NewGenerator(
		db,
		liquidacionRepo,
		conceptoRepo,
		contratoRepo,
		asistenciaRepo,
		parametrosService,
		outboxRepo,
		rdb,
	)
	liquidacionService := liquidacion.NewServiceWithOutbox(
		db,
		liquidacionRepo,
		conceptoRepo,
		generator,
		outboxRepo,
		os.Getenv("RECIBOS_DIR"),
	)

	// --- Handlers ---
	conceptoHandler := concepto.NewHandler(conceptoService)
	parametrosHandler := parametros.NewHandler(parametrosService)
	liquidacionHandler := liquidacion.NewHandler(liquidacionService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		concepto.RegisterRoutes(api, conceptoHandler)
		parametros.RegisterRoutes(api, parametrosHandler)
		liquidacion.RegisterRoutes(api, liquidacionHandler, rdb)
	}

	return nil
}
