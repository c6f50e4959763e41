package app

import (
	"os"

	"github.com/joaquinkuster/rrhh-sub001/internal/migrations"
	"github.com/joaquinkuster/rrhh-sub001/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp conecta la infraestructura, corre migraciones y registra
// todos los módulos sobre el router.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

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
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	if err := migrations.Run(sqlDB, logger); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		// Redis es opcional: sin cache ni idempotencia HTTP, pero la
		// API sigue operable.
		logger.Warn("redis unavailable, continuing without cache", zap.Error(err))
		redisClient = nil
	} else {
		logger.Info("redis connection established")
	}

	return registerModules(router, sqlDB, gormDB, redisClient)
}
