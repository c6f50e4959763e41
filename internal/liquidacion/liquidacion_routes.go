package liquidacion

import (
	"github.com/joaquinkuster/rrhh-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	liquidaciones := r.Group("/liquidaciones")
	{
		liquidaciones.GET("", handler.GetAll)
		liquidaciones.GET("/export", handler.ExportarExcel)
		liquidaciones.GET("/:id", handler.GetByID)
		liquidaciones.GET("/:id/recibo", handler.DescargarRecibo)
		liquidaciones.PUT("/:id", handler.Update)
		liquidaciones.POST("/:id/pagar", handler.Pagar)
		liquidaciones.POST("/:id/recibo", handler.GenerarRecibo)
		if redisClient != nil {
			liquidaciones.POST("/ejecutar", middleware.Idempotency(redisClient), handler.Ejecutar)
		} else {
			liquidaciones.POST("/ejecutar", handler.Ejecutar)
		}
	}
}
