package concepto

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	conceptos := r.Group("/conceptos")
	{
		conceptos.GET("", handler.GetAll)
		conceptos.GET("/:id", handler.GetByID)
		conceptos.POST("", handler.Create)
		conceptos.PUT("/:id", handler.Update)
		conceptos.DELETE("/:id", handler.Delete)
	}
}
