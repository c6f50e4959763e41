package parametros

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	grupo := r.Group("/parametros-laborales")
	{
		grupo.GET("", handler.Get)
		grupo.PUT("", handler.Update)
	}
}
