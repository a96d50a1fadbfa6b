package paymentconfig

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	config := r.Group("/payments")
	{
		config.GET("/config", handler.Get)
		config.POST("/config", handler.Upsert)
		config.GET("/grades", handler.Grades)
	}
}
