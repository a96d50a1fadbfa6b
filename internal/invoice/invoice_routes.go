package invoice

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	invoices := r.Group("/invoices")
	{
		invoices.GET("/:studentId", handler.Generate)
	}
}
