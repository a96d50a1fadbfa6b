package student

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	students := r.Group("/students")
	{
		students.POST("", handler.Create)
		students.GET("", handler.GetAll)
		students.GET("/:id", handler.GetByID)
		students.PUT("/:id", handler.Update)
		students.DELETE("/:id", handler.Delete)
	}
}
