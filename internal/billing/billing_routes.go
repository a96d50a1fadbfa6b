package billing

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	records := r.Group("/payments/records")
	{
		records.POST("", handler.Generate)
		records.GET("/:studentId", handler.GetByStudent)
		records.GET("/:studentId/history", handler.GetHistory)
		records.DELETE("/:studentId", handler.Delete)
		records.PATCH("/:studentId/components", handler.UpdateComponents)

		records.POST("/:studentId/tuition/monthly", handler.RecordTuitionMonthly)
		records.POST("/:studentId/tuition/annual", handler.RecordAnnualTuition)
		records.POST("/:studentId/transportation/monthly", handler.RecordTransportationMonthly)
		records.POST("/:studentId/uniform", handler.RecordUniform)
		records.POST("/:studentId/inscription-fee", handler.RecordInscriptionFee)

		records.POST("/:studentId/discount", handler.ApplyDiscount)
		records.DELETE("/:studentId/discount", handler.RemoveDiscount)
	}

	bulk := r.Group("/payments/bulk")
	{
		bulk.POST("/generate", handler.BulkGenerate)
		bulk.POST("/update", handler.BulkUpdate)
		bulk.POST("/delete", handler.BulkDelete)
	}
}
