package dashboard

import (
	"net/http"

	"schoolpay/internal/shared/apperror"
	"schoolpay/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetSummary(c *gin.Context) {
	schoolID := c.GetString("school_id")
	year := c.Query("academic_year")

	resp, err := h.service.GetSummary(c.Request.Context(), schoolID, year)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
