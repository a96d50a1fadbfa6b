package paymentconfig

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

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Upsert(c *gin.Context) {
	schoolID := c.GetString("school_id")
	actorID := c.GetString("actor_id")

	var req UpsertConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, err.Error())
		return
	}

	resp, err := h.service.Upsert(c.Request.Context(), schoolID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Get(c *gin.Context) {
	schoolID := c.GetString("school_id")
	academicYear := c.Query("academic_year")

	resp, err := h.service.Get(c.Request.Context(), schoolID, academicYear)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Grades(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Grades(c.Request.Context()), nil)
}
