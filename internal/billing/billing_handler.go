package billing

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

func bindJSON[T any](c *gin.Context) (T, bool) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, err.Error())
		return req, false
	}
	return req, true
}

func (h *Handler) Generate(c *gin.Context) {
	schoolID := c.GetString("school_id")

	req, ok := bindJSON[GenerateRecordRequest](c)
	if !ok {
		return
	}

	resp, err := h.service.Generate(c.Request.Context(), schoolID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetByStudent(c *gin.Context) {
	schoolID := c.GetString("school_id")
	studentID := c.Param("studentId")
	year := c.Query("academic_year")

	resp, err := h.service.GetByStudent(c.Request.Context(), schoolID, studentID, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetHistory(c *gin.Context) {
	schoolID := c.GetString("school_id")
	studentID := c.Param("studentId")
	year := c.Query("academic_year")

	resp, err := h.service.GetHistory(c.Request.Context(), schoolID, studentID, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RecordTuitionMonthly(c *gin.Context) {
	schoolID := c.GetString("school_id")
	studentID := c.Param("studentId")
	year := c.Query("academic_year")

	req, ok := bindJSON[MonthlyPaymentRequest](c)
	if !ok {
		return
	}

	resp, err := h.service.RecordTuitionMonthly(c.Request.Context(), schoolID, studentID, year, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RecordTransportationMonthly(c *gin.Context) {
	schoolID := c.GetString("school_id")
	studentID := c.Param("studentId")
	year := c.Query("academic_year")

	req, ok := bindJSON[MonthlyPaymentRequest](c)
	if !ok {
		return
	}

	resp, err := h.service.RecordTransportationMonthly(c.Request.Context(), schoolID, studentID, year, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RecordUniform(c *gin.Context) {
	schoolID := c.GetString("school_id")
	studentID := c.Param("studentId")
	year := c.Query("academic_year")

	req, ok := bindJSON[FlatPaymentRequest](c)
	if !ok {
		return
	}

	resp, err := h.service.RecordUniform(c.Request.Context(), schoolID, studentID, year, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RecordInscriptionFee(c *gin.Context) {
	schoolID := c.GetString("school_id")
	studentID := c.Param("studentId")
	year := c.Query("academic_year")

	req, ok := bindJSON[FlatPaymentRequest](c)
	if !ok {
		return
	}

	resp, err := h.service.RecordInscriptionFee(c.Request.Context(), schoolID, studentID, year, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RecordAnnualTuition(c *gin.Context) {
	schoolID := c.GetString("school_id")
	studentID := c.Param("studentId")
	year := c.Query("academic_year")

	req, ok := bindJSON[FlatPaymentRequest](c)
	if !ok {
		return
	}

	resp, err := h.service.RecordAnnualTuition(c.Request.Context(), schoolID, studentID, year, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ApplyDiscount(c *gin.Context) {
	schoolID := c.GetString("school_id")
	studentID := c.Param("studentId")
	year := c.Query("academic_year")

	req, ok := bindJSON[ApplyDiscountRequest](c)
	if !ok {
		return
	}

	resp, err := h.service.ApplyDiscount(c.Request.Context(), schoolID, studentID, year, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RemoveDiscount(c *gin.Context) {
	schoolID := c.GetString("school_id")
	studentID := c.Param("studentId")
	year := c.Query("academic_year")

	resp, err := h.service.RemoveDiscount(c.Request.Context(), schoolID, studentID, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateComponents(c *gin.Context) {
	schoolID := c.GetString("school_id")
	studentID := c.Param("studentId")
	year := c.Query("academic_year")

	req, ok := bindJSON[UpdateComponentsRequest](c)
	if !ok {
		return
	}

	resp, err := h.service.UpdateComponents(c.Request.Context(), schoolID, studentID, year, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	schoolID := c.GetString("school_id")
	studentID := c.Param("studentId")
	year := c.Query("academic_year")

	if err := h.service.Delete(c.Request.Context(), schoolID, studentID, year); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) BulkGenerate(c *gin.Context) {
	schoolID := c.GetString("school_id")

	req, ok := bindJSON[BulkGenerateRequest](c)
	if !ok {
		return
	}

	resp, err := h.service.BulkGenerate(c.Request.Context(), schoolID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) BulkUpdate(c *gin.Context) {
	schoolID := c.GetString("school_id")

	req, ok := bindJSON[BulkUpdateRequest](c)
	if !ok {
		return
	}

	resp, err := h.service.BulkUpdate(c.Request.Context(), schoolID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) BulkDelete(c *gin.Context) {
	schoolID := c.GetString("school_id")

	req, ok := bindJSON[BulkDeleteRequest](c)
	if !ok {
		return
	}

	resp, err := h.service.BulkDelete(c.Request.Context(), schoolID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
