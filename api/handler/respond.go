package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prospectio/leadscout/models"
	"github.com/prospectio/leadscout/storage"
)

// errorDetail converts any error into an API-facing ErrorDetail.
func errorDetail(err error) *models.ErrorDetail {
	var apiErr *models.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ToDetail()
	}
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return &models.ErrorDetail{Code: models.ErrCodeNotFound, Message: err.Error()}
	case errors.Is(err, storage.ErrDuplicate):
		return &models.ErrorDetail{Code: models.ErrCodeDuplicate, Message: err.Error()}
	default:
		return &models.ErrorDetail{Code: models.ErrCodeInternal, Message: err.Error()}
	}
}

// statusFor maps an error code to its HTTP status.
func statusFor(detail *models.ErrorDetail) int {
	switch detail.Code {
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case models.ErrCodeNotFound:
		return http.StatusNotFound
	case models.ErrCodeDuplicate:
		return http.StatusConflict
	case models.ErrCodeUnauthorized, models.ErrCodeLLMAuthFailure:
		return http.StatusUnauthorized
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case models.ErrCodeLLMRateLimited:
		return http.StatusBadGateway
	case models.ErrCodeLLMFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// bindError writes a 400 with a structured INVALID_INPUT error.
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": models.ErrorDetail{
			Code:    models.ErrCodeInvalidInput,
			Message: err.Error(),
		},
	})
}
