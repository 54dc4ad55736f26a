package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

// respondWithError транслирует ошибку доменного слоя в HTTP-статус.
// Внутренние детали наружу не уходят: клиент видит только сообщение
// верхнего уровня, подробности остаются в логе.
func respondWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrUpstreamService),
		errors.Is(err, apperrors.ErrMalformedResponse):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		log.Printf("[Handler] Внутренняя ошибка: %v", err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
