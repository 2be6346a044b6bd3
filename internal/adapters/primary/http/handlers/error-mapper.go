package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workbench-ml/inference-bridge/internal/core/domain"
	"github.com/workbench-ml/inference-bridge/pkg/bridge"
)

func mapDomainError(c *gin.Context, err error) {
	var remoteErr *bridge.RemoteServiceError
	var serErr *bridge.SerializationError

	switch {
	// Not found errors
	case errors.Is(err, domain.ErrEndpointNotFound),
		errors.Is(err, domain.ErrStoredTableNotFound),
		errors.Is(err, domain.ErrRunNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidEndpointName),
		errors.Is(err, domain.ErrEmptyTable),
		errors.Is(err, domain.ErrInvalidTableName),
		errors.Is(err, domain.ErrInvalidDatabaseName),
		errors.Is(err, domain.ErrInvalidS3Path):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Feature disabled
	case errors.Is(err, domain.ErrRunHistoryDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	// Remote service failures, including misaligned responses
	case errors.As(err, &remoteErr), errors.Is(err, bridge.ErrRowMismatch):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

	// Payload encode/decode failures
	case errors.As(err, &serErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
