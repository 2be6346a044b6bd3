package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/workbench-ml/inference-bridge/internal/adapters/primary/http/dto"
)

func (h *Handler) FastInference(c *gin.Context) {
	endpointName := c.Param("name")

	var req dto.InferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.inferenceSvc.FastInference(c.Request.Context(), endpointName, req.ToTable())
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"endpoint": endpointName,
			"rows":     len(req.Rows),
		}).Error("fast inference failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTableResponse(result))
}
