package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/workbench-ml/inference-bridge/internal/adapters/primary/http/dto"
	"github.com/workbench-ml/inference-bridge/internal/core/ports/output"
)

func (h *Handler) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	runs, total, err := h.inferenceSvc.ListRuns(c.Request.Context(), ports.RunListFilter{
		EndpointName: c.Query("endpoint"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		mapDomainError(c, err)
		return
	}

	items := make([]dto.RunResponse, len(runs))
	for i, run := range runs {
		items[i] = dto.ToRunResponse(run)
	}
	c.JSON(http.StatusOK, dto.ListRunsResponse{
		Items:      items,
		Total:      total,
		PageSize:   limit,
		NextOffset: offset + len(items),
	})
}

func (h *Handler) GetRun(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	run, err := h.inferenceSvc.GetRun(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRunResponse(run))
}
