package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/workbench-ml/inference-bridge/internal/adapters/primary/http/dto"
	"github.com/workbench-ml/inference-bridge/pkg/table"
)

func (h *Handler) ListStoredTables(c *gin.Context) {
	if c.DefaultQuery("view", "summary") == "details" {
		details, err := h.storeSvc.Details(c.Request.Context())
		if err != nil {
			mapDomainError(c, err)
			return
		}
		items := dto.ToStoredTableDetails(details)
		c.JSON(http.StatusOK, dto.ListStoredTablesResponse{Details: items, Total: len(items)})
		return
	}

	summaries, err := h.storeSvc.Summary(c.Request.Context())
	if err != nil {
		mapDomainError(c, err)
		return
	}
	items := dto.ToStoredTableSummaries(summaries)
	c.JSON(http.StatusOK, dto.ListStoredTablesResponse{Summaries: items, Total: len(items)})
}

func (h *Handler) GetStoredTable(c *gin.Context) {
	tbl, err := h.storeSvc.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTableResponse(tbl))
}

func (h *Handler) UpsertStoredTable(c *gin.Context) {
	name := c.Param("name")

	var req dto.UpsertTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows := make([]table.Row, len(req.Rows))
	for i, m := range req.Rows {
		rows[i] = table.Row(m)
	}

	if err := h.storeSvc.Upsert(c.Request.Context(), name, table.FromRows(rows)); err != nil {
		log.WithError(err).WithField("table", name).Error("upsert stored table failed")
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "rows": len(req.Rows)})
}

func (h *Handler) DeleteStoredTable(c *gin.Context) {
	if err := h.storeSvc.Delete(c.Request.Context(), c.Param("name")); err != nil {
		mapDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
