package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/workbench-ml/inference-bridge/internal/adapters/primary/http/dto"
	"github.com/workbench-ml/inference-bridge/pkg/table"
)

func (h *Handler) EnsureDatabase(c *gin.Context) {
	db := c.Param("db")
	if err := h.catalogSvc.EnsureDatabase(c.Request.Context(), db); err != nil {
		log.WithError(err).WithField("database", db).Error("ensure catalog database failed")
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"database": db})
}

func (h *Handler) RegisterCatalogTable(c *gin.Context) {
	db := c.Param("db")
	tableName := c.Param("table")

	var req dto.RegisterTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows := make([]table.Row, len(req.Rows))
	for i, m := range req.Rows {
		rows[i] = table.Row(m)
	}

	err := h.catalogSvc.RegisterTable(c.Request.Context(), db, tableName, req.S3Path, table.FromRows(rows))
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"database": db,
			"table":    tableName,
		}).Error("register catalog table failed")
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"database": db, "table": tableName})
}

func (h *Handler) DeleteCatalogTable(c *gin.Context) {
	db := c.Param("db")
	tableName := c.Param("table")

	if err := h.catalogSvc.DeleteTable(c.Request.Context(), db, tableName); err != nil {
		mapDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
