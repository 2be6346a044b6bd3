package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/workbench-ml/inference-bridge/internal/core/services"
)

type Handler struct {
	inferenceSvc *services.InferenceService
	storeSvc     *services.StoreService
	catalogSvc   *services.CatalogService
}

func New(
	inferenceSvc *services.InferenceService,
	storeSvc *services.StoreService,
	catalogSvc *services.CatalogService,
) *Handler {
	return &Handler{
		inferenceSvc: inferenceSvc,
		storeSvc:     storeSvc,
		catalogSvc:   catalogSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Inference
	r.POST("/endpoints/:name/inference", h.FastInference)

	// Endpoint Metadata
	r.GET("/endpoints", h.ListEndpoints)
	r.GET("/endpoints/:name", h.GetEndpoint)

	// Table Store
	r.GET("/store", h.ListStoredTables)
	r.GET("/store/tables/*name", h.GetStoredTable)
	r.PUT("/store/tables/*name", h.UpsertStoredTable)
	r.DELETE("/store/tables/*name", h.DeleteStoredTable)

	// Data Catalog
	r.PUT("/catalog/databases/:db", h.EnsureDatabase)
	r.PUT("/catalog/databases/:db/tables/:table", h.RegisterCatalogTable)
	r.DELETE("/catalog/databases/:db/tables/:table", h.DeleteCatalogTable)

	// Run History
	r.GET("/runs", h.ListRuns)
	r.GET("/runs/:id", h.GetRun)
}
