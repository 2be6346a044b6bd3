package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workbench-ml/inference-bridge/internal/adapters/primary/http/dto"
)

func (h *Handler) GetEndpoint(c *gin.Context) {
	info, err := h.inferenceSvc.DescribeEndpoint(c.Request.Context(), c.Param("name"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEndpointResponse(info))
}

func (h *Handler) ListEndpoints(c *gin.Context) {
	infos, err := h.inferenceSvc.ListEndpoints(c.Request.Context())
	if err != nil {
		mapDomainError(c, err)
		return
	}

	items := make([]dto.EndpointResponse, len(infos))
	for i := range infos {
		items[i] = dto.ToEndpointResponse(&infos[i])
	}
	c.JSON(http.StatusOK, dto.ListEndpointsResponse{Items: items, Total: len(items)})
}
