package dto

import (
	"time"

	"github.com/workbench-ml/inference-bridge/pkg/bridge"
)

// ============================================================================
// Endpoint DTOs
// ============================================================================

type EndpointResponse struct {
	Name          string    `json:"name"`
	ARN           string    `json:"arn,omitempty"`
	Status        string    `json:"status"`
	ConfigName    string    `json:"config_name,omitempty"`
	FailureReason string    `json:"failure_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	ModifiedAt    time.Time `json:"modified_at"`
}

type ListEndpointsResponse struct {
	Items []EndpointResponse `json:"items"`
	Total int                `json:"total"`
}

func ToEndpointResponse(info *bridge.EndpointInfo) EndpointResponse {
	return EndpointResponse{
		Name:          info.Name,
		ARN:           info.ARN,
		Status:        info.Status,
		ConfigName:    info.ConfigName,
		FailureReason: info.FailureReason,
		CreatedAt:     info.CreatedAt,
		ModifiedAt:    info.ModifiedAt,
	}
}
