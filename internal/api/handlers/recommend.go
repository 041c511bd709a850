package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmacy-options-service/internal/api/dto"
	"pharmacy-options-service/internal/domain"
	"pharmacy-options-service/internal/platform/obs"
	"pharmacy-options-service/internal/ports"
	"pharmacy-options-service/internal/services"
)

type RecommendHandler struct {
	Service *services.Recommender
}

// BestOptions validates the inbound order, runs the recommendation
// pipeline, and maps the pipeline's error taxonomy to HTTP statuses.
func (h *RecommendHandler) BestOptions(c *gin.Context) {
	var req dto.BestOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid JSON format"})
		return
	}

	orderReq, err := buildOrderRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	bundle, err := h.Service.Recommend(c.Request.Context(), orderReq)
	if err != nil {
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, bundle)
}

func buildOrderRequest(req dto.BestOptionsRequest) (services.OrderRequest, error) {
	if req.City == "" || len(req.SKUs) == 0 || req.Address == nil ||
		req.Address.Lat == nil || req.Address.Lng == nil {
		return services.OrderRequest{}, errors.New("city, SKU data, and user coordinates are required")
	}

	items := make([]ports.SKURequest, 0, len(req.SKUs))
	for _, item := range req.SKUs {
		if item.SKU == nil || *item.SKU == "" || item.CountDesired == nil || *item.CountDesired < 0 {
			return services.OrderRequest{}, errors.New("invalid SKU format or count type")
		}
		items = append(items, ports.SKURequest{SKU: *item.SKU, CountDesired: *item.CountDesired})
	}

	return services.OrderRequest{
		City:  req.City,
		Items: items,
		Address: domain.Coordinates{
			Lat: *req.Address.Lat,
			Lon: *req.Address.Lng,
		},
	}, nil
}

// respondPipelineError resolves the pipeline error taxonomy: empty stage
// results map to 404, collaborator contract violations to 502, unreachable
// collaborators to 503, everything else to a generic 500 logged with
// detail server-side.
func respondPipelineError(c *gin.Context, err error) {
	var contractErr *ports.ContractError
	var unavailableErr *ports.UnavailableError

	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &contractErr):
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: contractErr.Error()})
	case errors.As(err, &unavailableErr):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: unavailableErr.Error()})
	default:
		log.Printf("req_id=%s unexpected pipeline error: %v", obs.RequestID(c.Request.Context()), err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "an unexpected error occurred"})
	}
}
