package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/errors"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/utils"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/validator"
	"github.com/samali323/carbonemissioncalc-sub000/internal/usecase"
	"github.com/samali323/carbonemissioncalc-sub000/internal/usecase/dto"
	"go.uber.org/zap"
)

type RouteHandler struct {
	routeUC *usecase.RouteUseCase
	logger  *zap.Logger
}

func NewRouteHandler(routeUC *usecase.RouteUseCase, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{
		routeUC: routeUC,
		logger:  logger,
	}
}

// pairFromQuery reads origin and destination as IATA codes or "lat,lon".
// An optional origin_key/destination_key overrides the cache key.
func pairFromQuery(c *fiber.Ctx) (dto.RoutePair, error) {
	origin, err := dto.ParseEndpoint(c.Query("origin"))
	if err != nil {
		return dto.RoutePair{}, errors.ErrInvalidRequest.WithField("origin", err.Error())
	}
	destination, err := dto.ParseEndpoint(c.Query("destination"))
	if err != nil {
		return dto.RoutePair{}, errors.ErrInvalidRequest.WithField("destination", err.Error())
	}
	origin.Key = c.Query("origin_key")
	destination.Key = c.Query("destination_key")

	pair := dto.RoutePair{Origin: origin, Destination: destination}
	if err := validator.Validate(&pair); err != nil {
		return dto.RoutePair{}, err
	}
	return pair, nil
}

// GetRoute godoc
// @Summary Route durations
// @Description Returns driving and transit durations for a pair, refreshing the cache from the routing providers when the entry is missing or older than the TTL.
// @Tags Routes
// @Produce json
// @Param origin query string true "IATA code or lat,lon"
// @Param destination query string true "IATA code or lat,lon"
// @Param origin_key query string false "Cache key for the origin"
// @Param destination_key query string false "Cache key for the destination"
// @Success 200 {object} utils.SuccessResponse{data=dto.RouteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/routes [get]
func (h *RouteHandler) GetRoute(c *fiber.Ctx) error {
	pair, err := pairFromQuery(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.routeUC.GetRoute(c.UserContext(), pair)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// InvalidateRoute godoc
// @Summary Drop a cached route
// @Tags Routes
// @Param origin query string true "IATA code or lat,lon"
// @Param destination query string true "IATA code or lat,lon"
// @Param origin_key query string false "Cache key for the origin"
// @Param destination_key query string false "Cache key for the destination"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/routes [delete]
func (h *RouteHandler) InvalidateRoute(c *fiber.Ctx) error {
	pair, err := pairFromQuery(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.routeUC.InvalidateRoute(c.UserContext(), pair); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// WarmRoutes godoc
// @Summary Queue route pairs for warming
// @Description Validates every pair and queues them for the route warm worker.
// @Tags Routes
// @Accept json
// @Produce json
// @Param request body dto.WarmRoutesRequest true "Pairs"
// @Success 202 {object} utils.SuccessResponse{data=dto.WarmRoutesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/routes/warm [post]
func (h *RouteHandler) WarmRoutes(c *fiber.Ctx) error {
	var req dto.WarmRoutesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.routeUC.WarmRoutes(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendAccepted(c, result)
}
