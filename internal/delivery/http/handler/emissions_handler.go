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

type EmissionsHandler struct {
	emissionsUC *usecase.EmissionsUseCase
	logger      *zap.Logger
}

func NewEmissionsHandler(emissionsUC *usecase.EmissionsUseCase, logger *zap.Logger) *EmissionsHandler {
	return &EmissionsHandler{
		emissionsUC: emissionsUC,
		logger:      logger,
	}
}

// CalculateFlight godoc
// @Summary Flight emissions
// @Description Estimates fuel burn and CO2 for a flight using the ICAO methodology. Endpoints are IATA codes or coordinates.
// @Tags Emissions
// @Accept json
// @Produce json
// @Param request body dto.FlightRequest true "Flight"
// @Success 200 {object} utils.SuccessResponse{data=domain.EmissionsResult}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/emissions/flight [post]
func (h *EmissionsHandler) CalculateFlight(c *fiber.Ctx) error {
	var req dto.FlightRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.emissionsUC.CalculateFlightEmissions(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// CompareModes godoc
// @Summary Compare air, rail and road
// @Description Returns the flight estimate together with rail and road emissions and travel times from the route cache. A mode whose route lookup failed is reported as unavailable.
// @Tags Emissions
// @Accept json
// @Produce json
// @Param request body dto.CompareRequest true "Trip"
// @Success 200 {object} utils.SuccessResponse{data=domain.ComparisonResult}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/emissions/compare [post]
func (h *EmissionsHandler) CompareModes(c *fiber.Ctx) error {
	var req dto.CompareRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.emissionsUC.CompareModes(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Modes),
	})
}
