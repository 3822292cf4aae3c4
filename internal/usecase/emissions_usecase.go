package usecase

import (
	"context"
	"math"
	"strconv"

	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/errors"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/metrics"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/utils"
	"github.com/samali323/carbonemissioncalc-sub000/internal/refdata"
	"github.com/samali323/carbonemissioncalc-sub000/internal/usecase/dto"
	"go.uber.org/zap"
)

// RouteResolver returns a fresh route cache entry for a pair of places.
type RouteResolver interface {
	Resolve(ctx context.Context, origin, destination domain.Place) (*domain.RouteCacheEntry, error)
}

type EmissionsUseCase struct {
	ref       *refdata.ReferenceData
	locations *LocationResolver
	engine    *ICAOEngine
	estimator *TransportModeEstimator
	routes    RouteResolver
	logger    *zap.Logger
}

func NewEmissionsUseCase(
	ref *refdata.ReferenceData,
	routes RouteResolver,
	logger *zap.Logger,
) *EmissionsUseCase {
	return &EmissionsUseCase{
		ref:       ref,
		locations: NewLocationResolver(ref),
		engine:    NewICAOEngine(ref),
		estimator: NewTransportModeEstimator(ref),
		routes:    routes,
		logger:    logger,
	}
}

func (uc *EmissionsUseCase) validate(req dto.FlightRequest) error {
	if req.Passengers <= 0 {
		return errors.ErrInvalidPassengers.WithField("passengers", req.Passengers)
	}
	if req.CargoTons < 0 || math.IsNaN(req.CargoTons) || math.IsInf(req.CargoTons, 0) {
		return errors.ErrInvalidCargo.WithField("cargo_tons", req.CargoTons)
	}
	return nil
}

func cabinClass(raw string) domain.CabinClass {
	if raw == "" {
		return domain.CabinEconomy
	}
	return domain.CabinClass(raw)
}

// CalculateFlightEmissions estimates a flight between the two endpoints.
// A round trip doubles distance, fuel and total emissions; the per
// passenger figure is the doubled total divided by passengers.
func (uc *EmissionsUseCase) CalculateFlightEmissions(ctx context.Context, req dto.FlightRequest) (*domain.EmissionsResult, error) {
	if err := uc.validate(req); err != nil {
		return nil, err
	}
	origin, err := uc.locations.Resolve(req.Origin, "origin")
	if err != nil {
		return nil, err
	}
	destination, err := uc.locations.Resolve(req.Destination, "destination")
	if err != nil {
		return nil, err
	}
	return uc.calculate(req, origin, destination)
}

func (uc *EmissionsUseCase) calculate(req dto.FlightRequest, origin, destination domain.Place) (*domain.EmissionsResult, error) {
	distance := utils.GreatCircleKm(origin.Coordinate, destination.Coordinate)
	class := domain.ClassifyFlightLength(distance)

	out, err := uc.engine.Estimate(EngineInput{
		DistanceKm:      distance,
		AircraftType:    req.AircraftType,
		CabinClass:      cabinClass(req.CabinClass),
		Passengers:      req.Passengers,
		CargoTons:       req.CargoTons,
		IsInternational: req.IsInternational,
		RouteGroup:      domain.RouteGroup(req.RouteGroup),
	})
	if err != nil {
		return nil, err
	}

	legs := 1.0
	if req.IsRoundTrip {
		legs = 2
	}

	totalT := out.EmissionsTotalKg * legs / 1000
	result := &domain.EmissionsResult{
		TotalEmissionsT:     totalT,
		PerPassengerT:       totalT / float64(req.Passengers),
		DistanceKm:          distance * legs,
		CorrectedDistanceKm: out.CorrectedDistanceKm * legs,
		FuelConsumptionKg:   out.FuelConsumptionKg * legs,
		FlightLengthClass:   class,
		IsRoundTrip:         req.IsRoundTrip,
		IsInternational:     req.IsInternational,
		Passengers:          req.Passengers,
		AircraftType:        out.AircraftType,
		CabinClass:          cabinClass(req.CabinClass),
		FactorsApplied:      out.FactorsApplied,
	}

	if req.Country != "" {
		if price, ok := uc.ref.CarbonPrice(req.Country); ok {
			result.CarbonCost = &domain.CarbonCost{
				Country:     price.Country,
				Currency:    price.Currency,
				PricePerTon: price.PricePerTon,
				Amount:      totalT * price.PricePerTon,
			}
		} else {
			uc.logger.Debug("No carbon price for country", zap.String("country", req.Country))
		}
	}

	shortHaul, _ := out.FactorsApplied[domain.FactorShortHaulFallback].(bool)
	metrics.EmissionsCalculationsTotal.WithLabelValues(string(class), strconv.FormatBool(shortHaul)).Inc()

	return result, nil
}

// CompareModes estimates the flight and the rail and road alternatives.
// Surface modes without a route are infeasible; when the route lookup
// itself fails they are unavailable and carry the error code.
func (uc *EmissionsUseCase) CompareModes(ctx context.Context, req dto.CompareRequest) (*domain.ComparisonResult, error) {
	if err := uc.validate(req.FlightRequest); err != nil {
		return nil, err
	}
	origin, err := uc.locations.Resolve(req.Origin, "origin")
	if err != nil {
		return nil, err
	}
	destination, err := uc.locations.Resolve(req.Destination, "destination")
	if err != nil {
		return nil, err
	}

	air, err := uc.calculate(req.FlightRequest, origin, destination)
	if err != nil {
		return nil, err
	}

	result := &domain.ComparisonResult{
		Origin:      origin,
		Destination: destination,
		Air:         *air,
		Modes:       make([]domain.ModeEmissions, 0, len(SurfaceModes)),
	}

	entry, err := uc.routes.Resolve(ctx, origin, destination)
	if err != nil {
		code := errors.ErrInternalServer.Code
		if appErr, ok := errors.As(err); ok {
			code = appErr.Code
		}
		uc.logger.Warn("Route lookup failed, surface modes unavailable",
			zap.String("origin", origin.Key),
			zap.String("destination", destination.Key),
			zap.Error(err),
		)
		for _, mode := range SurfaceModes {
			result.Modes = append(result.Modes, domain.ModeEmissions{
				Mode:      mode,
				Status:    domain.ModeUnavailable,
				ErrorCode: code,
			})
		}
		return result, nil
	}

	straightKm := utils.GreatCircleKm(origin.Coordinate, destination.Coordinate)
	for _, mode := range SurfaceModes {
		m := uc.estimator.Estimate(mode, straightKm, req.Passengers, entry)
		if req.IsRoundTrip && m.Status == domain.ModeFeasible {
			emissions := *m.EmissionsT * 2
			distance := *m.DistanceKm * 2
			duration := *m.DurationS * 2
			m.EmissionsT, m.DistanceKm, m.DurationS = &emissions, &distance, &duration
		}
		result.Modes = append(result.Modes, m)
	}

	return result, nil
}
