package usecase_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/errors"
	"github.com/samali323/carbonemissioncalc-sub000/internal/refdata"
	"github.com/samali323/carbonemissioncalc-sub000/internal/usecase"
	"github.com/samali323/carbonemissioncalc-sub000/internal/usecase/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func iata(code string) dto.Endpoint { return dto.Endpoint{IATA: code} }

func coords(lat, lon float64) dto.Endpoint { return dto.Endpoint{Lat: f64(lat), Lon: f64(lon)} }

func newEmissionsUseCase(routes usecase.RouteResolver) *usecase.EmissionsUseCase {
	return usecase.NewEmissionsUseCase(refdata.Default(), routes, zap.NewNop())
}

func TestEmissionsUseCase_RoundTripDoubles(t *testing.T) {
	uc := newEmissionsUseCase(&MockRouteResolver{})
	ctx := context.Background()

	routes := []struct {
		name     string
		from, to dto.Endpoint
	}{
		{"short haul fallback", iata("LHR"), iata("LGW")},
		{"short band", iata("LHR"), iata("CDG")},
		{"medium band", iata("LHR"), iata("MAD")},
		{"long band", iata("LHR"), iata("SYD")},
	}

	for _, r := range routes {
		t.Run(r.name, func(t *testing.T) {
			req := dto.FlightRequest{
				Origin:       r.from,
				Destination:  r.to,
				Passengers:   120,
				CabinClass:   "business",
				AircraftType: "B77W",
				CargoTons:    3,
			}
			oneWay, err := uc.CalculateFlightEmissions(ctx, req)
			require.NoError(t, err)

			req.IsRoundTrip = true
			roundTrip, err := uc.CalculateFlightEmissions(ctx, req)
			require.NoError(t, err)

			assert.InEpsilon(t, 2*oneWay.TotalEmissionsT, roundTrip.TotalEmissionsT, 1e-6)
			assert.InEpsilon(t, 2*oneWay.PerPassengerT, roundTrip.PerPassengerT, 1e-6)
			assert.InEpsilon(t, 2*oneWay.DistanceKm, roundTrip.DistanceKm, 1e-9)
			assert.InEpsilon(t, 2*oneWay.CorrectedDistanceKm, roundTrip.CorrectedDistanceKm, 1e-9)
			assert.InEpsilon(t, 2*oneWay.FuelConsumptionKg, roundTrip.FuelConsumptionKg, 1e-9)
			assert.InEpsilon(t, roundTrip.TotalEmissionsT, roundTrip.PerPassengerT*120, 1e-9)
			assert.True(t, roundTrip.IsRoundTrip)
			assert.Equal(t, oneWay.FlightLengthClass, roundTrip.FlightLengthClass)
		})
	}
}

func TestEmissionsUseCase_Classification(t *testing.T) {
	uc := newEmissionsUseCase(&MockRouteResolver{})

	tests := []struct {
		to        string
		class     domain.FlightLengthClass
		shortHaul bool
	}{
		{"LGW", domain.FlightShort, true},
		{"CDG", domain.FlightShort, false},
		{"FCO", domain.FlightMedium, false},
		{"JFK", domain.FlightLong, false},
	}

	for _, tt := range tests {
		t.Run(tt.to, func(t *testing.T) {
			res, err := uc.CalculateFlightEmissions(context.Background(), dto.FlightRequest{
				Origin:      iata("LHR"),
				Destination: iata(tt.to),
				Passengers:  30,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.class, res.FlightLengthClass)
			assert.Equal(t, tt.shortHaul, res.FactorsApplied[domain.FactorShortHaulFallback])
			assert.Equal(t, domain.CabinEconomy, res.CabinClass)
			assert.GreaterOrEqual(t, res.CorrectedDistanceKm, res.DistanceKm)
			assert.InDelta(t, res.TotalEmissionsT, res.PerPassengerT*30, 1e-9)
		})
	}
}

func TestEmissionsUseCase_InputErrors(t *testing.T) {
	uc := newEmissionsUseCase(&MockRouteResolver{})

	tests := []struct {
		name  string
		req   dto.FlightRequest
		want  *errors.AppError
		field string
	}{
		{
			name: "zero passengers",
			req:  dto.FlightRequest{Origin: iata("LHR"), Destination: iata("CDG")},
			want: errors.ErrInvalidPassengers, field: "passengers",
		},
		{
			name: "negative cargo",
			req:  dto.FlightRequest{Origin: iata("LHR"), Destination: iata("CDG"), Passengers: 1, CargoTons: -2},
			want: errors.ErrInvalidCargo, field: "cargo_tons",
		},
		{
			name: "unknown airport",
			req:  dto.FlightRequest{Origin: iata("LHR"), Destination: iata("XYZ"), Passengers: 1},
			want: errors.ErrLocationNotFound, field: "destination",
		},
		{
			name: "missing location",
			req:  dto.FlightRequest{Origin: dto.Endpoint{}, Destination: iata("CDG"), Passengers: 1},
			want: errors.ErrLocationNotFound, field: "origin",
		},
		{
			name: "latitude out of range",
			req:  dto.FlightRequest{Origin: coords(95, 0), Destination: iata("CDG"), Passengers: 1},
			want: errors.ErrInvalidCoordinates, field: "origin",
		},
		{
			name: "unknown cabin class",
			req:  dto.FlightRequest{Origin: iata("LHR"), Destination: iata("JFK"), Passengers: 1, CabinClass: "suite"},
			want: errors.ErrUnknownCabinClass, field: "cabin_class",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CalculateFlightEmissions(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, errors.IsKind(err, errors.KindInput))

			appErr, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}
}

func TestEmissionsUseCase_CarbonCost(t *testing.T) {
	uc := newEmissionsUseCase(&MockRouteResolver{})

	res, err := uc.CalculateFlightEmissions(context.Background(), dto.FlightRequest{
		Origin:      iata("FRA"),
		Destination: iata("MAD"),
		Passengers:  10,
		Country:     "de",
	})
	require.NoError(t, err)
	require.NotNil(t, res.CarbonCost)
	assert.Equal(t, "EUR", res.CarbonCost.Currency)
	assert.InDelta(t, res.TotalEmissionsT*70, res.CarbonCost.Amount, 1e-9)

	res, err = uc.CalculateFlightEmissions(context.Background(), dto.FlightRequest{
		Origin:      iata("FRA"),
		Destination: iata("MAD"),
		Passengers:  10,
		Country:     "AQ",
	})
	require.NoError(t, err)
	assert.Nil(t, res.CarbonCost)
}

func TestEmissionsUseCase_CoordinatesAndIATAAgree(t *testing.T) {
	uc := newEmissionsUseCase(&MockRouteResolver{})

	byCode, err := uc.CalculateFlightEmissions(context.Background(), dto.FlightRequest{
		Origin: iata("LHR"), Destination: iata("CDG"), Passengers: 50,
	})
	require.NoError(t, err)

	byCoords, err := uc.CalculateFlightEmissions(context.Background(), dto.FlightRequest{
		Origin: coords(51.4700, -0.4543), Destination: coords(49.0097, 2.5479), Passengers: 50,
	})
	require.NoError(t, err)

	assert.Equal(t, byCode.TotalEmissionsT, byCoords.TotalEmissionsT)
}

func TestEmissionsUseCase_CompareModes(t *testing.T) {
	ctx := context.Background()
	req := dto.CompareRequest{FlightRequest: dto.FlightRequest{
		Origin:      iata("LHR"),
		Destination: iata("CDG"),
		Passengers:  2,
	}}

	t.Run("feasible and infeasible modes", func(t *testing.T) {
		routes := &MockRouteResolver{}
		routes.On("Resolve", ctx, mock.Anything, mock.Anything).Return(&domain.RouteCacheEntry{
			OriginKey:        "LHR",
			DestinationKey:   "CDG",
			DrivingDurationS: i64(21600),
			DrivingDistanceM: i64(460000),
		}, nil)
		uc := newEmissionsUseCase(routes)

		res, err := uc.CompareModes(ctx, req)
		require.NoError(t, err)
		require.Len(t, res.Modes, 2)

		rail, road := res.Modes[0], res.Modes[1]
		assert.Equal(t, domain.ModeRail, rail.Mode)
		assert.Equal(t, domain.ModeInfeasible, rail.Status)
		assert.Nil(t, rail.EmissionsT)

		assert.Equal(t, domain.ModeRoad, road.Mode)
		require.Equal(t, domain.ModeFeasible, road.Status)
		assert.InDelta(t, 460*0.171*2/1000, *road.EmissionsT, 1e-12)
		assert.Greater(t, res.Air.TotalEmissionsT, 0.0)
		assert.Equal(t, "LHR", res.Origin.Key)
		routes.AssertExpectations(t)
	})

	t.Run("round trip doubles surface modes", func(t *testing.T) {
		routes := &MockRouteResolver{}
		routes.On("Resolve", ctx, mock.Anything, mock.Anything).Return(&domain.RouteCacheEntry{
			TransitDurationS: i64(8400),
			TransitDistanceM: i64(492000),
		}, nil)
		uc := newEmissionsUseCase(routes)

		rt := req
		rt.IsRoundTrip = true
		res, err := uc.CompareModes(ctx, rt)
		require.NoError(t, err)

		rail := res.Modes[0]
		require.Equal(t, domain.ModeFeasible, rail.Status)
		assert.InDelta(t, 2*492*0.035*2/1000, *rail.EmissionsT, 1e-12)
		assert.Equal(t, int64(16800), *rail.DurationS)
	})

	t.Run("lookup failure is unavailable not infeasible", func(t *testing.T) {
		routes := &MockRouteResolver{}
		routes.On("Resolve", ctx, mock.Anything, mock.Anything).
			Return(nil, errors.ErrLookupFailed.Wrap(stderrors.New("timeout")))
		uc := newEmissionsUseCase(routes)

		res, err := uc.CompareModes(ctx, req)
		require.NoError(t, err)
		for _, m := range res.Modes {
			assert.Equal(t, domain.ModeUnavailable, m.Status)
			assert.Equal(t, "LOOKUP_FAILED", m.ErrorCode)
			assert.Nil(t, m.EmissionsT)
		}
	})

	t.Run("input errors are returned before any lookup", func(t *testing.T) {
		routes := &MockRouteResolver{}
		uc := newEmissionsUseCase(routes)

		bad := req
		bad.Passengers = 0
		_, err := uc.CompareModes(ctx, bad)
		assert.ErrorIs(t, err, errors.ErrInvalidPassengers)
		routes.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEmissionsUseCase_CompareModesColdAndWarmCache(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRouteRepo()
	provider := &countingProvider{}
	clock := &testClock{now: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}
	routes := newRouteUseCase(t, repo, provider, clock, time.Second)
	uc := newEmissionsUseCase(routes)

	req := dto.CompareRequest{FlightRequest: dto.FlightRequest{
		Origin:      iata("LHR"),
		Destination: iata("CDG"),
		Passengers:  1,
	}}

	res, err := uc.CompareModes(ctx, req)
	require.NoError(t, err)
	for _, m := range res.Modes {
		assert.Equal(t, domain.ModeFeasible, m.Status)
		assert.NotNil(t, m.EmissionsT)
	}
	driving, transit := provider.calls()
	assert.Equal(t, int32(1), driving)
	assert.Equal(t, int32(1), transit)

	clock.Advance(10 * 24 * time.Hour)
	_, err = uc.CompareModes(ctx, req)
	require.NoError(t, err)
	driving, transit = provider.calls()
	assert.Equal(t, int32(1), driving)
	assert.Equal(t, int32(1), transit)
}
