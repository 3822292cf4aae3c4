package usecase

import (
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/errors"
	"github.com/samali323/carbonemissioncalc-sub000/internal/refdata"
)

const (
	// CO2PerKgFuel is kg of CO2 emitted per kg of jet fuel burnt.
	CO2PerKgFuel = 3.16

	shortHaulLimitKm      = 200.0
	shortHaulBaseLimitKm  = 100.0
	shortHaulBaseFuelKm   = 3.5
	shortHaulFuelKmPerKm  = 0.02
	passengerBodyMassKg   = 100.0
	passengerBaggageKg    = 50.0
	kmPerNauticalMile     = 1.852
	gcdShortBandLimitKm   = 550.0
	gcdMediumBandLimitKm  = 5500.0
	gcdShortBandBufferKm  = 50.0
	gcdMediumBandBufferKm = 100.0
	gcdLongBandBufferKm   = 125.0
)

// EngineInput describes one flight leg.
type EngineInput struct {
	DistanceKm      float64
	AircraftType    string
	CabinClass      domain.CabinClass
	Passengers      int
	CargoTons       float64
	IsInternational bool
	RouteGroup      domain.RouteGroup
}

type EngineOutput struct {
	EmissionsTotalKg    float64
	EmissionsPerPaxKg   float64
	FuelConsumptionKg   float64
	CorrectedDistanceKm float64
	AircraftType        string
	FactorsApplied      map[string]any
}

// ICAOEngine estimates a single flight leg with the ICAO fuel allocation
// model. It holds no mutable state.
type ICAOEngine struct {
	ref *refdata.ReferenceData
}

func NewICAOEngine(ref *refdata.ReferenceData) *ICAOEngine {
	return &ICAOEngine{ref: ref}
}

// GCDBufferKm is the routing allowance added to a great-circle distance.
func GCDBufferKm(distanceKm float64) float64 {
	switch {
	case distanceKm <= gcdShortBandLimitKm:
		return gcdShortBandBufferKm
	case distanceKm <= gcdMediumBandLimitKm:
		return gcdMediumBandBufferKm
	default:
		return gcdLongBandBufferKm
	}
}

// ShortHaulFuelPerKm is the fuel rate used below 200 km, where the table
// model is unreliable.
func ShortHaulFuelPerKm(distanceKm float64) float64 {
	if distanceKm < shortHaulBaseLimitKm {
		return shortHaulBaseFuelKm
	}
	return shortHaulBaseFuelKm + (distanceKm-shortHaulBaseLimitKm)*shortHaulFuelKmPerKm
}

// Estimate computes emissions for one leg. The only error is an unknown
// cabin class; unknown aircraft and route groups fall back to defaults and
// zero denominators yield zero emissions, both flagged in FactorsApplied.
func (e *ICAOEngine) Estimate(in EngineInput) (EngineOutput, error) {
	cabin, ok := e.ref.Cabin(in.CabinClass)
	if !ok {
		return EngineOutput{}, errors.ErrUnknownCabinClass.WithField("cabin_class", string(in.CabinClass))
	}

	factors := map[string]any{
		domain.FactorCO2PerKgFuel:        CO2PerKgFuel,
		domain.FactorIsInternational:     in.IsInternational,
		domain.FactorShortHaulFallback:   false,
		domain.FactorAircraftFallback:    false,
		domain.FactorRouteGroupFallback:  false,
		domain.FactorDegenerateMass:      false,
		domain.FactorDegenerateOccupancy: false,
	}

	if in.DistanceKm < shortHaulLimitKm {
		return e.shortHaul(in, factors), nil
	}

	// 1. routing allowance
	buffer := GCDBufferKm(in.DistanceKm)
	corrected := in.DistanceKm + buffer
	factors[domain.FactorGCDBufferKm] = buffer

	// 2. load and freight factors
	group, _, groupFallback := e.ref.RouteGroup(in.RouteGroup)
	factors[domain.FactorRouteGroupFallback] = groupFallback
	factors[domain.FactorPassengerLoadFactor] = group.PassengerLoadFactor
	factors[domain.FactorPassengerToCargo] = group.PassengerToCargoFactor

	// 3. cabin floor space relative to economy
	factors[domain.FactorYSeatFactor] = cabin.YSeatFactor

	// 4. fuel burnt over the corrected stage
	table, aircraft, aircraftFallback := e.ref.FuelTable(in.AircraftType)
	factors[domain.FactorAircraftFallback] = aircraftFallback
	nm := corrected / kmPerNauticalMile
	fuel := table.Interpolate(nm)
	factors[domain.FactorFuelDistanceNM] = nm

	out := EngineOutput{
		FuelConsumptionKg:   fuel,
		CorrectedDistanceKm: corrected,
		AircraftType:        aircraft,
		FactorsApplied:      factors,
	}

	// 5. share of the payload carried by passengers
	passengerMassT := float64(in.Passengers) * (passengerBodyMassKg + passengerBaggageKg) / 1000
	totalMassT := passengerMassT + in.CargoTons
	factors[domain.FactorPassengerMassT] = passengerMassT
	if totalMassT <= 0 {
		factors[domain.FactorDegenerateMass] = true
		return out, nil
	}
	allocation := passengerMassT / totalMassT
	factors[domain.FactorPassengerAllocation] = allocation

	// 6. occupied economy-equivalent seats
	if group.PassengerLoadFactor <= 0 {
		factors[domain.FactorDegenerateOccupancy] = true
		return out, nil
	}
	totalSeats := float64(in.Passengers) / group.PassengerLoadFactor
	occupiedYSeats := totalSeats * cabin.YSeatFactor * group.PassengerLoadFactor
	factors[domain.FactorOccupiedYSeats] = occupiedYSeats
	if occupiedYSeats <= 0 {
		factors[domain.FactorDegenerateOccupancy] = true
		return out, nil
	}

	// 7. per passenger and total
	perPax := fuel * group.PassengerToCargoFactor * allocation / occupiedYSeats * cabin.YSeatFactor * CO2PerKgFuel
	out.EmissionsPerPaxKg = perPax
	out.EmissionsTotalKg = perPax * float64(in.Passengers)

	return out, nil
}

func (e *ICAOEngine) shortHaul(in EngineInput, factors map[string]any) EngineOutput {
	rate := ShortHaulFuelPerKm(in.DistanceKm)
	fuel := in.DistanceKm * rate
	total := fuel * CO2PerKgFuel

	factors[domain.FactorShortHaulFallback] = true
	factors[domain.FactorShortHaulFuelPerKm] = rate

	out := EngineOutput{
		EmissionsTotalKg:    total,
		FuelConsumptionKg:   fuel,
		CorrectedDistanceKm: in.DistanceKm,
		AircraftType:        in.AircraftType,
		FactorsApplied:      factors,
	}
	if in.Passengers <= 0 {
		factors[domain.FactorDegenerateOccupancy] = true
		out.EmissionsTotalKg = 0
		return out
	}
	out.EmissionsPerPaxKg = total / float64(in.Passengers)
	return out
}
