package usecase

import (
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
	"github.com/samali323/carbonemissioncalc-sub000/internal/refdata"
)

// SurfaceModes are the modes compared against flying.
var SurfaceModes = []domain.TransportMode{domain.ModeRail, domain.ModeRoad}

// ModeEmissionsT is the flat per passenger-km model for surface modes.
func ModeEmissionsT(distanceKm, multiplier, kgPerPassengerKm float64, passengers int) float64 {
	return distanceKm * multiplier * kgPerPassengerKm * float64(passengers) / 1000
}

// TransportModeEstimator estimates rail and road emissions. A mode is only
// estimated when the route cache holds a duration for it.
type TransportModeEstimator struct {
	ref *refdata.ReferenceData
}

func NewTransportModeEstimator(ref *refdata.ReferenceData) *TransportModeEstimator {
	return &TransportModeEstimator{ref: ref}
}

// Estimate returns the one-way figure for mode. straightKm is used, scaled
// by the mode's multiplier, when the entry has a duration but no routed
// distance. A routed distance is used as is.
func (e *TransportModeEstimator) Estimate(
	mode domain.TransportMode,
	straightKm float64,
	passengers int,
	entry *domain.RouteCacheEntry,
) domain.ModeEmissions {
	result := domain.ModeEmissions{Mode: mode, Status: domain.ModeInfeasible}

	travelMode, ok := mode.TravelMode()
	factor, hasFactor := e.ref.ModeFactor(mode)
	if !ok || !hasFactor || entry == nil {
		return result
	}

	duration := entry.Duration(travelMode)
	if duration == nil {
		return result
	}

	distanceKm := straightKm
	multiplier := factor.DistanceMultiplier
	if distanceM := entry.Distance(travelMode); distanceM != nil {
		distanceKm = float64(*distanceM) / 1000
		multiplier = 1.0
		result.Routed = true
	}

	emissions := ModeEmissionsT(distanceKm, multiplier, factor.KgPerPassengerKm, passengers)
	effectiveKm := distanceKm * multiplier
	d := *duration

	result.Status = domain.ModeFeasible
	result.EmissionsT = &emissions
	result.DistanceKm = &effectiveKm
	result.DurationS = &d
	return result
}
