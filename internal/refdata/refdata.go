// Package refdata holds the static reference tables used by the emissions
// engine. A ReferenceData value is immutable once built; share it freely.
package refdata

import (
	"sort"
	"strings"

	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
)

// CabinClassProfile describes the floor space a seat takes relative to
// economy.
type CabinClassProfile struct {
	AbreastRatio float64 `json:"abreast_ratio" mapstructure:"abreast_ratio"`
	SeatPitchIn  float64 `json:"seat_pitch_in" mapstructure:"seat_pitch_in"`
	YSeatFactor  float64 `json:"yseat_factor" mapstructure:"-"`
}

func (p CabinClassProfile) Surface() float64 {
	return p.AbreastRatio * p.SeatPitchIn
}

type RouteGroupProfile struct {
	PassengerLoadFactor    float64 `json:"passenger_load_factor" mapstructure:"passenger_load_factor"`
	PassengerToCargoFactor float64 `json:"passenger_to_cargo_factor" mapstructure:"passenger_to_cargo_factor"`
}

// ModeFactor is the flat emission model for a surface transport mode.
type ModeFactor struct {
	KgPerPassengerKm   float64 `json:"kg_per_passenger_km" mapstructure:"kg_per_passenger_km"`
	DistanceMultiplier float64 `json:"distance_multiplier" mapstructure:"distance_multiplier"`
}

type Airport struct {
	IATA       string            `json:"iata"`
	Name       string            `json:"name"`
	Country    string            `json:"country"`
	Coordinate domain.Coordinate `json:"coordinate"`
}

type CarbonPrice struct {
	Country     string  `json:"country"`
	Currency    string  `json:"currency"`
	PricePerTon float64 `json:"price_per_ton"`
}

type ReferenceData struct {
	cabins            map[domain.CabinClass]CabinClassProfile
	routeGroups       map[domain.RouteGroup]RouteGroupProfile
	defaultRouteGroup domain.RouteGroup
	fuelTables        map[string]*FuelTable
	defaultAircraft   string
	modeFactors       map[domain.TransportMode]ModeFactor
	airports          map[string]Airport
	carbonPrices      map[string]CarbonPrice
}

func normalizeAircraft(aircraft string) string {
	return strings.ToUpper(strings.TrimSpace(aircraft))
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (r *ReferenceData) Cabin(class domain.CabinClass) (CabinClassProfile, bool) {
	p, ok := r.cabins[class]
	return p, ok
}

// RouteGroup returns the profile for group. An empty group resolves to the
// default without counting as a fallback; an unknown one reports fellBack.
func (r *ReferenceData) RouteGroup(group domain.RouteGroup) (profile RouteGroupProfile, resolved domain.RouteGroup, fellBack bool) {
	if group == "" {
		return r.routeGroups[r.defaultRouteGroup], r.defaultRouteGroup, false
	}
	if p, ok := r.routeGroups[group]; ok {
		return p, group, false
	}
	return r.routeGroups[r.defaultRouteGroup], r.defaultRouteGroup, true
}

// FuelTable returns the table for aircraft. An empty type resolves to the
// default aircraft without counting as a fallback; an unknown one reports
// fellBack.
func (r *ReferenceData) FuelTable(aircraft string) (table *FuelTable, resolved string, fellBack bool) {
	key := normalizeAircraft(aircraft)
	if key == "" {
		return r.fuelTables[r.defaultAircraft], r.defaultAircraft, false
	}
	if t, ok := r.fuelTables[key]; ok {
		return t, key, false
	}
	return r.fuelTables[r.defaultAircraft], r.defaultAircraft, true
}

func (r *ReferenceData) DefaultAircraft() string { return r.defaultAircraft }

func (r *ReferenceData) ModeFactor(mode domain.TransportMode) (ModeFactor, bool) {
	f, ok := r.modeFactors[mode]
	return f, ok
}

func (r *ReferenceData) Airport(iata string) (Airport, bool) {
	a, ok := r.airports[normalizeCode(iata)]
	return a, ok
}

func (r *ReferenceData) CarbonPrice(country string) (CarbonPrice, bool) {
	p, ok := r.carbonPrices[normalizeCode(country)]
	return p, ok
}

// Aircraft lists the aircraft types with a fuel table.
func (r *ReferenceData) Aircraft() []string {
	out := make([]string, 0, len(r.fuelTables))
	for k := range r.fuelTables {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
