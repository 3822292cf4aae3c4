package domain

// FlightLengthClass is the externally reported haul category. It is not
// the same banding as the GCD correction applied inside the fuel model.
type FlightLengthClass string

const (
	FlightShort  FlightLengthClass = "Short"
	FlightMedium FlightLengthClass = "Medium"
	FlightLong   FlightLengthClass = "Long"
)

const (
	shortHaulLimitKm  = 800.0
	mediumHaulLimitKm = 4800.0
)

func ClassifyFlightLength(distanceKm float64) FlightLengthClass {
	switch {
	case distanceKm < shortHaulLimitKm:
		return FlightShort
	case distanceKm < mediumHaulLimitKm:
		return FlightMedium
	default:
		return FlightLong
	}
}

type CabinClass string

const (
	CabinEconomy        CabinClass = "economy"
	CabinPremiumEconomy CabinClass = "premium_economy"
	CabinBusiness       CabinClass = "business"
	CabinFirst          CabinClass = "first"
)

type RouteGroup string

const (
	RouteGroupDomestic    RouteGroup = "domestic"
	RouteGroupIntraRegion RouteGroup = "intra_region"
	RouteGroupInterRegion RouteGroup = "inter_region"
)

// Keys used in EmissionsResult.FactorsApplied.
const (
	FactorShortHaulFallback   = "short_haul_fallback"
	FactorShortHaulFuelPerKm  = "short_haul_fuel_per_km"
	FactorCO2PerKgFuel        = "co2_per_kg_fuel"
	FactorGCDBufferKm         = "gcd_buffer_km"
	FactorPassengerLoadFactor = "passenger_load_factor"
	FactorPassengerToCargo    = "passenger_to_cargo_factor"
	FactorYSeatFactor         = "yseat_factor"
	FactorPassengerMassT      = "passenger_mass_t"
	FactorPassengerAllocation = "passenger_allocation"
	FactorFuelDistanceNM      = "fuel_distance_nm"
	FactorOccupiedYSeats      = "occupied_yseats"
	FactorAircraftFallback    = "aircraft_fallback"
	FactorRouteGroupFallback  = "route_group_fallback"
	FactorDegenerateMass      = "degenerate_mass"
	FactorDegenerateOccupancy = "degenerate_occupancy"
	FactorIsInternational     = "is_international"
)

// EmissionsResult is built once per calculation and not modified afterwards.
// FactorsApplied values are float64 or bool.
type EmissionsResult struct {
	TotalEmissionsT     float64           `json:"total_emissions_t"`
	PerPassengerT       float64           `json:"per_passenger_t"`
	DistanceKm          float64           `json:"distance_km"`
	CorrectedDistanceKm float64           `json:"corrected_distance_km"`
	FuelConsumptionKg   float64           `json:"fuel_consumption_kg"`
	FlightLengthClass   FlightLengthClass `json:"flight_length_class"`
	IsRoundTrip         bool              `json:"is_round_trip"`
	IsInternational     bool              `json:"is_international"`
	Passengers          int               `json:"passengers"`
	AircraftType        string            `json:"aircraft_type"`
	CabinClass          CabinClass        `json:"cabin_class"`
	FactorsApplied      map[string]any    `json:"factors_applied"`
	CarbonCost          *CarbonCost       `json:"carbon_cost,omitempty"`
}

type CarbonCost struct {
	Country     string  `json:"country"`
	Currency    string  `json:"currency"`
	PricePerTon float64 `json:"price_per_ton"`
	Amount      float64 `json:"amount"`
}

type TransportMode string

const (
	ModeAir  TransportMode = "air"
	ModeRail TransportMode = "rail"
	ModeRoad TransportMode = "road"
)

// TravelMode is the routing mode that decides whether a surface mode is
// feasible at all.
func (m TransportMode) TravelMode() (TravelMode, bool) {
	switch m {
	case ModeRail:
		return TravelModeTransit, true
	case ModeRoad:
		return TravelModeDriving, true
	default:
		return "", false
	}
}

type ModeStatus string

const (
	ModeFeasible ModeStatus = "feasible"
	// ModeInfeasible means the provider found no route for the mode.
	ModeInfeasible ModeStatus = "infeasible"
	// ModeUnavailable means the route lookup failed and may be retried.
	ModeUnavailable ModeStatus = "unavailable"
)

// ModeEmissions is one row of a mode comparison. EmissionsT is nil unless
// Status is ModeFeasible.
type ModeEmissions struct {
	Mode       TransportMode `json:"mode"`
	Status     ModeStatus    `json:"status"`
	EmissionsT *float64      `json:"emissions_t"`
	DistanceKm *float64      `json:"distance_km,omitempty"`
	DurationS  *int64        `json:"duration_s,omitempty"`
	Routed     bool          `json:"routed"`
	ErrorCode  string        `json:"error_code,omitempty"`
}

type ComparisonResult struct {
	Origin      Place           `json:"origin"`
	Destination Place           `json:"destination"`
	Air         EmissionsResult `json:"air"`
	Modes       []ModeEmissions `json:"modes"`
}
