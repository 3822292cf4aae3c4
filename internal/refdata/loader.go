package refdata

import (
	"fmt"
	"strings"

	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"
)

// fileData is the on-disk shape of a reference data override file. Every
// map entry replaces the built-in entry with the same key.
type fileData struct {
	DefaultAircraft   string                       `mapstructure:"default_aircraft"`
	DefaultRouteGroup string                       `mapstructure:"default_route_group"`
	CabinClasses      map[string]CabinClassProfile `mapstructure:"cabin_classes"`
	RouteGroups       map[string]RouteGroupProfile `mapstructure:"route_groups"`
	FuelTables        map[string][]FuelBreakpoint  `mapstructure:"fuel_tables"`
	ModeFactors       map[string]ModeFactor        `mapstructure:"mode_factors"`
	Airports          map[string]airportRecord     `mapstructure:"airports"`
	CarbonPrices      map[string]priceRecord       `mapstructure:"carbon_prices"`
}

type airportRecord struct {
	Name    string  `mapstructure:"name"`
	Country string  `mapstructure:"country"`
	Lat     float64 `mapstructure:"lat"`
	Lon     float64 `mapstructure:"lon"`
}

type priceRecord struct {
	Currency    string  `mapstructure:"currency"`
	PricePerTon float64 `mapstructure:"price_per_ton"`
}

// Default returns the built-in reference data.
func Default() *ReferenceData {
	ref, err := build(defaultFile())
	if err != nil {
		panic(fmt.Sprintf("built-in reference data is invalid: %v", err))
	}
	return ref
}

// Load reads overrides from a YAML or JSON file at path on top of the
// built-in tables. An empty path returns the defaults.
func Load(path string) (*ReferenceData, error) {
	if path == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read reference data %s: %w", path, err)
	}

	var overrides fileData
	if err := v.Unmarshal(&overrides); err != nil {
		return nil, fmt.Errorf("failed to decode reference data %s: %w", path, err)
	}

	merged := defaultFile()
	merged.merge(overrides)

	ref, err := build(merged)
	if err != nil {
		return nil, fmt.Errorf("invalid reference data %s: %w", path, err)
	}
	return ref, nil
}

func (f *fileData) merge(o fileData) {
	if o.DefaultAircraft != "" {
		f.DefaultAircraft = o.DefaultAircraft
	}
	if o.DefaultRouteGroup != "" {
		f.DefaultRouteGroup = o.DefaultRouteGroup
	}
	for k, v := range o.CabinClasses {
		f.CabinClasses[k] = v
	}
	for k, v := range o.RouteGroups {
		f.RouteGroups[k] = v
	}
	// viper lower-cases keys; the built-in maps use upper-case codes
	for k, v := range o.FuelTables {
		f.FuelTables[normalizeAircraft(k)] = v
	}
	for k, v := range o.ModeFactors {
		f.ModeFactors[k] = v
	}
	for k, v := range o.Airports {
		f.Airports[normalizeCode(k)] = v
	}
	for k, v := range o.CarbonPrices {
		f.CarbonPrices[normalizeCode(k)] = v
	}
}

func build(f fileData) (*ReferenceData, error) {
	ref := &ReferenceData{
		cabins:            make(map[domain.CabinClass]CabinClassProfile, len(f.CabinClasses)),
		routeGroups:       make(map[domain.RouteGroup]RouteGroupProfile, len(f.RouteGroups)),
		defaultRouteGroup: domain.RouteGroup(strings.ToLower(f.DefaultRouteGroup)),
		fuelTables:        make(map[string]*FuelTable, len(f.FuelTables)),
		defaultAircraft:   normalizeAircraft(f.DefaultAircraft),
		modeFactors:       make(map[domain.TransportMode]ModeFactor, len(f.ModeFactors)),
		airports:          make(map[string]Airport, len(f.Airports)),
		carbonPrices:      make(map[string]CarbonPrice, len(f.CarbonPrices)),
	}

	economy, ok := f.CabinClasses[string(domain.CabinEconomy)]
	if !ok || economy.Surface() <= 0 {
		return nil, fmt.Errorf("economy cabin profile is required and must have a positive surface")
	}
	for name, p := range f.CabinClasses {
		if p.AbreastRatio <= 0 || p.SeatPitchIn <= 0 {
			return nil, fmt.Errorf("cabin class %q: abreast ratio and seat pitch must be positive", name)
		}
		p.YSeatFactor = p.Surface() / economy.Surface()
		ref.cabins[domain.CabinClass(strings.ToLower(name))] = p
	}

	for name, p := range f.RouteGroups {
		if p.PassengerLoadFactor < 0 || p.PassengerLoadFactor > 1 ||
			p.PassengerToCargoFactor < 0 || p.PassengerToCargoFactor > 1 {
			return nil, fmt.Errorf("route group %q: factors must be within [0, 1]", name)
		}
		ref.routeGroups[domain.RouteGroup(strings.ToLower(name))] = p
	}
	if _, ok := ref.routeGroups[ref.defaultRouteGroup]; !ok {
		return nil, fmt.Errorf("default route group %q has no profile", ref.defaultRouteGroup)
	}

	for aircraft, points := range f.FuelTables {
		table, err := NewFuelTable(points)
		if err != nil {
			return nil, fmt.Errorf("fuel table %s: %w", aircraft, err)
		}
		ref.fuelTables[normalizeAircraft(aircraft)] = table
	}
	if _, ok := ref.fuelTables[ref.defaultAircraft]; !ok {
		return nil, fmt.Errorf("default aircraft %q has no fuel table", ref.defaultAircraft)
	}

	for name, m := range f.ModeFactors {
		if m.KgPerPassengerKm < 0 || m.DistanceMultiplier < 1 {
			return nil, fmt.Errorf("mode %q: factor must be non-negative and multiplier at least 1", name)
		}
		ref.modeFactors[domain.TransportMode(strings.ToLower(name))] = m
	}
	for _, mode := range []domain.TransportMode{domain.ModeRail, domain.ModeRoad} {
		if _, ok := ref.modeFactors[mode]; !ok {
			return nil, fmt.Errorf("mode factor for %q is required", mode)
		}
	}

	for code, a := range f.Airports {
		code = normalizeCode(code)
		c := domain.Coordinate{Lat: a.Lat, Lon: a.Lon}
		if len(code) != 3 || !c.IsValid() {
			return nil, fmt.Errorf("airport %q: invalid code or coordinates", code)
		}
		ref.airports[code] = Airport{
			IATA:       code,
			Name:       a.Name,
			Country:    normalizeCode(a.Country),
			Coordinate: c,
		}
	}

	for country, p := range f.CarbonPrices {
		country = normalizeCode(country)
		unit, err := currency.ParseISO(p.Currency)
		if err != nil {
			return nil, fmt.Errorf("carbon price %s: %w", country, err)
		}
		if p.PricePerTon < 0 {
			return nil, fmt.Errorf("carbon price %s: price must be non-negative", country)
		}
		ref.carbonPrices[country] = CarbonPrice{
			Country:     country,
			Currency:    unit.String(),
			PricePerTon: p.PricePerTon,
		}
	}

	return ref, nil
}
