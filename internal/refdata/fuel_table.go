package refdata

import (
	"fmt"
	"math"
	"sort"
)

// FuelBreakpoint is the fuel burnt over a whole stage of DistanceNM.
type FuelBreakpoint struct {
	DistanceNM float64 `json:"distance_nm" mapstructure:"distance_nm"`
	FuelKg     float64 `json:"fuel_kg" mapstructure:"fuel_kg"`
}

// FuelTable maps stage length to fuel burn for one aircraft type.
type FuelTable struct {
	points []FuelBreakpoint
}

// NewFuelTable sorts points by distance and rejects tables that cannot be
// interpolated.
func NewFuelTable(points []FuelBreakpoint) (*FuelTable, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("fuel table has no breakpoints")
	}

	sorted := make([]FuelBreakpoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DistanceNM < sorted[j].DistanceNM
	})

	for i, p := range sorted {
		if math.IsNaN(p.DistanceNM) || math.IsNaN(p.FuelKg) || p.DistanceNM < 0 || p.FuelKg < 0 {
			return nil, fmt.Errorf("invalid breakpoint %v", p)
		}
		if i > 0 && p.DistanceNM == sorted[i-1].DistanceNM {
			return nil, fmt.Errorf("duplicate breakpoint at %v nm", p.DistanceNM)
		}
	}

	return &FuelTable{points: sorted}, nil
}

func mustFuelTable(points ...FuelBreakpoint) *FuelTable {
	t, err := NewFuelTable(points)
	if err != nil {
		panic(err)
	}
	return t
}

// Interpolate returns the fuel burn for distanceNM. Queries outside the
// table are clamped to the first and last breakpoints.
func (t *FuelTable) Interpolate(distanceNM float64) float64 {
	first, last := t.points[0], t.points[len(t.points)-1]
	if distanceNM <= first.DistanceNM {
		return first.FuelKg
	}
	if distanceNM >= last.DistanceNM {
		return last.FuelKg
	}

	// first index whose distance is >= the query
	i := sort.Search(len(t.points), func(i int) bool {
		return t.points[i].DistanceNM >= distanceNM
	})
	hi := t.points[i]
	if hi.DistanceNM == distanceNM {
		return hi.FuelKg
	}
	lo := t.points[i-1]

	ratio := (distanceNM - lo.DistanceNM) / (hi.DistanceNM - lo.DistanceNM)
	return lo.FuelKg + ratio*(hi.FuelKg-lo.FuelKg)
}

func (t *FuelTable) Breakpoints() []FuelBreakpoint {
	out := make([]FuelBreakpoint, len(t.points))
	copy(out, t.points)
	return out
}

func (t *FuelTable) MinDistanceNM() float64 { return t.points[0].DistanceNM }
func (t *FuelTable) MaxDistanceNM() float64 { return t.points[len(t.points)-1].DistanceNM }
