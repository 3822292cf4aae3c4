package usecase

import (
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/errors"
	"github.com/samali323/carbonemissioncalc-sub000/internal/refdata"
	"github.com/samali323/carbonemissioncalc-sub000/internal/usecase/dto"
)

// LocationResolver turns request endpoints into places.
type LocationResolver struct {
	ref *refdata.ReferenceData
}

func NewLocationResolver(ref *refdata.ReferenceData) *LocationResolver {
	return &LocationResolver{ref: ref}
}

// Resolve prefers the IATA code when present. field names the endpoint in
// error details.
func (r *LocationResolver) Resolve(ep dto.Endpoint, field string) (domain.Place, error) {
	if ep.IATA != "" {
		airport, ok := r.ref.Airport(ep.IATA)
		if !ok {
			return domain.Place{}, errors.ErrLocationNotFound.WithField(field, ep.IATA)
		}
		key := ep.Key
		if key == "" {
			key = airport.IATA
		}
		return domain.Place{
			Key:        key,
			Name:       airport.Name,
			Country:    airport.Country,
			Coordinate: airport.Coordinate,
		}, nil
	}

	if ep.Lat == nil || ep.Lon == nil {
		return domain.Place{}, errors.ErrLocationNotFound.WithField(field, "missing iata code or coordinates")
	}

	c := domain.Coordinate{Lat: *ep.Lat, Lon: *ep.Lon}
	if !c.IsValid() {
		return domain.Place{}, errors.ErrInvalidCoordinates.WithField(field, c)
	}

	place := domain.NewPlace(ep.Key, c)
	place.Name = ep.Name
	return place, nil
}
