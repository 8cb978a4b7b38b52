package dashboard

import (
	"errors"

	"weather-dash/internal/domain/model"
)

// ErrCityNotFound is returned when a detail view is requested for a city
// that is not in the registry.
var ErrCityNotFound = errors.New("city not found")

type UseCase interface {
	// Navigation returns the sidebar options: home followed by sorted city names
	Navigation() model.NavigationView

	// Overview builds the national overview from a bulk current-conditions fetch
	Overview() (*model.OverviewView, error)

	// CityDetail builds the detail view for one city, with the hourly chart
	// limited to at most hours entries starting at the first timestamp >= now
	CityDetail(name string, hours int) (*model.CityDetailView, error)
}
