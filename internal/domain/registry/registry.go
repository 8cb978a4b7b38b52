package registry

import (
	"sort"

	"weather-dash/internal/domain/entity"
)

// Registry is the ordered, name-indexed set of cities the dashboard serves.
// Iteration order is load order; the upstream bulk endpoint echoes results
// back in request order, so the two must stay aligned.
type Registry struct {
	cities []entity.City
	index  map[string]int
}

// New builds a registry from the given cities, deduplicating by name with
// the first occurrence winning.
func New(cities []entity.City) *Registry {
	r := &Registry{index: make(map[string]int, len(cities))}
	for _, city := range cities {
		if _, exists := r.index[city.Name]; exists {
			continue
		}
		r.index[city.Name] = len(r.cities)
		r.cities = append(r.cities, city)
	}
	return r
}

// Cities returns the cities in registry order. The returned slice is shared;
// callers must not mutate it.
func (r *Registry) Cities() []entity.City {
	return r.cities
}

// Lookup finds a city by name.
func (r *Registry) Lookup(name string) (entity.City, bool) {
	i, ok := r.index[name]
	if !ok {
		return entity.City{}, false
	}
	return r.cities[i], true
}

// Names returns the city names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cities))
	for _, city := range r.cities {
		names = append(names, city.Name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of cities.
func (r *Registry) Len() int {
	return len(r.cities)
}

// Default returns the built-in registry of Malaysian cities.
func Default() *Registry {
	return New([]entity.City{
		{Name: "Kangar", Latitude: 6.44, Longitude: 100.19},
		{Name: "Alor Setar", Latitude: 6.12, Longitude: 100.37},
		{Name: "George Town", Latitude: 5.41, Longitude: 100.33},
		{Name: "Butterworth", Latitude: 5.40, Longitude: 100.37},
		{Name: "Bukit Mertajam", Latitude: 5.36, Longitude: 100.46},
		{Name: "Seberang Jaya", Latitude: 5.39, Longitude: 100.40},
		{Name: "Sungai Petani", Latitude: 5.65, Longitude: 100.49},
		{Name: "Taiping", Latitude: 4.85, Longitude: 100.73},
		{Name: "Ipoh", Latitude: 4.60, Longitude: 101.08},
		{Name: "Batu Gajah", Latitude: 4.47, Longitude: 101.04},
		{Name: "Teluk Intan", Latitude: 4.02, Longitude: 101.02},
		{Name: "Klang", Latitude: 3.03, Longitude: 101.45},
		{Name: "Shah Alam", Latitude: 3.07, Longitude: 101.52},
		{Name: "Petaling Jaya", Latitude: 3.11, Longitude: 101.60},
		{Name: "Kuala Lumpur", Latitude: 3.14, Longitude: 101.69},
		{Name: "Kajang", Latitude: 2.99, Longitude: 101.79},
		{Name: "Putrajaya", Latitude: 2.93, Longitude: 101.69},
		{Name: "Seremban", Latitude: 2.73, Longitude: 101.94},
		{Name: "Port Dickson", Latitude: 2.52, Longitude: 101.80},
		{Name: "Melaka", Latitude: 2.19, Longitude: 102.25},
		{Name: "Muar", Latitude: 2.05, Longitude: 102.57},
		{Name: "Batu Pahat", Latitude: 1.85, Longitude: 102.93},
		{Name: "Kluang", Latitude: 2.03, Longitude: 103.32},
		{Name: "Kulai", Latitude: 1.66, Longitude: 103.60},
		{Name: "Johor Bahru", Latitude: 1.49, Longitude: 103.74},
		{Name: "Pasir Gudang", Latitude: 1.46, Longitude: 103.90},
		{Name: "Taman Johor Jaya", Latitude: 1.52, Longitude: 103.79},
		{Name: "Segamat", Latitude: 2.51, Longitude: 102.82},
		{Name: "Kota Bharu", Latitude: 6.13, Longitude: 102.24},
		{Name: "Tumpat", Latitude: 6.20, Longitude: 102.17},
		{Name: "Kuala Terengganu", Latitude: 5.33, Longitude: 103.14},
		{Name: "Cukai", Latitude: 4.23, Longitude: 103.42},
		{Name: "Kuantan", Latitude: 3.81, Longitude: 103.33},
		{Name: "Kuching", Latitude: 1.55, Longitude: 110.34},
		{Name: "Simanggang", Latitude: 1.25, Longitude: 111.45},
		{Name: "Sibu", Latitude: 2.30, Longitude: 111.82},
		{Name: "Bintulu", Latitude: 3.17, Longitude: 113.03},
		{Name: "Miri", Latitude: 4.41, Longitude: 114.01},
		{Name: "Labuan", Latitude: 5.28, Longitude: 115.24},
		{Name: "Kota Kinabalu", Latitude: 5.98, Longitude: 116.07},
		{Name: "Tuaran", Latitude: 6.18, Longitude: 116.23},
		{Name: "Keningau", Latitude: 5.34, Longitude: 116.16},
		{Name: "Sandakan", Latitude: 5.84, Longitude: 118.12},
		{Name: "Lahad Datu", Latitude: 5.03, Longitude: 118.34},
		{Name: "Tawau", Latitude: 4.25, Longitude: 117.89},
	})
}
