package registry

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/encoding/charmap"

	"weather-dash/internal/domain/entity"
	"weather-dash/pkg/log"
)

// pointPattern matches the WKT-style coordinate column, e.g. "POINT(101.69 3.14)".
var pointPattern = regexp.MustCompile(`^POINT\s*\(\s*(-?[0-9.]+)\s+(-?[0-9.]+)\s*\)$`)

var validate = validator.New()

const (
	cityColumn  = "city"
	pointColumn = "point_coord"
)

// LoadCSV builds a registry from a latin-1 encoded CSV file with `city` and
// `point_coord` columns. Rows with unparseable or out-of-range coordinates
// are dropped; duplicate city names keep the first occurrence. A missing
// file or missing column is an error so the caller can fall back to the
// built-in table.
func LoadCSV(path string) (*Registry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return parseCSV(file)
}

func parseCSV(r io.Reader) (*Registry, error) {
	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read registry header: %w", err)
	}

	cityIdx, pointIdx := -1, -1
	for i, column := range header {
		switch column {
		case cityColumn:
			cityIdx = i
		case pointColumn:
			pointIdx = i
		}
	}
	if cityIdx < 0 || pointIdx < 0 {
		return nil, fmt.Errorf("registry file is missing required columns %q and %q", cityColumn, pointColumn)
	}

	var cities []entity.City
	dropped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read registry row: %w", err)
		}
		if cityIdx >= len(record) || pointIdx >= len(record) {
			dropped++
			continue
		}

		city, ok := parseRow(record[cityIdx], record[pointIdx])
		if !ok {
			dropped++
			continue
		}
		cities = append(cities, city)
	}

	if dropped > 0 {
		log.Warnf("Dropped %d registry rows with missing or invalid coordinates", dropped)
	}
	if len(cities) == 0 {
		return nil, fmt.Errorf("registry file contains no usable rows")
	}

	return New(cities), nil
}

// parseRow converts a city name and POINT(lon lat) column into a validated City.
func parseRow(name, point string) (entity.City, bool) {
	matches := pointPattern.FindStringSubmatch(point)
	if len(matches) != 3 {
		return entity.City{}, false
	}

	lon, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return entity.City{}, false
	}
	lat, err := strconv.ParseFloat(matches[2], 64)
	if err != nil {
		return entity.City{}, false
	}

	city := entity.City{Name: name, Latitude: lat, Longitude: lon}
	if err := validate.Struct(city); err != nil {
		return entity.City{}, false
	}
	return city, true
}
