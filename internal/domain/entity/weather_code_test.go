package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribeWeatherCode(t *testing.T) {
	tests := []struct {
		name            string
		code            int
		wantDescription string
		wantIcon        string
	}{
		{name: "clear sky", code: 0, wantDescription: "Clear", wantIcon: "☀️"},
		{name: "thunderstorm", code: 95, wantDescription: "Thunderstorm", wantIcon: "⛈️"},
		{name: "unknown code", code: 42, wantDescription: "Unknown", wantIcon: ""},
		{name: "negative code", code: -1, wantDescription: "Unknown", wantIcon: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			condition := DescribeWeatherCode(tt.code)

			assert.Equal(t, tt.wantDescription, condition.Description)
			assert.Equal(t, tt.wantIcon, condition.Icon)
		})
	}
}

func TestWeatherConditionLabel(t *testing.T) {
	condition := DescribeWeatherCode(61)
	assert.Equal(t, "🌧️ Slight rain", condition.Label())

	unknown := DescribeWeatherCode(999)
	assert.Equal(t, "Unknown", unknown.Label())
}
