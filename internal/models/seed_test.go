package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFleet(t *testing.T) {
	center := Location{Lat: 34.0522, Lng: -118.2437}

	fleet := GenerateFleet(center)

	require.Len(t, fleet, 6)

	ids := make(map[string]bool)
	atHospital := 0
	for _, amb := range fleet {
		ids[amb.ID] = true
		if amb.Status == StatusAtHospital {
			atHospital++
		}
		assert.Positive(t, amb.Capacity)
		// Стартовые позиции лежат в пределах смещения от центра,
		// допуск e-9 покрывает погрешность сложения float64
		assert.InDelta(t, center.Lat, amb.Location.Lat, fleetOffset+1e-9)
		assert.InDelta(t, center.Lng, amb.Location.Lng, fleetOffset+1e-9)
	}
	assert.Len(t, ids, 6)
	assert.Equal(t, 1, atHospital)
}

func TestGenerateHospitals(t *testing.T) {
	center := Location{Lat: 34.0522, Lng: -118.2437}

	hospitals := GenerateHospitals(center)

	require.Len(t, hospitals, 2)
	for _, h := range hospitals {
		assert.NotEmpty(t, h.Name)
		assert.Greater(t, h.TotalBeds, h.AvailableBeds)
	}
}

func TestAmbulanceClone(t *testing.T) {
	amb := &Ambulance{
		ID:          "AMB-001",
		Location:    Location{Lat: 1, Lng: 2},
		Status:      StatusEnRoute,
		Destination: &Location{Lat: 3, Lng: 4},
		RoutePath:   []Location{{Lat: 1, Lng: 2}, {Lat: 3, Lng: 4}},
	}

	clone := amb.Clone()
	clone.Destination.Lat = 99
	clone.RoutePath[0].Lat = 99

	// Глубокая копия: мутации клона не задевают оригинал
	assert.Equal(t, 3.0, amb.Destination.Lat)
	assert.Equal(t, 1.0, amb.RoutePath[0].Lat)
}
