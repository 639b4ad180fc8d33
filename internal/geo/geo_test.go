package geo

import (
	"testing"

	"github.com/kvolkov/ambulance_dispatch/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_SamePoint(t *testing.T) {
	p := models.Location{Lat: 34.0522, Lng: -118.2437}

	assert.Equal(t, 0.0, DistanceKm(p, p))
}

func TestDistanceKm_Symmetric(t *testing.T) {
	a := models.Location{Lat: 34.0522, Lng: -118.2437}
	b := models.Location{Lat: 34.0822, Lng: -118.2137}

	assert.InDelta(t, DistanceKm(a, b), DistanceKm(b, a), 1e-12)
	assert.Greater(t, DistanceKm(a, b), 0.0)
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	// Один градус широты - примерно 111 км
	a := models.Location{Lat: 0, Lng: 0}
	b := models.Location{Lat: 1, Lng: 0}

	assert.InDelta(t, 111.2, DistanceKm(a, b), 0.5)
}

func TestPlanarDistance(t *testing.T) {
	a := models.Location{Lat: 0, Lng: 0}
	b := models.Location{Lat: 3, Lng: 4}

	assert.InDelta(t, 5.0, PlanarDistance(a, b), 1e-12)
	assert.Equal(t, 0.0, PlanarDistance(a, a))
}

func TestETAMinutes_RoundsUp(t *testing.T) {
	// 10 км при 50 км/ч = 12 минут ровно
	assert.Equal(t, 12, ETAMinutes(10, 50))
	// 10.1 км округляется вверх
	assert.Equal(t, 13, ETAMinutes(10.1, 50))
}

func TestETAMinutes_MinimumOneMinute(t *testing.T) {
	assert.Equal(t, 1, ETAMinutes(0, 50))
	assert.Equal(t, 1, ETAMinutes(0.1, 50))
}

func TestETA_SamePointIsOneMinute(t *testing.T) {
	p := models.Location{Lat: 34.0522, Lng: -118.2437}

	assert.Equal(t, 1, ETA(p, p))
}

func TestETADescription(t *testing.T) {
	assert.Equal(t, "Arriving now", ETADescription(0))
	assert.Equal(t, "1 minute away", ETADescription(1))
	assert.Equal(t, "3 minutes away", ETADescription(3))
	assert.Equal(t, "~10 minutes", ETADescription(10))
	assert.Equal(t, "25 minutes", ETADescription(25))
}
