package geo

import (
	"fmt"
	"math"

	"github.com/kvolkov/ambulance_dispatch/internal/models"
)

// Средний радиус Земли в километрах
const earthRadiusKm = 6371

// DefaultSpeedKmh - средняя скорость скорой помощи в городе с учетом трафика
const DefaultSpeedKmh = 50

// DistanceKm возвращает расстояние между точками по формуле гаверсинуса, в км
func DistanceKm(a, b models.Location) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// PlanarDistance возвращает евклидово расстояние в градусах.
// Используется только для быстрых сравнений близости и шагов движения;
// не смешивать с результатами DistanceKm в одном сравнении.
func PlanarDistance(a, b models.Location) float64 {
	dLat := b.Lat - a.Lat
	dLng := b.Lng - a.Lng
	return math.Sqrt(dLat*dLat + dLng*dLng)
}

// ETAMinutes возвращает оценку времени прибытия в минутах, минимум 1
func ETAMinutes(distanceKm, speedKmh float64) int {
	minutes := int(math.Ceil(distanceKm / speedKmh * 60))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// ETA возвращает оценку времени прибытия между двумя точками
// при средней городской скорости
func ETA(from, to models.Location) int {
	return ETAMinutes(DistanceKm(from, to), DefaultSpeedKmh)
}

// ETADescription возвращает человекочитаемое описание ETA
func ETADescription(etaMinutes int) string {
	switch {
	case etaMinutes < 1:
		return "Arriving now"
	case etaMinutes == 1:
		return "1 minute away"
	case etaMinutes <= 5:
		return fmt.Sprintf("%d minutes away", etaMinutes)
	case etaMinutes <= 15:
		return fmt.Sprintf("~%d minutes", etaMinutes)
	default:
		return fmt.Sprintf("%d minutes", etaMinutes)
	}
}
