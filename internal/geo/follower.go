package geo

import "github.com/kvolkov/ambulance_dispatch/internal/models"

// Step - результат одного шага движения вдоль маршрута
type Step struct {
	Next      models.Location
	Remaining []models.Location
	Arrived   bool
}

// Advance продвигает точку вдоль ломаной маршрута на stepSize (в градусах).
//
// Если маршрут короче двух точек, двигаться не по чему: прибытие фиксируется
// сразу, позиция не меняется. Активным плечом считается отрезок от ближайшей
// к текущей позиции вершины до следующей. Когда остаток плеча меньше шага,
// плечо поглощается целиком, а неизрасходованный бюджет шага рекурсивно
// переносится на следующее плечо. Каждый рекурсивный вызов строго укорачивает
// список вершин, поэтому обход завершается за O(len(waypoints)).
func Advance(current models.Location, waypoints []models.Location, stepSize float64) Step {
	if len(waypoints) < 2 {
		return Step{Next: current, Remaining: waypoints, Arrived: true}
	}

	// Ищем ближайшую вершину; при равенстве побеждает первая
	closest := 0
	best := PlanarDistance(current, waypoints[0])
	for i := 1; i < len(waypoints); i++ {
		if d := PlanarDistance(current, waypoints[i]); d < best {
			best = d
			closest = i
		}
	}

	nextIdx := closest + 1
	if nextIdx >= len(waypoints) {
		nextIdx = closest
	}
	target := waypoints[nextIdx]

	dist := PlanarDistance(current, target)
	if dist <= stepSize {
		remaining := waypoints[nextIdx:]
		if len(remaining) < 2 {
			return Step{Next: target, Remaining: nil, Arrived: true}
		}
		return Advance(target, remaining, stepSize-dist)
	}

	next := models.Location{
		Lat: current.Lat + (target.Lat-current.Lat)/dist*stepSize,
		Lng: current.Lng + (target.Lng-current.Lng)/dist*stepSize,
	}
	return Step{Next: next, Remaining: waypoints, Arrived: false}
}

// StepToward двигает точку по прямой к цели на stepSize (в градусах).
// Расстояние меньше одного шага считается прибытием: позиция притягивается
// ровно на координату цели, чтобы накопленная ошибка float не мешала
// дальнейшим проверкам на равенство.
func StepToward(current, destination models.Location, stepSize float64) (models.Location, bool) {
	dist := PlanarDistance(current, destination)
	if dist < stepSize {
		return destination, true
	}

	next := models.Location{
		Lat: current.Lat + (destination.Lat-current.Lat)/dist*stepSize,
		Lng: current.Lng + (destination.Lng-current.Lng)/dist*stepSize,
	}
	return next, false
}
