package geo

import (
	"testing"

	"github.com/kvolkov/ambulance_dispatch/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAdvance_EmptyRoute(t *testing.T) {
	current := models.Location{Lat: 1, Lng: 2}

	step := Advance(current, nil, 0.5)

	assert.True(t, step.Arrived)
	assert.Equal(t, current, step.Next)
}

func TestAdvance_SingleWaypoint(t *testing.T) {
	current := models.Location{Lat: 1, Lng: 2}
	route := []models.Location{{Lat: 5, Lng: 5}}

	step := Advance(current, route, 0.5)

	// Одна вершина не образует плеча, двигаться не по чему
	assert.True(t, step.Arrived)
	assert.Equal(t, current, step.Next)
}

func TestAdvance_PartialStepAlongLeg(t *testing.T) {
	route := []models.Location{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 0, Lng: 2}}

	step := Advance(models.Location{Lat: 0, Lng: 0}, route, 0.5)

	assert.False(t, step.Arrived)
	assert.InDelta(t, 0.0, step.Next.Lat, 1e-12)
	assert.InDelta(t, 0.5, step.Next.Lng, 1e-12)
}

func TestAdvance_ReachesEndInFourSteps(t *testing.T) {
	route := []models.Location{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 0, Lng: 2}}
	current := models.Location{Lat: 0, Lng: 0}

	var step Step
	for i := 0; i < 4; i++ {
		step = Advance(current, route, 0.5)
		current = step.Next
		if i < 3 {
			assert.False(t, step.Arrived, "arrived too early on step %d", i+1)
		}
		// Движение никогда не выходит за конечную точку
		assert.LessOrEqual(t, current.Lng, 2.0)
	}

	assert.True(t, step.Arrived)
	assert.InDelta(t, 0.0, current.Lat, 1e-12)
	assert.InDelta(t, 2.0, current.Lng, 1e-12)
}

func TestAdvance_ConsumesLegAndCarriesBudget(t *testing.T) {
	// Шаг длиннее первого плеча: остаток бюджета переносится на следующее
	route := []models.Location{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 0.3}, {Lat: 0, Lng: 2}}

	step := Advance(models.Location{Lat: 0, Lng: 0}, route, 0.5)

	assert.False(t, step.Arrived)
	assert.InDelta(t, 0.5, step.Next.Lng, 1e-12)
}

func TestAdvance_UsesRemainingRoute(t *testing.T) {
	route := []models.Location{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 0, Lng: 2}}
	current := models.Location{Lat: 0, Lng: 0}

	var step Step
	arrivedOn := 0
	for i := 1; i <= 10; i++ {
		step = Advance(current, route, 0.5)
		current = step.Next
		route = step.Remaining
		if step.Arrived {
			arrivedOn = i
			break
		}
	}

	// Прибытие на четвертом шаге и ровно на конечной точке
	assert.Equal(t, 4, arrivedOn)
	assert.InDelta(t, 2.0, current.Lng, 1e-12)
}

func TestStepToward_Partial(t *testing.T) {
	next, arrived := StepToward(models.Location{Lat: 0, Lng: 0}, models.Location{Lat: 0, Lng: 1}, 0.25)

	assert.False(t, arrived)
	assert.InDelta(t, 0.25, next.Lng, 1e-12)
}

func TestStepToward_SnapsOnArrival(t *testing.T) {
	destination := models.Location{Lat: 0.0001, Lng: 0.0002}

	next, arrived := StepToward(models.Location{Lat: 0, Lng: 0}, destination, 0.5)

	assert.True(t, arrived)
	assert.Equal(t, destination, next)
}
