package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/kvolkov/ambulance_dispatch/internal/geo"
	"github.com/kvolkov/ambulance_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrNoVehiclesAvailable возвращается, когда нет ни одной свободной машины.
// Это ожидаемая, восстановимая ситуация: инцидент остается в статусе Pending.
var ErrNoVehiclesAvailable = errors.New("no ambulances available for dispatch")

// Source - какая стратегия приняла решение
type Source string

const (
	SourceAdvisory Source = "advisory"
	SourceFallback Source = "fallback"
)

// Candidate - кандидат на назначение. Наружу уходят только id, позиция и
// класс машины, внутреннее состояние не утекает к внешнему провайдеру.
type Candidate struct {
	ID          string             `json:"id"`
	Location    models.Location    `json:"location"`
	VehicleType models.VehicleType `json:"vehicleType"`
}

// Request - запрос решения к внешнему провайдеру
type Request struct {
	Location    models.Location
	Priority    models.IncidentPriority
	Description string
	Candidates  []Candidate
}

// Decision - ответ внешнего провайдера
type Decision struct {
	BestVehicleID string
	Reasoning     string
}

// AdvisoryProvider - внешний сервис поддержки принятия решений.
// Ответ не считается доверенным, пока id не проверен по списку кандидатов.
//
//go:generate mockgen -source=policy.go -destination=mocks/mock_policy.go -package=mocks
type AdvisoryProvider interface {
	Decide(ctx context.Context, req Request) (*Decision, error)
}

// Selection - итог выбора машины
type Selection struct {
	VehicleID string `json:"vehicle_id"`
	Rationale string `json:"rationale"`
	Source    Source `json:"source"`
}

// Policy выбирает машину для инцидента: сначала внешний провайдер,
// при любой его ошибке или невалидном id - детерминированный выбор
// ближайшей машины. Назначение обязано состояться всегда, когда есть
// хотя бы одна свободная машина.
type Policy struct {
	provider AdvisoryProvider
	logger   *logrus.Logger
}

func NewPolicy(provider AdvisoryProvider, logger *logrus.Logger) *Policy {
	return &Policy{
		provider: provider,
		logger:   logger,
	}
}

// SelectVehicle выбирает лучшую машину для инцидента из списка свободных
func (p *Policy) SelectVehicle(ctx context.Context, incident *models.Incident, available []*models.Ambulance) (*Selection, error) {
	if len(available) == 0 {
		return nil, ErrNoVehiclesAvailable
	}

	log := p.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "SelectVehicle",
		"incident_id": incident.ID,
		"candidates":  len(available),
	})

	if p.provider != nil {
		decision, err := p.provider.Decide(ctx, buildRequest(incident, available))
		switch {
		case err != nil:
			log.WithError(err).Warn("Advisory provider failed, falling back to nearest-unit dispatch")
		case !containsVehicle(available, decision.BestVehicleID):
			log.WithField("vehicle_id", decision.BestVehicleID).
				Warn("Advisory provider returned a vehicle outside the candidate set, falling back")
		default:
			log.WithField("vehicle_id", decision.BestVehicleID).Info("Advisory dispatch decision accepted")
			return &Selection{
				VehicleID: decision.BestVehicleID,
				Rationale: decision.Reasoning,
				Source:    SourceAdvisory,
			}, nil
		}
	}

	sel := p.fallback(incident, available)
	log.WithField("vehicle_id", sel.VehicleID).Info("Fallback dispatch decision")
	return sel, nil
}

// fallback сортирует кандидатов по расстоянию до инцидента и берет первого.
// При равных расстояниях сохраняется исходный порядок списка.
func (p *Policy) fallback(incident *models.Incident, available []*models.Ambulance) *Selection {
	sorted := make([]*models.Ambulance, len(available))
	copy(sorted, available)
	sort.SliceStable(sorted, func(i, j int) bool {
		return geo.DistanceKm(sorted[i].Location, incident.Location) <
			geo.DistanceKm(sorted[j].Location, incident.Location)
	})

	best := sorted[0]
	return &Selection{
		VehicleID: best.ID,
		Rationale: fmt.Sprintf("AI dispatch unavailable. Fallback: dispatched closest unit (%s).", best.ID),
		Source:    SourceFallback,
	}
}

func buildRequest(incident *models.Incident, available []*models.Ambulance) Request {
	candidates := make([]Candidate, len(available))
	for i, a := range available {
		candidates[i] = Candidate{
			ID:          a.ID,
			Location:    a.Location,
			VehicleType: a.VehicleType,
		}
	}
	return Request{
		Location:    incident.Location,
		Priority:    incident.Priority,
		Description: incident.Description,
		Candidates:  candidates,
	}
}

func containsVehicle(available []*models.Ambulance, id string) bool {
	for _, a := range available {
		if a.ID == id {
			return true
		}
	}
	return false
}
