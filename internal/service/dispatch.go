package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/kvolkov/ambulance_dispatch/internal/analytics"
	"github.com/kvolkov/ambulance_dispatch/internal/config"
	"github.com/kvolkov/ambulance_dispatch/internal/dispatch"
	"github.com/kvolkov/ambulance_dispatch/internal/geo"
	"github.com/kvolkov/ambulance_dispatch/internal/ledger"
	"github.com/kvolkov/ambulance_dispatch/internal/models"
	"github.com/kvolkov/ambulance_dispatch/internal/webhook"
	"github.com/kvolkov/ambulance_dispatch/internal/ws"
	"github.com/sirupsen/logrus"
)

// VehicleSelector - политика выбора машины для инцидента
type VehicleSelector interface {
	SelectVehicle(ctx context.Context, incident *models.Incident, available []*models.Ambulance) (*dispatch.Selection, error)
}

// FleetController - управление автопарком со стороны диспетчеризации
type FleetController interface {
	Assign(vehicleID string, incident *models.Incident) error
	AvailableVehicles() []*models.Ambulance
	Snapshot() []*models.Ambulance
}

// SnapshotBroadcaster - живая лента для презентационного слоя
type SnapshotBroadcaster interface {
	BroadcastSnapshot(s ws.Snapshot)
}

// ReportResult - итог регистрации инцидента. Selection равен nil, когда
// свободных машин не было и инцидент остался в статусе Pending.
type ReportResult struct {
	Incident  *models.Incident
	Selection *dispatch.Selection
}

// AnalyticsSnapshot - полный аналитический срез для презентационного слоя
type AnalyticsSnapshot struct {
	Metrics       *analytics.Metrics       `json:"metrics"`
	Ranking       []analytics.RankingEntry `json:"ranking"`
	PeakHours     []analytics.PeakHour     `json:"peak_hours"`
	HighRiskZones []analytics.HeatmapCell  `json:"high_risk_zones"`
}

// DispatchService определяет контракт для бизнес-логики диспетчеризации
//
//go:generate mockgen -source=dispatch.go -destination=mocks/mock_dispatch.go -package=mocks
type DispatchService interface {
	ReportIncident(ctx context.Context, description string, priority models.IncidentPriority, location models.Location) (*ReportResult, error)
	GetIncident(id string) (*models.Incident, error)
	ListIncidents() []*models.Incident
	ArchiveIncident(id string) error
	ListAmbulances() []*models.Ambulance
	ListHospitals() []*models.Hospital
	Analytics() *AnalyticsSnapshot
}

// Service реализует DispatchService и одновременно служит
// fleet.TransitionListener: переходы автопарка зеркалируются в леджер
type Service struct {
	ledger    *ledger.Ledger
	selector  VehicleSelector
	fleet     FleetController
	publisher webhook.Publisher
	feed      SnapshotBroadcaster
	hospitals []*models.Hospital
	cfg       *config.Config
	logger    *logrus.Logger
}

func NewDispatchService(
	ldg *ledger.Ledger,
	selector VehicleSelector,
	fleetCtl FleetController,
	publisher webhook.Publisher,
	feed SnapshotBroadcaster,
	hospitals []*models.Hospital,
	cfg *config.Config,
	logger *logrus.Logger,
) *Service {
	return &Service{
		ledger:    ldg,
		selector:  selector,
		fleet:     fleetCtl,
		publisher: publisher,
		feed:      feed,
		hospitals: hospitals,
		cfg:       cfg,
		logger:    logger,
	}
}

// ReportIncident регистрирует инцидент и назначает на него машину.
// Если свободных машин нет, инцидент остается видимым в статусе Pending,
// а вызывающая сторона получает dispatch.ErrNoVehiclesAvailable вместе
// с уже записанным инцидентом.
func (s *Service) ReportIncident(ctx context.Context, description string, priority models.IncidentPriority, location models.Location) (*ReportResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "dispatch",
		"method":   "ReportIncident",
		"priority": priority,
	})
	log.Info("Reporting a new incident")

	inc := s.ledger.Create(location, priority, description)

	available := s.fleet.AvailableVehicles()
	sel, err := s.selector.SelectVehicle(ctx, inc, available)
	if err != nil {
		if errors.Is(err, dispatch.ErrNoVehiclesAvailable) {
			log.WithField("incident_id", inc.ID).Warn("No ambulances available, incident stays pending")
			return &ReportResult{Incident: inc}, err
		}
		return nil, fmt.Errorf("service: could not select vehicle: %w", err)
	}

	vehicle := findVehicle(available, sel.VehicleID)
	if vehicle == nil {
		// Политика гарантирует членство в списке кандидатов
		return nil, fmt.Errorf("service: selected vehicle %s is not in the candidate set", sel.VehicleID)
	}

	// ETA фиксируется один раз в момент назначения
	eta := geo.ETAMinutes(geo.DistanceKm(vehicle.Location, location), s.cfg.RoadSpeedKmh)

	if err := s.fleet.Assign(sel.VehicleID, inc); err != nil {
		return nil, fmt.Errorf("service: could not assign vehicle %s: %w", sel.VehicleID, err)
	}
	if err := s.ledger.MarkDispatched(inc.ID, sel.VehicleID, eta); err != nil {
		return nil, fmt.Errorf("service: could not mark incident dispatched: %w", err)
	}

	log.WithFields(logrus.Fields{
		"incident_id": inc.ID,
		"vehicle_id":  sel.VehicleID,
		"eta_minutes": eta,
		"source":      sel.Source,
	}).Info("Incident dispatched")

	event := webhook.NewEvent(webhook.EventIncidentDispatched, inc.ID)
	event.VehicleID = sel.VehicleID
	event.Priority = priority
	event.Critical = priority == models.PriorityCritical
	event.ETAMinutes = eta
	event.Rationale = sel.Rationale
	s.publish(ctx, event)

	dispatched, err := s.ledger.Get(inc.ID)
	if err != nil {
		return nil, fmt.Errorf("service: could not reload incident: %w", err)
	}
	return &ReportResult{Incident: dispatched, Selection: sel}, nil
}

// GetIncident возвращает инцидент по id
func (s *Service) GetIncident(id string) (*models.Incident, error) {
	inc, err := s.ledger.Get(id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}
	return inc, nil
}

// ListIncidents возвращает все инциденты сессии в порядке регистрации
func (s *Service) ListIncidents() []*models.Incident {
	return s.ledger.List()
}

// ArchiveIncident переводит разрешенный инцидент в архив
func (s *Service) ArchiveIncident(id string) error {
	if err := s.ledger.Archive(id); err != nil {
		return fmt.Errorf("service: could not archive incident: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "ArchiveIncident",
		"incident_id": id,
	}).Info("Incident archived")
	return nil
}

// ListAmbulances возвращает текущий снапшот автопарка
func (s *Service) ListAmbulances() []*models.Ambulance {
	return s.fleet.Snapshot()
}

// ListHospitals возвращает справочник больниц сессии
func (s *Service) ListHospitals() []*models.Hospital {
	hospitals := make([]*models.Hospital, len(s.hospitals))
	for i, h := range s.hospitals {
		c := *h
		hospitals[i] = &c
	}
	return hospitals
}

// Analytics пересчитывает аналитический срез по текущему состоянию
func (s *Service) Analytics() *AnalyticsSnapshot {
	metrics := analytics.Calculate(s.fleet.Snapshot(), s.ledger.List())
	return &AnalyticsSnapshot{
		Metrics:       metrics,
		Ranking:       analytics.Ranking(metrics),
		PeakHours:     analytics.PeakIncidentHours(metrics.PeakHours),
		HighRiskZones: analytics.HighRiskZones(metrics.Heatmap),
	}
}

// OnSceneArrival - машина прибыла на вызов, инцидент переходит в OnScene
func (s *Service) OnSceneArrival(vehicleID, incidentID string) {
	if err := s.ledger.MarkOnScene(incidentID); err != nil {
		// Устаревший переход не должен ронять цикл симуляции
		s.logger.WithError(err).WithField("incident_id", incidentID).Warn("Could not mark incident on scene")
		return
	}

	event := webhook.NewEvent(webhook.EventIncidentOnScene, incidentID)
	event.VehicleID = vehicleID
	s.publish(context.Background(), event)
}

// OnIncidentResolved - машина выгрузилась в больнице, инцидент разрешен
func (s *Service) OnIncidentResolved(vehicleID, incidentID string) {
	if err := s.ledger.MarkResolved(incidentID); err != nil {
		s.logger.WithError(err).WithField("incident_id", incidentID).Warn("Could not mark incident resolved")
		return
	}

	event := webhook.NewEvent(webhook.EventIncidentResolved, incidentID)
	event.VehicleID = vehicleID
	s.publish(context.Background(), event)
}

// TickCompleted рассылает снапшот тика подписчикам живой ленты
func (s *Service) TickCompleted(vehicles []*models.Ambulance) {
	if s.feed == nil {
		return
	}
	s.feed.BroadcastSnapshot(ws.Snapshot{
		Ambulances: vehicles,
		Incidents:  s.ledger.List(),
		Timestamp:  time.Now(),
	})
}

func (s *Service) publish(ctx context.Context, event webhook.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithField("event_type", event.Type).Error("Failed to publish webhook event")
	}
}

func findVehicle(vehicles []*models.Ambulance, id string) *models.Ambulance {
	for _, v := range vehicles {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// Сценарии демо-инцидентов, как в исходном генераторе
var demoDescriptions = []string{
	"Chest pain - possible cardiac event",
	"Traffic accident with injuries",
	"Difficulty breathing - respiratory distress",
	"Loss of consciousness",
	"Severe allergic reaction",
	"Fall with head injury",
	"Abdominal pain - acute abdomen",
}

var demoPriorities = []models.IncidentPriority{
	models.PriorityCritical,
	models.PriorityHigh,
	models.PriorityMedium,
	models.PriorityLow,
}

// StartDemoGenerator периодически создает случайный инцидент рядом с центром
// сессии. Включается конфигом, по умолчанию выключен.
func (s *Service) StartDemoGenerator(ctx context.Context, center models.Location) {
	if s.cfg.DemoIncidentInterval <= 0 {
		return
	}

	s.logger.WithField("interval", s.cfg.DemoIncidentInterval.String()).Info("Starting demo incident generator")

	go func() {
		ticker := time.NewTicker(s.cfg.DemoIncidentInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if rand.Float64() >= 0.3 {
					continue
				}
				loc := models.Location{
					Lat: center.Lat + (rand.Float64()-0.5)*0.06,
					Lng: center.Lng + (rand.Float64()-0.5)*0.06,
				}
				desc := demoDescriptions[rand.Intn(len(demoDescriptions))]
				priority := demoPriorities[rand.Intn(len(demoPriorities))]
				if _, err := s.ReportIncident(ctx, desc, priority, loc); err != nil &&
					!errors.Is(err, dispatch.ErrNoVehiclesAvailable) {
					s.logger.WithError(err).Warn("Demo incident dispatch failed")
				}
			}
		}
	}()
}
