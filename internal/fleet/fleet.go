package fleet

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/kvolkov/ambulance_dispatch/internal/config"
	"github.com/kvolkov/ambulance_dispatch/internal/geo"
	"github.com/kvolkov/ambulance_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

// RouteProvider - внешний сервис маршрутизации. Ошибка означает, что машина
// остается на прямолинейном движении до конца текущего плеча.
type RouteProvider interface {
	FetchRoute(ctx context.Context, start, end models.Location) ([]models.Location, error)
}

// TransitionListener получает переходы автопарка, по которым леджер
// синхронизирует статусы инцидентов
type TransitionListener interface {
	// OnSceneArrival - машина прибыла на место вызова (статус Busy)
	OnSceneArrival(vehicleID, incidentID string)
	// OnIncidentResolved - машина завершила выгрузку в больнице
	OnIncidentResolved(vehicleID, incidentID string)
	// TickCompleted - тик полностью прошел по всем машинам
	TickCompleted(vehicles []*models.Ambulance)
}

// событие, накопленное за тик; слушатель вызывается после снятия блокировки
type transition struct {
	kind       string // "on_scene" | "resolved"
	vehicleID  string
	incidentID string
}

// StateMachine владеет авторитетным состоянием каждой машины автопарка и
// продвигает его на фиксированном тике. Один писатель: все мутации проходят
// через mu, тики не перекрываются, так как выполняются последовательно
// в одной горутине.
type StateMachine struct {
	cfg    *config.Config
	logger *logrus.Logger
	routes RouteProvider

	mu            sync.Mutex
	vehicles      map[string]*models.Ambulance
	order         []string
	hospitals     []*models.Hospital
	transporting  map[string]string   // id машины -> id инцидента на плече до больницы
	pendingRoutes map[string]struct{} // дедупликация запросов маршрута по (машина, цель)
	timers        *timerRegistry
	listener      TransitionListener

	cancel context.CancelFunc
	done   chan struct{}
}

func New(cfg *config.Config, logger *logrus.Logger, routes RouteProvider, vehicles []*models.Ambulance, hospitals []*models.Hospital) *StateMachine {
	sm := &StateMachine{
		cfg:           cfg,
		logger:        logger,
		routes:        routes,
		vehicles:      make(map[string]*models.Ambulance, len(vehicles)),
		hospitals:     hospitals,
		transporting:  make(map[string]string),
		pendingRoutes: make(map[string]struct{}),
		timers:        newTimerRegistry(),
	}
	for _, v := range vehicles {
		sm.vehicles[v.ID] = v
		sm.order = append(sm.order, v.ID)
	}
	return sm
}

// SetListener задает получателя переходов. Вызывается до Start.
func (s *StateMachine) SetListener(l TransitionListener) {
	s.listener = l
}

// Start запускает цикл симуляции. Тик выполняется целиком до планирования
// следующего: горутина одна, ticker просто задает частоту.
func (s *StateMachine) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	// Машины, стартующие у больницы, получают таймер выгрузки сразу,
	// иначе они никогда не вернутся в строй
	s.mu.Lock()
	for _, id := range s.order {
		if s.vehicles[id].Status == models.StatusAtHospital {
			vehicleID := id
			s.timers.schedule(vehicleID, s.cfg.HospitalDwell, func() { s.finishHospitalDwell(vehicleID) })
		}
	}
	s.mu.Unlock()

	s.logger.WithField("tick_interval", s.cfg.TickInterval.String()).Info("Starting fleet simulation loop")

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.cfg.TickInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logger.Info("Stopping fleet simulation loop")
				return
			case <-ticker.C:
				s.Tick()
			}
		}
	}()
}

// Stop останавливает цикл и отменяет все отложенные переходы
func (s *StateMachine) Stop() {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
	s.timers.stopAll()
}

// Assign переводит свободную машину в EnRoute к месту инцидента
func (s *StateMachine) Assign(vehicleID string, incident *models.Incident) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vehicles[vehicleID]
	if !ok {
		return fmt.Errorf("fleet: unknown vehicle %s", vehicleID)
	}
	if v.Status != models.StatusAvailable {
		return fmt.Errorf("fleet: vehicle %s is not available (status %s)", vehicleID, v.Status)
	}

	// Назначение перекрывает любой отложенный переход для этой машины
	s.timers.cancel(vehicleID)

	dest := incident.Location
	v.Status = models.StatusEnRoute
	v.Destination = &dest
	v.AssignedIncidentID = incident.ID
	v.RoutePath = nil

	s.logger.WithFields(logrus.Fields{
		"service":     "fleet",
		"vehicle_id":  vehicleID,
		"incident_id": incident.ID,
	}).Info("Vehicle dispatched to incident")

	s.requestRouteLocked(v)
	return nil
}

// Tick продвигает каждую машину, которая в пути, и применяет переходы
// по прибытии. Слушатель вызывается после снятия блокировки.
func (s *StateMachine) Tick() {
	s.mu.Lock()

	var events []transition
	for _, id := range s.order {
		v := s.vehicles[id]
		if v.Status != models.StatusEnRoute || v.Destination == nil {
			continue
		}

		if !s.advanceLocked(v) {
			continue
		}

		// Прибытие: цель определяет следующий статус
		if v.AssignedIncidentID != "" {
			incidentID := v.AssignedIncidentID
			v.Status = models.StatusBusy
			v.RoutePath = nil
			s.timers.schedule(v.ID, s.cfg.SceneDwell, func() { s.departScene(id) })
			events = append(events, transition{kind: "on_scene", vehicleID: v.ID, incidentID: incidentID})
		} else {
			incidentID := s.transporting[v.ID]
			delete(s.transporting, v.ID)
			v.Status = models.StatusAtHospital
			v.Destination = nil
			v.RoutePath = nil
			s.timers.schedule(v.ID, s.cfg.HospitalDwell, func() { s.finishHospitalDwell(id) })
			if incidentID != "" {
				events = append(events, transition{kind: "resolved", vehicleID: v.ID, incidentID: incidentID})
			}
		}
	}

	listener := s.listener
	var snapshot []*models.Ambulance
	if listener != nil {
		snapshot = s.snapshotLocked()
	}
	s.mu.Unlock()

	if listener == nil {
		return
	}
	for _, ev := range events {
		switch ev.kind {
		case "on_scene":
			listener.OnSceneArrival(ev.vehicleID, ev.incidentID)
		case "resolved":
			listener.OnIncidentResolved(ev.vehicleID, ev.incidentID)
		}
	}
	listener.TickCompleted(snapshot)
}

// advanceLocked двигает машину на один шаг, возвращает true при прибытии.
// Пока у машины есть ломаная маршрута, прибытие определяется только по ней:
// устаревшая прямолинейная проверка не должна обрывать движение по маршруту.
func (s *StateMachine) advanceLocked(v *models.Ambulance) bool {
	if len(v.RoutePath) >= 2 {
		step := geo.Advance(v.Location, v.RoutePath, s.cfg.VehicleSpeedDeg)
		if step.Arrived {
			v.Location = *v.Destination
			v.RoutePath = nil
			return true
		}
		v.Location = step.Next
		v.RoutePath = step.Remaining
		return false
	}

	next, arrived := geo.StepToward(v.Location, *v.Destination, s.cfg.VehicleSpeedDeg)
	v.Location = next
	return arrived
}

// departScene - истекла стоянка на месте вызова: машина едет в ближайшую
// больницу, инцидент считается переданным и машину больше не занимает
func (s *StateMachine) departScene(vehicleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vehicles[vehicleID]
	if !ok || v.Status != models.StatusBusy {
		// Устаревший таймер - состояние успело измениться
		return
	}

	hospital := s.nearestHospitalLocked(v.Location)
	if hospital == nil {
		s.logger.WithField("vehicle_id", vehicleID).Error("No hospitals configured, vehicle returns to service in place")
		v.Status = models.StatusAvailable
		v.Destination = nil
		v.AssignedIncidentID = ""
		v.RoutePath = nil
		return
	}

	s.transporting[vehicleID] = v.AssignedIncidentID
	dest := hospital.Location
	v.Status = models.StatusEnRoute
	v.Destination = &dest
	v.AssignedIncidentID = ""
	v.RoutePath = nil

	s.logger.WithFields(logrus.Fields{
		"service":    "fleet",
		"vehicle_id": vehicleID,
		"hospital":   hospital.Name,
	}).Info("Vehicle left scene, heading to hospital")

	s.requestRouteLocked(v)
}

// finishHospitalDwell - истекла стоянка у больницы, машина снова свободна
func (s *StateMachine) finishHospitalDwell(vehicleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vehicles[vehicleID]
	if !ok || v.Status != models.StatusAtHospital {
		return
	}

	v.Status = models.StatusAvailable
	v.Destination = nil
	v.AssignedIncidentID = ""
	v.RoutePath = nil

	s.logger.WithFields(logrus.Fields{
		"service":    "fleet",
		"vehicle_id": vehicleID,
	}).Info("Vehicle back in service")
}

// requestRouteLocked асинхронно запрашивает маршрут для текущего плеча.
// Запрос на одну и ту же пару (машина, цель) не дублируется; до ответа
// машина движется по прямой. Ответ применяется только если машина все еще
// едет к той же цели.
func (s *StateMachine) requestRouteLocked(v *models.Ambulance) {
	if s.routes == nil || v.Destination == nil {
		return
	}

	key := fmt.Sprintf("%s-%f-%f", v.ID, v.Destination.Lat, v.Destination.Lng)
	if _, pending := s.pendingRoutes[key]; pending {
		return
	}
	s.pendingRoutes[key] = struct{}{}

	vehicleID := v.ID
	start := v.Location
	dest := *v.Destination

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RoutingTimeout)
		defer cancel()

		path, err := s.routes.FetchRoute(ctx, start, dest)

		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.pendingRoutes, key)

		if err != nil {
			s.logger.WithError(err).WithField("vehicle_id", vehicleID).
				Warn("Route fetch failed, staying on straight-line movement")
			return
		}

		cur, ok := s.vehicles[vehicleID]
		if !ok || cur.Status != models.StatusEnRoute || cur.Destination == nil || *cur.Destination != dest {
			// Машина уже не едет к этой цели - ответ устарел
			return
		}
		cur.RoutePath = path
	}()
}

// nearestHospitalLocked выбирает ближайшую больницу по плоскому расстоянию
func (s *StateMachine) nearestHospitalLocked(loc models.Location) *models.Hospital {
	var nearest *models.Hospital
	best := math.Inf(1)
	for _, h := range s.hospitals {
		if d := geo.PlanarDistance(loc, h.Location); d < best {
			best = d
			nearest = h
		}
	}
	return nearest
}

// Vehicle возвращает копию машины по id
func (s *StateMachine) Vehicle(id string) (*models.Ambulance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vehicles[id]
	if !ok {
		return nil, false
	}
	return v.Clone(), true
}

// AvailableVehicles возвращает копии свободных машин в стабильном порядке
func (s *StateMachine) AvailableVehicles() []*models.Ambulance {
	s.mu.Lock()
	defer s.mu.Unlock()

	available := make([]*models.Ambulance, 0)
	for _, id := range s.order {
		if v := s.vehicles[id]; v.Status == models.StatusAvailable {
			available = append(available, v.Clone())
		}
	}
	return available
}

// Snapshot возвращает копии всех машин в стабильном порядке
func (s *StateMachine) Snapshot() []*models.Ambulance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *StateMachine) snapshotLocked() []*models.Ambulance {
	snapshot := make([]*models.Ambulance, 0, len(s.order))
	for _, id := range s.order {
		snapshot = append(snapshot, s.vehicles[id].Clone())
	}
	return snapshot
}
