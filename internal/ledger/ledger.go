package ledger

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kvolkov/ambulance_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNotFound - инцидент с таким id не зарегистрирован
	ErrNotFound = errors.New("incident not found")
	// ErrVehicleOccupied - за машиной уже числится активный инцидент
	ErrVehicleOccupied = errors.New("vehicle already has an active incident")
)

// Ledger ведет жизненный цикл инцидентов:
// Pending -> Dispatched -> OnScene -> Resolved -> Archived.
// Переходы строго последовательные, пропуски и откаты запрещены.
// Хранение только в памяти процесса, история сохраняется до конца сессии.
type Ledger struct {
	mu           sync.RWMutex
	incidents    map[string]*models.Incident
	order        []string
	lastIDMillis int64
	logger       *logrus.Logger
}

func New(logger *logrus.Logger) *Ledger {
	return &Ledger{
		incidents: make(map[string]*models.Incident),
		logger:    logger,
	}
}

// Create регистрирует новый инцидент в статусе Pending
func (l *Ledger) Create(location models.Location, priority models.IncidentPriority, description string) *models.Incident {
	l.mu.Lock()
	defer l.mu.Unlock()

	inc := &models.Incident{
		ID:          l.nextIDLocked(),
		Location:    location,
		Priority:    priority,
		Description: description,
		Status:      models.IncidentPending,
		CreatedAt:   time.Now(),
	}
	l.incidents[inc.ID] = inc
	l.order = append(l.order, inc.ID)

	l.logger.WithFields(logrus.Fields{
		"service":     "ledger",
		"incident_id": inc.ID,
		"priority":    inc.Priority,
	}).Info("Incident recorded")

	return inc.Clone()
}

// nextIDLocked выдает id на основе времени регистрации; при совпадении
// миллисекунд id монотонно сдвигается вперед, чтобы остаться уникальным
func (l *Ledger) nextIDLocked() string {
	ms := time.Now().UnixMilli()
	if ms <= l.lastIDMillis {
		ms = l.lastIDMillis + 1
	}
	l.lastIDMillis = ms
	return fmt.Sprintf("INC-%d", ms)
}

// MarkDispatched переводит Pending -> Dispatched, фиксируя машину и ETA.
// ETA вычисляется один раз в момент назначения и дальше не пересчитывается.
func (l *Ledger) MarkDispatched(id, vehicleID string, etaMinutes int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	inc, ok := l.incidents[id]
	if !ok {
		return fmt.Errorf("ledger: %w: %s", ErrNotFound, id)
	}
	if inc.Status != models.IncidentPending {
		return l.transitionError(inc, models.IncidentDispatched)
	}

	// Инвариант: на одну машину не больше одного активного инцидента
	for _, other := range l.incidents {
		if other.AssignedAmbulanceID == vehicleID &&
			(other.Status == models.IncidentDispatched || other.Status == models.IncidentOnScene) {
			return fmt.Errorf("ledger: %w: %s", ErrVehicleOccupied, vehicleID)
		}
	}

	inc.Status = models.IncidentDispatched
	inc.AssignedAmbulanceID = vehicleID
	inc.ETAMinutes = etaMinutes
	return nil
}

// MarkOnScene переводит Dispatched -> OnScene
func (l *Ledger) MarkOnScene(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	inc, ok := l.incidents[id]
	if !ok {
		return fmt.Errorf("ledger: %w: %s", ErrNotFound, id)
	}
	if inc.Status != models.IncidentDispatched {
		return l.transitionError(inc, models.IncidentOnScene)
	}

	inc.Status = models.IncidentOnScene
	return nil
}

// MarkResolved переводит OnScene -> Resolved и фиксирует время разрешения
func (l *Ledger) MarkResolved(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	inc, ok := l.incidents[id]
	if !ok {
		return fmt.Errorf("ledger: %w: %s", ErrNotFound, id)
	}
	if inc.Status != models.IncidentOnScene {
		return l.transitionError(inc, models.IncidentResolved)
	}

	now := time.Now()
	inc.Status = models.IncidentResolved
	inc.ResolvedAt = &now

	l.logger.WithFields(logrus.Fields{
		"service":     "ledger",
		"incident_id": id,
	}).Info("Incident resolved")

	return nil
}

// Archive переводит Resolved -> Archived. Инициируется снаружи
// (действие из интерфейса), но сам переход поддерживается леджером.
func (l *Ledger) Archive(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	inc, ok := l.incidents[id]
	if !ok {
		return fmt.Errorf("ledger: %w: %s", ErrNotFound, id)
	}
	if inc.Status != models.IncidentResolved {
		return l.transitionError(inc, models.IncidentArchived)
	}

	inc.Status = models.IncidentArchived
	return nil
}

func (l *Ledger) transitionError(inc *models.Incident, to models.IncidentStatus) error {
	return fmt.Errorf("ledger: incident %s cannot move from %s to %s", inc.ID, inc.Status, to)
}

// Get возвращает копию инцидента по id
func (l *Ledger) Get(id string) (*models.Incident, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	inc, ok := l.incidents[id]
	if !ok {
		return nil, fmt.Errorf("ledger: %w: %s", ErrNotFound, id)
	}
	return inc.Clone(), nil
}

// List возвращает копии всех инцидентов в порядке регистрации
func (l *Ledger) List() []*models.Incident {
	l.mu.RLock()
	defer l.mu.RUnlock()

	list := make([]*models.Incident, 0, len(l.order))
	for _, id := range l.order {
		list = append(list, l.incidents[id].Clone())
	}
	return list
}
