package ledger

import (
	"bytes"
	"testing"

	"github.com/kvolkov/ambulance_dispatch/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger() *Ledger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return New(logger)
}

func createIncident(l *Ledger) *models.Incident {
	return l.Create(models.Location{Lat: 34.05, Lng: -118.24}, models.PriorityHigh, "Traffic accident")
}

func TestCreate_StartsPending(t *testing.T) {
	// Подготовка
	l := newTestLedger()

	// Действие
	inc := createIncident(l)

	// Проверки
	assert.Equal(t, models.IncidentPending, inc.Status)
	assert.Contains(t, inc.ID, "INC-")
	assert.False(t, inc.CreatedAt.IsZero())
	assert.Empty(t, inc.AssignedAmbulanceID)
}

func TestCreate_UniqueIDs(t *testing.T) {
	// Подготовка
	l := newTestLedger()

	// Действие: регистрация быстрее, чем тикают миллисекунды
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		inc := createIncident(l)
		seen[inc.ID] = true
	}

	// Проверки
	assert.Len(t, seen, 100)
}

func TestLifecycle_FullChain(t *testing.T) {
	// Подготовка
	l := newTestLedger()
	inc := createIncident(l)

	// Действие и проверки по шагам
	require.NoError(t, l.MarkDispatched(inc.ID, "AMB-001", 7))
	got, err := l.Get(inc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IncidentDispatched, got.Status)
	assert.Equal(t, "AMB-001", got.AssignedAmbulanceID)
	assert.Equal(t, 7, got.ETAMinutes)

	require.NoError(t, l.MarkOnScene(inc.ID))
	require.NoError(t, l.MarkResolved(inc.ID))

	got, err = l.Get(inc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IncidentResolved, got.Status)
	require.NotNil(t, got.ResolvedAt)

	require.NoError(t, l.Archive(inc.ID))
	got, err = l.Get(inc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IncidentArchived, got.Status)
}

func TestLifecycle_NoSkippingStates(t *testing.T) {
	// Подготовка
	l := newTestLedger()
	inc := createIncident(l)

	// Pending нельзя перевести сразу в OnScene, Resolved или Archived
	assert.Error(t, l.MarkOnScene(inc.ID))
	assert.Error(t, l.MarkResolved(inc.ID))
	assert.Error(t, l.Archive(inc.ID))

	got, err := l.Get(inc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IncidentPending, got.Status)
}

func TestLifecycle_NoBackwardTransitions(t *testing.T) {
	// Подготовка
	l := newTestLedger()
	inc := createIncident(l)
	require.NoError(t, l.MarkDispatched(inc.ID, "AMB-001", 5))
	require.NoError(t, l.MarkOnScene(inc.ID))

	// Повторный переход в уже пройденное состояние запрещен
	assert.Error(t, l.MarkDispatched(inc.ID, "AMB-002", 5))
	assert.Error(t, l.MarkOnScene(inc.ID))
}

func TestMarkDispatched_VehicleOccupied(t *testing.T) {
	// Подготовка
	l := newTestLedger()
	first := createIncident(l)
	second := createIncident(l)
	require.NoError(t, l.MarkDispatched(first.ID, "AMB-001", 5))

	// Действие
	err := l.MarkDispatched(second.ID, "AMB-001", 5)

	// Проверки: инвариант "одна машина - один активный инцидент"
	assert.ErrorIs(t, err, ErrVehicleOccupied)
}

func TestMarkDispatched_VehicleFreeAfterResolution(t *testing.T) {
	// Подготовка
	l := newTestLedger()
	first := createIncident(l)
	require.NoError(t, l.MarkDispatched(first.ID, "AMB-001", 5))
	require.NoError(t, l.MarkOnScene(first.ID))
	require.NoError(t, l.MarkResolved(first.ID))

	// Действие: после разрешения машина снова может быть назначена
	second := createIncident(l)
	err := l.MarkDispatched(second.ID, "AMB-001", 3)

	// Проверки
	assert.NoError(t, err)
}

func TestGet_NotFound(t *testing.T) {
	l := newTestLedger()

	_, err := l.Get("INC-404")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_PreservesCreationOrder(t *testing.T) {
	// Подготовка
	l := newTestLedger()
	first := createIncident(l)
	second := createIncident(l)
	third := createIncident(l)

	// Действие
	list := l.List()

	// Проверки
	require.Len(t, list, 3)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, third.ID, list[2].ID)
}

func TestList_ReturnsCopies(t *testing.T) {
	// Подготовка
	l := newTestLedger()
	inc := createIncident(l)

	// Действие: мутация копии не задевает леджер
	list := l.List()
	list[0].Status = models.IncidentResolved

	got, err := l.Get(inc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IncidentPending, got.Status)
}
