package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/kvolkov/ambulance_dispatch/internal/config"
	"github.com/kvolkov/ambulance_dispatch/internal/dispatch"
	"github.com/kvolkov/ambulance_dispatch/internal/ledger"
	"github.com/kvolkov/ambulance_dispatch/internal/models"
	"github.com/kvolkov/ambulance_dispatch/internal/service/mocks"
	"github.com/kvolkov/ambulance_dispatch/internal/webhook"
	webhook_mocks "github.com/kvolkov/ambulance_dispatch/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestDispatchService - вспомогательная функция для создания сервиса с моками.
// Леджер настоящий: его переходы и есть проверяемое поведение.
func newTestDispatchService(t *testing.T) (*Service, *mocks.MockVehicleSelector, *mocks.MockFleetController, *webhook_mocks.MockPublisher) {
	ctrl := gomock.NewController(t)
	selectorMock := mocks.NewMockVehicleSelector(ctrl)
	fleetMock := mocks.NewMockFleetController(ctrl)
	publisherMock := webhook_mocks.NewMockPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		RoadSpeedKmh: 50,
	}
	hospitals := []*models.Hospital{
		{ID: "HOSP-001", Name: "General Hospital", Location: models.Location{Lat: 0.03, Lng: 0.03}, TotalBeds: 50, AvailableBeds: 35},
	}

	svc := NewDispatchService(ledger.New(logger), selectorMock, fleetMock, publisherMock, nil, hospitals, cfg, logger)
	return svc, selectorMock, fleetMock, publisherMock
}

func availableFleet() []*models.Ambulance {
	return []*models.Ambulance{
		{ID: "AMB-001", Location: models.Location{Lat: 0.01, Lng: 0}, Status: models.StatusAvailable},
		{ID: "AMB-002", Location: models.Location{Lat: 0.02, Lng: 0}, Status: models.StatusAvailable},
	}
}

func TestReportIncident_Success(t *testing.T) {
	// Подготовка
	svc, selectorMock, fleetMock, publisherMock := newTestDispatchService(t)
	ctx := context.Background()
	location := models.Location{Lat: 0, Lng: 0}

	// Ожидания
	fleetMock.EXPECT().AvailableVehicles().Return(availableFleet()).Times(1)
	selectorMock.EXPECT().
		SelectVehicle(ctx, gomock.Any(), gomock.Any()).
		Return(&dispatch.Selection{VehicleID: "AMB-001", Rationale: "closest unit", Source: dispatch.SourceFallback}, nil).
		Times(1)
	fleetMock.EXPECT().Assign("AMB-001", gomock.Any()).Return(nil).Times(1)
	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, event webhook.Event) error {
			assert.Equal(t, webhook.EventIncidentDispatched, event.Type)
			assert.Equal(t, "AMB-001", event.VehicleID)
			assert.True(t, event.Critical)
			return nil
		}).Times(1)

	// Действие
	result, err := svc.ReportIncident(ctx, "Cardiac arrest", models.PriorityCritical, location)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.IncidentDispatched, result.Incident.Status)
	assert.Equal(t, "AMB-001", result.Incident.AssignedAmbulanceID)
	assert.GreaterOrEqual(t, result.Incident.ETAMinutes, 1)
	require.NotNil(t, result.Selection)
	assert.Equal(t, dispatch.SourceFallback, result.Selection.Source)
}

func TestReportIncident_NoVehicles_StaysPending(t *testing.T) {
	// Подготовка
	svc, selectorMock, fleetMock, _ := newTestDispatchService(t)
	ctx := context.Background()

	// Ожидания: свободных машин нет
	fleetMock.EXPECT().AvailableVehicles().Return(nil).Times(1)
	selectorMock.EXPECT().
		SelectVehicle(ctx, gomock.Any(), gomock.Any()).
		Return(nil, dispatch.ErrNoVehiclesAvailable).
		Times(1)

	// Действие
	result, err := svc.ReportIncident(ctx, "Traffic accident", models.PriorityHigh, models.Location{})

	// Проверки: инцидент записан и остался Pending
	assert.ErrorIs(t, err, dispatch.ErrNoVehiclesAvailable)
	require.NotNil(t, result)
	assert.Equal(t, models.IncidentPending, result.Incident.Status)
	assert.Nil(t, result.Selection)

	got, getErr := svc.GetIncident(result.Incident.ID)
	require.NoError(t, getErr)
	assert.Equal(t, models.IncidentPending, got.Status)
}

func TestOnSceneArrival_MarksIncident(t *testing.T) {
	// Подготовка: инцидент доведен до Dispatched
	svc, selectorMock, fleetMock, publisherMock := newTestDispatchService(t)
	ctx := context.Background()

	fleetMock.EXPECT().AvailableVehicles().Return(availableFleet()).Times(1)
	selectorMock.EXPECT().
		SelectVehicle(ctx, gomock.Any(), gomock.Any()).
		Return(&dispatch.Selection{VehicleID: "AMB-001", Source: dispatch.SourceFallback}, nil).
		Times(1)
	fleetMock.EXPECT().Assign("AMB-001", gomock.Any()).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	result, err := svc.ReportIncident(ctx, "Fall with head injury", models.PriorityMedium, models.Location{})
	require.NoError(t, err)

	// Действие
	svc.OnSceneArrival("AMB-001", result.Incident.ID)

	// Проверки
	got, err := svc.GetIncident(result.Incident.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IncidentOnScene, got.Status)
}

func TestOnSceneArrival_StaleTransitionIgnored(t *testing.T) {
	// Переход по несуществующему инциденту не публикует событие и не паникует
	svc, _, _, publisherMock := newTestDispatchService(t)

	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	svc.OnSceneArrival("AMB-001", "INC-404")
}

func TestFullLifecycle_ThroughListener(t *testing.T) {
	// Подготовка
	svc, selectorMock, fleetMock, publisherMock := newTestDispatchService(t)
	ctx := context.Background()

	fleetMock.EXPECT().AvailableVehicles().Return(availableFleet()).Times(1)
	selectorMock.EXPECT().
		SelectVehicle(ctx, gomock.Any(), gomock.Any()).
		Return(&dispatch.Selection{VehicleID: "AMB-002", Source: dispatch.SourceAdvisory, Rationale: "ALS unit"}, nil).
		Times(1)
	fleetMock.EXPECT().Assign("AMB-002", gomock.Any()).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	result, err := svc.ReportIncident(ctx, "Severe allergic reaction", models.PriorityHigh, models.Location{})
	require.NoError(t, err)

	// Действие: переходы, которые в бою инициирует автопарк
	svc.OnSceneArrival("AMB-002", result.Incident.ID)
	svc.OnIncidentResolved("AMB-002", result.Incident.ID)

	// Проверки
	got, err := svc.GetIncident(result.Incident.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IncidentResolved, got.Status)
	require.NotNil(t, got.ResolvedAt)

	// Разрешенный инцидент можно убрать в архив
	require.NoError(t, svc.ArchiveIncident(result.Incident.ID))
	got, err = svc.GetIncident(result.Incident.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IncidentArchived, got.Status)
}

func TestArchiveIncident_NotResolved(t *testing.T) {
	// Подготовка
	svc, selectorMock, fleetMock, _ := newTestDispatchService(t)
	ctx := context.Background()

	fleetMock.EXPECT().AvailableVehicles().Return(nil).Times(1)
	selectorMock.EXPECT().
		SelectVehicle(ctx, gomock.Any(), gomock.Any()).
		Return(nil, dispatch.ErrNoVehiclesAvailable).
		Times(1)

	result, _ := svc.ReportIncident(ctx, "Loss of consciousness", models.PriorityLow, models.Location{})

	// Действие: Pending нельзя отправить в архив
	err := svc.ArchiveIncident(result.Incident.ID)

	// Проверки
	assert.Error(t, err)
}

func TestListHospitals_ReturnsCopies(t *testing.T) {
	// Подготовка
	svc, _, _, _ := newTestDispatchService(t)

	// Действие
	hospitals := svc.ListHospitals()
	require.Len(t, hospitals, 1)
	hospitals[0].AvailableBeds = 0

	// Проверки: мутация копии не задевает справочник
	again := svc.ListHospitals()
	assert.Equal(t, 35, again[0].AvailableBeds)
}

func TestAnalytics_EmptySession(t *testing.T) {
	// Подготовка
	svc, _, fleetMock, _ := newTestDispatchService(t)

	fleetMock.EXPECT().Snapshot().Return(availableFleet()).Times(1)

	// Действие
	snapshot := svc.Analytics()

	// Проверки
	require.NotNil(t, snapshot.Metrics)
	assert.Equal(t, 0, snapshot.Metrics.TotalIncidents)
	assert.Len(t, snapshot.Ranking, 2)
	assert.Len(t, snapshot.PeakHours, 5)
	assert.Empty(t, snapshot.HighRiskZones)
}
