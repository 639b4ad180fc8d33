package dispatch_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/kvolkov/ambulance_dispatch/internal/dispatch"
	"github.com/kvolkov/ambulance_dispatch/internal/dispatch/mocks"
	"github.com/kvolkov/ambulance_dispatch/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

func testIncident() *models.Incident {
	return &models.Incident{
		ID:          "INC-1",
		Description: "Cardiac arrest reported",
		Priority:    models.PriorityCritical,
		Location:    models.Location{Lat: 0, Lng: 0},
	}
}

// Машина A в ~1.1 км, машина B в ~2.2 км от инцидента
func testFleet() []*models.Ambulance {
	return []*models.Ambulance{
		{ID: "AMB-001", Location: models.Location{Lat: 0.01, Lng: 0}, Status: models.StatusAvailable},
		{ID: "AMB-002", Location: models.Location{Lat: 0.02, Lng: 0}, Status: models.StatusAvailable},
	}
}

func TestSelectVehicle_NoCandidates(t *testing.T) {
	// Подготовка
	policy := dispatch.NewPolicy(nil, newTestLogger())

	// Действие
	sel, err := policy.SelectVehicle(context.Background(), testIncident(), nil)

	// Проверки
	assert.Nil(t, sel)
	assert.ErrorIs(t, err, dispatch.ErrNoVehiclesAvailable)
}

func TestSelectVehicle_NoProvider_FallbackPicksClosest(t *testing.T) {
	// Подготовка
	policy := dispatch.NewPolicy(nil, newTestLogger())

	// Действие
	sel, err := policy.SelectVehicle(context.Background(), testIncident(), testFleet())

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "AMB-001", sel.VehicleID)
	assert.Equal(t, dispatch.SourceFallback, sel.Source)
	assert.Contains(t, sel.Rationale, "AMB-001")
}

func TestSelectVehicle_AdvisoryAccepted(t *testing.T) {
	// Подготовка
	ctrl := gomock.NewController(t)
	providerMock := mocks.NewMockAdvisoryProvider(ctrl)
	policy := dispatch.NewPolicy(providerMock, newTestLogger())

	// Ожидания: советчик выбирает дальнюю машину, и это валидный кандидат
	providerMock.EXPECT().
		Decide(gomock.Any(), gomock.Any()).
		Return(&dispatch.Decision{BestVehicleID: "AMB-002", Reasoning: "AMB-002 is an ALS unit suited for cardiac arrest"}, nil).
		Times(1)

	// Действие
	sel, err := policy.SelectVehicle(context.Background(), testIncident(), testFleet())

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "AMB-002", sel.VehicleID)
	assert.Equal(t, dispatch.SourceAdvisory, sel.Source)
	assert.Equal(t, "AMB-002 is an ALS unit suited for cardiac arrest", sel.Rationale)
}

func TestSelectVehicle_AdvisoryError_FallsBack(t *testing.T) {
	// Подготовка
	ctrl := gomock.NewController(t)
	providerMock := mocks.NewMockAdvisoryProvider(ctrl)
	policy := dispatch.NewPolicy(providerMock, newTestLogger())

	// Ожидания
	providerMock.EXPECT().
		Decide(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("advisory: request timed out")).
		Times(1)

	// Действие
	sel, err := policy.SelectVehicle(context.Background(), testIncident(), testFleet())

	// Проверки: ошибка советчика не срывает назначение
	require.NoError(t, err)
	assert.Equal(t, "AMB-001", sel.VehicleID)
	assert.Equal(t, dispatch.SourceFallback, sel.Source)
}

func TestSelectVehicle_AdvisoryUnknownVehicle_FallsBack(t *testing.T) {
	// Подготовка
	ctrl := gomock.NewController(t)
	providerMock := mocks.NewMockAdvisoryProvider(ctrl)
	policy := dispatch.NewPolicy(providerMock, newTestLogger())

	// Ожидания: советчик называет машину вне списка кандидатов
	providerMock.EXPECT().
		Decide(gomock.Any(), gomock.Any()).
		Return(&dispatch.Decision{BestVehicleID: "AMB-999", Reasoning: "hallucinated unit"}, nil).
		Times(1)

	// Действие
	sel, err := policy.SelectVehicle(context.Background(), testIncident(), testFleet())

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "AMB-001", sel.VehicleID)
	assert.Equal(t, dispatch.SourceFallback, sel.Source)
}

func TestSelectVehicle_RequestCarriesCandidates(t *testing.T) {
	// Подготовка
	ctrl := gomock.NewController(t)
	providerMock := mocks.NewMockAdvisoryProvider(ctrl)
	policy := dispatch.NewPolicy(providerMock, newTestLogger())
	fleet := testFleet()

	// Ожидания: запрос к советчику содержит всех кандидатов и контекст инцидента
	providerMock.EXPECT().
		Decide(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req dispatch.Request) (*dispatch.Decision, error) {
			assert.Len(t, req.Candidates, 2)
			assert.Equal(t, "AMB-001", req.Candidates[0].ID)
			assert.Equal(t, models.PriorityCritical, req.Priority)
			return &dispatch.Decision{BestVehicleID: "AMB-001", Reasoning: "closest unit"}, nil
		}).Times(1)

	// Действие
	sel, err := policy.SelectVehicle(context.Background(), testIncident(), fleet)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "AMB-001", sel.VehicleID)
}
