package routing

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kvolkov/ambulance_dispatch/internal/config"
	"github.com/kvolkov/ambulance_dispatch/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		RoutingURL:     serverURL,
		RoutingTimeout: time.Second,
	}
	return NewClient(cfg, NewMemoryCache(), logger)
}

const osrmResponse = `{
	"routes": [
		{
			"geometry": {
				"coordinates": [[-118.24, 34.05], [-118.25, 34.06], [-118.26, 34.07]]
			},
			"distance": 3100.5,
			"duration": 420.0
		}
	]
}`

func TestFetchRoute_Success(t *testing.T) {
	// Подготовка
	var gotPath atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.String())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(osrmResponse))
	}))
	defer server.Close()
	client := newTestClient(server.URL)

	// Действие
	path, err := client.FetchRoute(context.Background(),
		models.Location{Lat: 34.05, Lng: -118.24},
		models.Location{Lat: 34.07, Lng: -118.26})

	// Проверки: geojson отдает lng,lat - клиент разворачивает обратно
	require.NoError(t, err)
	require.Len(t, path, 3)
	assert.Equal(t, models.Location{Lat: 34.05, Lng: -118.24}, path[0])
	assert.Equal(t, models.Location{Lat: 34.07, Lng: -118.26}, path[2])

	url, _ := gotPath.Load().(string)
	assert.Contains(t, url, "/route/v1/driving/")
	assert.Contains(t, url, "geometries=geojson")
}

func TestFetchRoute_CachesResult(t *testing.T) {
	// Подготовка
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(osrmResponse))
	}))
	defer server.Close()
	client := newTestClient(server.URL)

	start := models.Location{Lat: 34.05, Lng: -118.24}
	end := models.Location{Lat: 34.07, Lng: -118.26}

	// Действие: одинаковое плечо дважды
	_, err := client.FetchRoute(context.Background(), start, end)
	require.NoError(t, err)
	_, err = client.FetchRoute(context.Background(), start, end)
	require.NoError(t, err)

	// Проверки: внешний сервис вызван один раз
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchRoute_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()
	client := newTestClient(server.URL)

	_, err := client.FetchRoute(context.Background(), models.Location{}, models.Location{Lat: 1})

	assert.Error(t, err)
}

func TestFetchRoute_NoRoutes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routes": []}`))
	}))
	defer server.Close()
	client := newTestClient(server.URL)

	_, err := client.FetchRoute(context.Background(), models.Location{}, models.Location{Lat: 1})

	assert.Error(t, err)
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()
	path := []models.Location{{Lat: 1, Lng: 2}, {Lat: 3, Lng: 4}}

	_, ok := cache.Get(ctx, "route:a")
	assert.False(t, ok)

	cache.Set(ctx, "route:a", path)
	got, ok := cache.Get(ctx, "route:a")
	require.True(t, ok)
	assert.Equal(t, path, got)
}

func TestCacheKey_RoundsCoordinates(t *testing.T) {
	// Плечи, отличающиеся меньше чем на метр, получают один ключ
	a := cacheKey(models.Location{Lat: 34.052201, Lng: -118.243701}, models.Location{Lat: 34.07, Lng: -118.26})
	b := cacheKey(models.Location{Lat: 34.052199, Lng: -118.243699}, models.Location{Lat: 34.07, Lng: -118.26})

	assert.Equal(t, a, b)
}
