package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kvolkov/ambulance_dispatch/internal/config"
	"github.com/kvolkov/ambulance_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

// Client - клиент OSRM-совместимого сервиса маршрутизации.
// Возвращает ломаную дорожного маршрута между двумя точками.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      RouteCache
	logger     *logrus.Logger
}

func NewClient(cfg *config.Config, cache RouteCache, logger *logrus.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.RoutingTimeout,
		},
		baseURL: cfg.RoutingURL,
		cache:   cache,
		logger:  logger,
	}
}

// routeResponse - ответ OSRM route/v1 с геометрией geojson
type routeResponse struct {
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// FetchRoute возвращает вершины дорожного маршрута от start до end.
// Ошибка означает, что вызывающая сторона остается на прямолинейном движении.
func (c *Client) FetchRoute(ctx context.Context, start, end models.Location) ([]models.Location, error) {
	key := cacheKey(start, end)
	if path, ok := c.cache.Get(ctx, key); ok {
		return path, nil
	}

	// OSRM принимает координаты в порядке lng,lat
	url := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=full&geometries=geojson",
		c.baseURL, start.Lng, start.Lat, end.Lng, end.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("routing: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("routing: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routing: unexpected status %d", resp.StatusCode)
	}

	var data routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("routing: failed to decode response: %w", err)
	}
	if len(data.Routes) == 0 {
		return nil, fmt.Errorf("routing: no routes in response")
	}

	coords := data.Routes[0].Geometry.Coordinates
	path := make([]models.Location, 0, len(coords))
	for _, coord := range coords {
		if len(coord) < 2 {
			continue
		}
		path = append(path, models.Location{Lat: coord[1], Lng: coord[0]})
	}
	if len(path) == 0 {
		return nil, fmt.Errorf("routing: route geometry is empty")
	}

	c.cache.Set(ctx, key, path)
	c.logger.WithFields(logrus.Fields{
		"service":   "routing",
		"waypoints": len(path),
	}).Debug("Route fetched")

	return path, nil
}
