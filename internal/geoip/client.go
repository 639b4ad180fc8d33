package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kvolkov/ambulance_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

// Client - одноразовый источник геолокации центра сессии (ip-api.com style).
// Опрашивается один раз при старте, вне цикла симуляции; при ошибке
// вызывающая сторона использует фиксированную резервную координату.
type Client struct {
	httpClient *http.Client
	url        string
	logger     *logrus.Logger
}

func NewClient(url string, logger *logrus.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		url:    url,
		logger: logger,
	}
}

type locateResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Locate возвращает координаты центра сессии
func (c *Client) Locate(ctx context.Context) (models.Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return models.Location{}, fmt.Errorf("geoip: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Location{}, fmt.Errorf("geoip: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Location{}, fmt.Errorf("geoip: unexpected status %d", resp.StatusCode)
	}

	var data locateResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return models.Location{}, fmt.Errorf("geoip: failed to decode response: %w", err)
	}
	if data.Lat == 0 && data.Lon == 0 {
		return models.Location{}, fmt.Errorf("geoip: response has no coordinates")
	}

	return models.Location{Lat: data.Lat, Lng: data.Lon}, nil
}
