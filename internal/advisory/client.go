package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/kvolkov/ambulance_dispatch/internal/config"
	"github.com/kvolkov/ambulance_dispatch/internal/dispatch"
	"github.com/sirupsen/logrus"
)

// Client - HTTP-клиент провайдера диспетчерских решений (генеративная модель
// с JSON-ответом по схеме). Реализует dispatch.AdvisoryProvider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     *logrus.Logger
}

func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.AdvisoryTimeout,
		},
		baseURL: cfg.AdvisoryURL,
		apiKey:  cfg.AdvisoryAPIKey,
		model:   cfg.AdvisoryModel,
		logger:  logger,
	}
}

// Структуры запроса/ответа generateContent
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// decisionPayload - JSON, который модель обязана вернуть по схеме
type decisionPayload struct {
	BestAmbulanceID string `json:"bestAmbulanceId"`
	Reason          string `json:"reason"`
}

// Decide запрашивает у модели выбор машины для инцидента.
// Любая ошибка здесь не фатальна: политика диспетчеризации перейдет
// на детерминированный выбор ближайшей машины.
func (c *Client) Decide(ctx context.Context, req dispatch.Request) (*dispatch.Decision, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("advisory: API key is not configured")
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(req)}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"bestAmbulanceId": map[string]any{
						"type":        "STRING",
						"description": "The ID of the recommended ambulance.",
					},
					"reason": map[string]any{
						"type":        "STRING",
						"description": "A brief justification for the choice.",
					},
				},
				"required": []string{"bestAmbulanceId", "reason"},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("advisory: failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("advisory: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("advisory: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("advisory: unexpected status %d: %s", resp.StatusCode, raw)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("advisory: failed to decode response: %w", err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("advisory: empty response from model")
	}

	var payload decisionPayload
	if err := json.Unmarshal([]byte(genResp.Candidates[0].Content.Parts[0].Text), &payload); err != nil {
		return nil, fmt.Errorf("advisory: malformed decision payload: %w", err)
	}
	if payload.BestAmbulanceID == "" {
		return nil, fmt.Errorf("advisory: decision payload is missing bestAmbulanceId")
	}

	c.logger.WithFields(logrus.Fields{
		"service":    "advisory",
		"vehicle_id": payload.BestAmbulanceID,
	}).Debug("Advisory decision received")

	return &dispatch.Decision{
		BestVehicleID: payload.BestAmbulanceID,
		Reasoning:     payload.Reason,
	}, nil
}

func buildPrompt(req dispatch.Request) string {
	candidates, _ := json.MarshalIndent(req.Candidates, "", "  ")
	return fmt.Sprintf(`You are an Automated Ambulance Dispatch System. Your task is to select the best ambulance to respond to an emergency incident.

Analyze the following incident and the list of available ambulances.

**Incident Details:**
- Location (Lat/Lng): %v, %v
- Priority: %s
- Description: %q

**Available Ambulances:**
%s

**Decision Criteria (in order of importance):**
1. **Proximity:** Choose the closest ambulance.
2. **Vehicle Type:** For 'Critical' or 'High' priority incidents, an 'Advanced Life Support' (ALS) unit is strongly preferred if available nearby. For 'Medium' or 'Low', a 'Basic Life Support' (BLS) unit is acceptable.
3. **Assume standard urban traffic conditions.**

Based on these criteria, determine the single best ambulance to dispatch and provide a brief reason for your choice.`,
		req.Location.Lat, req.Location.Lng, req.Priority, req.Description, candidates)
}
