package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ORSClient - клиент OpenRouteService Directions API
type ORSClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewORSClient(apiKey, baseURL string, timeout time.Duration) *ORSClient {
	return &ORSClient{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type orsDirectionsRequest struct {
	Coordinates [][2]float64 `json:"coordinates"`
}

type orsFeatureCollection struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// Route запрашивает маршрут в формате GeoJSON между двумя точками
func (c *ORSClient) Route(ctx context.Context, start, end Coordinate, profile string) (*RouteGeometry, error) {
	payload, err := json.Marshal(orsDirectionsRequest{
		Coordinates: [][2]float64{{start.Lng, start.Lat}, {end.Lng, end.Lat}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal directions request: %w", err)
	}

	url := fmt.Sprintf("%s/v2/directions/%s/geojson", c.baseURL, profile)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create directions request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/geo+json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("directions request returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var fc orsFeatureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("failed to decode directions response: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("directions response contains no routes")
	}

	feature := fc.Features[0]
	return &RouteGeometry{
		Coordinates:     feature.Geometry.Coordinates,
		DistanceMeters:  feature.Properties.Summary.Distance,
		DurationSeconds: feature.Properties.Summary.Duration,
	}, nil
}
