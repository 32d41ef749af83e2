package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/traffic_advisory_system/internal/config"
	"github.com/shenikar/traffic_advisory_system/internal/models"
	"github.com/shenikar/traffic_advisory_system/internal/service"
	"github.com/shenikar/traffic_advisory_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type handlerMocks struct {
	incidents *mocks.MockIncidentService
	signals   *mocks.MockSignalService
	photos    *mocks.MockPhotoService
}

// newTestHandler создает новый экземпляр Handler с мокированными сервисами
func newTestHandler(t *testing.T, cfg *config.Config) (handlerMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := handlerMocks{
		incidents: mocks.NewMockIncidentService(ctrl),
		signals:   mocks.NewMockSignalService(ctrl),
		photos:    mocks.NewMockPhotoService(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	if cfg == nil {
		cfg = &config.Config{MaxPhotoBytes: 1 << 20}
	}
	handler := NewHandler(m.incidents, m.signals, m.photos, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return m, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func TestCreateIncident_Success(t *testing.T) {
	m, router := newTestHandler(t, nil)
	incidentID := uuid.New()
	now := time.Now().UTC()
	body := `{"type":"accident","severity":"high","description":"Two-car collision","lat":12.9172,"lng":77.6229}`

	m.incidents.EXPECT().
		CreateIncident(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inc *models.Incident) error {
			assert.Equal(t, models.IncidentAccident, inc.Type)
			assert.Equal(t, models.SeverityHigh, inc.Severity)
			assert.Equal(t, 12.9172, inc.Lat)
			assert.Equal(t, 77.6229, inc.Lng)
			// Симулируем, что сервис заполнил служебные поля
			inc.ID = incidentID
			inc.Status = models.StatusActive
			inc.ReporterName = models.DefaultReporterName
			inc.Timestamp = now
			return nil
		}).Times(1)

	w := makeRequest(router, http.MethodPost, "/api/v1/incidents", strings.NewReader(body))

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, incidentID, resp.ID)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, "Anonymous", resp.ReporterName)
	assert.Nil(t, resp.PhotoURL)
}

func TestCreateIncident_AcceptsZeroCoordinates(t *testing.T) {
	m, router := newTestHandler(t, nil)
	body := `{"type":"road_work","severity":"low","description":"Resurfacing","lat":0,"lng":0}`

	m.incidents.EXPECT().CreateIncident(gomock.Any(), gomock.Any()).Return(nil)

	w := makeRequest(router, http.MethodPost, "/api/v1/incidents", strings.NewReader(body))

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateIncident_ValidationError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "нет типа", body: `{"severity":"low","description":"x","lat":1,"lng":1}`},
		{name: "неизвестная серьезность", body: `{"type":"accident","severity":"extreme","description":"x","lat":1,"lng":1}`},
		{name: "нет описания", body: `{"type":"accident","severity":"low","lat":1,"lng":1}`},
		{name: "нет широты", body: `{"type":"accident","severity":"low","description":"x","lng":1}`},
		{name: "широта вне диапазона", body: `{"type":"accident","severity":"low","description":"x","lat":91,"lng":1}`},
		{name: "долгота вне диапазона", body: `{"type":"accident","severity":"low","description":"x","lat":1,"lng":-181}`},
		{name: "некорректная ссылка на фото", body: `{"type":"accident","severity":"low","description":"x","lat":1,"lng":1,"photo_url":"not a url"}`},
		{name: "широта строкой", body: `{"type":"accident","severity":"low","description":"x","lat":"north","lng":1}`},
		{name: "битый JSON", body: `{"type":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, router := newTestHandler(t, nil)
			// До сервиса запрос доходить не должен
			m.incidents.EXPECT().CreateIncident(gomock.Any(), gomock.Any()).Times(0)

			w := makeRequest(router, http.MethodPost, "/api/v1/incidents", strings.NewReader(tt.body))

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateIncident_ServiceError(t *testing.T) {
	m, router := newTestHandler(t, nil)
	lat, lng := 12.97, 77.59
	reqBody := CreateIncidentRequest{
		Type:        "traffic_jam",
		Severity:    "medium",
		Description: "Slow traffic",
		Lat:         &lat,
		Lng:         &lng,
	}

	m.incidents.EXPECT().CreateIncident(gomock.Any(), gomock.Any()).Return(fmt.Errorf("db error"))

	w := makeRequest(router, http.MethodPost, "/api/v1/incidents", jsonBody(t, reqBody))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestListIncidents_Success(t *testing.T) {
	m, router := newTestHandler(t, nil)
	expected := []*models.Incident{
		{ID: uuid.New(), Type: models.IncidentAccident, Status: models.StatusActive},
		{ID: uuid.New(), Type: models.IncidentRoadWork, Status: models.StatusActive},
	}

	m.incidents.EXPECT().ListIncidents(gomock.Any(), models.StatusActive).Return(expected, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/incidents?status=active", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, expected[0].ID, resp[0].ID)
}

func TestListIncidents_EmptyIsArray(t *testing.T) {
	m, router := newTestHandler(t, nil)

	m.incidents.EXPECT().ListIncidents(gomock.Any(), "").Return([]*models.Incident{}, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/incidents", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListIncidents_InvalidStatus(t *testing.T) {
	m, router := newTestHandler(t, nil)
	m.incidents.EXPECT().ListIncidents(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodGet, "/api/v1/incidents?status=archived", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetIncident_Success(t *testing.T) {
	m, router := newTestHandler(t, nil)
	incidentID := uuid.New()
	photo := "https://cdn.example.com/photos/incidents/a.jpg"
	expected := &models.Incident{ID: incidentID, Type: models.IncidentEmergency, PhotoURL: &photo}

	m.incidents.EXPECT().GetIncident(gomock.Any(), incidentID).Return(expected, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/incidents/"+incidentID.String(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, incidentID, resp.ID)
	require.NotNil(t, resp.PhotoURL)
	assert.Equal(t, photo, *resp.PhotoURL)
}

func TestGetIncident_NotFound(t *testing.T) {
	m, router := newTestHandler(t, nil)
	incidentID := uuid.New()

	m.incidents.EXPECT().
		GetIncident(gomock.Any(), incidentID).
		Return(nil, fmt.Errorf("service: could not get incident: %w", models.ErrNotFound))

	w := makeRequest(router, http.MethodGet, "/api/v1/incidents/"+incidentID.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"incident not found"}`, w.Body.String())
}

func TestGetIncident_StoreError(t *testing.T) {
	m, router := newTestHandler(t, nil)
	incidentID := uuid.New()

	m.incidents.EXPECT().GetIncident(gomock.Any(), incidentID).Return(nil, fmt.Errorf("connection refused"))

	w := makeRequest(router, http.MethodGet, "/api/v1/incidents/"+incidentID.String(), nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetIncident_InvalidID(t *testing.T) {
	_, router := newTestHandler(t, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/incidents/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetIncidentRoutes_Success(t *testing.T) {
	m, router := newTestHandler(t, nil)
	incidentID := uuid.New()
	analysis := &models.RouteAnalysis{
		IncidentID:   incidentID,
		SafeRoute:    "via Outer Ring Road (avoiding accident zone), 12.3 km (Safest, avoids high-risk zones)",
		EcoRoute:     "via Sarjapur Road (tree-lined route), 9.1 km (Eco-friendly, lower emissions)",
		FastestRoute: "via Electronic City Flyover, 7.0 km (Quickest arrival time)",
		AIMessage:    "🚨 Alert: Accident detected at location.",
	}

	m.incidents.EXPECT().GetRouteAnalysis(gomock.Any(), incidentID).Return(analysis, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/incidents/"+incidentID.String()+"/routes", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp RouteAnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, incidentID, resp.IncidentID)
	assert.Equal(t, analysis.AIMessage, resp.AIMessage)
}

func TestGetIncidentRoutes_NotFound(t *testing.T) {
	m, router := newTestHandler(t, nil)
	incidentID := uuid.New()

	m.incidents.EXPECT().GetRouteAnalysis(gomock.Any(), incidentID).Return(nil, models.ErrNotFound)

	w := makeRequest(router, http.MethodGet, "/api/v1/incidents/"+incidentID.String()+"/routes", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteIncident(t *testing.T) {
	m, router := newTestHandler(t, nil)
	existing, missing := uuid.New(), uuid.New()

	m.incidents.EXPECT().DeactivateIncident(gomock.Any(), existing).Return(nil)
	m.incidents.EXPECT().DeactivateIncident(gomock.Any(), missing).Return(models.ErrNotFound)

	w := makeRequest(router, http.MethodDelete, "/api/v1/incidents/"+existing.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = makeRequest(router, http.MethodDelete, "/api/v1/incidents/"+missing.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListSignals(t *testing.T) {
	m, router := newTestHandler(t, nil)
	signals := []*models.TrafficSignal{
		{SignalID: "SILK_BOARD", Location: "Silk Board Junction", CurrentState: models.SignalRed, TrafficDensity: 85},
	}

	m.signals.EXPECT().ListSignals(gomock.Any()).Return(signals, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/signals", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []TrafficSignalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "RED", resp[0].CurrentState)
	assert.Equal(t, 85, resp[0].TrafficDensity)
}

func TestInitializeSignals(t *testing.T) {
	m, router := newTestHandler(t, nil)

	m.signals.EXPECT().InitializeSignals(gomock.Any()).Return(5, nil)

	w := makeRequest(router, http.MethodPost, "/api/v1/signals/initialize", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Traffic signals initialized","count":5}`, w.Body.String())
}

func TestSimulateTraffic_Success(t *testing.T) {
	m, router := newTestHandler(t, nil)
	body := `{"road_id":"MG_ROAD","traffic_density":0,"avg_speed":42.5,"emergency_vehicle_detected":false}`

	m.signals.EXPECT().
		SimulateTraffic(gomock.Any(), "MG_ROAD", 0, false).
		Return(&models.SimulationResult{SignalID: "MG_ROAD", NewState: models.SignalGreen, Density: 0}, nil)

	w := makeRequest(router, http.MethodPost, "/api/v1/simulate/traffic", strings.NewReader(body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"signal_id":"MG_ROAD","new_state":"GREEN","density":0}`, w.Body.String())
}

func TestSimulateTraffic_UnknownSignal(t *testing.T) {
	m, router := newTestHandler(t, nil)
	body := `{"road_id":"NOWHERE","traffic_density":40,"avg_speed":20}`

	m.signals.EXPECT().
		SimulateTraffic(gomock.Any(), "NOWHERE", 40, false).
		Return(nil, fmt.Errorf("service: could not simulate traffic: %w", models.ErrNotFound))

	w := makeRequest(router, http.MethodPost, "/api/v1/simulate/traffic", strings.NewReader(body))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"signal not found"}`, w.Body.String())
}

func TestSimulateTraffic_ValidationError(t *testing.T) {
	m, router := newTestHandler(t, nil)
	m.signals.EXPECT().SimulateTraffic(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	for _, body := range []string{
		`{"traffic_density":40}`,
		`{"road_id":"MG_ROAD"}`,
		`{"road_id":"MG_ROAD","traffic_density":"high"}`,
	} {
		w := makeRequest(router, http.MethodPost, "/api/v1/simulate/traffic", strings.NewReader(body))
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

// Плотность вне 0..100 не отклоняется, состояние определяет сервис
func TestSimulateTraffic_DensityOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		density int
		state   models.SignalState
	}{
		{name: "выше 100", density: 150, state: models.SignalRed},
		{name: "отрицательная", density: -5, state: models.SignalGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, router := newTestHandler(t, nil)
			body := fmt.Sprintf(`{"road_id":"SILK_BOARD","traffic_density":%d,"avg_speed":-3}`, tt.density)

			m.signals.EXPECT().
				SimulateTraffic(gomock.Any(), "SILK_BOARD", tt.density, false).
				Return(&models.SimulationResult{SignalID: "SILK_BOARD", NewState: tt.state, Density: tt.density}, nil)

			w := makeRequest(router, http.MethodPost, "/api/v1/simulate/traffic", strings.NewReader(body))

			assert.Equal(t, http.StatusOK, w.Code)
			var resp SimulateTrafficResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, string(tt.state), resp.NewState)
			assert.Equal(t, tt.density, resp.Density)
		})
	}
}

func TestSignalAdminRoutes_RequireAPIKeyWhenConfigured(t *testing.T) {
	m, router := newTestHandler(t, &config.Config{APIKeys: []string{"test-api-key"}})

	// Без ключа
	w := makeRequest(router, http.MethodPost, "/api/v1/signals/initialize", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// С неверным ключом
	w = makeRequest(router, http.MethodPost, "/api/v1/signals/initialize", nil, map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// С верным ключом через Bearer
	m.signals.EXPECT().InitializeSignals(gomock.Any()).Return(5, nil)
	w = makeRequest(router, http.MethodPost, "/api/v1/signals/initialize", nil, map[string]string{"Authorization": "Bearer test-api-key"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Публичные маршруты ключ не требуют
	m.signals.EXPECT().ListSignals(gomock.Any()).Return([]*models.TrafficSignal{}, nil)
	w = makeRequest(router, http.MethodGet, "/api/v1/signals", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetStats_Success(t *testing.T) {
	m, router := newTestHandler(t, nil)

	m.incidents.EXPECT().
		GetStats(gomock.Any()).
		Return(&models.IncidentStats{TotalIncidents: 10, ActiveIncidents: 4, HighSeverityCount: 1}, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/stats", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_incidents":10,"active_incidents":4,"high_severity_count":1}`, w.Body.String())
}

func TestGetStats_Error(t *testing.T) {
	m, router := newTestHandler(t, nil)

	m.incidents.EXPECT().GetStats(gomock.Any()).Return(nil, fmt.Errorf("query failed"))

	w := makeRequest(router, http.MethodGet, "/api/v1/stats", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func multipartPhoto(t *testing.T, filename string, content []byte) (io.Reader, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}

func TestUploadPhoto_Success(t *testing.T) {
	m, router := newTestHandler(t, nil)
	body, contentType := multipartPhoto(t, "crash.jpg", []byte("jpeg"))

	m.photos.EXPECT().
		UploadPhoto(gomock.Any(), "crash.jpg", gomock.Any()).
		Return("https://cdn.example.com/photos/incidents/abc.jpg", nil)

	w := makeRequest(router, http.MethodPost, "/api/v1/photos", body, map[string]string{"Content-Type": contentType})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"photo_url":"https://cdn.example.com/photos/incidents/abc.jpg"}`, w.Body.String())
}

func TestUploadPhoto_Errors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantCode   int
	}{
		{name: "хранилище не настроено", serviceErr: service.ErrPhotoStorageDisabled, wantCode: http.StatusServiceUnavailable},
		{name: "неподдерживаемый формат", serviceErr: fmt.Errorf("%w: \".gif\"", service.ErrUnsupportedPhoto), wantCode: http.StatusBadRequest},
		{name: "сбой хранилища", serviceErr: fmt.Errorf("service: could not upload photo: timeout"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, router := newTestHandler(t, nil)
			body, contentType := multipartPhoto(t, "crash.gif", []byte("gif"))

			m.photos.EXPECT().UploadPhoto(gomock.Any(), gomock.Any(), gomock.Any()).Return("", tt.serviceErr)

			w := makeRequest(router, http.MethodPost, "/api/v1/photos", body, map[string]string{"Content-Type": contentType})

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestUploadPhoto_TooLarge(t *testing.T) {
	m, router := newTestHandler(t, &config.Config{MaxPhotoBytes: 8})
	body, contentType := multipartPhoto(t, "crash.jpg", bytes.Repeat([]byte("x"), 64))

	m.photos.EXPECT().UploadPhoto(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodPost, "/api/v1/photos", body, map[string]string{"Content-Type": contentType})

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestUploadPhoto_MissingFile(t *testing.T) {
	_, router := newTestHandler(t, nil)

	w := makeRequest(router, http.MethodPost, "/api/v1/photos", strings.NewReader("{}"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndRoot(t *testing.T) {
	_, router := newTestHandler(t, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/system/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = makeRequest(router, http.MethodGet, "/api/v1/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Disha - Smart Traffic Management API","version":"1.0.0"}`, w.Body.String())
}

func newCORSRouter(t *testing.T, origins []string) *gin.Engine {
	ctrl := gomock.NewController(t)
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	handler := NewHandler(mocks.NewMockIncidentService(ctrl), mocks.NewMockSignalService(ctrl), mocks.NewMockPhotoService(ctrl), logger, &config.Config{})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware(origins))
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestCORS_PreflightAllowsAnyOrigin(t *testing.T) {
	router := newCORSRouter(t, []string{"*"})

	w := makeRequest(router, http.MethodOptions, "/api/v1/incidents", nil, map[string]string{
		"Origin":                         "http://localhost:3000",
		"Access-Control-Request-Method":  http.MethodPost,
		"Access-Control-Request-Headers": "Content-Type",
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestCORS_RestrictedOrigins(t *testing.T) {
	router := newCORSRouter(t, []string{"http://localhost:3000"})

	w := makeRequest(router, http.MethodOptions, "/api/v1/signals", nil, map[string]string{
		"Origin":                        "http://localhost:3000",
		"Access-Control-Request-Method": http.MethodGet,
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = makeRequest(router, http.MethodOptions, "/api/v1/signals", nil, map[string]string{
		"Origin":                        "http://evil.example.com",
		"Access-Control-Request-Method": http.MethodGet,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
