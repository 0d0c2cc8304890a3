package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	httpmiddleware "dispatch/internal/delivery/http/middleware"
	"dispatch/internal/delivery/http/validator"
	"dispatch/internal/infra/detect/heuristic"
	"dispatch/internal/infra/geo"
	"dispatch/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = httpmiddleware.NewErrorMiddleware(slog.New(slog.DiscardHandler)).HandleHTTPError

	return e
}

func newTestRouteHandler() *RouteHandler {
	routing := impl.NewRoutingService(nil, geo.NewTrafficModel(nil))

	return NewRouteHandler(RouteHandlerParams{
		RoutingUC: routing,
		Logger:    slog.New(slog.DiscardHandler),
	})
}

func postJSON(t *testing.T, e *echo.Echo, h echo.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	return rec
}

func TestSynthesizeRouteEndpoint(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)
	h := newTestRouteHandler()

	rec := postJSON(t, e, h.SynthesizeRoute, "/api/routes", map[string]any{
		"start":                map[string]float64{"latitude": 10, "longitude": 20},
		"end":                  map[string]float64{"latitude": 10.05, "longitude": 20.05},
		"emergency_priority":   true,
		"include_alternatives": true,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Info struct {
				Distance             string `json:"distance"`
				Duration             string `json:"duration"`
				TrafficDensity       string `json:"traffic_density"`
				AvoidsTrafficSignals bool   `json:"avoids_traffic_signals"`
			} `json:"info"`
			Waypoints    []map[string]float64 `json:"waypoints"`
			Alternatives []json.RawMessage    `json:"alternatives"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Data.Info.Distance)
	assert.NotEmpty(t, body.Data.Info.Duration)
	assert.True(t, body.Data.Info.AvoidsTrafficSignals)
	assert.GreaterOrEqual(t, len(body.Data.Waypoints), 4)
	assert.Len(t, body.Data.Alternatives, 2)
}

func TestSynthesizeRouteRejectsOutOfRangeCoordinates(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)
	h := newTestRouteHandler()

	rec := postJSON(t, e, h.SynthesizeRoute, "/api/routes", map[string]any{
		"start": map[string]float64{"latitude": 95, "longitude": 20},
		"end":   map[string]float64{"latitude": 10, "longitude": 20},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
}

func TestETAEndpointDefaultsToEmergencyPriority(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)
	routing := impl.NewRoutingService(nil, geo.NewTrafficModel(nil))
	h := NewETAHandler(ETAHandlerParams{
		ETAUC:  impl.NewETAService(routing),
		Logger: slog.New(slog.DiscardHandler),
	})

	rec := postJSON(t, e, h.Estimate, "/api/eta", map[string]any{
		"current":     map[string]float64{"latitude": 10, "longitude": 20},
		"destination": map[string]float64{"latitude": 11, "longitude": 20},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Duration string `json:"duration"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	// ~111 km at emergency-boosted low-density speed
	assert.Equal(t, "1 hour 35 mins", body.Data.Duration)
}

func newTestDetectionHandler() *DetectionHandler {
	logger := slog.New(slog.DiscardHandler)
	detection := impl.NewDetectionService(nil, heuristic.New(logger), logger)
	_ = detection.Initialize(context.Background())

	return NewDetectionHandler(DetectionHandlerParams{
		DetectionUC: detection,
		Logger:      logger,
	})
}

func TestDetectEndpointHeuristicOnly(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)
	h := newTestDetectionHandler()

	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if y < 8 {
				img.Set(x, y, color.RGBA{R: 255, G: 0, B: 0, A: 255})
			} else {
				img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", "frame.png")
	require.NoError(t, err)
	require.NoError(t, png.Encode(part, img))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/detect", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Detect(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Result struct {
				Found      bool    `json:"found"`
				Confidence float64 `json:"confidence"`
				Label      string  `json:"label"`
			} `json:"result"`
			Mode string `json:"mode"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "heuristic", body.Data.Mode)
	assert.True(t, body.Data.Result.Found)
	assert.Equal(t, "ambulance (color detection)", body.Data.Result.Label)
}

func TestDetectEndpointRequiresImage(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)
	h := newTestDetectionHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/detect", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Detect(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_IMAGE")
}
