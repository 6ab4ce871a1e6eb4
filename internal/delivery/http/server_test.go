package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/archive-alert/internal/config"
	"github.com/archive-alert/internal/delivery/http/handler"
	"github.com/archive-alert/internal/domain"
	apperrors "github.com/archive-alert/internal/pkg/errors"
	"github.com/archive-alert/internal/repository/memory"
	"github.com/archive-alert/internal/usecase"
)

type noCycles struct{}

func (noCycles) LastCycle() (*domain.CycleResult, error) {
	return nil, apperrors.ErrNoCycleYet
}

func newTestServer() *Server {
	logger := zap.NewNop()
	counters := memory.NewCounterRepository(map[string]int{"aoi_europe.geojson": 8})
	statusUC := usecase.NewStatusUseCase(counters, noCycles{}, "memory", "aoi_europe.geojson", time.Hour, logger)
	return NewServer(&config.Config{}, logger, handler.NewStatusHandler(statusUC, logger))
}

func get(t *testing.T, s *Server, path string) (int, map[string]any) {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestServer_Routes(t *testing.T) {
	s := newTestServer()

	t.Run("health", func(t *testing.T) {
		code, body := get(t, s, "/api/v1/health")
		assert.Equal(t, 200, code)
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("status before any cycle", func(t *testing.T) {
		code, body := get(t, s, "/api/v1/status")
		assert.Equal(t, 200, code)
		data := body["data"].(map[string]any)
		assert.Equal(t, "aoi_europe.geojson", data["aoi_file"])
		assert.NotContains(t, data, "last_cycle")
	})

	t.Run("counters", func(t *testing.T) {
		code, body := get(t, s, "/api/v1/counters")
		assert.Equal(t, 200, code)
		data := body["data"].(map[string]any)
		assert.EqualValues(t, 8, data["counters"].(map[string]any)["aoi_europe.geojson"])
	})

	t.Run("single counter", func(t *testing.T) {
		code, body := get(t, s, "/api/v1/counters/aoi_europe.geojson")
		assert.Equal(t, 200, code)
		assert.EqualValues(t, 8, body["data"].(map[string]any)["scene_count"])
	})

	t.Run("unknown counter", func(t *testing.T) {
		code, body := get(t, s, "/api/v1/counters/aoi_mars.geojson")
		assert.Equal(t, 404, code)
		assert.Equal(t, "AOI_NOT_REGISTERED", body["error"].(map[string]any)["code"])
	})
}
