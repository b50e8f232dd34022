package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/networth-projection/internal/calculation"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer(Config{MaxPaths: 500, MaxDays: 2 * calculation.DaysPerYear}, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestProjectionEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/api/projection?paths=20&days=30&seed=7&seed_mode=per_path")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var result calculation.ProjectionResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, int64(7), result.Params.Seed)
	assert.Equal(t, 20, result.Params.PathCount)
	assert.Equal(t, calculation.SeedPerPath, result.SeedMode)
	assert.Len(t, result.P50, 31)
	assert.Empty(t, result.Paths)
	assert.Equal(t, calculation.DemoStartValue, result.P10[0])
}

func TestProjectionEndpointMatchesSimulator(t *testing.T) {
	_, ts := newTestServer(t)

	_, body := get(t, ts.URL+"/api/projection?paths=10&days=5&start=1000&drift_mean=1&drift_std=0&return_mean=0&return_std=0&include_paths=true")
	var result calculation.ProjectionResult
	require.NoError(t, json.Unmarshal(body, &result))

	require.Len(t, result.Paths, 10)
	assert.Equal(t, []float64{1000, 1001, 1002, 1003, 1004, 1005}, []float64(result.Paths[0]))
}

func TestProjectionEndpointRejectsInvalidParams(t *testing.T) {
	_, ts := newTestServer(t)

	cases := map[string]string{
		"non-numeric paths": "paths=abc",
		"zero paths":        "paths=0",
		"negative days":     "days=-1",
		"too many paths":    "paths=501",
		"too many days":     "days=731",
		"bad seed mode":     "seed_mode=random",
		"bad float":         "return_std=x",
		"negative std":      "drift_std=-1",
		"bad include_paths": "include_paths=maybe",
	}
	for name, query := range cases {
		t.Run(name, func(t *testing.T) {
			resp, body := get(t, ts.URL+"/api/projection?"+query)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))
			assert.NotEmpty(t, body)
		})
	}
}

func TestDemoEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/api/demo?years=1")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var result calculation.ProjectionResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, int64(calculation.DemoSeed), result.Params.Seed)
	assert.Equal(t, 500, result.Params.PathCount, "demo path count is capped by the server limit")
	assert.Equal(t, calculation.DaysPerYear, result.Params.HorizonDays)

	resp, _ = get(t, ts.URL+"/api/demo?years=-2")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = get(t, ts.URL+"/api/demo?years=ten")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEnsembleSizeLimit(t *testing.T) {
	srv := NewServer(Config{MaxPaths: 500, MaxDays: 2 * calculation.DaysPerYear, MaxSamples: 10000}, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	// 99 paths * 101 samples fits, 100 * 101 does not.
	resp, body := get(t, ts.URL+"/api/projection?paths=99&days=100")
	assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = get(t, ts.URL+"/api/projection?paths=100&days=100")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "exceeds limit 10000")

	resp, _ = get(t, ts.URL+"/api/chart.png?paths=100&days=100")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, srv.Charts().Len())

	// 500 demo paths over a year is 183000 samples.
	resp, _ = get(t, ts.URL+"/api/demo?years=1")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDefaultLimitsRejectLargestEnsemble(t *testing.T) {
	srv := NewServer(Config{}, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp, body := get(t, ts.URL+"/api/projection?paths=20000&days=18250")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "exceeds limit")

	resp, _ = get(t, ts.URL+"/api/demo?years=50")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChartEndpointCachesImages(t *testing.T) {
	srv, ts := newTestServer(t)

	resp, first := get(t, ts.URL+"/api/chart.png?paths=20&days=60")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(first))
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(first, []byte("\x89PNG")))
	assert.Equal(t, 1, srv.Charts().Len())

	_, second := get(t, ts.URL+"/api/chart.png?days=60&paths=20")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, srv.Charts().Len())

	get(t, ts.URL+"/api/chart.png?paths=20&days=61")
	assert.Equal(t, 2, srv.Charts().Len())
}

func TestChartEndpointRejectsZeroHorizon(t *testing.T) {
	srv, ts := newTestServer(t)

	resp, _ := get(t, ts.URL+"/api/chart.png?paths=5&days=0")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, srv.Charts().Len())
}

func TestUnknownMethodAndPath(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/projection", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, _ = get(t, ts.URL+"/api/nothing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_ListenAndServeShutsDown(t *testing.T) {
	srv := NewServer(Config{}, nil)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(ctx) }()

	waitForServer(t, srv, 2*time.Second)

	resp, _ := get(t, "http://"+srv.Addr()+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_ServeFailureReturnsError(t *testing.T) {
	ln, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	srv := NewServer(Config{}, nil)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.serve(context.Background(), ln) }()

	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after the listener failed")
	}
}

func TestServer_ListenAndServeBadAddr(t *testing.T) {
	srv := NewServer(Config{Addr: "localhost:-1"}, nil)
	err := srv.ListenAndServe(context.Background())
	assert.ErrorContains(t, err, "listen")
}

// waitForServer polls the server until it's ready or the timeout is reached.
func waitForServer(t *testing.T, srv *Server, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		addr := srv.Addr()
		if addr == "" {
			time.Sleep(10 * time.Millisecond)
			continue
		}
		resp, err := http.Get("http://" + addr + "/healthz")
		if err == nil {
			resp.Body.Close()
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("server not ready after %v", timeout)
}
