package server

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/launchdash/internal/chart"
	"github.com/davetashner/launchdash/internal/controller"
	"github.com/davetashner/launchdash/internal/dataset"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	ds, err := dataset.LoadFile(filepath.Join("..", "dataset", "testdata", "spacex_launch_dash.csv"))
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	ctrl := controller.New(ds, controller.WithRegisterer(reg))
	s := New(ctrl, Options{
		Registry: reg,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	s.now = func() time.Time { return time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC) }

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func doRequest(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestIndex(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doRequest(t, http.MethodGet, ts.URL+"/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<h1>SpaceX Launch Records Dashboard</h1>")
	assert.Contains(t, string(body), `"live":true`)
}

func TestState(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/state", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[controller.Snapshot](t, resp)
	assert.Equal(t, uint64(1), snap.Revision)
	assert.Equal(t, "ALL", snap.Selection.Site)
	assert.Equal(t, "Total Successful Launches for all sites", snap.Proportion.Title)
}

func TestSites(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/sites", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[sitesResponse](t, resp)

	assert.Equal(t, "Select a Launch Site here", got.Placeholder)
	require.Len(t, got.Options, 5)
	assert.Equal(t, siteOption{Value: "ALL", Label: "All Sites"}, got.Options[0])
	assert.Equal(t, "CCAFS LC-40", got.Options[1].Value)
	assert.Equal(t, 1000.0, got.Domain.Step)
	assert.Equal(t, 9600.0, got.Domain.SliderMax)
}

func TestSelectSite(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doRequest(t, http.MethodPut, ts.URL+"/api/selection/site", `{"site":"CCAFS LC-40"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[controller.Snapshot](t, resp)
	assert.Equal(t, "Total Successful Launches for site CCAFS LC-40", snap.Proportion.Title)
	assert.Equal(t, 26, snap.Proportion.RowCount)

	resp = doRequest(t, http.MethodGet, ts.URL+"/api/charts/proportion", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	spec := decode[chart.Spec](t, resp)
	assert.Equal(t, "Total Successful Launches for site CCAFS LC-40", spec.Title)
}

func TestSelectSite_Errors(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown site", `{"site":"Boca Chica"}`, "unknown launch site"},
		{"missing field", `{}`, `missing field "site"`},
		{"unknown field", `{"site":"ALL","extra":1}`, "invalid request body"},
		{"malformed", `{"site":`, "invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, http.MethodPut, ts.URL+"/api/selection/site", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			got := decode[map[string]string](t, resp)
			assert.Contains(t, got["error"], tt.want)
		})
	}

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/state", "")
	assert.Equal(t, uint64(1), decode[controller.Snapshot](t, resp).Revision)
}

func TestSelectPayload(t *testing.T) {
	_, ts := newTestServer(t)

	_ = doRequest(t, http.MethodPut, ts.URL+"/api/selection/site", `{"site":"KSC LC-39A"}`)
	resp := doRequest(t, http.MethodPut, ts.URL+"/api/selection/payload", `{"low":7000,"high":5000}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	snap := decode[controller.Snapshot](t, resp)
	assert.Equal(t, 5000.0, snap.Selection.Payload.Low)
	assert.Equal(t, 7000.0, snap.Selection.Payload.High)
	assert.Equal(t, 5, snap.Correlation.RowCount)
	assert.Equal(t, uint64(2), snap.ProportionRevision)
	assert.Equal(t, uint64(3), snap.CorrelationRevision)

	resp = doRequest(t, http.MethodPut, ts.URL+"/api/selection/payload", `{"low":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChart_Unknown(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/charts/histogram", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, decode[map[string]string](t, resp)["error"], `unknown chart "histogram"`)
}

func TestExport(t *testing.T) {
	_, ts := newTestServer(t)

	_ = doRequest(t, http.MethodPut, ts.URL+"/api/selection/site", `{"site":"CCAFS SLC-40"}`)
	resp := doRequest(t, http.MethodGet, ts.URL+"/api/export.csv", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="launches-ccafs-slc-40-20260704T000000Z.csv"`, resp.Header.Get("Content-Disposition"))

	records, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 8)
	assert.Equal(t, "Launch Site", records[0][2])
	for _, rec := range records[1:] {
		assert.Equal(t, "CCAFS SLC-40", rec[2])
	}
}

func TestExport_RowsMatchFilenameUnderConcurrentSelection(t *testing.T) {
	s, _ := newTestServer(t)
	slugs := map[string]string{
		"ksc-lc-39a":  "KSC LC-39A",
		"vafb-slc-4e": "VAFB SLC-4E",
	}
	_, err := s.ctrl.SelectSite("KSC LC-39A")
	require.NoError(t, err)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			site := "KSC LC-39A"
			if i%2 == 1 {
				site = "VAFB SLC-4E"
			}
			_, _ = s.ctrl.SelectSite(site)
		}
	}()
	defer func() {
		close(stop)
		wg.Wait()
	}()

	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/export.csv", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		disposition := rec.Header().Get("Content-Disposition")
		var want string
		for slug, site := range slugs {
			if strings.Contains(disposition, "launches-"+slug+"-") {
				want = site
			}
		}
		require.NotEmpty(t, want, disposition)

		records, err := csv.NewReader(rec.Body).ReadAll()
		require.NoError(t, err)
		require.Greater(t, len(records), 1)
		for _, r := range records[1:] {
			require.Equal(t, want, r[2], "export %d: %s", i, disposition)
		}
	}
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doRequest(t, http.MethodGet, ts.URL+"/healthz", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[map[string]any](t, resp)
	assert.Equal(t, "ok", got["status"])
	assert.Equal(t, 56.0, got["rows"])
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doRequest(t, http.MethodGet, ts.URL+"/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	resp = doRequest(t, http.MethodPost, ts.URL+"/api/selection/site", `{"site":"ALL"}`)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRequestID(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doRequest(t, http.MethodGet, ts.URL+"/healthz", "")
	assert.Len(t, resp.Header.Get(RequestIDHeader), 36)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	assert.Equal(t, "abc-123", resp2.Header.Get(RequestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	_ = doRequest(t, http.MethodPut, ts.URL+"/api/selection/site", `{"site":"KSC LC-39A"}`)
	_ = doRequest(t, http.MethodGet, ts.URL+"/api/charts/correlation", "")

	resp := doRequest(t, http.MethodGet, ts.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := string(body)

	assert.Contains(t, out, `launchdash_selection_events_total{kind="site_changed"} 1`)
	assert.Contains(t, out, `launchdash_chart_renders_total{chart="proportion"} 2`)
	assert.Contains(t, out, `launchdash_http_requests_total{code="200",method="PUT",route="/api/selection/site"} 1`)
	assert.Contains(t, out, `route="/api/charts/{chart}"`)
}

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestListenAndServe_GracefulShutdown(t *testing.T) {
	s, _ := newTestServer(t)
	s.opts.Addr = freeAddr(t)
	s.opts.MetricsAddr = freeAddr(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + s.opts.MetricsAddr + "/metrics")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Get("http://" + s.opts.Addr + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}
}

func TestListenAndServe_ListenError(t *testing.T) {
	s, _ := newTestServer(t)
	s.opts.Addr = "127.0.0.1:-1"

	err := s.ListenAndServe(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serve dashboard")
}

func TestListenAndServe_NilServer(t *testing.T) {
	var s *Server
	assert.Error(t, s.ListenAndServe(context.Background()))
}
