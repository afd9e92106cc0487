package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/launchdash/internal/controller"
)

func openStream(t *testing.T, ctx context.Context, url string) *bufio.Reader {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	return bufio.NewReader(resp.Body)
}

func readEvent(t *testing.T, r *bufio.Reader) controller.Snapshot {
	t.Helper()
	var data string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if line == "" {
			break
		}
		if rest, ok := strings.CutPrefix(line, "data: "); ok {
			data = rest
		}
	}
	var snap controller.Snapshot
	require.NoError(t, json.Unmarshal([]byte(data), &snap))
	return snap
}

func TestEvents_StreamsEveryRevision(t *testing.T) {
	_, ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream := openStream(t, ctx, ts.URL+"/api/events")

	first := readEvent(t, stream)
	assert.Equal(t, uint64(1), first.Revision)
	assert.Equal(t, "ALL", first.Selection.Site)

	_ = doRequest(t, http.MethodPut, ts.URL+"/api/selection/site", `{"site":"KSC LC-39A"}`)
	next := readEvent(t, stream)
	assert.Equal(t, uint64(2), next.Revision)
	assert.Equal(t, "KSC LC-39A", next.Selection.Site)
	assert.Equal(t, "Total Successful Launches for site KSC LC-39A", next.Proportion.Title)

	_ = doRequest(t, http.MethodPut, ts.URL+"/api/selection/payload", `{"low":5000,"high":7000}`)
	last := readEvent(t, stream)
	assert.Equal(t, uint64(3), last.Revision)
	assert.Equal(t, 5, last.Correlation.RowCount)
}

func TestEvents_StateReadableWhileStreaming(t *testing.T) {
	_, ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream := openStream(t, ctx, ts.URL+"/api/events")
	_ = readEvent(t, stream)

	for _, site := range []string{"CCAFS LC-40", "VAFB SLC-4E"} {
		resp := doRequest(t, http.MethodPut, ts.URL+"/api/selection/site", `{"site":"`+site+`"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		state := decode[controller.Snapshot](t, doRequest(t, http.MethodGet, ts.URL+"/api/state", ""))
		assert.Equal(t, site, state.Selection.Site)
	}
}

func TestListenAndServe_ShutdownWithOpenStream(t *testing.T) {
	s, _ := newTestServer(t)
	s.opts.Addr = freeAddr(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + s.opts.Addr + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	streamCtx, streamCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer streamCancel()
	stream := openStream(t, streamCtx, "http://"+s.opts.Addr+"/api/events")
	_ = readEvent(t, stream)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(4 * time.Second):
		t.Fatal("open event stream held up shutdown")
	}
}
