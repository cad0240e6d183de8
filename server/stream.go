package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/etnz/dashboard"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// minInterval bounds the refresh period a client can ask for.
const minInterval = 10 * time.Millisecond

// stream pushes a fresh chart payload to websocket clients at every refresh.
type stream struct {
	svc     Service
	refresh time.Duration
}

// lockedWriter serializes the frames written by the push loop and the control
// frames answered by the read loop.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// streamRequest parses the query of a stream, with the same parameters as the
// performance chart plus the refresh interval.
func (s *stream) streamRequest(r *http.Request) (dashboard.Request, time.Duration, error) {
	q := r.URL.Query()
	req, err := chartRequest(dashboard.PerformanceChart, valueOr(q.Get("range"), "1W"), valueOr(q.Get("mode"), "value"), q.Get("as_of"))
	if err != nil {
		return req, 0, err
	}
	for name, dst := range map[string]*float64{"start": &req.StartValue, "baseline_start": &req.BaselineStartValue} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		if *dst, err = strconv.ParseFloat(v, 64); err != nil || *dst < 0 {
			return req, 0, fmt.Errorf("%w: %s: %q", errBadRequest, name, v)
		}
	}
	interval := s.refresh
	if v := q.Get("interval"); v != "" {
		if interval, err = time.ParseDuration(v); err != nil {
			return req, 0, fmt.Errorf("%w: interval: %v", errBadRequest, err)
		}
	}
	if interval < minInterval {
		return req, 0, fmt.Errorf("%w: interval %v is shorter than %v", errBadRequest, interval, minInterval)
	}
	return req, interval, nil
}

func (s *stream) performance(w http.ResponseWriter, r *http.Request) {
	req, interval, err := s.streamRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, _, _, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	out := &lockedWriter{w: conn}

	// The client only sends control frames, the stream ends when it goes away.
	go func() {
		defer cancel()
		rw := struct {
			io.Reader
			io.Writer
		}{conn, out}
		for {
			if _, _, err := wsutil.ReadClientData(rw); err != nil {
				slog.Debug("websocket read loop exit", "error", err)
				return
			}
		}
	}()

	slog.Info("chart stream opened", "range", req.Range, "mode", req.Mode, "interval", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := s.push(ctx, out, req); err != nil {
			slog.Debug("chart stream closed", "error", err)
			return
		}
		select {
		case <-ctx.Done():
			slog.Info("chart stream closed")
			return
		case <-ticker.C:
		}
	}
}

// push writes one chart message, or an error message when the chart fails.
func (s *stream) push(ctx context.Context, w io.Writer, req dashboard.Request) error {
	var msg any
	payload, err := s.svc.Chart(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.Warn("chart stream update failed", "error", err)
		msg = map[string]string{"error": err.Error()}
	} else {
		msg = payload
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return wsutil.WriteServerText(w, data)
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
