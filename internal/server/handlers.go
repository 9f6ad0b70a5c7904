package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/desertthunder/tdx/internal/daemon"
	"github.com/desertthunder/tdx/internal/models"
)

// TorrentsHandler serves the torrents of one adapter.
type TorrentsHandler struct {
	adapter daemon.Adapter
}

var _ Handler = (*TorrentsHandler)(nil)

func NewTorrentsHandler(a daemon.Adapter) *TorrentsHandler {
	return &TorrentsHandler{adapter: a}
}

func (h *TorrentsHandler) Routes() []string {
	return []string{"GET /torrents", "GET /torrents/{hash}", "POST /torrents/{hash}/{action}"}
}

func (h *TorrentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hash := r.PathValue("hash")
	switch {
	case hash == "":
		h.list(w, r)
	case r.Method == http.MethodPost:
		h.act(w, r, hash, r.PathValue("action"))
	default:
		h.get(w, r, hash)
	}
}

func (h *TorrentsHandler) list(w http.ResponseWriter, r *http.Request) {
	torrents, labels, err := daemon.Retrieve(r.Context(), h.adapter)
	if err != nil {
		writeTaskError(w, err)
		return
	}
	if torrents == nil {
		torrents = []models.Torrent{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"torrents": torrents, "labels": labels})
}

func (h *TorrentsHandler) get(w http.ResponseWriter, r *http.Request, hash string) {
	t, err := daemon.FindTorrent(r.Context(), h.adapter, hash)
	if err != nil {
		writeTaskError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TorrentsHandler) act(w http.ResponseWriter, r *http.Request, hash, action string) {
	build, ok := actions[action]
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown action " + action})
		return
	}

	t, err := daemon.FindTorrent(r.Context(), h.adapter, hash)
	if err != nil {
		writeTaskError(w, err)
		return
	}

	task := build(t)
	res := h.adapter.ExecuteTask(r.Context(), task)
	if err := daemon.Err(res); err != nil {
		writeTaskError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"task": task.ID(), "method": task.Method().String()})
}

var actions = map[string]func(models.Torrent) daemon.Task{
	"pause":   func(t models.Torrent) daemon.Task { return daemon.NewPauseTask(t) },
	"resume":  func(t models.Torrent) daemon.Task { return daemon.NewResumeTask(t) },
	"start":   func(t models.Torrent) daemon.Task { return daemon.NewStartTask(t) },
	"stop":    func(t models.Torrent) daemon.Task { return daemon.NewStopTask(t) },
	"remove":  func(t models.Torrent) daemon.Task { return daemon.NewRemoveTask(t, false) },
	"recheck": func(t models.Torrent) daemon.Task { return daemon.NewForceRecheckTask(t) },
}

type errorBody struct {
	Error string `json:"error"`
	Type  string `json:"type,omitempty"`
}

func writeTaskError(w http.ResponseWriter, err error) {
	de := daemon.AsDaemonError(err)
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, daemon.ErrMethodUnsupported):
		status = http.StatusNotImplemented
	case de.Type == daemon.UnexpectedResponse && isNotFound(de):
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorBody{Error: de.Message, Type: de.Type.String()})
}

func isNotFound(de *daemon.DaemonError) bool {
	return strings.HasPrefix(de.Message, "torrent ") && strings.HasSuffix(de.Message, " not found")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// MetricsHandler serves the collectors of reg.
type MetricsHandler struct {
	http.Handler
}

var _ Handler = (*MetricsHandler)(nil)

func NewMetricsHandler(reg *prometheus.Registry) *MetricsHandler {
	return &MetricsHandler{Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})}
}

func (h *MetricsHandler) Routes() []string { return []string{"GET /metrics"} }
