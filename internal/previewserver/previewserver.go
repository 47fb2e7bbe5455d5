// Package previewserver exposes the renderer over HTTP: a health
// check endpoint and a render endpoint that takes an uploaded .xlsx
// and returns a PNG. It tracks the same uptime/last-operation metrics
// the teacher's health monitor does, generalized from per-fetch status
// to per-render status.
package previewserver

import (
	"encoding/json"
	"image/png"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"sheetraster"
	"sheetraster/internal/config"
	"sheetraster/internal/xlsxsource"
)

// Status is the /healthz response body.
type Status struct {
	Status           string `json:"status"`
	Uptime           string `json:"uptime"`
	LastRenderTime   string `json:"last_render_time"`
	LastRenderStatus string `json:"last_render_status"`
}

// monitor tracks render outcomes for the health endpoint, the way the
// teacher's health.Monitor tracks fetch outcomes.
type monitor struct {
	startTime        time.Time
	mu               sync.RWMutex
	lastRenderTime   time.Time
	lastRenderStatus string
}

func newMonitor() *monitor {
	return &monitor{startTime: time.Now(), lastRenderStatus: "not started"}
}

func (m *monitor) recordRender(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastRenderTime = time.Now()
	m.lastRenderStatus = status
}

func (m *monitor) status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Status{
		Status:           "healthy",
		Uptime:           time.Since(m.startTime).String(),
		LastRenderTime:   formatTime(m.lastRenderTime),
		LastRenderStatus: m.lastRenderStatus,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

// Server renders uploaded workbooks on demand over HTTP.
type Server struct {
	renderer *sheetraster.Renderer
	opts     config.Options
	monitor  *monitor
}

// New builds a Server around a shared Renderer, so the font-face cache
// is warmed once and reused across every request.
func New(renderer *sheetraster.Renderer, opts config.Options) *Server {
	return &Server{renderer: renderer, opts: opts, monitor: newMonitor()}
}

// Handler builds the server's request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/render", s.handleRender)
	return mux
}

// ListenAndServe starts the preview server on addr. It blocks; callers
// typically run it in a goroutine.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("preview server listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.monitor.status())
}

// handleRender accepts a raw .xlsx body (Content-Type:
// application/vnd.openxmlformats-officedocument.spreadsheetml.sheet)
// and optional ?sheet= (index or name) and ?scale= query parameters,
// and writes back a PNG.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 64<<20))
	if err != nil {
		s.monitor.recordRender("error: " + err.Error())
		http.Error(w, "reading request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	wb, err := xlsxsource.OpenReader(body)
	if err != nil {
		s.monitor.recordRender("error: " + err.Error())
		http.Error(w, "parsing workbook: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer wb.Close()

	sel := selectorFromQuery(r)
	displayScale, _ := strconv.ParseFloat(r.URL.Query().Get("scale"), 64)

	result, err := s.renderer.Render(wb, sel, s.opts, displayScale)
	if err != nil {
		s.monitor.recordRender("error: " + err.Error())
		http.Error(w, "rendering: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if result.HasPresentationSize {
		w.Header().Set("X-Presentation-Width", strconv.FormatFloat(result.PresentationWidth, 'f', -1, 64))
		w.Header().Set("X-Presentation-Height", strconv.FormatFloat(result.PresentationHeight, 'f', -1, 64))
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, result.Image); err != nil {
		s.monitor.recordRender("error: " + err.Error())
		return
	}
	s.monitor.recordRender("success")
}

func selectorFromQuery(r *http.Request) sheetraster.SheetSelector {
	sheet := r.URL.Query().Get("sheet")
	if sheet == "" {
		return sheetraster.SheetSelector{}
	}
	if idx, err := strconv.Atoi(sheet); err == nil {
		return sheetraster.ByIndexSelector(idx)
	}
	return sheetraster.ByNameSelector(sheet)
}
