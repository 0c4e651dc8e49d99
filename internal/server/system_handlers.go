package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stockwolf/stockwolf-api/internal/scheduler"
)

// SystemStatusResponse represents the system status
type SystemStatusResponse struct {
	Status       string   `json:"status"`
	StoreBackend string   `json:"store_backend"`
	Uptime       string   `json:"uptime"`
	CPUPercent   float64  `json:"cpu_percent"`
	RAMPercent   float64  `json:"ram_percent"`
	Goroutines   int      `json:"goroutines"`
	GoVersion    string   `json:"go_version"`
	Jobs         []string `json:"jobs"`
}

// SystemHandlers handles system monitoring and manual job triggers
type SystemHandlers struct {
	log          zerolog.Logger
	storeBackend string
	startupTime  time.Time

	mu   sync.RWMutex
	jobs map[string]scheduler.Job
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, storeBackend string) *SystemHandlers {
	return &SystemHandlers{
		log:          log.With().Str("component", "system_handlers").Logger(),
		storeBackend: storeBackend,
		startupTime:  time.Now(),
		jobs:         make(map[string]scheduler.Job),
	}
}

// RegisterJob makes a job available at POST /api/system/jobs/{name}
func (h *SystemHandlers) RegisterJob(job scheduler.Job) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.jobs[job.Name()] = job
}

// HandleSystemStatus reports process and host health
// GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, ramPercent := h.getSystemStats()

	h.mu.RLock()
	names := make([]string, 0, len(h.jobs))
	for name := range h.jobs {
		names = append(names, name)
	}
	h.mu.RUnlock()
	sort.Strings(names)

	h.writeJSON(w, http.StatusOK, SystemStatusResponse{
		Status:       "healthy",
		StoreBackend: h.storeBackend,
		Uptime:       time.Since(h.startupTime).Round(time.Second).String(),
		CPUPercent:   cpuPercent,
		RAMPercent:   ramPercent,
		Goroutines:   runtime.NumGoroutine(),
		GoVersion:    runtime.Version(),
		Jobs:         names,
	})
}

// HandleTriggerJob runs a registered job in the background
// POST /api/system/jobs/{job}
func (h *SystemHandlers) HandleTriggerJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "job")

	h.mu.RLock()
	job, ok := h.jobs[name]
	h.mu.RUnlock()

	if !ok {
		h.log.Warn().Str("job", name).Msg("Job not registered")
		h.writeJSON(w, http.StatusNotFound, map[string]string{
			"status":  "error",
			"message": "Job not registered",
		})
		return
	}

	h.log.Info().Str("job", name).Msg("Manual job triggered")
	go func() {
		if err := job.Run(); err != nil {
			h.log.Error().Err(err).Str("job", name).Msg("Manual job failed")
		}
	}()

	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Job triggered successfully",
	})
}

// getSystemStats returns CPU and RAM usage percentages.
// CPU is sampled over 100ms so the endpoint stays fast.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
