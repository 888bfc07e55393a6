package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/togramago/melodygen/internal/metrics"
	"github.com/togramago/melodygen/internal/services"
)

const bytesPerMB = 1024 * 1024

type MetricsHandler struct {
	startTime time.Time
	version   string
	melodies  *services.MelodyService
	recorder  *metrics.Recorder
}

func NewMetricsHandler(version string, melodies *services.MelodyService, recorder *metrics.Recorder) *MetricsHandler {
	return &MetricsHandler{
		startTime: time.Now(),
		version:   version,
		melodies:  melodies,
		recorder:  recorder,
	}
}

type MetricsResponse struct {
	Uptime    string                `json:"uptime"`
	Timestamp string                `json:"timestamp"`
	Version   string                `json:"version"`
	StartTime string                `json:"start_time"`
	Runtime   RuntimeMetrics        `json:"runtime"`
	Service   ServiceInfo           `json:"service"`
	Stats     metrics.StatsSnapshot `json:"stats"`
}

type RuntimeMetrics struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	HeapAllocMB  uint64 `json:"heap_alloc_mb"`
	NumGC        uint32 `json:"num_gc"`
}

type ServiceInfo struct {
	HistoryEnabled bool `json:"history_enabled"`
	Presets        int  `json:"presets"`
}

// GetMetrics reports uptime, runtime figures and generation counters since
// the process started.
func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	now := time.Now()
	c.JSON(http.StatusOK, MetricsResponse{
		Uptime:    formatUptime(now.Sub(h.startTime)),
		Timestamp: now.UTC().Format(time.RFC3339),
		Version:   h.version,
		StartTime: h.startTime.UTC().Format(time.RFC3339),
		Runtime: RuntimeMetrics{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			HeapAllocMB:  mem.HeapAlloc / bytesPerMB,
			NumGC:        mem.NumGC,
		},
		Service: ServiceInfo{
			HistoryEnabled: h.melodies.HistoryEnabled(),
			Presets:        len(h.melodies.Presets().List()),
		},
		Stats: h.recorder.Snapshot(),
	})
}

// formatUptime renders d as "1h2m3.45s", dropping leading zero units.
func formatUptime(d time.Duration) string {
	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	seconds := (d % time.Minute).Seconds()

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh%dm%.2fs", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm%.2fs", minutes, seconds)
	default:
		return fmt.Sprintf("%.2fs", seconds)
	}
}
