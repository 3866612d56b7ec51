package services

import (
	"context"
	"os"
	"sync"
	"time"

	"schoolportal-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jmoiron/sqlx"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

type MetricSample struct {
	CapturedAt      time.Time `json:"capturedAt"`
	ProcessRSSBytes int64     `json:"processRssBytes"`
	SystemMemTotal  int64     `json:"systemMemoryTotalBytes"`
	SystemMemUsed   int64     `json:"systemMemoryUsedBytes"`
	DiskTotalBytes  int64     `json:"diskTotalBytes"`
	DiskUsedBytes   int64     `json:"diskUsedBytes"`
	ProcessCPULoad  float64   `json:"processCpuLoad"`
	SystemCPULoad   float64   `json:"systemCpuLoad"`
}

// CaptureMetrics samples process and host resource usage and persists the
// sample for the admin history endpoint.
func CaptureMetrics(db *sqlx.DB, diskPath string) (MetricSample, error) {
	sample := MetricSample{CapturedAt: time.Now().UTC()}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if info, err := proc.MemoryInfo(); err == nil && info != nil {
			sample.ProcessRSSBytes = int64(info.RSS)
		}
		if load, err := proc.CPUPercent(); err == nil {
			sample.ProcessCPULoad = load / 100.0
		}
	}
	if memStat, err := mem.VirtualMemory(); err == nil {
		sample.SystemMemTotal = int64(memStat.Total)
		sample.SystemMemUsed = int64(memStat.Total - memStat.Available)
	}
	diskStat, err := disk.Usage(diskPath)
	if err != nil {
		diskStat, err = disk.Usage("/")
	}
	if err == nil {
		sample.DiskTotalBytes = int64(diskStat.Total)
		sample.DiskUsedBytes = int64(diskStat.Used)
	}
	if loads, err := cpu.Percent(0, false); err == nil && len(loads) > 0 {
		sample.SystemCPULoad = loads[0] / 100.0
	}

	_, err = db.Exec(`
INSERT INTO server_metric_samples (
  id, captured_at, process_rss_bytes, system_memory_total_bytes,
  system_memory_used_bytes, disk_total_bytes, disk_used_bytes,
  process_cpu_load, system_cpu_load
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`, uuid.NewString(), sample.CapturedAt, sample.ProcessRSSBytes, sample.SystemMemTotal,
		sample.SystemMemUsed, sample.DiskTotalBytes, sample.DiskUsedBytes,
		sample.ProcessCPULoad, sample.SystemCPULoad)
	if err != nil {
		return MetricSample{}, err
	}
	return sample, nil
}

func LatestMetrics(db *sqlx.DB, limit int) ([]MetricSample, error) {
	rows := []models.ServerMetricSample{}
	if err := db.Select(&rows, `
SELECT id, captured_at, process_rss_bytes, system_memory_total_bytes,
       system_memory_used_bytes, disk_total_bytes, disk_used_bytes,
       process_cpu_load, system_cpu_load
FROM server_metric_samples
ORDER BY captured_at DESC
LIMIT $1
`, limit); err != nil {
		return nil, err
	}
	items := make([]MetricSample, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		items = append(items, MetricSample{
			CapturedAt:      rows[i].CapturedAt,
			ProcessRSSBytes: rows[i].ProcessRSSBytes,
			SystemMemTotal:  rows[i].SystemMemTotal,
			SystemMemUsed:   rows[i].SystemMemUsed,
			DiskTotalBytes:  rows[i].DiskTotalBytes,
			DiskUsedBytes:   rows[i].DiskUsedBytes,
			ProcessCPULoad:  rows[i].ProcessCPULoad,
			SystemCPULoad:   rows[i].SystemCPULoad,
		})
	}
	return items, nil
}

// MetricsHub fans samples out to connected admin dashboards.
type MetricsHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	ch      chan MetricSample
}

func NewMetricsHub() *MetricsHub {
	return &MetricsHub{
		clients: map[*websocket.Conn]bool{},
		ch:      make(chan MetricSample, 16),
	}
}

func (h *MetricsHub) Run(ctx context.Context) {
	for {
		select {
		case sample := <-h.ch:
			h.mu.Lock()
			for conn := range h.clients {
				_ = conn.WriteJSON(sample)
			}
			h.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

func (h *MetricsHub) Broadcast(sample MetricSample) {
	select {
	case h.ch <- sample:
	default:
	}
}

func (h *MetricsHub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

func (h *MetricsHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}
