// Package monitoring collects process and host statistics for the admin
// status endpoint.
package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"concierge-backend/internal/cache"
)

type SystemStats struct {
	DatabaseStatus    string  `json:"databaseStatus"`
	DatabaseLatencyMs int64   `json:"databaseLatencyMs"`
	ActiveConnections int     `json:"activeConnections"`
	DatabaseSize      string  `json:"databaseSize"`
	CacheStatus       string  `json:"cacheStatus"`
	CPUPercent        float64 `json:"cpuPercent"`
	MemoryPercent     float64 `json:"memoryPercent"`
	MemoryUsed        string  `json:"memoryUsed"`
	MemoryTotal       string  `json:"memoryTotal"`
	DiskPercent       float64 `json:"diskPercent"`
	DiskUsed          string  `json:"diskUsed"`
	DiskTotal         string  `json:"diskTotal"`
	Uptime            string  `json:"uptime"`
	GeneratedAt       time.Time `json:"generatedAt"`
}

type Collector struct {
	db      *pgxpool.Pool
	started time.Time
}

// NewCollector builds a stats collector. db may be nil when running
// against the in-memory store; database fields then report "disabled".
func NewCollector(db *pgxpool.Pool) *Collector {
	return &Collector{db: db, started: time.Now()}
}

func (c *Collector) Collect(ctx context.Context) SystemStats {
	stats := SystemStats{
		DatabaseStatus: "disabled",
		CacheStatus:    "disabled",
		Uptime:         formatUptime(int(time.Since(c.started).Seconds())),
		GeneratedAt:    time.Now(),
	}

	if c.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		start := time.Now()
		err := c.db.Ping(pingCtx)
		stats.DatabaseLatencyMs = time.Since(start).Milliseconds()
		if err != nil {
			stats.DatabaseStatus = "unhealthy"
		} else {
			stats.DatabaseStatus = "healthy"
			c.db.QueryRow(pingCtx, "SELECT count(*) FROM pg_stat_activity").Scan(&stats.ActiveConnections)

			var sizeBytes int64
			c.db.QueryRow(pingCtx, "SELECT pg_database_size(current_database())").Scan(&sizeBytes)
			stats.DatabaseSize = formatBytes(uint64(sizeBytes))
		}
	}

	if cache.GetClient() != nil {
		if cache.IsHealthy() {
			stats.CacheStatus = "healthy"
		} else {
			stats.CacheStatus = "unhealthy"
		}
	}

	if cpuPercents, err := cpu.Percent(0, false); err == nil && len(cpuPercents) > 0 {
		stats.CPUPercent = cpuPercents[0]
	}
	if memStats, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = memStats.UsedPercent
		stats.MemoryUsed = formatBytes(memStats.Used)
		stats.MemoryTotal = formatBytes(memStats.Total)
	}
	if diskStats, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = diskStats.UsedPercent
		stats.DiskUsed = formatBytes(diskStats.Used)
		stats.DiskTotal = formatBytes(diskStats.Total)
	}

	return stats
}

func formatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		mb := float64(bytes) / (1024 * 1024)
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", gb)
}

func formatUptime(seconds int) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
