package telemetry

import (
	"context"
	"log/slog"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/process"
	"go.opentelemetry.io/otel"
)

var meter = otel.Meter("leagueexport.perf_stats")
var cpuGauge, _ = meter.Float64Gauge("cpu_usage")
var memoryGauge, _ = meter.Int64Gauge("allocated_mb")
var rssGauge, _ = meter.Int64Gauge("rss_mb")
var goroutineGauge, _ = meter.Int64Gauge("goroutine_count")

// RecordPerfStats takes one sample of the process' resource usage,
// it is called once at the end of a run.
func RecordPerfStats(ctx context.Context) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	memoryGauge.Record(ctx, int64(memStats.Alloc/1_000_000))
	goroutineGauge.Record(ctx, int64(runtime.NumGoroutine()))

	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		slog.DebugContext(ctx, "failed to inspect process", "err", err)
		return
	}
	cpuUsage, err := proc.CPUPercentWithContext(ctx)
	if err == nil {
		cpuGauge.Record(ctx, cpuUsage)
	}
	mem, err := proc.MemoryInfoWithContext(ctx)
	if err == nil {
		rssGauge.Record(ctx, int64(mem.RSS/1_000_000))
	}

	slog.DebugContext(
		ctx, "perf stats",
		"allocated_mb", memStats.Alloc/1_000_000,
		"cpu_percent", cpuUsage,
	)
}
