package debug

// Runtime metrics logger. Started only when config.Debug is true.
// Emits goroutine count, heap and stack usage and the GC cycle count at a
// fixed interval, to correlate frame-rate drops with allocation pressure.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"
)

var sampleNames = []string{
	"/sched/goroutines:goroutines",
	"/gc/cycles/total:gc-cycles",
}

// StartRuntimeLogger logs runtime stats every interval until ctx is done.
func StartRuntimeLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if logger == nil {
		return
	}
	if interval <= 0 {
		interval = time.Second
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		samples := make([]metrics.Sample, len(sampleNames))
		for i, n := range sampleNames {
			samples[i].Name = n
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			logger.Info("runtime.stats", Attrs(samples)...)
		}
	}()
}

// Attrs reads samples and the heap counters and returns them as log
// attributes.
func Attrs(samples []metrics.Sample) []any {
	metrics.Read(samples)
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	attrs := []any{
		slog.Uint64("heap_alloc", ms.HeapAlloc),
		slog.Uint64("stack_inuse", ms.StackInuse),
		slog.Uint64("stack_sys", ms.StackSys),
	}
	for _, s := range samples {
		if s.Value.Kind() == metrics.KindUint64 {
			attrs = append(attrs, slog.Uint64(s.Name, s.Value.Uint64()))
		}
	}
	return attrs
}
