// Package metrics provides an optional Prometheus Collector for
// simulation runs. When disabled (the default), every Record method is
// a no-op and no HTTP server is started.
//
//	collector, _ := metrics.NewCollector(&metrics.Config{Enabled: true, Addr: ":9090"})
//	collector.Start(ctx)
//	collector.RecordRequest("lru", "read", "hit")
//	collector.RecordOccupancy("lru", cache.Occupancy())
package metrics
