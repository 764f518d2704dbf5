// Package driver feeds a policy.Engine from an ordered request sequence
// and accumulates the resulting hit/miss statistics.
package driver

import (
	"time"

	"github.com/cachetrace/simulator/internal/obslog"
	"github.com/cachetrace/simulator/internal/policy"
)

// Stats is the flat record of outcome counters the harness reports for
// one run, plus cold-miss tracking generalized to every policy.
type Stats struct {
	ReadReq, ReadHit, ReadMiss    int64
	WriteReq, WriteHit, WriteMiss int64
	TotalReq, TotalHit, TotalMiss int64
	ColdMisses                    int64
}

// ReadHitRatio, WriteHitRatio, and TotalHitRatio are derived at render
// time; Stats never persists ratios.
func (s Stats) ReadHitRatio() float64  { return ratio(s.ReadHit, s.ReadReq) }
func (s Stats) WriteHitRatio() float64 { return ratio(s.WriteHit, s.WriteReq) }
func (s Stats) TotalHitRatio() float64 { return ratio(s.TotalHit, s.TotalReq) }

func ratio(numerator, denominator int64) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}

// Result bundles the stats from one run with run metadata for logging
// and reporting.
type Result struct {
	PolicyName string
	Stats      Stats
	Elapsed    time.Duration
}

// RequestRecorder receives one call per request, after the engine has
// classified it, for policies that want per-request metrics. Collector
// satisfies this with RecordRequest.
type RequestRecorder interface {
	RecordRequest(policy, op, outcome string)
}

// Run drives engine with requests in order, classifying each access by
// op and tallying hits/misses, plus a cold-miss count keyed on first
// occurrence of each key regardless of policy. logger and recorder may
// both be nil.
func Run(policyName string, engine policy.Engine, requests []policy.Request, logger *obslog.StructuredLogger, recorder RequestRecorder) Result {
	start := time.Now()
	var stats Stats
	seen := make(map[int64]struct{}, len(requests))

	for _, req := range requests {
		outcome := engine.OnRequest(req.Key)

		switch req.Op {
		case policy.Read:
			stats.ReadReq++
			if outcome == policy.Hit {
				stats.ReadHit++
			} else {
				stats.ReadMiss++
			}
		case policy.Write:
			stats.WriteReq++
			if outcome == policy.Hit {
				stats.WriteHit++
			} else {
				stats.WriteMiss++
			}
		}

		if outcome == policy.Miss {
			if _, ok := seen[req.Key]; !ok {
				stats.ColdMisses++
			}
		}
		seen[req.Key] = struct{}{}

		if recorder != nil {
			recorder.RecordRequest(policyName, req.Op.String(), outcome.String())
		}
	}

	stats.TotalReq = stats.ReadReq + stats.WriteReq
	stats.TotalHit = stats.ReadHit + stats.WriteHit
	stats.TotalMiss = stats.ReadMiss + stats.WriteMiss

	elapsed := time.Since(start)

	if logger != nil {
		logger.WithComponent("driver").Info("run complete", map[string]interface{}{
			"policy":     policyName,
			"requests":   len(requests),
			"total_hit":  stats.TotalHit,
			"total_miss": stats.TotalMiss,
			"elapsed_ms": elapsed.Milliseconds(),
		})
	}

	return Result{PolicyName: policyName, Stats: stats, Elapsed: elapsed}
}
