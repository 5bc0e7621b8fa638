package quadra

import "time"

// BuildStats holds per-frame timings and counts for one BatchBuilder.Build.
// Only populated when the builder is in debug mode.
type BuildStats struct {
	ProjectTime   time.Duration
	SortTime      time.Duration
	PartitionTime time.Duration
	Instances     int
	Batches       int
}

// Total returns the summed duration of all build phases.
func (s BuildStats) Total() time.Duration {
	return s.ProjectTime + s.SortTime + s.PartitionTime
}

func (b *BatchBuilder) debugLog(stats BuildStats) {
	if !b.debug {
		return
	}
	Logger().Debug("quadra: frame built",
		"project", stats.ProjectTime,
		"sort", stats.SortTime,
		"partition", stats.PartitionTime,
		"total", stats.Total(),
		"instances", stats.Instances,
		"batches", stats.Batches,
	)
}
