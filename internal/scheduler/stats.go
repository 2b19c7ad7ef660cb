package scheduler

import (
	"sort"
	"sync"
	"time"
)

// KindStats aggregates the constructions of one type name.
type KindStats struct {
	Type  string        `yaml:"type"`
	Count int           `yaml:"count"`
	Total time.Duration `yaml:"total"`
}

// Stats summarizes a scheduler run.
type Stats struct {
	Built    int         `yaml:"built"`
	Retries  int         `yaml:"retries"`
	Attempts int         `yaml:"attempts"`
	Kinds    []KindStats `yaml:"kinds"`
}

type statsCollector struct {
	mu       sync.Mutex
	built    int
	retries  int
	attempts int
	kinds    map[string]*KindStats
}

func newStatsCollector() *statsCollector {
	return &statsCollector{kinds: make(map[string]*KindStats)}
}

func (s *statsCollector) observe(typeName string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.built++
	k, ok := s.kinds[typeName]
	if !ok {
		k = &KindStats{Type: typeName}
		s.kinds[typeName] = k
	}
	k.Count++
	k.Total += d
}

func (s *statsCollector) attempt(retry bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	if retry {
		s.retries++
	}
}

// snapshot returns the stats with kinds sorted by total time, slowest first.
func (s *statsCollector) snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := Stats{Built: s.built, Retries: s.retries, Attempts: s.attempts}
	for _, k := range s.kinds {
		out.Kinds = append(out.Kinds, *k)
	}
	sort.Slice(out.Kinds, func(i, j int) bool {
		if out.Kinds[i].Total != out.Kinds[j].Total {
			return out.Kinds[i].Total > out.Kinds[j].Total
		}
		return out.Kinds[i].Type < out.Kinds[j].Type
	})
	return out
}
