package dashboard

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/kerala-gov/migrant-health/internal/indicator"
	"github.com/kerala-gov/migrant-health/internal/migrant"
	"github.com/kerala-gov/migrant-health/internal/shared/metrics"
	"github.com/kerala-gov/migrant-health/internal/visit"
)

// CoverageIndicatorName is the indicator written on every summary
// computation.
const CoverageIndicatorName = "Migrant health coverage (%) - SDG3"

// ErrInsufficientData means there are no migrants or no health records
// yet. It is a defined early-exit, not a failure: nothing is computed
// and nothing is written.
var ErrInsufficientData = errors.New("insufficient data for dashboard")

// MigrantSource supplies registered migrant profiles
type MigrantSource interface {
	List(ctx context.Context) ([]migrant.Migrant, error)
}

// RecordSource supplies health records
type RecordSource interface {
	ListAll(ctx context.Context) ([]visit.HealthRecord, error)
}

// IndicatorSink persists derived indicator values
type IndicatorSink interface {
	Upsert(ctx context.Context, name string, value float64) (*indicator.Indicator, error)
}

// DistrictCount is the number of distinct migrants with at least one
// matched health record in a district
type DistrictCount struct {
	District string `json:"district"`
	Migrants int    `json:"migrants"`
}

// TagCount is the number of health records carrying an SDG tag
type TagCount struct {
	Tag     visit.SDGTag `json:"sdg_tag"`
	Records int          `json:"records"`
}

// Summary holds the computed dashboard metrics
type Summary struct {
	TotalMigrants      int     `json:"total_migrants"`
	MigrantsWithVisits int     `json:"migrants_with_visits"`
	CoveragePercent    float64 `json:"coverage_percent"`

	// Districts counts distinct migrants over records joined to a
	// registered profile; orphaned records are excluded
	Districts []DistrictCount `json:"districts"`

	// SDGTags counts every record, matched or not
	SDGTags []TagCount `json:"sdg_tags"`

	ComputedAt time.Time `json:"computed_at"`
}

// Service computes dashboard summaries from the current store state
type Service struct {
	migrants   MigrantSource
	records    RecordSource
	indicators IndicatorSink
	cache      *Cache
}

// NewService creates a dashboard service. cache may be nil, in which
// case every call recomputes.
func NewService(migrants MigrantSource, records RecordSource, indicators IndicatorSink, cache *Cache) *Service {
	return &Service{
		migrants:   migrants,
		records:    records,
		indicators: indicators,
		cache:      cache,
	}
}

// Summary returns the dashboard summary, from cache when fresh. A
// successful computation persists the coverage indicator and refreshes
// the coverage gauge.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx); ok {
			metrics.RecordDashboardComputation("cache")
			return cached, nil
		}
	}

	summary, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	metrics.RecordDashboardComputation("computed")
	metrics.SetCoveragePercent(summary.CoveragePercent)

	if s.cache != nil {
		s.cache.Set(ctx, summary)
	}

	return summary, nil
}

func (s *Service) compute(ctx context.Context) (*Summary, error) {
	migrants, err := s.migrants.List(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.records.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(migrants) == 0 || len(records) == 0 {
		return nil, ErrInsufficientData
	}

	// Join records to profiles on migrant health ID. Records without a
	// registered profile are dropped here; the link is advisory.
	districtByID := make(map[string]string, len(migrants))
	for _, m := range migrants {
		districtByID[m.MigrantID] = m.District
	}

	visited := make(map[string]bool)
	districtMigrants := make(map[string]map[string]bool)
	for _, rec := range records {
		district, known := districtByID[rec.MigrantID]
		if !known {
			continue
		}
		visited[rec.MigrantID] = true

		if districtMigrants[district] == nil {
			districtMigrants[district] = make(map[string]bool)
		}
		districtMigrants[district][rec.MigrantID] = true
	}

	coverage := round2(100 * float64(len(visited)) / float64(len(migrants)))

	if _, err := s.indicators.Upsert(ctx, CoverageIndicatorName, coverage); err != nil {
		return nil, err
	}

	summary := &Summary{
		TotalMigrants:      len(migrants),
		MigrantsWithVisits: len(visited),
		CoveragePercent:    coverage,
		ComputedAt:         time.Now().UTC(),
	}

	for district, ids := range districtMigrants {
		summary.Districts = append(summary.Districts, DistrictCount{District: district, Migrants: len(ids)})
	}
	sort.Slice(summary.Districts, func(i, j int) bool {
		return summary.Districts[i].District < summary.Districts[j].District
	})

	// Tag distribution spans all records, matched or not
	tagCounts := make(map[visit.SDGTag]int)
	for _, rec := range records {
		tagCounts[rec.SDGTag]++
	}
	for tag, n := range tagCounts {
		summary.SDGTags = append(summary.SDGTags, TagCount{Tag: tag, Records: n})
	}
	sort.Slice(summary.SDGTags, func(i, j int) bool {
		return summary.SDGTags[i].Tag < summary.SDGTags[j].Tag
	})

	return summary, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
