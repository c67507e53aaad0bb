package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/hospitalar/visitas-api/internal/cache"
	"github.com/hospitalar/visitas-api/internal/model"
	"github.com/hospitalar/visitas-api/internal/repository"
)

type DashboardService interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

// CacheStore caches the computed counters between refresh signals.
type CacheStore interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
}

type Service struct {
	patientRepo repository.PatientRepository
	visitRepo   repository.VisitRepository
	cache       CacheStore
}

func NewService(patientRepo repository.PatientRepository, visitRepo repository.VisitRepository, cacheStore CacheStore) *Service {
	return &Service{
		patientRepo: patientRepo,
		visitRepo:   visitRepo,
		cache:       cacheStore,
	}
}

// Stats returns the admitted-patient count and the number of visits since
// the local start of the current day. The two counters are independent, so
// they are fetched concurrently and joined before returning; a failure in
// either discards both.
func (s *Service) Stats(ctx context.Context) (*model.DashboardStats, error) {
	if cached, found := s.cache.Get(cache.KeyDashboardStats); found {
		if stats, ok := cached.(*model.DashboardStats); ok {
			return stats, nil
		}
	}

	type countResult struct {
		n   int
		err error
	}

	admittedCh := make(chan countResult, 1)
	visitsCh := make(chan countResult, 1)

	go func() {
		n, err := s.patientRepo.CountByStatus(ctx, model.PatientStatusAdmitted)
		admittedCh <- countResult{n, err}
	}()
	go func() {
		n, err := s.visitRepo.CountSince(ctx, startOfDay(time.Now()))
		visitsCh <- countResult{n, err}
	}()

	admitted := <-admittedCh
	visits := <-visitsCh

	if admitted.err != nil {
		return nil, fmt.Errorf("failed to count admitted patients: %w", admitted.err)
	}
	if visits.err != nil {
		return nil, fmt.Errorf("failed to count visits: %w", visits.err)
	}

	stats := &model.DashboardStats{
		AdmittedPatients: admitted.n,
		VisitsToday:      visits.n,
	}
	s.cache.Set(cache.KeyDashboardStats, stats)
	return stats, nil
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
