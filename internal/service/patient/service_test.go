package patient

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalar/visitas-api/internal/cache"
	"github.com/hospitalar/visitas-api/internal/model"
	"github.com/hospitalar/visitas-api/internal/repository"
	apperrors "github.com/hospitalar/visitas-api/pkg/errors"
)

type fakePatientRepo struct {
	mu        sync.Mutex
	patients  map[uuid.UUID]*model.Patient
	listCalls int
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]*model.Patient)}
}

func (f *fakePatientRepo) Create(_ context.Context, p *model.Patient) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *p
	f.patients[p.ID] = &clone
	return nil
}

func (f *fakePatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.patients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakePatientRepo) List(_ context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	var out []*model.Patient
	for _, p := range f.patients {
		if filters == nil || filters.Status == "" || p.Status == filters.Status {
			clone := *p
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakePatientRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.patients[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Status = status
	return nil
}

func (f *fakePatientRepo) CountByStatus(_ context.Context, status string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, p := range f.patients {
		if p.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeCache struct {
	keys []string
}

func (f *fakeCache) Get(string) (interface{}, bool) { return nil, false }

func (f *fakeCache) Set(string, interface{}) {}

func (f *fakeCache) Invalidate(keys ...string) {
	f.keys = append(f.keys, keys...)
}

func TestAdmitPatient(t *testing.T) {
	repo := newFakePatientRepo()
	inv := &fakeCache{}
	svc := NewService(repo, inv)

	before, err := svc.ListAdmittedPatients(context.Background())
	require.NoError(t, err)
	assert.Empty(t, before)

	admitted, err := svc.AdmitPatient(context.Background(), &model.AdmitPatientRequest{
		Name: "Ana", Room: "101", Bed: "A",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, admitted.ID)
	assert.Equal(t, model.PatientStatusAdmitted, admitted.Status)

	after, err := svc.ListAdmittedPatients(context.Background())
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, admitted.ID, after[0].ID)
	assert.NotEmpty(t, inv.keys)
}

func TestAdmitPatient_MissingFields(t *testing.T) {
	svc := NewService(newFakePatientRepo(), &fakeCache{})

	_, err := svc.AdmitPatient(context.Background(), &model.AdmitPatientRequest{Name: "Ana"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestDischargePatient_Idempotent(t *testing.T) {
	repo := newFakePatientRepo()
	svc := NewService(repo, &fakeCache{})

	admitted, err := svc.AdmitPatient(context.Background(), &model.AdmitPatientRequest{
		Name: "Ana", Room: "101", Bed: "A",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DischargePatient(context.Background(), admitted.ID))
	// second discharge is a no-op, not an error
	require.NoError(t, svc.DischargePatient(context.Background(), admitted.ID))

	stored, err := repo.Get(context.Background(), admitted.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PatientStatusDischarged, stored.Status)

	remaining, err := svc.ListAdmittedPatients(context.Background())
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestDischargePatient_NotFound(t *testing.T) {
	svc := NewService(newFakePatientRepo(), &fakeCache{})

	err := svc.DischargePatient(context.Background(), uuid.New())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestListAdmittedPatients_CachedUntilMutation(t *testing.T) {
	repo := newFakePatientRepo()
	svc := NewService(repo, cache.New(time.Minute))

	admitted, err := svc.AdmitPatient(context.Background(), &model.AdmitPatientRequest{
		Name: "Ana", Room: "101", Bed: "A",
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		patients, err := svc.ListAdmittedPatients(context.Background())
		require.NoError(t, err)
		require.Len(t, patients, 1)
	}
	assert.Equal(t, 1, repo.listCalls)

	// a discharge invalidates the projection, forcing a rebuild
	require.NoError(t, svc.DischargePatient(context.Background(), admitted.ID))

	remaining, err := svc.ListAdmittedPatients(context.Background())
	require.NoError(t, err)
	assert.Empty(t, remaining)
	assert.Equal(t, 2, repo.listCalls)
}

func TestListPatients_SortedByName(t *testing.T) {
	repo := newFakePatientRepo()
	svc := NewService(repo, &fakeCache{})

	for _, name := range []string{"Carla", "Ana", "Bruno"} {
		_, err := svc.AdmitPatient(context.Background(), &model.AdmitPatientRequest{
			Name: name, Room: "101", Bed: "A",
		})
		require.NoError(t, err)
	}

	patients, err := svc.ListAdmittedPatients(context.Background())
	require.NoError(t, err)
	require.Len(t, patients, 3)
	assert.Equal(t, "Ana", patients[0].Name)
	assert.Equal(t, "Bruno", patients[1].Name)
	assert.Equal(t, "Carla", patients[2].Name)
}
