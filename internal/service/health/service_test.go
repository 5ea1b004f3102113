package health

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"projectpulse/internal/model"
	"projectpulse/internal/repository"
)

type persistedHealth struct {
	score  int
	status model.ProjectStatus
}

type fakeProjectStore struct {
	mu        sync.Mutex
	projects  map[int]model.Project
	persisted map[int]persistedHealth
	failFor   map[int]error
}

func newFakeProjectStore(projects ...model.Project) *fakeProjectStore {
	s := &fakeProjectStore{
		projects:  make(map[int]model.Project),
		persisted: make(map[int]persistedHealth),
		failFor:   make(map[int]error),
	}
	for _, p := range projects {
		s.projects[p.ID] = p
	}
	return s
}

func (s *fakeProjectStore) GetByID(_ context.Context, id int) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (s *fakeProjectStore) List(_ context.Context) ([]model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Project, 0, len(s.projects))
	for id := 1; id <= len(s.projects); id++ {
		out = append(out, s.projects[id])
	}
	return out, nil
}

func (s *fakeProjectStore) UpdateHealth(_ context.Context, id, score int, status model.ProjectStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failFor[id]; ok {
		return err
	}
	s.persisted[id] = persistedHealth{score: score, status: status}
	return nil
}

type fakeCheckinSource struct {
	mu      sync.Mutex
	samples []model.Checkin
	since   time.Time
	limit   int
}

func (f *fakeCheckinSource) ListRecentByProject(_ context.Context, _ int, since time.Time, limit int) ([]model.Checkin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.since = since
	f.limit = limit
	return f.samples, nil
}

type fakeFeedbackSource struct {
	mu      sync.Mutex
	samples []model.Feedback
}

func (f *fakeFeedbackSource) ListRecentByProject(_ context.Context, _ int, _ time.Time, _ int) ([]model.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.samples, nil
}

func testService(store *fakeProjectStore, checkins *fakeCheckinSource, feedback *fakeFeedbackSource, opts Options) *Service {
	s := NewService(store, checkins, feedback, opts, zap.NewNop())
	s.now = func() time.Time { return testNow }
	return s
}

func TestService_Recompute_PersistsScoreAndStatus(t *testing.T) {
	store := newFakeProjectStore(model.Project{
		ID:        1,
		Name:      "Website Redesign",
		Status:    model.StatusAtRisk,
		StartDate: testNow.AddDate(0, 0, -100),
		EndDate:   testNow.AddDate(0, 0, 100),
	})
	checkins := &fakeCheckinSource{samples: checkinSamples([]int{4, 5, 4, 5}, 50)}
	feedback := &fakeFeedbackSource{samples: feedbackSamples([]int{5, 4, 5, 4}, 0)}

	svc := testService(store, checkins, feedback, Options{})

	result, err := svc.Recompute(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 83, result.Score)
	assert.Equal(t, model.StatusOnTrack, result.Status)
	assert.Equal(t, persistedHealth{score: 83, status: model.StatusOnTrack}, store.persisted[1])
}

func TestService_Recompute_WindowAndLimitReachExtractors(t *testing.T) {
	store := newFakeProjectStore(model.Project{
		ID:        1,
		Name:      "Mobile App",
		StartDate: testNow.AddDate(0, 0, -10),
		EndDate:   testNow.AddDate(0, 0, 10),
	})
	checkins := &fakeCheckinSource{}
	feedback := &fakeFeedbackSource{}

	svc := testService(store, checkins, feedback, Options{LookbackDays: 14, SampleLimit: 2})

	_, err := svc.Recompute(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, testNow.AddDate(0, 0, -14), checkins.since)
	assert.Equal(t, 2, checkins.limit)
}

func TestService_Recompute_ProjectNotFound(t *testing.T) {
	svc := testService(newFakeProjectStore(), &fakeCheckinSource{}, &fakeFeedbackSource{}, Options{})

	_, err := svc.Recompute(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestService_Recompute_CompletedStatusIsPreserved(t *testing.T) {
	store := newFakeProjectStore(model.Project{
		ID:        1,
		Name:      "Data Migration",
		Status:    model.StatusCompleted,
		StartDate: testNow.AddDate(0, 0, -100),
		EndDate:   testNow.AddDate(0, 0, -10),
	})
	// Samples that would otherwise classify the project as critical.
	checkins := &fakeCheckinSource{samples: checkinSamples([]int{1, 1}, 10)}
	feedback := &fakeFeedbackSource{samples: feedbackSamples([]int{1, 1}, 2)}

	svc := testService(store, checkins, feedback, Options{})

	result, err := svc.Recompute(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, model.StatusCompleted, result.Status)
	assert.Equal(t, model.StatusCompleted, store.persisted[1].status)
	// The score itself is still refreshed from the live samples.
	assert.Equal(t, result.Score, store.persisted[1].score)
}

func TestService_RecomputeAll_OneFailureDoesNotAbortTheRest(t *testing.T) {
	projects := make([]model.Project, 0, 5)
	for i := 1; i <= 5; i++ {
		projects = append(projects, model.Project{
			ID:        i,
			Name:      "Project " + string(rune('A'+i-1)),
			StartDate: testNow.AddDate(0, 0, -50),
			EndDate:   testNow.AddDate(0, 0, 50),
		})
	}
	store := newFakeProjectStore(projects...)
	store.failFor[3] = assert.AnError

	svc := testService(store, &fakeCheckinSource{}, &fakeFeedbackSource{}, Options{BatchWorkers: 2})

	results, err := svc.RecomputeAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 5)

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
			assert.Equal(t, "Project C", r.Project)
			assert.Zero(t, r.HealthScore)
		} else {
			assert.Greater(t, r.HealthScore, 0)
		}
	}
	assert.Equal(t, 1, failed)

	// The four healthy projects were all persisted.
	assert.Len(t, store.persisted, 4)
}

func TestService_RecomputeAll_EmptyProjectList(t *testing.T) {
	svc := testService(newFakeProjectStore(), &fakeCheckinSource{}, &fakeFeedbackSource{}, Options{})

	results, err := svc.RecomputeAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestOptions_Fallbacks(t *testing.T) {
	opts := Options{}.withFallbacks()

	assert.Equal(t, 28, opts.LookbackDays)
	assert.Equal(t, 4, opts.SampleLimit)
	assert.Equal(t, 4, opts.BatchWorkers)
	assert.Equal(t, NeutralDefaults(), opts.Defaults)

	custom := Options{LookbackDays: 7, SampleLimit: 10, BatchWorkers: 1, Defaults: Defaults{Satisfaction: 4, Confidence: 4}}.withFallbacks()
	assert.Equal(t, 7, custom.LookbackDays)
	assert.Equal(t, Defaults{Satisfaction: 4, Confidence: 4}, custom.Defaults)
}
