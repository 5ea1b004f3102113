package activity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"projectpulse/internal/model"
)

var feedBase = time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)

type fakeCheckinSource struct {
	samples   []model.Checkin
	err       error
	lastLimit int
	lastScope *int
}

func (f *fakeCheckinSource) ListLatest(_ context.Context, projectID *int, limit int) ([]model.Checkin, error) {
	f.lastLimit = limit
	f.lastScope = projectID
	return f.samples, f.err
}

type fakeFeedbackSource struct {
	samples   []model.Feedback
	lastLimit int
}

func (f *fakeFeedbackSource) ListLatest(_ context.Context, _ *int, limit int) ([]model.Feedback, error) {
	f.lastLimit = limit
	return f.samples, nil
}

type fakeRiskSource struct {
	samples   []model.Risk
	lastLimit int
}

func (f *fakeRiskSource) ListLatest(_ context.Context, _ *int, limit int) ([]model.Risk, error) {
	f.lastLimit = limit
	return f.samples, nil
}

func feedService(checkins *fakeCheckinSource, feedback *fakeFeedbackSource, risks *fakeRiskSource, opts Options) *Service {
	return NewService(checkins, feedback, risks, opts, zap.NewNop())
}

// minutesAgo spaces the fixtures so every entry has a distinct timestamp.
func minutesAgo(m int) time.Time {
	return feedBase.Add(-time.Duration(m) * time.Minute)
}

func TestBuildFeed_MergesNewestFirstAndTruncates(t *testing.T) {
	checkins := &fakeCheckinSource{samples: []model.Checkin{
		{ID: 1, ProjectID: 7, EmployeeID: 2, EmployeeName: "Alice", CompletionPercentage: 40, ConfidenceLevel: 4, SubmittedAt: minutesAgo(1)},
		{ID: 2, ProjectID: 7, EmployeeID: 3, EmployeeName: "Bob", CompletionPercentage: 55, ConfidenceLevel: 3, SubmittedAt: minutesAgo(5)},
		{ID: 3, ProjectID: 7, EmployeeID: 2, EmployeeName: "Alice", CompletionPercentage: 30, ConfidenceLevel: 5, SubmittedAt: minutesAgo(9)},
	}}
	feedback := &fakeFeedbackSource{samples: []model.Feedback{
		{ID: 4, ProjectID: 7, ClientID: 5, ClientName: "Carol", SatisfactionRating: 5, CommunicationRating: 4, SubmittedAt: minutesAgo(2)},
		{ID: 5, ProjectID: 7, ClientID: 5, ClientName: "Carol", SatisfactionRating: 3, CommunicationRating: 3, SubmittedAt: minutesAgo(7)},
	}}
	risks := &fakeRiskSource{samples: []model.Risk{
		{ID: 6, ProjectID: 7, ReportedByID: 2, ReportedByName: "Alice", Title: "Vendor delay", Severity: model.SeverityHigh, Status: model.RiskOpen, CreatedAt: minutesAgo(3)},
	}}

	svc := feedService(checkins, feedback, risks, Options{})

	entries, err := svc.BuildFeed(context.Background(), nil, 4)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// Newest first: checkin(1m), feedback(2m), risk(3m), checkin(5m).
	assert.Equal(t, []string{
		model.ActivityCheckin,
		model.ActivityFeedback,
		model.ActivityRisk,
		model.ActivityCheckin,
	}, []string{entries[0].Type, entries[1].Type, entries[2].Type, entries[3].Type})

	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].CreatedAt.After(entries[i-1].CreatedAt), "feed out of order at index %d", i)
	}
}

func TestBuildFeed_EntryFormatting(t *testing.T) {
	checkins := &fakeCheckinSource{samples: []model.Checkin{
		{ID: 1, ProjectID: 7, ProjectName: "Website Redesign", EmployeeID: 2, EmployeeName: "Alice", CompletionPercentage: 40, ConfidenceLevel: 4, SubmittedAt: minutesAgo(1)},
	}}
	feedback := &fakeFeedbackSource{samples: []model.Feedback{
		{ID: 4, ProjectID: 7, ClientID: 5, ClientName: "Carol", SatisfactionRating: 5, CommunicationRating: 4, SubmittedAt: minutesAgo(2)},
	}}
	risks := &fakeRiskSource{samples: []model.Risk{
		{ID: 6, ProjectID: 7, ReportedByID: 2, Title: "Vendor delay", Severity: model.SeverityHigh, Status: model.RiskOpen, CreatedAt: minutesAgo(3)},
	}}

	svc := feedService(checkins, feedback, risks, Options{})

	entries, err := svc.BuildFeed(context.Background(), nil, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Weekly Check-in by Alice", entries[0].Title)
	assert.Equal(t, "Progress: 40% | Confidence: 4/5", entries[0].Description)
	assert.Equal(t, "Website Redesign", entries[0].ProjectName)
	assert.Equal(t, model.UserRef{ID: 2, Name: "Alice"}, entries[0].User)

	assert.Equal(t, "Client Feedback from Carol", entries[1].Title)
	assert.Equal(t, "Satisfaction: 5/5 | Communication: 4/5", entries[1].Description)

	assert.Equal(t, "Risk Reported: Vendor delay", entries[2].Title)
	assert.Equal(t, "Severity: high | Status: open", entries[2].Description)
}

func TestBuildFeed_FallbackNames(t *testing.T) {
	checkins := &fakeCheckinSource{samples: []model.Checkin{
		{ID: 1, SubmittedAt: minutesAgo(1)},
	}}
	feedback := &fakeFeedbackSource{samples: []model.Feedback{
		{ID: 2, SubmittedAt: minutesAgo(2)},
	}}

	svc := feedService(checkins, feedback, &fakeRiskSource{}, Options{})

	entries, err := svc.BuildFeed(context.Background(), nil, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Weekly Check-in by Employee", entries[0].Title)
	assert.Equal(t, "Client Feedback from Client", entries[1].Title)
}

func TestBuildFeed_EmptySources(t *testing.T) {
	svc := feedService(&fakeCheckinSource{}, &fakeFeedbackSource{}, &fakeRiskSource{}, Options{})

	entries, err := svc.BuildFeed(context.Background(), nil, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NotNil(t, entries)
}

func TestBuildFeed_DefaultLimit(t *testing.T) {
	checkins := &fakeCheckinSource{}
	svc := feedService(checkins, &fakeFeedbackSource{}, &fakeRiskSource{}, Options{})

	_, err := svc.BuildFeed(context.Background(), nil, 0)
	require.NoError(t, err)

	// Unspecified limit falls back to 20, which is also the per-source
	// fetch cap at the default multiplier.
	assert.Equal(t, 20, checkins.lastLimit)
}

func TestBuildFeed_FetchMultiplier(t *testing.T) {
	checkins := &fakeCheckinSource{samples: []model.Checkin{
		{ID: 1, SubmittedAt: minutesAgo(1)},
		{ID: 2, SubmittedAt: minutesAgo(2)},
		{ID: 3, SubmittedAt: minutesAgo(3)},
	}}
	feedback := &fakeFeedbackSource{}
	risks := &fakeRiskSource{}

	svc := feedService(checkins, feedback, risks, Options{FetchMultiplier: 3})

	entries, err := svc.BuildFeed(context.Background(), nil, 2)
	require.NoError(t, err)

	// Each source is asked for limit*multiplier, the merged feed is
	// still capped at the requested limit.
	assert.Equal(t, 6, checkins.lastLimit)
	assert.Equal(t, 6, feedback.lastLimit)
	assert.Equal(t, 6, risks.lastLimit)
	assert.Len(t, entries, 2)
}

func TestBuildFeed_ProjectScopeReachesSources(t *testing.T) {
	checkins := &fakeCheckinSource{}
	svc := feedService(checkins, &fakeFeedbackSource{}, &fakeRiskSource{}, Options{})

	projectID := 7
	_, err := svc.BuildFeed(context.Background(), &projectID, 5)
	require.NoError(t, err)

	require.NotNil(t, checkins.lastScope)
	assert.Equal(t, 7, *checkins.lastScope)
}

func TestBuildFeed_SourceErrorPropagates(t *testing.T) {
	checkins := &fakeCheckinSource{err: assert.AnError}
	svc := feedService(checkins, &fakeFeedbackSource{}, &fakeRiskSource{}, Options{})

	_, err := svc.BuildFeed(context.Background(), nil, 5)
	assert.ErrorIs(t, err, assert.AnError)
}
