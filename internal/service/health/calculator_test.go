package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"projectpulse/internal/model"
)

var testNow = time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)

// midpointProject runs from 100 days ago to 100 days ahead, so the
// expected progress at testNow is exactly 50%.
func midpointProject() *model.Project {
	return &model.Project{
		ID:        1,
		Name:      "Website Redesign",
		Status:    model.StatusOnTrack,
		StartDate: testNow.AddDate(0, 0, -100),
		EndDate:   testNow.AddDate(0, 0, 100),
	}
}

func feedbackSamples(ratings []int, flagged int) []model.Feedback {
	samples := make([]model.Feedback, len(ratings))
	for i, rating := range ratings {
		samples[i] = model.Feedback{
			SatisfactionRating: rating,
			FlagIssue:          i < flagged,
		}
	}
	return samples
}

func checkinSamples(confidences []int, latestCompletion int) []model.Checkin {
	samples := make([]model.Checkin, len(confidences))
	for i, confidence := range confidences {
		samples[i] = model.Checkin{
			ConfidenceLevel:      confidence,
			CompletionPercentage: latestCompletion,
		}
	}
	return samples
}

func TestCompute_HealthyProject(t *testing.T) {
	// avg satisfaction 4.5, avg confidence 4.5, zero timeline deviation:
	// 4.5*8 + 4.5*6 + 100*0.2 = 36 + 27 + 20 = 83.
	result := Compute(
		midpointProject(),
		feedbackSamples([]int{5, 4, 5, 4}, 0),
		checkinSamples([]int{4, 5, 4, 5}, 50),
		testNow,
		NeutralDefaults(),
	)

	assert.Equal(t, 83, result.Score)
	assert.Equal(t, model.StatusOnTrack, result.Status)
	assert.Equal(t, Breakdown{
		SatisfactionScore: 36,
		ConfidenceScore:   27,
		TimelineScore:     20,
		IssuePenalty:      0,
	}, result.Breakdown)
}

func TestCompute_FlaggedIssuesDragScoreDown(t *testing.T) {
	// Same as the healthy project but two flagged issues: 83 - 20 = 63.
	result := Compute(
		midpointProject(),
		feedbackSamples([]int{5, 4, 5, 4}, 2),
		checkinSamples([]int{4, 5, 4, 5}, 50),
		testNow,
		NeutralDefaults(),
	)

	assert.Equal(t, 63, result.Score)
	assert.Equal(t, model.StatusAtRisk, result.Status)
	assert.Equal(t, -20, result.Breakdown.IssuePenalty)
}

func TestCompute_EmptySamplesUseDefaults(t *testing.T) {
	// No samples: neutral 3/3 ratings, 0% actual progress against 50%
	// expected kills the timeline term. 3*8 + 3*6 + 0 = 42.
	result := Compute(midpointProject(), nil, nil, testNow, NeutralDefaults())

	assert.Equal(t, 42, result.Score)
	assert.Equal(t, model.StatusCritical, result.Status)
	assert.Equal(t, Breakdown{
		SatisfactionScore: 24,
		ConfidenceScore:   18,
		TimelineScore:     0,
		IssuePenalty:      0,
	}, result.Breakdown)
}

func TestCompute_CustomDefaults(t *testing.T) {
	d := Defaults{Satisfaction: 5, Confidence: 5, Progress: 50}
	result := Compute(midpointProject(), nil, nil, testNow, d)

	// 5*8 + 5*6 + 100*0.2 = 90 with overridden neutral values.
	assert.Equal(t, 90, result.Score)
	assert.Equal(t, model.StatusOnTrack, result.Status)
}

func TestCompute_PenaltyIsMonotonic(t *testing.T) {
	previous := 101
	for flagged := 0; flagged <= 4; flagged++ {
		result := Compute(
			midpointProject(),
			feedbackSamples([]int{5, 4, 5, 4}, flagged),
			checkinSamples([]int{4, 5, 4, 5}, 50),
			testNow,
			NeutralDefaults(),
		)
		assert.Equal(t, 83-flagged*10, result.Score, "flagged=%d", flagged)
		assert.Less(t, result.Score, previous)
		previous = result.Score
	}
}

func TestCompute_ClampsAtZero(t *testing.T) {
	// Rock-bottom ratings, four flags and maximal timeline deviation
	// push the raw score negative; the clamp holds it at 0.
	result := Compute(
		midpointProject(),
		feedbackSamples([]int{1, 1, 1, 1}, 4),
		checkinSamples([]int{1, 1, 1, 1}, 100),
		testNow,
		NeutralDefaults(),
	)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, model.StatusCritical, result.Status)
}

func TestCompute_ScoreAlwaysInRange(t *testing.T) {
	cases := []struct {
		name     string
		feedback []model.Feedback
		checkins []model.Checkin
	}{
		{"empty", nil, nil},
		{"best", feedbackSamples([]int{5, 5, 5, 5}, 0), checkinSamples([]int{5, 5, 5, 5}, 50)},
		{"worst", feedbackSamples([]int{1, 1, 1, 1}, 4), checkinSamples([]int{1, 1, 1, 1}, 100)},
		{"single", feedbackSamples([]int{3}, 1), checkinSamples([]int{2}, 10)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Compute(midpointProject(), tc.feedback, tc.checkins, testNow, NeutralDefaults())
			assert.GreaterOrEqual(t, result.Score, 0)
			assert.LessOrEqual(t, result.Score, 100)
		})
	}
}

func TestCompute_NewestCheckinDrivesTimeline(t *testing.T) {
	// Samples arrive newest first; only the first one's completion
	// percentage feeds the timeline term.
	checkins := []model.Checkin{
		{ConfidenceLevel: 3, CompletionPercentage: 50}, // newest
		{ConfidenceLevel: 3, CompletionPercentage: 0},
	}
	result := Compute(midpointProject(), nil, checkins, testNow, NeutralDefaults())

	// Deviation 0 -> full timeline contribution of 20.
	assert.Equal(t, 20, result.Breakdown.TimelineScore)
}

func TestCompute_ExpectedProgressCapsAt100(t *testing.T) {
	// A project long past its end date expects 100% at most.
	p := &model.Project{
		StartDate: testNow.AddDate(0, 0, -400),
		EndDate:   testNow.AddDate(0, 0, -200),
	}
	result := Compute(p, nil, checkinSamples([]int{3}, 100), testNow, NeutralDefaults())

	// actual 100 vs expected 100: no deviation.
	assert.Equal(t, 20, result.Breakdown.TimelineScore)
}

func TestStatusForScore_Thresholds(t *testing.T) {
	cases := []struct {
		score int
		want  model.ProjectStatus
	}{
		{100, model.StatusOnTrack},
		{80, model.StatusOnTrack},
		{79, model.StatusAtRisk},
		{60, model.StatusAtRisk},
		{59, model.StatusCritical},
		{0, model.StatusCritical},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusForScore(tc.score), "score=%d", tc.score)
	}
}
