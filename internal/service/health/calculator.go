package health

import (
	"math"
	"time"

	"projectpulse/internal/model"
)

// Fixed scoring weights: satisfaction contributes up to 40 points
// (5x8), confidence up to 30 (5x6), timeline up to 20 (100x0.2), and
// each flagged issue subtracts 10 with no floor other than the final
// clamp.
const (
	satisfactionWeight = 8.0
	confidenceWeight   = 6.0
	timelineWeight     = 0.2
	flagPenalty        = 10
)

// Status thresholds on the final score.
const (
	onTrackThreshold = 80
	atRiskThreshold  = 60
)

// Defaults are the neutral substitutes applied when a project has no
// samples inside the window. Injected rather than hardcoded so tests
// can override them.
type Defaults struct {
	Satisfaction float64 // substitute for a missing satisfaction average
	Confidence   float64 // substitute for a missing confidence average
	Progress     float64 // substitute for a missing latest completion percentage
}

// NeutralDefaults returns the production defaults: neutral 3-star
// ratings and zero reported progress.
func NeutralDefaults() Defaults {
	return Defaults{Satisfaction: 3, Confidence: 3, Progress: 0}
}

// Breakdown carries the rounded sub-scores returned to callers so a
// stakeholder can reconstruct why a score changed.
type Breakdown struct {
	SatisfactionScore int `json:"satisfactionScore"`
	ConfidenceScore   int `json:"confidenceScore"`
	TimelineScore     int `json:"timelineScore"`
	IssuePenalty      int `json:"issuePenalty"`
}

type Result struct {
	Score     int
	Status    model.ProjectStatus
	Breakdown Breakdown
}

// Compute derives a project's health score from its recent feedback and
// checkin samples. Pure: no I/O, deterministic for a fixed now.
// Samples are expected newest first; only the first checkin's
// completion percentage feeds the timeline term.
func Compute(p *model.Project, feedback []model.Feedback, checkins []model.Checkin, now time.Time, d Defaults) Result {
	avgSatisfaction := d.Satisfaction
	if len(feedback) > 0 {
		sum := 0
		for _, f := range feedback {
			sum += f.SatisfactionRating
		}
		avgSatisfaction = float64(sum) / float64(len(feedback))
	}

	avgConfidence := d.Confidence
	if len(checkins) > 0 {
		sum := 0
		for _, c := range checkins {
			sum += c.ConfidenceLevel
		}
		avgConfidence = float64(sum) / float64(len(checkins))
	}

	totalDays := math.Ceil(p.EndDate.Sub(p.StartDate).Hours() / 24)
	if totalDays < 1 {
		totalDays = 1
	}
	daysPassed := math.Ceil(now.Sub(p.StartDate).Hours() / 24)
	expectedProgress := math.Min(100, daysPassed/totalDays*100)

	actualProgress := d.Progress
	if len(checkins) > 0 {
		actualProgress = float64(checkins[0].CompletionPercentage)
	}

	progressDeviation := math.Abs(expectedProgress - actualProgress)
	timelineScore := math.Max(0, 100-progressDeviation*2)

	flagged := 0
	for _, f := range feedback {
		if f.FlagIssue {
			flagged++
		}
	}
	issuePenalty := flagged * flagPenalty

	raw := avgSatisfaction*satisfactionWeight +
		avgConfidence*confidenceWeight +
		timelineScore*timelineWeight -
		float64(issuePenalty)

	score := int(math.Round(math.Max(0, math.Min(100, raw))))

	return Result{
		Score:  score,
		Status: StatusForScore(score),
		Breakdown: Breakdown{
			SatisfactionScore: int(math.Round(avgSatisfaction * satisfactionWeight)),
			ConfidenceScore:   int(math.Round(avgConfidence * confidenceWeight)),
			TimelineScore:     int(math.Round(timelineScore * timelineWeight)),
			IssuePenalty:      -issuePenalty,
		},
	}
}

// StatusForScore maps a final score onto the discrete classification.
// StatusCompleted is never produced here; it is set exogenously.
func StatusForScore(score int) model.ProjectStatus {
	switch {
	case score >= onTrackThreshold:
		return model.StatusOnTrack
	case score >= atRiskThreshold:
		return model.StatusAtRisk
	default:
		return model.StatusCritical
	}
}
