package fitness

//go:generate mockgen -source=$GOFILE -destination=summary_mocks_test.go -package=fitness_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/fitfuture/fitfuture/internal/datasets"
	"github.com/fitfuture/fitfuture/internal/profiles"
	"github.com/fitfuture/fitfuture/internal/telemetry/tracing"
	"github.com/fitfuture/fitfuture/internal/workouts"

	log "github.com/sirupsen/logrus"
)

// pointsPerWeeklyMinutes: 30 weekly minutes are worth one score point.
const pointsPerWeeklyMinutes = 30.0

type workoutsLister interface {
	ListAll(ctx context.Context, params workouts.ListParams) ([]workouts.Workout, error)
}

type profileGetter interface {
	Get(ctx context.Context, userID int) (*profiles.Profile, error)
}

type datasetProvider interface {
	Get(key datasets.Key) (*datasets.Dataset, error)
}

// Summary is the full fitness picture of one user: recent training volume,
// a simple 0-10 score, and percentile standings against the reference
// dataset cohorts. All cohort fields stay unset when the user has no usable
// profile or no recent training.
type Summary struct {
	HasData bool `json:"hasData"`

	TotalMinutes   *int     `json:"totalMinutes30d,omitempty"`
	AvgDuration    *float64 `json:"avgDuration,omitempty"`
	WeeklyMinutes  *float64 `json:"weeklyMinutes,omitempty"`
	CurrentScore   *float64 `json:"currentScore,omitempty"`
	ProjectedScore *float64 `json:"projectedScore,omitempty"`

	Age         *int    `json:"age,omitempty"`
	GenderLabel string  `json:"genderLabel"`
	CohortLabel *string `json:"cohortLabel,omitempty"`

	Hf365Percentile *float64 `json:"hf365Percentile,omitempty"`
	Hf365CohortSize *int     `json:"hf365CohortSize,omitempty"`
	GymPercentile   *float64 `json:"gymPercentile,omitempty"`
	GymCohortSize   *int     `json:"gymCohortSize,omitempty"`
}

type NewSummarizerParams struct {
	Workouts        workoutsLister
	Profiles        profileGetter
	Datasets        datasetProvider
	WindowDays      int
	CohortAgeWindow int
}

type Summarizer struct {
	workouts        workoutsLister
	profiles        profileGetter
	datasets        datasetProvider
	windowDays      int
	cohortAgeWindow int

	// now is swapped out in tests
	now func() time.Time
}

func NewSummarizer(params NewSummarizerParams) *Summarizer {
	return &Summarizer{
		workouts:        params.Workouts,
		profiles:        params.Profiles,
		datasets:        params.Datasets,
		windowDays:      params.WindowDays,
		cohortAgeWindow: params.CohortAgeWindow,
		now:             time.Now,
	}
}

// ComputeSummary builds the fitness summary for the given user. Missing
// profile, missing datasets and an empty training history all produce a
// thinner summary, never an error.
func (s *Summarizer) ComputeSummary(ctx context.Context, userID int) (_ *Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "fitness.summarizer.compute")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	summary := &Summary{}

	// the window boundary is at date granularity, workout_date is a date column
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	windowStart := today.AddDate(0, 0, -s.windowDays)
	recent, err := s.workouts.ListAll(ctx, workouts.ListParams{
		UserID:       userID,
		From:         &windowStart,
		WithDuration: true,
	})
	if err != nil {
		return nil, fmt.Errorf("list recent workouts: %w", err)
	}

	s.fillTrainingVolume(summary, recent)

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, profiles.ErrProfileNotFound) {
			return nil, fmt.Errorf("get profile: %w", err)
		}
		profile = nil
	}

	s.fillCohorts(summary, profile)

	return summary, nil
}

func (s *Summarizer) fillTrainingVolume(summary *Summary, recent []workouts.Workout) {
	var totalMinutes int
	var count int
	var minDate, maxDate time.Time
	for _, w := range recent {
		if w.DurationMinutes == nil {
			continue
		}
		totalMinutes += *w.DurationMinutes
		count++
		if minDate.IsZero() || w.Date.Before(minDate) {
			minDate = w.Date
		}
		if maxDate.IsZero() || w.Date.After(maxDate) {
			maxDate = w.Date
		}
	}

	if count == 0 {
		summary.HasData = false
		return
	}

	spanDays := int(maxDate.Sub(minDate).Hours()/24) + 1
	if spanDays < 1 {
		spanDays = 1
	}

	avgDuration := float64(totalMinutes) / float64(count)
	weeklyMinutes := float64(totalMinutes) * 7.0 / float64(spanDays)
	currentScore := math.Min(10.0, weeklyMinutes/pointsPerWeeklyMinutes)
	projectedScore := math.Min(10.0, currentScore+1.0)

	summary.HasData = true
	summary.TotalMinutes = &totalMinutes
	summary.AvgDuration = &avgDuration
	summary.WeeklyMinutes = &weeklyMinutes
	summary.CurrentScore = &currentScore
	summary.ProjectedScore = &projectedScore
}

func (s *Summarizer) fillCohorts(summary *Summary, profile *profiles.Profile) {
	var gender string
	if profile != nil && profile.Gender != nil {
		gender = *profile.Gender
	}
	genderCode, genderOK := GenderCode(gender)
	summary.GenderLabel = GenderLabel(genderCode, genderOK)

	if profile != nil {
		summary.Age = profile.Age
	}

	if profile == nil || profile.Age == nil || *profile.Age <= 0 || !genderOK {
		return
	}
	if summary.WeeklyMinutes == nil || *summary.WeeklyMinutes <= 0 {
		return
	}
	age := *profile.Age

	cohortLabel := CohortLabel(age, s.cohortAgeWindow, summary.GenderLabel)
	summary.CohortLabel = &cohortLabel

	// daily exercise minutes vs the 365 day tracking population
	if hf365 := s.dataset(datasets.KeyHealthFitness365); hf365 != nil {
		cohort := SelectCohort(hf365.Rows, age, s.cohortAgeWindow, genderCode)
		if len(cohort) > 0 {
			dailyEquiv := *summary.WeeklyMinutes / 7.0
			sample := metricValues(cohort, func(r datasets.Row) *float64 { return r.ExerciseMinutes })
			if pct, ok := PercentileRank(sample, dailyEquiv); ok {
				summary.Hf365Percentile = &pct
			}
			cohortSize := len(cohort)
			summary.Hf365CohortSize = &cohortSize
		}
	}

	// session duration vs the gym members population
	if gym := s.dataset(datasets.KeyGymMembers); gym != nil {
		cohort := SelectCohort(gym.Rows, age, s.cohortAgeWindow, genderCode)
		if len(cohort) > 0 && summary.AvgDuration != nil && *summary.AvgDuration > 0 {
			sample := metricValues(cohort, func(r datasets.Row) *float64 {
				if r.SessionHours == nil {
					return nil
				}
				minutes := *r.SessionHours * 60.0
				return &minutes
			})
			if pct, ok := PercentileRank(sample, *summary.AvgDuration); ok {
				summary.GymPercentile = &pct
			}
			cohortSize := len(cohort)
			summary.GymCohortSize = &cohortSize
		}
	}
}

// dataset fetches one reference dataset, tolerating both absence and load
// failures. A summary without percentiles beats no summary.
func (s *Summarizer) dataset(key datasets.Key) *datasets.Dataset {
	dataset, err := s.datasets.Get(key)
	if err != nil {
		log.Warnf("fitness summary: dataset %s unavailable: %s", key, err)
		return nil
	}
	return dataset
}

func metricValues(rows []datasets.Row, metric func(datasets.Row) *float64) []float64 {
	var values []float64
	for _, row := range rows {
		if val := metric(row); val != nil {
			values = append(values, *val)
		}
	}
	return values
}
