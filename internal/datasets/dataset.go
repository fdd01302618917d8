package datasets

// Key identifies one of the bundled reference datasets.
type Key string

const (
	// KeyGymMembers is the gym members exercise tracking dataset,
	// session durations are logged in hours.
	KeyGymMembers Key = "gym_members"
	// KeyHealthFitness365 is the 365 day health and fitness tracking
	// dataset, exercise is logged in minutes per day.
	KeyHealthFitness365 Key = "hf365"
	// KeyHealthFitness is the general health and fitness dataset with
	// a 1-10 fitness level column.
	KeyHealthFitness Key = "health"
)

// AllKeys in a stable order, for snapshots and preloading.
func AllKeys() []Key {
	return []Key{KeyGymMembers, KeyHealthFitness365, KeyHealthFitness}
}

func (k Key) Filename() string {
	switch k {
	case KeyGymMembers:
		return "gym_members_exercise_tracking.csv"
	case KeyHealthFitness365:
		return "health_fitness_tracking_365days.csv"
	case KeyHealthFitness:
		return "health_fitness_dataset.csv"
	}
	return ""
}

// Row is one dataset record. Age and gender drive cohort selection, the
// metric columns are per-dataset and stay nil where the source file has no
// such column or the cell failed to parse.
type Row struct {
	Age    *int
	Gender *string

	SessionHours    *float64
	CaloriesBurned  *float64
	ExerciseMinutes *float64
	Steps           *float64
	SleepHours      *float64
	FitnessLevel    *float64
}

type Dataset struct {
	Key     Key
	Rows    []Row
	NumCols int
}

func (d *Dataset) NumRows() int {
	return len(d.Rows)
}

// Averages computes the per-dataset aggregate values, the mean of each
// metric column with missing cells skipped. An aggregate whose column is
// entirely missing is omitted from the result.
func (d *Dataset) Averages() map[string]float64 {
	averages := make(map[string]float64)
	switch d.Key {
	case KeyGymMembers:
		putAvg(averages, "avg_session_hours", d.Rows, func(r Row) *float64 { return r.SessionHours })
		putAvg(averages, "avg_calories_burned", d.Rows, func(r Row) *float64 { return r.CaloriesBurned })
	case KeyHealthFitness365:
		putAvg(averages, "avg_steps", d.Rows, func(r Row) *float64 { return r.Steps })
		putAvg(averages, "avg_sleep_hours", d.Rows, func(r Row) *float64 { return r.SleepHours })
		putAvg(averages, "avg_exercise_minutes", d.Rows, func(r Row) *float64 { return r.ExerciseMinutes })
	case KeyHealthFitness:
		putAvg(averages, "avg_daily_steps", d.Rows, func(r Row) *float64 { return r.Steps })
		putAvg(averages, "avg_hours_sleep", d.Rows, func(r Row) *float64 { return r.SleepHours })
		putAvg(averages, "avg_fitness_level", d.Rows, func(r Row) *float64 { return r.FitnessLevel })
	}
	return averages
}

func putAvg(averages map[string]float64, name string, rows []Row, metric func(Row) *float64) {
	var sum float64
	var count int
	for _, row := range rows {
		if val := metric(row); val != nil {
			sum += *val
			count++
		}
	}
	if count == 0 {
		return
	}
	averages[name] = sum / float64(count)
}

// Snapshot is the outward-facing description of one dataset, served on
// the datasets endpoint. A dataset whose file is not present is reported
// with Exists false rather than as an error; a file that is present but
// failed to load keeps the failure reason in Err.
type Snapshot struct {
	Exists   bool               `json:"exists"`
	NumRows  int                `json:"numRows"`
	NumCols  int                `json:"numCols"`
	Averages map[string]float64 `json:"averages,omitempty"`
	Err      string             `json:"err,omitempty"`
}
