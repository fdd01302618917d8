package datasets

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// columns maps source CSV headers to row fields, per dataset. Header
// matching is exact, the files ship with the service and do not change.
var columns = map[Key]map[string]func(*Row, *float64){
	KeyGymMembers: {
		"Session_Duration (hours)": func(r *Row, v *float64) { r.SessionHours = v },
		"Calories_Burned":          func(r *Row, v *float64) { r.CaloriesBurned = v },
	},
	KeyHealthFitness365: {
		"exercise_minutes": func(r *Row, v *float64) { r.ExerciseMinutes = v },
		"steps":            func(r *Row, v *float64) { r.Steps = v },
		"sleep_hours":      func(r *Row, v *float64) { r.SleepHours = v },
	},
	KeyHealthFitness: {
		"daily_steps":   func(r *Row, v *float64) { r.Steps = v },
		"hours_sleep":   func(r *Row, v *float64) { r.SleepHours = v },
		"fitness_level": func(r *Row, v *float64) { r.FitnessLevel = v },
	},
}

var ageHeaders = map[Key]string{
	KeyGymMembers:       "Age",
	KeyHealthFitness365: "age",
	KeyHealthFitness:    "age",
}

var genderHeaders = map[Key]string{
	KeyGymMembers:       "Gender",
	KeyHealthFitness365: "gender",
	KeyHealthFitness:    "gender",
}

// Load reads one dataset from the given CSV reader. Cells that fail to
// parse stay unset in their row, a whole row is never dropped for a bad
// cell.
func Load(key Key, csvReader *csv.Reader) (*Dataset, error) {
	log.Tracef("reading dataset %s CSV ...", key)

	csvReader.FieldsPerRecord = -1

	header, err := csvReader.Read()
	if err == io.EOF {
		return &Dataset{Key: key}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	headerIndex := make(map[string]int, len(header))
	for i, name := range header {
		headerIndex[strings.TrimSpace(name)] = i
	}

	dataset := &Dataset{
		Key:     key,
		NumCols: len(header),
	}

	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		var row Row
		if i, ok := headerIndex[ageHeaders[key]]; ok && i < len(record) {
			if age, err := strconv.Atoi(strings.TrimSpace(record[i])); err == nil {
				row.Age = &age
			}
		}
		if i, ok := headerIndex[genderHeaders[key]]; ok && i < len(record) {
			if gender := strings.TrimSpace(record[i]); gender != "" {
				row.Gender = &gender
			}
		}
		for name, set := range columns[key] {
			i, ok := headerIndex[name]
			if !ok || i >= len(record) {
				continue
			}
			set(&row, parseCell(record[i]))
		}

		dataset.Rows = append(dataset.Rows, row)
	}

	log.Tracef("dataset %s CSV read, %d rows", key, dataset.NumRows())

	return dataset, nil
}

func parseCell(cell string) *float64 {
	val, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return nil
	}
	return &val
}
