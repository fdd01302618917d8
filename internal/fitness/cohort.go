package fitness

import (
	"fmt"
	"strings"

	"github.com/fitfuture/fitfuture/internal/datasets"
)

// GenderCode normalizes a free-form gender value ("M", "male", "Female")
// to its first letter, uppercased. Empty input yields ok false.
func GenderCode(gender string) (byte, bool) {
	gender = strings.TrimSpace(gender)
	if gender == "" {
		return 0, false
	}
	return strings.ToUpper(gender)[0], true
}

// GenderLabel is the plural label used in cohort descriptions.
func GenderLabel(code byte, ok bool) string {
	if !ok {
		return "users"
	}
	switch code {
	case 'M':
		return "males"
	case 'F':
		return "females"
	}
	return "users"
}

// CohortLabel describes a comparison group, e.g. "20–24yo males".
func CohortLabel(age, ageWindow int, genderLabel string) string {
	return fmt.Sprintf("%d–%dyo %s", age-ageWindow, age+ageWindow, genderLabel)
}

// SelectCohort keeps the dataset rows whose age falls in the closed
// interval [age-ageWindow, age+ageWindow] and whose gender starts with the
// given code. Rows without age or gender never qualify.
func SelectCohort(rows []datasets.Row, age, ageWindow int, genderCode byte) []datasets.Row {
	var cohort []datasets.Row
	for _, row := range rows {
		if row.Age == nil || row.Gender == nil {
			continue
		}
		if *row.Age < age-ageWindow || *row.Age > age+ageWindow {
			continue
		}
		rowCode, ok := GenderCode(*row.Gender)
		if !ok || rowCode != genderCode {
			continue
		}
		cohort = append(cohort, row)
	}
	return cohort
}
