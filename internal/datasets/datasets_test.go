package datasets_test

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fitfuture/fitfuture/internal/datasets"
	"github.com/fitfuture/fitfuture/internal/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLoad_gymMembers(t *testing.T) {
	csvContent := `Age,Gender,Weight (kg),Session_Duration (hours),Calories_Burned
25,Male,75,1.0,500
27,Male,80,0.5,300
30,Male,85,oops,400
,Female,60,1.5,700
`
	dataset, err := datasets.Load(datasets.KeyGymMembers, csv.NewReader(strings.NewReader(csvContent)))
	require.NoError(t, err)

	assert.Equal(t, 4, dataset.NumRows())
	assert.Equal(t, 5, dataset.NumCols)

	require.NotNil(t, dataset.Rows[0].Age)
	assert.Equal(t, 25, *dataset.Rows[0].Age)
	require.NotNil(t, dataset.Rows[0].Gender)
	assert.Equal(t, "Male", *dataset.Rows[0].Gender)
	require.NotNil(t, dataset.Rows[0].SessionHours)
	assert.Equal(t, 1.0, *dataset.Rows[0].SessionHours)
	require.NotNil(t, dataset.Rows[0].CaloriesBurned)
	assert.Equal(t, 500.0, *dataset.Rows[0].CaloriesBurned)

	// a bad cell leaves just that value unset, the row stays
	assert.Nil(t, dataset.Rows[2].SessionHours)
	require.NotNil(t, dataset.Rows[2].CaloriesBurned)
	assert.Equal(t, 400.0, *dataset.Rows[2].CaloriesBurned)

	// missing age is fine too
	assert.Nil(t, dataset.Rows[3].Age)
	require.NotNil(t, dataset.Rows[3].SessionHours)
}

func TestLoad_missingColumn(t *testing.T) {
	// no exercise_minutes column at all
	csvContent := `age,gender,steps
22,M,8000
23,F,10000
`
	dataset, err := datasets.Load(datasets.KeyHealthFitness365, csv.NewReader(strings.NewReader(csvContent)))
	require.NoError(t, err)

	assert.Equal(t, 2, dataset.NumRows())
	assert.Equal(t, 3, dataset.NumCols)
	for _, row := range dataset.Rows {
		assert.Nil(t, row.ExerciseMinutes)
		assert.NotNil(t, row.Steps)
	}
}

func TestLoad_empty(t *testing.T) {
	dataset, err := datasets.Load(datasets.KeyHealthFitness, csv.NewReader(strings.NewReader("")))
	require.NoError(t, err)
	assert.Equal(t, 0, dataset.NumRows())
	assert.Equal(t, 0, dataset.NumCols)
}

func TestDataset_Averages(t *testing.T) {
	csvContent := `age,gender,daily_steps,hours_sleep,fitness_level
25,M,9000,7,6
26,F,11000,8,8
28,M,7000,6,junk
`
	dataset, err := datasets.Load(datasets.KeyHealthFitness, csv.NewReader(strings.NewReader(csvContent)))
	require.NoError(t, err)

	averages := dataset.Averages()
	assert.Equal(t, 9000.0, averages["avg_daily_steps"])
	assert.Equal(t, 7.0, averages["avg_hours_sleep"])
	// mean of the two parseable fitness levels
	assert.Equal(t, 7.0, averages["avg_fitness_level"])
}

func TestCache_loadsOnce(t *testing.T) {
	metricsManager := metrics.NewTestManager()
	cache := datasets.NewCache("testdata", metricsManager)

	first, err := cache.Get(datasets.KeyGymMembers)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 5, first.NumRows())

	second, err := cache.Get(datasets.KeyGymMembers)
	require.NoError(t, err)
	assert.Same(t, first, second)

	loads := testutil.ToFloat64(
		metricsManager.CounterDatasetLoads.WithLabelValues(string(datasets.KeyGymMembers), "loaded"),
	)
	assert.Equal(t, float64(1), loads)
}

func TestCache_absentDataset(t *testing.T) {
	metricsManager := metrics.NewTestManager()
	cache := datasets.NewCache(t.TempDir(), metricsManager)

	// file not there: no dataset, and no error either
	dataset, err := cache.Get(datasets.KeyHealthFitness365)
	require.NoError(t, err)
	assert.Nil(t, dataset)

	// absence is memoized as well
	_, err = cache.Get(datasets.KeyHealthFitness365)
	require.NoError(t, err)
	absents := testutil.ToFloat64(
		metricsManager.CounterDatasetLoads.WithLabelValues(string(datasets.KeyHealthFitness365), "absent"),
	)
	assert.Equal(t, float64(1), absents)
}

func TestCache_Snapshots(t *testing.T) {
	cache := datasets.NewCache("testdata", metrics.NewTestManager())

	snapshots := cache.Snapshots()
	require.Len(t, snapshots, 3)

	gym := snapshots[datasets.KeyGymMembers]
	assert.True(t, gym.Exists)
	assert.Equal(t, 5, gym.NumRows)
	assert.Equal(t, 5, gym.NumCols)
	// one of the five session duration cells fails to parse
	assert.InDelta(t, 1.25, gym.Averages["avg_session_hours"], 0.001)
	assert.InDelta(t, 560.0, gym.Averages["avg_calories_burned"], 0.001)

	hf365 := snapshots[datasets.KeyHealthFitness365]
	assert.True(t, hf365.Exists)
	assert.Equal(t, 4, hf365.NumRows)
	assert.InDelta(t, 37.5, hf365.Averages["avg_exercise_minutes"], 0.001)

	health := snapshots[datasets.KeyHealthFitness]
	assert.True(t, health.Exists)
	assert.Equal(t, 5, health.NumRows)
	assert.InDelta(t, 6.75, health.Averages["avg_fitness_level"], 0.001)
}

func TestCache_Snapshots_allAbsent(t *testing.T) {
	cache := datasets.NewCache(t.TempDir(), metrics.NewTestManager())

	snapshots := cache.Snapshots()
	require.Len(t, snapshots, 3)
	for key, snapshot := range snapshots {
		assert.False(t, snapshot.Exists, key)
		assert.Zero(t, snapshot.NumRows, key)
		assert.Empty(t, snapshot.Err, key)
	}
}

func TestCache_Snapshots_malformedFile(t *testing.T) {
	datasetsDir := t.TempDir()
	// unbalanced quote, the csv reader chokes on it
	badCsv := "age,gender,daily_steps,hours_sleep,fitness_level\n25,\"M,9000,7,6\n"
	require.NoError(t, os.WriteFile(
		filepath.Join(datasetsDir, datasets.KeyHealthFitness.Filename()),
		[]byte(badCsv), 0600,
	))

	metricsManager := metrics.NewTestManager()
	cache := datasets.NewCache(datasetsDir, metricsManager)

	dataset, err := cache.Get(datasets.KeyHealthFitness)
	require.Error(t, err)
	assert.Nil(t, dataset)

	// the snapshot keeps the failure reason, an unreadable file is
	// not reported the same as a missing one
	snapshots := cache.Snapshots()
	health := snapshots[datasets.KeyHealthFitness]
	assert.False(t, health.Exists)
	assert.Contains(t, health.Err, string(datasets.KeyHealthFitness))
	assert.NotEmpty(t, health.Err)

	errorLoads := testutil.ToFloat64(
		metricsManager.CounterDatasetLoads.WithLabelValues(string(datasets.KeyHealthFitness), "error"),
	)
	assert.Equal(t, float64(1), errorLoads)
}

func TestCache_concurrentFirstAccess(t *testing.T) {
	metricsManager := metrics.NewTestManager()
	cache := datasets.NewCache("testdata", metricsManager)

	const goroutines = 16
	results := make([]*datasets.Dataset, goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			dataset, err := cache.Get(datasets.KeyGymMembers)
			assert.NoError(t, err)
			results[i] = dataset
		}(i)
	}
	wg.Wait()

	require.NotNil(t, results[0])
	for i := 1; i < goroutines; i++ {
		assert.Same(t, results[0], results[i])
	}

	loads := testutil.ToFloat64(
		metricsManager.CounterDatasetLoads.WithLabelValues(string(datasets.KeyGymMembers), "loaded"),
	)
	assert.Equal(t, float64(1), loads)
}

func TestCache_Preload(t *testing.T) {
	cache := datasets.NewCache("testdata", metrics.NewTestManager())
	require.NoError(t, cache.Preload())

	dataset, err := cache.Get(datasets.KeyHealthFitness)
	require.NoError(t, err)
	require.NotNil(t, dataset)
}

func TestHandler_HandleGetSnapshots(t *testing.T) {
	cache := datasets.NewCache("testdata", metrics.NewTestManager())
	handler := datasets.NewHandler(cache)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req, err := http.NewRequest("GET", "/datasets", nil)
		require.NoError(t, err)

		// second request comes from the response cache, same payload
		handler.HandleGetSnapshots(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		assert.Contains(t, rec.Body.String(), `"gym_members"`)
		assert.Contains(t, rec.Body.String(), `"avg_session_hours"`)
	}
}
