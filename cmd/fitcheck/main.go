// fitcheck estimates where a hypothetical user stands within the health
// and fitness dataset: it selects a cohort of similar age and gender and
// reports the percentile of the given fitness level against it.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/fitfuture/fitfuture/internal/datasets"
	"github.com/fitfuture/fitfuture/internal/fitness"
)

func main() {
	file := flag.String("file", "datasets/health_fitness_dataset.csv", "path to the health fitness dataset CSV")
	age := flag.Int("age", 25, "age of the user to compare")
	gender := flag.String("gender", "M", "gender of the user to compare")
	fitnessLevel := flag.Float64("fitness", 65.0, "fitness level of the user to compare")
	window := flag.Int("window", 3, "cohort age window, cohort is [age-window, age+window]")
	flag.Parse()

	if err := run(*file, *age, *gender, *fitnessLevel, *window); err != nil {
		fmt.Fprintf(os.Stderr, "fitcheck: %s\n", err)
		os.Exit(1)
	}
}

func run(file string, age int, gender string, fitnessLevel float64, window int) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	dataset, err := datasets.Load(datasets.KeyHealthFitness, csv.NewReader(f))
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	fmt.Println("=== FitFuture: Dataset Loaded ===")
	fmt.Printf("Rows: %d, Columns: %d\n", dataset.NumRows(), dataset.NumCols)

	averages := dataset.Averages()
	names := make([]string, 0, len(averages))
	for name := range averages {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\n=== Dataset Averages ===")
	for _, name := range names {
		fmt.Printf("%s: %.2f\n", name, averages[name])
	}

	genderCode, ok := fitness.GenderCode(gender)
	if !ok {
		return fmt.Errorf("invalid gender %q", gender)
	}

	cohort := fitness.SelectCohort(dataset.Rows, age, window, genderCode)
	sample := make([]float64, 0, len(cohort))
	for _, row := range cohort {
		if row.FitnessLevel != nil {
			sample = append(sample, *row.FitnessLevel)
		}
	}

	fmt.Println("\n=== Sample User Comparison ===")
	fmt.Printf("Hypothetical user -> age=%d, gender=%s, fitness_level=%.1f\n", age, gender, fitnessLevel)

	pct, ok := fitness.PercentileRank(sample, fitnessLevel)
	if !ok {
		fmt.Println("Not enough comparison data for this age/gender group.")
		return nil
	}

	fmt.Printf("Compared to %d people in the dataset with similar age and gender:\n", len(sample))
	fmt.Printf(" -> This user is around the %.1fth percentile for fitness level.\n", pct)

	return nil
}
