package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitfuture/fitfuture/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type ListParams struct {
	UserID       int
	From         *time.Time
	To           *time.Time
	MinIntensity *int
	// WithDuration keeps only sessions that have a logged duration;
	// the fitness summary engine relies on this.
	WithDuration bool
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO workout_sessions
				(user_id, workout_date, start_time, end_time,
				 total_duration_minutes, perceived_intensity, source, notes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING workout_id;`,
		workout.UserID, workout.Date, workout.StartTime, workout.EndTime,
		workout.DurationMinutes, workout.Intensity, workout.Source, workout.Notes,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("workout.id", id))

	workout.ID = id
	return &workout, nil
}

func (r *Repo) Update(ctx context.Context, workout *Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", workout.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE workout_sessions
			SET user_id = $1, workout_date = $2, start_time = $3, end_time = $4,
				total_duration_minutes = $5, perceived_intensity = $6, source = $7, notes = $8
			WHERE workout_id = $9;`,
		workout.UserID, workout.Date, workout.StartTime, workout.EndTime,
		workout.DurationMinutes, workout.Intensity, workout.Source, workout.Notes,
		workout.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout_sessions WHERE workout_id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				workout_id, user_id, workout_date, start_time, end_time,
				total_duration_minutes, perceived_intensity, source, notes
			FROM workout_sessions
			WHERE workout_id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	workouts, err := r.rows2workouts(rows)
	if err != nil {
		return nil, err
	}

	if len(workouts) != 1 {
		return nil, ErrWorkoutNotFound
	}

	return &workouts[0], nil
}

// ListAll returns the workouts matching the given filters,
// newest session first.
func (r *Repo) ListAll(ctx context.Context, params ListParams) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", params.UserID))
	span.SetAttributes(attribute.Bool("with-duration", params.WithDuration))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				workout_id, user_id, workout_date, start_time, end_time,
				total_duration_minutes, perceived_intensity, source, notes
			FROM workout_sessions
				WHERE user_id = $1
				AND ($2::date IS NULL OR workout_date >= $2)
				AND ($3::date IS NULL OR workout_date <= $3)
				AND ($4::integer IS NULL OR (perceived_intensity IS NOT NULL AND perceived_intensity >= $4))
				AND ($5::boolean IS FALSE OR total_duration_minutes IS NOT NULL)
			ORDER BY workout_date DESC, workout_id DESC;`,
		params.UserID,
		params.From, params.To,
		params.MinIntensity,
		params.WithDuration,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	workouts, err := r.rows2workouts(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2workouts: %w", err)
	}
	return workouts, nil
}

func (r *Repo) rows2workouts(rows pgx.Rows) ([]Workout, error) {
	var workouts []Workout
	for rows.Next() {
		var w Workout
		if err := rows.Scan(
			&w.ID, &w.UserID, &w.Date, &w.StartTime, &w.EndTime,
			&w.DurationMinutes, &w.Intensity, &w.Source, &w.Notes,
		); err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}

	if workouts == nil {
		workouts = make([]Workout, 0)
	}

	return workouts, nil
}
