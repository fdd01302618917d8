package profiles

import (
	"context"
	"errors"

	"github.com/fitfuture/fitfuture/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrProfileNotFound = errors.New("profile not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Get(ctx context.Context, userID int) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	var p Profile
	err = r.db.QueryRow(
		ctx,
		`
			SELECT
				user_id, age, gender, height_cm, weight_kg, bmi, resting_heart_rate
			FROM user_profiles
			WHERE user_id = $1;`,
		userID,
	).Scan(
		&p.UserID, &p.Age, &p.Gender, &p.HeightCm,
		&p.WeightKg, &p.BMI, &p.RestingHeartRate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return &p, nil
}

// Update stores the given profile, creating it when the user has none yet.
// The BMI is always recomputed from the stored height and weight.
func (r *Repo) Update(ctx context.Context, profile *Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", profile.UserID))

	profile.RecomputeBMI()

	_, err = r.db.Exec(
		ctx,
		`
			INSERT INTO user_profiles
				(user_id, age, gender, height_cm, weight_kg, bmi, resting_heart_rate)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (user_id) DO UPDATE SET
				age = EXCLUDED.age,
				gender = EXCLUDED.gender,
				height_cm = EXCLUDED.height_cm,
				weight_kg = EXCLUDED.weight_kg,
				bmi = EXCLUDED.bmi,
				resting_heart_rate = EXCLUDED.resting_heart_rate;`,
		profile.UserID, profile.Age, profile.Gender, profile.HeightCm,
		profile.WeightKg, profile.BMI, profile.RestingHeartRate,
	)
	return err
}
