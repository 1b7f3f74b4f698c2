package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/vibewalk/internal/models"
	"github.com/mmynk/vibewalk/internal/storage"
)

const planColumns = `id, user_id, username, mood, start_loc, route_json, summary, post_mood, review_text, rating, created_at`

// planRow mirrors a row of the plans table.
type planRow struct {
	ID         string         `db:"id"`
	UserID     string         `db:"user_id"`
	Username   string         `db:"username"`
	Mood       string         `db:"mood"`
	StartLoc   string         `db:"start_loc"`
	RouteJSON  string         `db:"route_json"`
	Summary    string         `db:"summary"`
	PostMood   sql.NullString `db:"post_mood"`
	ReviewText sql.NullString `db:"review_text"`
	Rating     sql.NullInt64  `db:"rating"`
	CreatedAt  int64          `db:"created_at"`
}

func (r *planRow) toModel() (*models.Plan, error) {
	var stops []models.Stop
	if err := json.Unmarshal([]byte(r.RouteJSON), &stops); err != nil {
		return nil, fmt.Errorf("failed to decode route of plan %s: %w", r.ID, err)
	}

	plan := &models.Plan{
		ID:            r.ID,
		OwnerID:       r.UserID,
		OwnerUsername: r.Username,
		Mood:          r.Mood,
		StartLocation: r.StartLoc,
		Stops:         stops,
		Summary:       r.Summary,
		CreatedAt:     r.CreatedAt,
	}
	if r.Rating.Valid {
		plan.Review = &models.Review{
			PostMood:   r.PostMood.String,
			ReviewText: r.ReviewText.String,
			Rating:     int(r.Rating.Int64),
		}
	}
	return plan, nil
}

// CreatePlan persists a new plan to the database.
func (s *SQLiteStore) CreatePlan(ctx context.Context, plan *models.Plan) error {
	// Generate ID if not set
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	if plan.CreatedAt == 0 {
		plan.CreatedAt = time.Now().Unix()
	}

	stops := plan.Stops
	if stops == nil {
		stops = []models.Stop{}
	}
	routeJSON, err := json.Marshal(stops)
	if err != nil {
		return fmt.Errorf("failed to encode route: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO plans (id, user_id, username, mood, start_loc, route_json, summary, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		plan.ID, plan.OwnerID, plan.OwnerUsername, plan.Mood, plan.StartLocation,
		string(routeJSON), plan.Summary, plan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}

	return nil
}

// GetPlan retrieves a plan by ID.
func (s *SQLiteStore) GetPlan(ctx context.Context, planID string) (*models.Plan, error) {
	var row planRow
	err := s.db.GetContext(ctx, &row, `SELECT `+planColumns+` FROM plans WHERE id = ?`, planID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("plan %s: %w", planID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return row.toModel()
}

// ListPlans retrieves all plans, newest first.
func (s *SQLiteStore) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	var rows []planRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT `+planColumns+` FROM plans ORDER BY created_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	plans := make([]*models.Plan, 0, len(rows))
	for i := range rows {
		plan, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	return plans, nil
}

// UpdatePlanReview overwrites the review fields of a plan, only when ownerID owns it.
func (s *SQLiteStore) UpdatePlanReview(ctx context.Context, planID, ownerID string, review models.Review) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE plans SET post_mood = ?, review_text = ?, rating = ? WHERE id = ? AND user_id = ?`,
		nullable(review.PostMood), nullable(review.ReviewText), review.Rating, planID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// Nothing updated: tell an unknown plan apart from someone else's plan.
	var owner string
	err = s.db.QueryRowContext(ctx, "SELECT user_id FROM plans WHERE id = ?", planID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("plan %s: %w", planID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check plan owner: %w", err)
	}

	return fmt.Errorf("plan %s: %w", planID, storage.ErrNotOwner)
}
