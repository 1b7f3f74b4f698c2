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

// meetupRow mirrors a meetups row joined with its plan.
type meetupRow struct {
	ID         string `db:"id"`
	PlanID     string `db:"plan_id"`
	HostID     string `db:"host_id"`
	HostName   string `db:"host_name"`
	MeetupTime string `db:"meetup_time"`
	CreatedAt  int64  `db:"created_at"`

	Mood      string `db:"mood"`
	StartLoc  string `db:"start_loc"`
	RouteJSON string `db:"route_json"`
	Summary   string `db:"summary"`
}

// CreateMeetup persists a new meetup with the host as first participant.
func (s *SQLiteStore) CreateMeetup(ctx context.Context, meetup *models.Meetup) error {
	// Generate ID if not set
	if meetup.ID == "" {
		meetup.ID = uuid.New().String()
	}
	if meetup.CreatedAt == 0 {
		meetup.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM plans WHERE id = ?", meetup.PlanID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("plan %s: %w", meetup.PlanID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check plan existence: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO meetups (id, plan_id, host_id, host_name, meetup_time, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		meetup.ID, meetup.PlanID, meetup.HostID, meetup.HostUsername, meetup.MeetupTime, meetup.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert meetup: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO meetup_participants (meetup_id, username, joined_at) VALUES (?, ?, ?)",
		meetup.ID, meetup.HostUsername, meetup.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert host participant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	meetup.Participants = []string{meetup.HostUsername}
	return nil
}

// GetMeetup retrieves a meetup and its participants by ID.
func (s *SQLiteStore) GetMeetup(ctx context.Context, meetupID string) (*models.Meetup, error) {
	meetup := &models.Meetup{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, plan_id, host_id, host_name, meetup_time, created_at FROM meetups WHERE id = ?",
		meetupID,
	).Scan(&meetup.ID, &meetup.PlanID, &meetup.HostID, &meetup.HostUsername, &meetup.MeetupTime, &meetup.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("meetup %s: %w", meetupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meetup: %w", err)
	}

	participants, err := s.participants(ctx, "WHERE meetup_id = ?", meetupID)
	if err != nil {
		return nil, err
	}
	meetup.Participants = participants[meetupID]

	return meetup, nil
}

// AddMeetupParticipant adds username to a meetup in a single statement.
// The primary key on (meetup_id, username) makes a repeated join a no-op.
func (s *SQLiteStore) AddMeetupParticipant(ctx context.Context, meetupID, username string) error {
	result, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO meetup_participants (meetup_id, username, joined_at)
		 SELECT id, ?, ? FROM meetups WHERE id = ?`,
		username, time.Now().Unix(), meetupID,
	)
	if err != nil {
		return fmt.Errorf("failed to add participant: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check inserted rows: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var exists int
	err = s.db.QueryRowContext(ctx, "SELECT 1 FROM meetups WHERE id = ?", meetupID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("meetup %s: %w", meetupID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check meetup existence: %w", err)
	}

	return fmt.Errorf("meetup %s: %w", meetupID, storage.ErrAlreadyJoined)
}

// ListMeetups retrieves all meetups with their plan details, newest first.
func (s *SQLiteStore) ListMeetups(ctx context.Context) ([]*models.MeetupWithPlan, error) {
	var rows []meetupRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT m.id, m.plan_id, m.host_id, m.host_name, m.meetup_time, m.created_at,
		       p.mood, p.start_loc, p.route_json, p.summary
		FROM meetups m
		JOIN plans p ON m.plan_id = p.id
		ORDER BY m.created_at DESC, m.rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetups: %w", err)
	}

	participants, err := s.participants(ctx, "")
	if err != nil {
		return nil, err
	}

	meetups := make([]*models.MeetupWithPlan, 0, len(rows))
	for _, r := range rows {
		var stops []models.Stop
		if err := json.Unmarshal([]byte(r.RouteJSON), &stops); err != nil {
			return nil, fmt.Errorf("failed to decode route of plan %s: %w", r.PlanID, err)
		}

		meetups = append(meetups, &models.MeetupWithPlan{
			Meetup: models.Meetup{
				ID:           r.ID,
				PlanID:       r.PlanID,
				HostID:       r.HostID,
				HostUsername: r.HostName,
				MeetupTime:   r.MeetupTime,
				Participants: participants[r.ID],
				CreatedAt:    r.CreatedAt,
			},
			Mood:          r.Mood,
			StartLocation: r.StartLoc,
			Stops:         stops,
			Summary:       r.Summary,
		})
	}

	return meetups, nil
}

// participants loads participant names grouped by meetup ID, in join order.
func (s *SQLiteStore) participants(ctx context.Context, where string, args ...any) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT meetup_id, username FROM meetup_participants "+where+" ORDER BY joined_at, rowid",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]string)
	for rows.Next() {
		var meetupID, username string
		if err := rows.Scan(&meetupID, &username); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		result[meetupID] = append(result[meetupID], username)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return result, nil
}
