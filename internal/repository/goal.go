package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/resolveapp/resolve/internal/model"
)

// GoalRepository is the persistence collaborator: full-fidelity
// round-trips of the goal record. Save is an upsert; the store calls it
// for creates and updates alike.
type GoalRepository interface {
	Load() ([]model.Goal, error)
	Save(g model.Goal) error
	Delete(id string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

// goalRow is the flat database shape. The three event collections are
// JSON columns; tracking_type stays NULL for pre-migration records so a
// load maps them to the legacy strategy rather than inventing a type.
type goalRow struct {
	ID              string         `db:"id"`
	Title           string         `db:"title"`
	Description     string         `db:"description"`
	Category        string         `db:"category"`
	Notes           string         `db:"notes"`
	TrackingType    sql.NullString `db:"tracking_type"`
	Progress        int            `db:"progress"`
	TargetFrequency int            `db:"target_frequency"`
	FrequencyPeriod string         `db:"frequency_period"`
	TargetValue     float64        `db:"target_value"`
	StartingValue   float64        `db:"starting_value"`
	CurrentValue    float64        `db:"current_value"`
	Unit            string         `db:"unit"`
	Milestones      []byte         `db:"milestones"`
	Journal         []byte         `db:"journal"`
	CheckIns        []byte         `db:"check_ins"`
	Deadline        string         `db:"deadline"`
	Reminder        string         `db:"reminder"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	CompletedAt     *time.Time     `db:"completed_at"`
}

func toRow(g model.Goal) (goalRow, error) {
	milestones, err := json.Marshal(g.Milestones)
	if err != nil {
		return goalRow{}, fmt.Errorf("marshal milestones: %w", err)
	}
	journal, err := json.Marshal(g.Journal)
	if err != nil {
		return goalRow{}, fmt.Errorf("marshal journal: %w", err)
	}
	checkIns, err := json.Marshal(g.CheckIns)
	if err != nil {
		return goalRow{}, fmt.Errorf("marshal check-ins: %w", err)
	}

	row := goalRow{
		ID:              g.ID,
		Title:           g.Title,
		Description:     g.Description,
		Category:        string(g.Category),
		Notes:           g.Notes,
		Progress:        g.Progress,
		TargetFrequency: g.TargetFrequency,
		FrequencyPeriod: string(g.FrequencyPeriod),
		TargetValue:     g.TargetValue,
		StartingValue:   g.StartingValue,
		CurrentValue:    g.CurrentValue,
		Unit:            g.Unit,
		Milestones:      milestones,
		Journal:         journal,
		CheckIns:        checkIns,
		Deadline:        g.Deadline,
		Reminder:        g.Reminder,
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
		CompletedAt:     g.CompletedAt,
	}
	if g.Tracking != "" {
		row.TrackingType = sql.NullString{String: string(g.Tracking), Valid: true}
	}
	return row, nil
}

func (r goalRow) toModel() (model.Goal, error) {
	g := model.Goal{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		Category:        model.Category(r.Category),
		Notes:           r.Notes,
		Progress:        r.Progress,
		TargetFrequency: r.TargetFrequency,
		FrequencyPeriod: model.FrequencyPeriod(r.FrequencyPeriod),
		TargetValue:     r.TargetValue,
		StartingValue:   r.StartingValue,
		CurrentValue:    r.CurrentValue,
		Unit:            r.Unit,
		Deadline:        r.Deadline,
		Reminder:        r.Reminder,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		CompletedAt:     r.CompletedAt,
	}
	if r.TrackingType.Valid {
		g.Tracking = model.TrackingType(r.TrackingType.String)
	}

	if len(r.Milestones) > 0 {
		err := json.Unmarshal(r.Milestones, &g.Milestones)
		if err != nil {
			return model.Goal{}, fmt.Errorf("unmarshal milestones for %s: %w", r.ID, err)
		}
	}
	if len(r.Journal) > 0 {
		err := json.Unmarshal(r.Journal, &g.Journal)
		if err != nil {
			return model.Goal{}, fmt.Errorf("unmarshal journal for %s: %w", r.ID, err)
		}
	}
	if len(r.CheckIns) > 0 {
		err := json.Unmarshal(r.CheckIns, &g.CheckIns)
		if err != nil {
			return model.Goal{}, fmt.Errorf("unmarshal check-ins for %s: %w", r.ID, err)
		}
	}
	return g, nil
}

func (r *goalRepository) Load() ([]model.Goal, error) {
	var rows []goalRow
	query := `SELECT * FROM goals ORDER BY created_at DESC`

	err := r.db.Select(&rows, query)
	if err != nil {
		return nil, err
	}

	goals := make([]model.Goal, 0, len(rows))
	for _, row := range rows {
		g, err := row.toModel()
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, nil
}

func (r *goalRepository) Save(g model.Goal) error {
	row, err := toRow(g)
	if err != nil {
		return err
	}

	query := `INSERT INTO goals (
	            id, title, description, category, notes, tracking_type, progress,
	            target_frequency, frequency_period, target_value, starting_value,
	            current_value, unit, milestones, journal, check_ins, deadline,
	            reminder, created_at, updated_at, completed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
	            $15, $16, $17, $18, $19, $20, $21)
	          ON CONFLICT (id) DO UPDATE SET
	            title = excluded.title,
	            description = excluded.description,
	            category = excluded.category,
	            notes = excluded.notes,
	            tracking_type = excluded.tracking_type,
	            progress = excluded.progress,
	            target_frequency = excluded.target_frequency,
	            frequency_period = excluded.frequency_period,
	            target_value = excluded.target_value,
	            starting_value = excluded.starting_value,
	            current_value = excluded.current_value,
	            unit = excluded.unit,
	            milestones = excluded.milestones,
	            journal = excluded.journal,
	            check_ins = excluded.check_ins,
	            deadline = excluded.deadline,
	            reminder = excluded.reminder,
	            updated_at = excluded.updated_at,
	            completed_at = excluded.completed_at`

	_, err = r.db.Exec(query,
		row.ID,
		row.Title,
		row.Description,
		row.Category,
		row.Notes,
		row.TrackingType,
		row.Progress,
		row.TargetFrequency,
		row.FrequencyPeriod,
		row.TargetValue,
		row.StartingValue,
		row.CurrentValue,
		row.Unit,
		row.Milestones,
		row.Journal,
		row.CheckIns,
		row.Deadline,
		row.Reminder,
		row.CreatedAt,
		row.UpdatedAt,
		row.CompletedAt,
	)
	return err
}

func (r *goalRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM goals WHERE id = $1`, id)
	return err
}
