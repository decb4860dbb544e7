package repository

import (
	"github.com/jmoiron/sqlx"
)

// OrderRepository is the local ordering store. Presentation order lives
// in its own table, apart from the goal records: reordering never
// touches a goal row or its timestamps.
type OrderRepository interface {
	Order() ([]string, error)
	SetOrder(ids []string) error
}

type orderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Order() ([]string, error) {
	var ids []string
	query := `SELECT goal_id FROM goal_order ORDER BY position ASC`

	err := r.db.Select(&ids, query)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *orderRepository) SetOrder(ids []string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM goal_order`)
	if err != nil {
		return err
	}

	for i, id := range ids {
		_, err = tx.Exec(`INSERT INTO goal_order (position, goal_id) VALUES ($1, $2)`, i, id)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
