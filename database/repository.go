package database

import (
	"database/sql"
	"errors"
	"fmt"

	"content-provider/models"
	"content-provider/provider"
	"content-provider/validator"
)

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// cheeseTable runs the cheese statements against a connection or a transaction
type cheeseTable struct {
	q        queryer
	validate *validator.Validator
}

// Repository is the table store behind the provider
type Repository struct {
	cheeseTable
	db *DB
}

var _ provider.TableStore = (*Repository)(nil)

func NewRepository(db *DB) *Repository {
	return &Repository{
		cheeseTable: cheeseTable{q: db.DB, validate: validator.New()},
		db:          db,
	}
}

// Begin starts a write transaction
func (r *Repository) Begin() (provider.Transaction, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{
		cheeseTable: cheeseTable{q: tx, validate: r.validate},
		tx:          tx,
	}, nil
}

// InsertAll inserts every cheese in one transaction and returns the new ids
func (r *Repository) InsertAll(cheeses []models.Cheese) ([]int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	table := cheeseTable{q: tx, validate: r.validate}
	ids, err := table.insertRows(cheeses)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return ids, nil
}

// Count returns the number of rows in the cheeses table
func (r *Repository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM cheeses").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Tx is a Repository view bound to one transaction
type Tx struct {
	cheeseTable
	tx *sql.Tx
}

var _ provider.Transaction = (*Tx)(nil)

// InsertAll inserts every cheese inside the enclosing transaction
func (t *Tx) InsertAll(cheeses []models.Cheese) ([]int64, error) {
	return t.insertRows(cheeses)
}

func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction. Rolling back a finished transaction
// is a no-op.
func (t *Tx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

// ==================== CHEESE OPERATIONS ====================

// SelectAll returns every cheese in rowid order
func (t cheeseTable) SelectAll() ([]models.Cheese, error) {
	rows, err := t.q.Query(`
		SELECT _id, name
		FROM cheeses
		ORDER BY _id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	cheeses := make([]models.Cheese, 0)
	for rows.Next() {
		var cheese models.Cheese
		if err := rows.Scan(&cheese.ID, &cheese.Name); err != nil {
			return nil, err
		}
		cheeses = append(cheeses, cheese)
	}

	return cheeses, rows.Err()
}

// SelectByID returns the cheese with the given id, or an empty slice
func (t cheeseTable) SelectByID(id int64) ([]models.Cheese, error) {
	var cheese models.Cheese
	err := t.q.QueryRow(`
		SELECT _id, name
		FROM cheeses
		WHERE _id = ?
	`, id).Scan(&cheese.ID, &cheese.Name)

	if err == sql.ErrNoRows {
		return []models.Cheese{}, nil
	}
	if err != nil {
		return nil, err
	}

	return []models.Cheese{cheese}, nil
}

// Insert stores cheese, sets its ID and returns it
func (t cheeseTable) Insert(cheese *models.Cheese) (int64, error) {
	if err := t.validate.Validate(cheese); err != nil {
		return 0, fmt.Errorf("invalid cheese: %w", err)
	}

	res, err := t.q.Exec(`INSERT INTO cheeses (name) VALUES (?)`, cheese.Name)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	cheese.ID = id
	return id, nil
}

// Update rewrites the cheese with cheese.ID and returns the rows affected.
// A payload for a missing id matches no row and is not validated.
func (t cheeseTable) Update(cheese models.Cheese) (int64, error) {
	if err := t.validate.Validate(&cheese); err != nil {
		exists, existsErr := t.exists(cheese.ID)
		if existsErr != nil {
			return 0, existsErr
		}
		if !exists {
			return 0, nil
		}
		return 0, fmt.Errorf("invalid cheese: %w", err)
	}

	res, err := t.q.Exec(`
		UPDATE cheeses SET
			name = ?
		WHERE _id = ?
	`, cheese.Name, cheese.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (t cheeseTable) exists(id int64) (bool, error) {
	var found int
	err := t.q.QueryRow("SELECT 1 FROM cheeses WHERE _id = ?", id).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteByID removes the cheese with the given id and returns the rows affected
func (t cheeseTable) DeleteByID(id int64) (int64, error) {
	res, err := t.q.Exec("DELETE FROM cheeses WHERE _id = ?", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (t cheeseTable) insertRows(cheeses []models.Cheese) ([]int64, error) {
	ids := make([]int64, 0, len(cheeses))
	for i := range cheeses {
		cheese := cheeses[i]
		id, err := t.Insert(&cheese)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
