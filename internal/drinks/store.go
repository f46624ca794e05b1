package drinks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no drink exists under the requested id.
var ErrNotFound = errors.New("drink not found")

const schema = `
CREATE TABLE IF NOT EXISTS drinks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL UNIQUE,
	recipe TEXT NOT NULL
)`

// Store persists drinks in a SQLite database. Recipes are stored as JSON
// text next to the unique title.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the drinks database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// List returns every drink ordered by id.
func (s *Store) List(ctx context.Context) ([]Drink, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT id, title, recipe FROM drinks ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("listing drinks: %w", err)
	}
	defer rows.Close()

	var all []Drink
	for rows.Next() {
		drink, err := scanDrink(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, drink)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing drinks: %w", err)
	}
	return all, nil
}

// Get returns the drink with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (Drink, error) {
	if err := ctx.Err(); err != nil {
		return Drink{}, err
	}

	row := s.db.QueryRowContext(ctx, "SELECT id, title, recipe FROM drinks WHERE id = ?", id)
	drink, err := scanDrink(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Drink{}, ErrNotFound
	}
	if err != nil {
		return Drink{}, err
	}
	return drink, nil
}

// Insert stores a new drink and fills in its assigned id.
func (s *Store) Insert(ctx context.Context, drink *Drink) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	recipe, err := json.Marshal(drink.Recipe)
	if err != nil {
		return fmt.Errorf("encoding recipe: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO drinks (title, recipe) VALUES (?, ?)", drink.Title, string(recipe))
	if err != nil {
		return fmt.Errorf("inserting drink: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("inserting drink: %w", err)
	}
	drink.ID = id
	return nil
}

// Update overwrites the stored title and recipe of the drink, or returns
// ErrNotFound.
func (s *Store) Update(ctx context.Context, drink *Drink) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	recipe, err := json.Marshal(drink.Recipe)
	if err != nil {
		return fmt.Errorf("encoding recipe: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE drinks SET title = ?, recipe = ? WHERE id = ?", drink.Title, string(recipe), drink.ID)
	if err != nil {
		return fmt.Errorf("updating drink: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating drink: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the drink with the given id, or returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM drinks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting drink: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting drink: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDrink(row rowScanner) (Drink, error) {
	var drink Drink
	var recipe string
	if err := row.Scan(&drink.ID, &drink.Title, &recipe); err != nil {
		return Drink{}, err
	}
	if err := json.Unmarshal([]byte(recipe), &drink.Recipe); err != nil {
		return Drink{}, fmt.Errorf("decoding recipe: %w", err)
	}
	return drink, nil
}
