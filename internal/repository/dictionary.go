package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type DictionaryRepository interface {
	Count(ctx context.Context) (int, error)
	SaveAll(ctx context.Context, words []string) error
	Words(ctx context.Context) ([]string, error)
}

type dictionaryRepository struct {
	conn *sql.DB
}

func NewDictionaryRepository(conn *sql.DB) DictionaryRepository {
	return &dictionaryRepository{
		conn: conn,
	}
}

func (that *dictionaryRepository) Count(ctx context.Context) (int, error) {
	var count int

	err := that.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM words`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("can't count words: %w", err)
	}

	return count, nil
}

// SaveAll inserts words in one transaction. Words already stored are skipped.
func (that *dictionaryRepository) SaveAll(ctx context.Context, words []string) error {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words (word) VALUES (?)`)
	if err != nil {
		return fmt.Errorf("can't prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, word := range words {
		if _, err = stmt.ExecContext(ctx, word); err != nil {
			return fmt.Errorf("can't save word %q: %w", word, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit words: %w", err)
	}

	return nil
}

// Words returns the stored words in insertion order.
func (that *dictionaryRepository) Words(ctx context.Context) ([]string, error) {
	rows, err := that.conn.QueryContext(ctx, `SELECT word FROM words ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("can't list words: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var word string
		if err = rows.Scan(&word); err != nil {
			return nil, fmt.Errorf("can't scan word: %w", err)
		}
		words = append(words, word)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't list words: %w", err)
	}

	return words, nil
}
