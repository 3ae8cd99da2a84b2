package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/smartacademy/academy/store"
)

func (d *DB) ListInterests(ctx context.Context, find *store.FindInterest) ([]*store.Interest, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "interest.user_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, user_id, text
		FROM interest
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY interest.id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query interests: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Interest, 0)
	for rows.Next() {
		var interest store.Interest
		if err := rows.Scan(&interest.ID, &interest.UserID, &interest.Text); err != nil {
			return nil, fmt.Errorf("failed to scan interest: %w", err)
		}
		list = append(list, &interest)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interests: %w", err)
	}

	return list, nil
}

// ReplaceUserInterests deletes the user's interest rows and inserts the new
// set inside one transaction, so readers never observe a partial set.
func (d *DB) ReplaceUserInterests(ctx context.Context, userID int32, texts []string) ([]*store.Interest, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM interest WHERE user_id = `+placeholder(1), userID); err != nil {
		return nil, fmt.Errorf("failed to delete interests: %w", err)
	}

	list := make([]*store.Interest, 0, len(texts))
	for _, text := range texts {
		interest := store.Interest{UserID: userID, Text: text}
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO interest (user_id, text) VALUES (`+placeholders(2)+`) RETURNING id`,
			userID, text,
		).Scan(&interest.ID); err != nil {
			return nil, fmt.Errorf("failed to insert interest: %w", err)
		}
		list = append(list, &interest)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit interests: %w", err)
	}

	return list, nil
}
