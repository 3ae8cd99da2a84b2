package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/smartacademy/academy/store"
)

func (d *DB) ListRecommendations(ctx context.Context, find *store.FindRecommendation) ([]*store.Recommendation, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "recommendation.user_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.CourseID; v != nil {
		where, args = append(where, "recommendation.course_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	// Highest score first; ties broken by course id ascending.
	query := `
		SELECT id, user_id, course_id, similarity_score, created_ts
		FROM recommendation
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY recommendation.similarity_score DESC, recommendation.course_id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Recommendation, 0)
	for rows.Next() {
		var recommendation store.Recommendation
		if err := rows.Scan(
			&recommendation.ID,
			&recommendation.UserID,
			&recommendation.CourseID,
			&recommendation.SimilarityScore,
			&recommendation.CreatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		list = append(list, &recommendation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recommendations: %w", err)
	}

	return list, nil
}

// ReplaceUserRecommendations clears the user's recommendation rows and
// inserts the new set as one transaction. Any failure rolls the whole
// replacement back, leaving the prior set visible.
func (d *DB) ReplaceUserRecommendations(ctx context.Context, userID int32, recommendations []*store.Recommendation) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recommendation WHERE user_id = `+placeholder(1), userID); err != nil {
		return fmt.Errorf("failed to delete recommendations: %w", err)
	}

	for _, recommendation := range recommendations {
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO recommendation (user_id, course_id, similarity_score)
			VALUES (`+placeholders(3)+`)
			RETURNING id, created_ts`,
			userID, recommendation.CourseID, recommendation.SimilarityScore,
		).Scan(&recommendation.ID, &recommendation.CreatedTs); err != nil {
			return fmt.Errorf("failed to insert recommendation: %w", err)
		}
		recommendation.UserID = userID
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recommendations: %w", err)
	}

	return nil
}

func (d *DB) DeleteUserRecommendations(ctx context.Context, userID int32) error {
	stmt := `DELETE FROM recommendation WHERE user_id = ` + placeholder(1)
	if _, err := d.db.ExecContext(ctx, stmt, userID); err != nil {
		return fmt.Errorf("failed to delete recommendations: %w", err)
	}
	return nil
}
