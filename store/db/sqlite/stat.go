package sqlite

import (
	"context"
	"fmt"

	"github.com/smartacademy/academy/store"
)

func (d *DB) GetInterestFrequency(ctx context.Context) ([]*store.Frequency, error) {
	// Case-sensitive grouping on the stored text.
	query := `
		SELECT text, COUNT(*) AS count
		FROM interest
		GROUP BY text
		ORDER BY count DESC, text ASC`

	return d.queryFrequencies(ctx, query)
}

func (d *DB) GetRecommendationFrequency(ctx context.Context) ([]*store.Frequency, error) {
	query := `
		SELECT course.title, COUNT(*) AS count
		FROM recommendation
		JOIN course ON course.id = recommendation.course_id
		GROUP BY course.title
		ORDER BY count DESC, course.title ASC`

	return d.queryFrequencies(ctx, query)
}

func (d *DB) queryFrequencies(ctx context.Context, query string) ([]*store.Frequency, error) {
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query frequencies: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Frequency, 0)
	for rows.Next() {
		var frequency store.Frequency
		if err := rows.Scan(&frequency.Label, &frequency.Count); err != nil {
			return nil, fmt.Errorf("failed to scan frequency: %w", err)
		}
		list = append(list, &frequency)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate frequencies: %w", err)
	}

	return list, nil
}
