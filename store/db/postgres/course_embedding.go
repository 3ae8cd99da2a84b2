package postgres

import (
	"context"
	"strings"

	"github.com/pgvector/pgvector-go"
	"github.com/pkg/errors"

	"github.com/smartacademy/academy/store"
)

func (d *DB) UpsertCourseEmbedding(ctx context.Context, upsert *store.CourseEmbedding) (*store.CourseEmbedding, error) {
	vector := pgvector.NewVector(upsert.Embedding)

	stmt := `
		INSERT INTO course_embedding (course_id, scoring_field, model, embedding)
		VALUES (` + placeholders(4) + `)
		ON CONFLICT (course_id, scoring_field, model)
		DO UPDATE SET embedding = EXCLUDED.embedding, updated_ts = EXTRACT(EPOCH FROM NOW())
		RETURNING id, created_ts, updated_ts`

	if err := d.db.QueryRowContext(ctx, stmt,
		upsert.CourseID, upsert.ScoringField, upsert.Model, vector,
	).Scan(&upsert.ID, &upsert.CreatedTs, &upsert.UpdatedTs); err != nil {
		return nil, errors.Wrap(err, "failed to upsert course embedding")
	}

	return upsert, nil
}

func (d *DB) ListCourseEmbeddings(ctx context.Context, find *store.FindCourseEmbedding) ([]*store.CourseEmbedding, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.CourseID; v != nil {
		where, args = append(where, "course_embedding.course_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.ScoringField; v != nil {
		where, args = append(where, "course_embedding.scoring_field = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Model; v != nil {
		where, args = append(where, "course_embedding.model = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, course_id, scoring_field, model, embedding, created_ts, updated_ts
		FROM course_embedding
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY course_embedding.course_id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query course embeddings")
	}
	defer rows.Close()

	list := make([]*store.CourseEmbedding, 0)
	for rows.Next() {
		var embedding store.CourseEmbedding
		var vector pgvector.Vector
		if err := rows.Scan(
			&embedding.ID,
			&embedding.CourseID,
			&embedding.ScoringField,
			&embedding.Model,
			&vector,
			&embedding.CreatedTs,
			&embedding.UpdatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan course embedding")
		}
		embedding.Embedding = vector.Slice()
		list = append(list, &embedding)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate course embeddings")
	}

	return list, nil
}

func (d *DB) DeleteCourseEmbedding(ctx context.Context, courseID int32) error {
	stmt := `DELETE FROM course_embedding WHERE course_id = ` + placeholder(1)
	if _, err := d.db.ExecContext(ctx, stmt, courseID); err != nil {
		return errors.Wrap(err, "failed to delete course embedding")
	}
	return nil
}
