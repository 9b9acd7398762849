package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const (
	// The insert and the fallback select share one statement snapshot, so a
	// name inserted concurrently by another transaction can yield no row.
	getOrCreateTopicQuery = `
		WITH inserted AS (
			INSERT INTO topics (name) VALUES ($1)
			ON CONFLICT (name) DO NOTHING
			RETURNING id, name
		)
		SELECT id, name, true FROM inserted
		UNION ALL
		SELECT id, name, false FROM topics WHERE name = $1
		LIMIT 1`
	getTopicByNameQuery = "SELECT id, name FROM topics WHERE name = $1 LIMIT 1"
	listTopicsQuery     = `
		SELECT t.id, t.name, COUNT(r.id)
		FROM topics t
		LEFT JOIN rooms r ON r.topic_id = t.id
		WHERE $1::text = '' OR strpos(lower(t.name), lower($1)) > 0
		GROUP BY t.id, t.name
		ORDER BY t.id`
)

func (db *PgForumRepository) GetOrCreateTopic(ctx context.Context, name string) (Topic, bool, error) {
	var (
		topic   Topic
		created bool
	)

	err := db.conn.QueryRowContext(ctx, getOrCreateTopicQuery, name).Scan(&topic.Id, &topic.Name, &created)
	if errors.Is(err, sql.ErrNoRows) {
		err = db.conn.QueryRowContext(ctx, getTopicByNameQuery, name).Scan(&topic.Id, &topic.Name)
	}
	if err != nil {
		return Topic{}, false, fmt.Errorf("get or create topic %q: %w", name, err)
	}

	return topic, created, nil
}

func (db *PgForumRepository) ListTopics(ctx context.Context, q string, limit int) ([]Topic, error) {
	query := listTopicsQuery
	args := []any{q}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	topics := make([]Topic, 0)
	for rows.Next() {
		var t Topic
		if err := rows.Scan(&t.Id, &t.Name, &t.RoomCount); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}

		topics = append(topics, t)
	}

	return topics, rows.Err()
}
