package database

import (
	"context"
	"fmt"
	"time"
)

const (
	messageSelect = `
		SELECT m.id, m.body, m.created_at, m.updated_at,
			u.id, u.username, u.name, u.avatar,
			r.id, r.name
		FROM messages m
		JOIN users u ON u.id = m.user_id
		JOIN rooms r ON r.id = m.room_id`
	messageOrder = " ORDER BY m.updated_at DESC, m.created_at DESC"

	listMessagesQuery            = messageSelect + messageOrder
	listMessagesByTopicNameQuery = messageSelect + `
		JOIN topics t ON t.id = r.topic_id
		WHERE strpos(lower(t.name), lower($1::text)) > 0` + messageOrder
	listRoomMessagesQuery = messageSelect + " WHERE m.room_id = $1 ORDER BY m.created_at DESC"
	listUserMessagesQuery = messageSelect + " WHERE m.user_id = $1" + messageOrder
	getMessageByIdQuery   = messageSelect + " WHERE m.id = $1 LIMIT 1"

	createMessageQuery = "INSERT INTO messages (user_id, room_id, body, created_at, updated_at) " +
		"VALUES ($1, $2, $3, $4, $4) RETURNING id"
	addParticipantQuery = "INSERT INTO room_participants (room_id, user_id) VALUES ($1, $2) " +
		"ON CONFLICT DO NOTHING"
	deleteMessageQuery = "DELETE FROM messages WHERE id = $1"
)

func scanMessage(row rowScanner) (Message, error) {
	var msg Message
	err := row.Scan(
		&msg.Id,
		&msg.Body,
		&msg.CreatedAt,
		&msg.UpdatedAt,
		&msg.User.Id,
		&msg.User.Username,
		&msg.User.Name,
		&msg.User.Avatar,
		&msg.Room.Id,
		&msg.Room.Name,
	)

	return msg, err
}

func (db *PgForumRepository) queryMessages(ctx context.Context, query string, args ...any) ([]Message, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]Message, 0)
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}

		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

func (db *PgForumRepository) ListMessages(ctx context.Context) ([]Message, error) {
	messages, err := db.queryMessages(ctx, listMessagesQuery)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	return messages, nil
}

// ListMessagesByTopicName returns messages posted in rooms whose topic name
// contains q, ignoring case. Rooms without a topic never match.
func (db *PgForumRepository) ListMessagesByTopicName(ctx context.Context, q string) ([]Message, error) {
	messages, err := db.queryMessages(ctx, listMessagesByTopicNameQuery, q)
	if err != nil {
		return nil, fmt.Errorf("list messages by topic: %w", err)
	}

	return messages, nil
}

func (db *PgForumRepository) ListRoomMessages(ctx context.Context, roomId int) ([]Message, error) {
	messages, err := db.queryMessages(ctx, listRoomMessagesQuery, roomId)
	if err != nil {
		return nil, fmt.Errorf("list room messages: %w", err)
	}

	return messages, nil
}

func (db *PgForumRepository) ListUserMessages(ctx context.Context, userId int) ([]Message, error) {
	messages, err := db.queryMessages(ctx, listUserMessagesQuery, userId)
	if err != nil {
		return nil, fmt.Errorf("list user messages: %w", err)
	}

	return messages, nil
}

func (db *PgForumRepository) GetMessageById(ctx context.Context, id int) (Message, error) {
	return scanMessage(db.conn.QueryRowContext(ctx, getMessageByIdQuery, id))
}

// CreateMessage stores the message and adds its author to the room's
// participants in one transaction.
func (db *PgForumRepository) CreateMessage(ctx context.Context, params CreateMessageParams) (Message, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return Message{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var id int
	err = tx.QueryRowContext(ctx,
		createMessageQuery,
		params.UserId,
		params.RoomId,
		params.Body,
		time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return Message{}, fmt.Errorf("create message: %w", err)
	}

	_, err = tx.ExecContext(ctx, addParticipantQuery, params.RoomId, params.UserId)
	if err != nil {
		return Message{}, fmt.Errorf("add participant: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return Message{}, err
	}

	return db.GetMessageById(ctx, id)
}

func (db *PgForumRepository) DeleteMessage(ctx context.Context, id int) error {
	_, err := db.conn.ExecContext(ctx, deleteMessageQuery, id)

	return err
}
