package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

const (
	roomSelect = `
		SELECT r.id, r.name, r.description, r.created_at, r.updated_at,
			h.id, h.username, h.name, h.avatar,
			t.id, t.name
		FROM rooms r
		LEFT JOIN users h ON h.id = r.host_id
		LEFT JOIN topics t ON t.id = r.topic_id`
	roomOrder = " ORDER BY r.updated_at DESC, r.created_at DESC"

	listRoomsQuery = roomSelect + `
		WHERE $1::text = ''
			OR strpos(lower(r.name), lower($1)) > 0
			OR strpos(lower(r.description), lower($1)) > 0
			OR strpos(lower(t.name), lower($1)) > 0` + roomOrder
	listRoomsByHostQuery = roomSelect + " WHERE r.host_id = $1" + roomOrder
	getRoomByIdQuery     = roomSelect + " WHERE r.id = $1 LIMIT 1"
	countRoomsQuery      = "SELECT COUNT(*) FROM rooms"

	listParticipantsQuery = `
		SELECT rp.room_id, u.id, u.username, u.name, u.avatar
		FROM room_participants rp
		JOIN users u ON u.id = rp.user_id
		WHERE rp.room_id = ANY($1)
		ORDER BY u.id`

	createRoomQuery = "INSERT INTO rooms (host_id, topic_id, name, description, created_at, updated_at) " +
		"VALUES ($1, $2, $3, $4, $5, $5) RETURNING id"
	updateRoomQuery = "UPDATE rooms SET topic_id = $2, name = $3, description = $4, updated_at = $5 " +
		"WHERE id = $1"

	deleteRoomParticipantsQuery = "DELETE FROM room_participants WHERE room_id = $1"
	deleteRoomMessagesQuery     = "DELETE FROM messages WHERE room_id = $1"
	deleteRoomQuery             = "DELETE FROM rooms WHERE id = $1"
)

func scanRoom(row rowScanner) (Room, error) {
	var (
		room       Room
		hostId     sql.NullInt64
		hostName   sql.NullString
		hostFull   sql.NullString
		hostAvatar sql.NullString
		topicId    sql.NullInt64
		topicName  sql.NullString
	)

	err := row.Scan(
		&room.Id,
		&room.Name,
		&room.Description,
		&room.CreatedAt,
		&room.UpdatedAt,
		&hostId,
		&hostName,
		&hostFull,
		&hostAvatar,
		&topicId,
		&topicName,
	)
	if err != nil {
		return Room{}, err
	}

	if hostId.Valid {
		room.Host = &User{
			Id:       int(hostId.Int64),
			Username: hostName.String,
			Name:     hostFull.String,
			Avatar:   hostAvatar.String,
		}
	}

	if topicId.Valid {
		room.Topic = &Topic{
			Id:   int(topicId.Int64),
			Name: topicName.String,
		}
	}

	return room, nil
}

func (db *PgForumRepository) queryRooms(ctx context.Context, query string, args ...any) ([]Room, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}

		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

func (db *PgForumRepository) ListRooms(ctx context.Context, q string) ([]Room, error) {
	rooms, err := db.queryRooms(ctx, listRoomsQuery, q)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	return rooms, nil
}

func (db *PgForumRepository) ListRoomsByHost(ctx context.Context, userId int) ([]Room, error) {
	rooms, err := db.queryRooms(ctx, listRoomsByHostQuery, userId)
	if err != nil {
		return nil, fmt.Errorf("list rooms by host: %w", err)
	}

	return rooms, nil
}

func (db *PgForumRepository) CountRooms(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, countRoomsQuery).Scan(&count)

	return count, err
}

func (db *PgForumRepository) GetRoomById(ctx context.Context, id int) (Room, error) {
	return scanRoom(db.conn.QueryRowContext(ctx, getRoomByIdQuery, id))
}

// ListParticipants returns the participants of each requested room keyed by
// room id. Rooms without participants are absent from the map.
func (db *PgForumRepository) ListParticipants(ctx context.Context, roomIds ...int) (map[int][]User, error) {
	participants := make(map[int][]User, len(roomIds))
	if len(roomIds) == 0 {
		return participants, nil
	}

	ids := make([]int64, len(roomIds))
	for i, id := range roomIds {
		ids[i] = int64(id)
	}

	rows, err := db.conn.QueryContext(ctx, listParticipantsQuery, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			roomId int
			u      User
		)
		if err := rows.Scan(&roomId, &u.Id, &u.Username, &u.Name, &u.Avatar); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}

		participants[roomId] = append(participants[roomId], u)
	}

	return participants, rows.Err()
}

func (db *PgForumRepository) CreateRoom(ctx context.Context, params CreateRoomParams) (Room, error) {
	var id int
	err := db.conn.QueryRowContext(ctx,
		createRoomQuery,
		params.HostId,
		params.TopicId,
		params.Name,
		params.Description,
		time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return Room{}, fmt.Errorf("create room: %w", err)
	}

	return db.GetRoomById(ctx, id)
}

func (db *PgForumRepository) UpdateRoom(ctx context.Context, params UpdateRoomParams) (Room, error) {
	res, err := db.conn.ExecContext(ctx,
		updateRoomQuery,
		params.RoomId,
		params.TopicId,
		params.Name,
		params.Description,
		time.Now().UTC(),
	)
	if err != nil {
		return Room{}, fmt.Errorf("update room: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Room{}, sql.ErrNoRows
	}

	return db.GetRoomById(ctx, params.RoomId)
}

func (db *PgForumRepository) DeleteRoom(ctx context.Context, id int) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, deleteRoomParticipantsQuery, id)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, deleteRoomMessagesQuery, id)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, deleteRoomQuery, id)
	if err != nil {
		return err
	}

	return tx.Commit()
}
