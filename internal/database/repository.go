package database

import (
	"context"
	"errors"
)

// ErrDuplicateEmail is returned when an account already uses the email address.
var ErrDuplicateEmail = errors.New("email address already in use")

type UserRepository interface {
	CreateUser(ctx context.Context, params CreateUserParams) (User, error)
	UpdateUser(ctx context.Context, params UpdateUserParams) (User, error)
	GetUserById(ctx context.Context, id int) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

type TopicRepository interface {
	// GetOrCreateTopic returns the topic with the exact name, inserting it
	// first if needed. created reports whether this call inserted it.
	GetOrCreateTopic(ctx context.Context, name string) (topic Topic, created bool, err error)
	// ListTopics returns topics whose name contains q, ignoring case. A limit
	// of zero or less returns every match.
	ListTopics(ctx context.Context, q string, limit int) ([]Topic, error)
}

type RoomRepository interface {
	ListRooms(ctx context.Context, q string) ([]Room, error)
	ListRoomsByHost(ctx context.Context, userId int) ([]Room, error)
	CountRooms(ctx context.Context) (int, error)
	GetRoomById(ctx context.Context, id int) (Room, error)
	ListParticipants(ctx context.Context, roomIds ...int) (map[int][]User, error)
	CreateRoom(ctx context.Context, params CreateRoomParams) (Room, error)
	UpdateRoom(ctx context.Context, params UpdateRoomParams) (Room, error)
	DeleteRoom(ctx context.Context, id int) error
}

type MessageRepository interface {
	ListMessages(ctx context.Context) ([]Message, error)
	ListMessagesByTopicName(ctx context.Context, q string) ([]Message, error)
	ListRoomMessages(ctx context.Context, roomId int) ([]Message, error)
	ListUserMessages(ctx context.Context, userId int) ([]Message, error)
	GetMessageById(ctx context.Context, id int) (Message, error)
	CreateMessage(ctx context.Context, params CreateMessageParams) (Message, error)
	DeleteMessage(ctx context.Context, id int) error
}

type ForumRepository interface {
	Ping() error
	UserRepository
	TopicRepository
	RoomRepository
	MessageRepository
}
