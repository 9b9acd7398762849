package database

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockForumRepository struct {
	mock.Mock
}

func (m *MockForumRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockForumRepository) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockForumRepository) UpdateUser(ctx context.Context, params UpdateUserParams) (User, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockForumRepository) GetUserById(ctx context.Context, id int) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockForumRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockForumRepository) GetOrCreateTopic(ctx context.Context, name string) (Topic, bool, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(Topic), args.Bool(1), args.Error(2)
}
func (m *MockForumRepository) ListTopics(ctx context.Context, q string, limit int) ([]Topic, error) {
	args := m.Called(ctx, q, limit)
	return args.Get(0).([]Topic), args.Error(1)
}
func (m *MockForumRepository) ListRooms(ctx context.Context, q string) ([]Room, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]Room), args.Error(1)
}
func (m *MockForumRepository) ListRoomsByHost(ctx context.Context, userId int) ([]Room, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).([]Room), args.Error(1)
}
func (m *MockForumRepository) CountRooms(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *MockForumRepository) GetRoomById(ctx context.Context, id int) (Room, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Room), args.Error(1)
}
func (m *MockForumRepository) ListParticipants(ctx context.Context, roomIds ...int) (map[int][]User, error) {
	args := m.Called(ctx, roomIds)
	return args.Get(0).(map[int][]User), args.Error(1)
}
func (m *MockForumRepository) CreateRoom(ctx context.Context, params CreateRoomParams) (Room, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(Room), args.Error(1)
}
func (m *MockForumRepository) UpdateRoom(ctx context.Context, params UpdateRoomParams) (Room, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(Room), args.Error(1)
}
func (m *MockForumRepository) DeleteRoom(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockForumRepository) ListMessages(ctx context.Context) ([]Message, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockForumRepository) ListMessagesByTopicName(ctx context.Context, q string) ([]Message, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockForumRepository) ListRoomMessages(ctx context.Context, roomId int) ([]Message, error) {
	args := m.Called(ctx, roomId)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockForumRepository) ListUserMessages(ctx context.Context, userId int) ([]Message, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockForumRepository) GetMessageById(ctx context.Context, id int) (Message, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockForumRepository) CreateMessage(ctx context.Context, params CreateMessageParams) (Message, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockForumRepository) DeleteMessage(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
