package database

import "time"

const DefaultAvatar = "avatar.svg"

type User struct {
	Id           int
	Username     string
	Name         string
	EmailAddress string
	Bio          string
	Avatar       string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Topic struct {
	Id        int
	Name      string
	RoomCount int
}

// Room is a topic-tagged discussion space. Host and Topic are nil when the
// referenced record no longer exists.
type Room struct {
	Id           int
	Name         string
	Description  string
	Host         *User
	Topic        *Topic
	Participants []User
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsHost reports whether userId owns the room.
func (r Room) IsHost(userId int) bool {
	return r.Host != nil && r.Host.Id == userId
}

// Message carries a partially populated author and room, enough for listings.
type Message struct {
	Id        int
	Body      string
	User      User
	Room      Room
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateUserParams struct {
	Username     string
	Name         string
	EmailAddress string
	PasswordHash string
}

type UpdateUserParams struct {
	UserId       int
	Username     string
	Name         string
	EmailAddress string
	Bio          string
	Avatar       string
}

type CreateRoomParams struct {
	HostId      int
	TopicId     int
	Name        string
	Description string
}

type UpdateRoomParams struct {
	RoomId      int
	TopicId     int
	Name        string
	Description string
}

type CreateMessageParams struct {
	UserId int
	RoomId int
	Body   string
}
