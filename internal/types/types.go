package types

import (
	"time"

	"github.com/npezzotti/forum/internal/database"
)

type UserRef struct {
	Id       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type TopicRef struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

type Room struct {
	Id           int       `json:"id"`
	Host         *UserRef  `json:"host"`
	Topic        *TopicRef `json:"topic"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Participants []UserRef `json:"participants"`
	Updated      time.Time `json:"updated"`
	Created      time.Time `json:"created"`
}

func NewUserRef(u database.User) UserRef {
	return UserRef{
		Id:       u.Id,
		Username: u.Username,
		Name:     u.Name,
	}
}

func NewRoom(r database.Room) Room {
	room := Room{
		Id:           r.Id,
		Name:         r.Name,
		Description:  r.Description,
		Participants: make([]UserRef, 0, len(r.Participants)),
		Updated:      r.UpdatedAt,
		Created:      r.CreatedAt,
	}

	if r.Host != nil {
		host := NewUserRef(*r.Host)
		room.Host = &host
	}

	if r.Topic != nil {
		room.Topic = &TopicRef{
			Id:   r.Topic.Id,
			Name: r.Topic.Name,
		}
	}

	for _, p := range r.Participants {
		room.Participants = append(room.Participants, NewUserRef(p))
	}

	return room
}
