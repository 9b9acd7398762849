package database

import (
	"context"
	"time"
)

const (
	userColumns = "id, username, name, email, bio, avatar, password_hash, created_at, updated_at"

	createUserQuery = "INSERT INTO users (username, name, email, password_hash, created_at, updated_at) " +
		"VALUES ($1, $2, $3, $4, $5, $5) RETURNING " + userColumns
	updateUserQuery = "UPDATE users SET username = $2, name = $3, email = $4, bio = $5, avatar = $6, updated_at = $7 " +
		"WHERE id = $1 RETURNING " + userColumns
	getUserByIdQuery    = "SELECT " + userColumns + " FROM users WHERE id = $1 LIMIT 1"
	getUserByEmailQuery = "SELECT " + userColumns + " FROM users WHERE email = $1 LIMIT 1"

	usersEmailConstraint = "users_email_key"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var u User
	err := row.Scan(
		&u.Id,
		&u.Username,
		&u.Name,
		&u.EmailAddress,
		&u.Bio,
		&u.Avatar,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

func (db *PgForumRepository) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	row := db.conn.QueryRowContext(ctx,
		createUserQuery,
		params.Username,
		params.Name,
		params.EmailAddress,
		params.PasswordHash,
		time.Now().UTC(),
	)

	u, err := scanUser(row)
	if isUniqueViolation(err, usersEmailConstraint) {
		return User{}, ErrDuplicateEmail
	}

	return u, err
}

func (db *PgForumRepository) UpdateUser(ctx context.Context, params UpdateUserParams) (User, error) {
	row := db.conn.QueryRowContext(ctx,
		updateUserQuery,
		params.UserId,
		params.Username,
		params.Name,
		params.EmailAddress,
		params.Bio,
		params.Avatar,
		time.Now().UTC(),
	)

	u, err := scanUser(row)
	if isUniqueViolation(err, usersEmailConstraint) {
		return User{}, ErrDuplicateEmail
	}

	return u, err
}

func (db *PgForumRepository) GetUserById(ctx context.Context, id int) (User, error) {
	return scanUser(db.conn.QueryRowContext(ctx, getUserByIdQuery, id))
}

func (db *PgForumRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(db.conn.QueryRowContext(ctx, getUserByEmailQuery, email))
}
