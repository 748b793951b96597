package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/example/barter/internal/core/messaging"
	"github.com/example/barter/internal/ports/secondary"
)

// UserRepository implements secondary.UserRepository with SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user and writes the assigned ID back.
func (r *UserRepository) Create(ctx context.Context, user *secondary.UserRecord) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (username, full_name, avatar_ref, created_at) VALUES (?, ?, ?, ?) RETURNING id",
		user.Username, user.FullName, user.AvatarRef, user.CreatedAt.UnixNano(),
	).Scan(&user.ID)
	if isUniqueViolation(err) {
		return &messaging.ValidationError{Field: "username", Reason: "\"" + user.Username + "\" is already taken"}
	}
	if err != nil {
		return storeError("create user", err)
	}

	return nil
}

// GetByID retrieves a user by its ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*secondary.UserRecord, error) {
	var createdAt int64

	record := &secondary.UserRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, username, full_name, avatar_ref, created_at FROM users WHERE id = ?",
		id,
	).Scan(&record.ID, &record.Username, &record.FullName, &record.AvatarRef, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, &messaging.NotFoundError{Entity: "user", ID: id}
	}
	if err != nil {
		return nil, storeError("get user", err)
	}

	record.CreatedAt = time.Unix(0, createdAt).UTC()

	return record, nil
}

// Exists reports whether a user with the given ID is registered.
func (r *UserRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE id = ?", userID).Scan(&count)
	if err != nil {
		return false, storeError("check user existence", err)
	}
	return count > 0, nil
}

// GetDisplayInfo returns the user's display attributes, or nil for an unknown user.
func (r *UserRepository) GetDisplayInfo(ctx context.Context, userID int64) (*secondary.DisplayInfo, error) {
	info := &secondary.DisplayInfo{}
	err := r.db.QueryRowContext(ctx,
		"SELECT username, avatar_ref, full_name FROM users WHERE id = ?",
		userID,
	).Scan(&info.Username, &info.AvatarRef, &info.FullName)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError("get display info", err)
	}

	return info, nil
}

// UsernameTaken reports whether a username is already registered.
func (r *UserRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&count)
	if err != nil {
		return false, storeError("check username", err)
	}
	return count > 0, nil
}

// Ensure UserRepository implements the interface.
var _ secondary.UserRepository = (*UserRepository)(nil)
