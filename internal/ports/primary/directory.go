package primary

import (
	"context"
	"time"
)

// DirectoryService defines the primary port for the local user and offer directory.
type DirectoryService interface {
	// AddUser registers a user.
	AddUser(ctx context.Context, req AddUserRequest) (*User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID int64) (*User, error)

	// AddOffer lists a new offer owned by an existing user.
	AddOffer(ctx context.Context, req AddOfferRequest) (*Offer, error)

	// GetOffer retrieves an offer by ID.
	GetOffer(ctx context.Context, offerID int64) (*Offer, error)

	// DeactivateOffer unlists an offer. Messages keep their reference to it.
	DeactivateOffer(ctx context.Context, offerID int64) error
}

// AddUserRequest contains parameters for registering a user.
type AddUserRequest struct {
	Username  string
	FullName  string
	AvatarRef string
}

// AddOfferRequest contains parameters for listing an offer.
type AddOfferRequest struct {
	OwnerID int64
	Title   string
}

// User represents a directory user at the port boundary.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name,omitempty"`
	AvatarRef string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Offer represents a directory offer at the port boundary.
type Offer struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Title     string    `json:"title"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
