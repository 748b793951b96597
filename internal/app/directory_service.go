package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/barter/internal/core/messaging"
	"github.com/example/barter/internal/ports/primary"
	"github.com/example/barter/internal/ports/secondary"
)

// DirectoryServiceImpl implements the DirectoryService interface.
type DirectoryServiceImpl struct {
	userRepo  secondary.UserRepository
	offerRepo secondary.OfferRepository
}

// NewDirectoryService creates a new DirectoryService with injected dependencies.
func NewDirectoryService(userRepo secondary.UserRepository, offerRepo secondary.OfferRepository) *DirectoryServiceImpl {
	return &DirectoryServiceImpl{
		userRepo:  userRepo,
		offerRepo: offerRepo,
	}
}

// AddUser registers a new user.
func (s *DirectoryServiceImpl) AddUser(ctx context.Context, req primary.AddUserRequest) (*primary.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, &messaging.ValidationError{Field: "username", Reason: "cannot be empty"}
	}

	taken, err := s.userRepo.UsernameTaken(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, &messaging.ValidationError{Field: "username", Reason: fmt.Sprintf("%q is already taken", username)}
	}

	record := &secondary.UserRecord{
		Username:  username,
		FullName:  strings.TrimSpace(req.FullName),
		AvatarRef: strings.TrimSpace(req.AvatarRef),
	}
	if err := s.userRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return recordToUser(record), nil
}

// GetUser retrieves a user by ID.
func (s *DirectoryServiceImpl) GetUser(ctx context.Context, userID int64) (*primary.User, error) {
	record, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return recordToUser(record), nil
}

// AddOffer lists a new offer for an existing user.
func (s *DirectoryServiceImpl) AddOffer(ctx context.Context, req primary.AddOfferRequest) (*primary.Offer, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, &messaging.ValidationError{Field: "title", Reason: "cannot be empty"}
	}

	exists, err := s.userRepo.Exists(ctx, req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate owner: %w", err)
	}
	if !exists {
		return nil, &messaging.NotFoundError{Entity: "user", ID: req.OwnerID}
	}

	record := &secondary.OfferRecord{
		OwnerID: req.OwnerID,
		Title:   title,
		Active:  true,
	}
	if err := s.offerRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	return recordToOffer(record), nil
}

// GetOffer retrieves an offer by ID.
func (s *DirectoryServiceImpl) GetOffer(ctx context.Context, offerID int64) (*primary.Offer, error) {
	record, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	return recordToOffer(record), nil
}

// DeactivateOffer unlists an offer.
func (s *DirectoryServiceImpl) DeactivateOffer(ctx context.Context, offerID int64) error {
	return s.offerRepo.SetActive(ctx, offerID, false)
}

func recordToUser(r *secondary.UserRecord) *primary.User {
	return &primary.User{
		ID:        r.ID,
		Username:  r.Username,
		FullName:  r.FullName,
		AvatarRef: r.AvatarRef,
		CreatedAt: r.CreatedAt,
	}
}

func recordToOffer(r *secondary.OfferRecord) *primary.Offer {
	return &primary.Offer{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Title:     r.Title,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
	}
}

// Ensure DirectoryServiceImpl implements the interface.
var _ primary.DirectoryService = (*DirectoryServiceImpl)(nil)
