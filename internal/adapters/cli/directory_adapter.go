package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/example/barter/internal/ports/primary"
)

// DirectoryAdapter translates CLI operations to DirectoryService calls.
type DirectoryAdapter struct {
	service primary.DirectoryService
	out     io.Writer
}

// NewDirectoryAdapter creates a new DirectoryAdapter with the given service.
func NewDirectoryAdapter(service primary.DirectoryService, out io.Writer) *DirectoryAdapter {
	return &DirectoryAdapter{
		service: service,
		out:     out,
	}
}

// AddUser registers a user and prints its ID.
func (a *DirectoryAdapter) AddUser(ctx context.Context, username, fullName, avatar string) (*primary.User, error) {
	user, err := a.service.AddUser(ctx, primary.AddUserRequest{
		Username:  username,
		FullName:  fullName,
		AvatarRef: avatar,
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Created user %d: %s\n", user.ID, user.Username)
	return user, nil
}

// ShowUser prints a user's details.
func (a *DirectoryAdapter) ShowUser(ctx context.Context, userID int64) (*primary.User, error) {
	user, err := a.service.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "\nUser %d: %s\n", user.ID, user.Username)
	if user.FullName != "" {
		fmt.Fprintf(a.out, "Name:    %s\n", user.FullName)
	}
	if user.AvatarRef != "" {
		fmt.Fprintf(a.out, "Avatar:  %s\n", user.AvatarRef)
	}
	fmt.Fprintf(a.out, "Joined:  %s\n", humanize.Time(user.CreatedAt))
	fmt.Fprintln(a.out)
	return user, nil
}

// AddOffer lists an offer and prints its ID.
func (a *DirectoryAdapter) AddOffer(ctx context.Context, ownerID int64, title string) (*primary.Offer, error) {
	offer, err := a.service.AddOffer(ctx, primary.AddOfferRequest{OwnerID: ownerID, Title: title})
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Listed offer %d: %s\n", offer.ID, offer.Title)
	return offer, nil
}

// ShowOffer prints an offer's details.
func (a *DirectoryAdapter) ShowOffer(ctx context.Context, offerID int64) (*primary.Offer, error) {
	offer, err := a.service.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	status := "active"
	if !offer.Active {
		status = "inactive"
	}
	fmt.Fprintf(a.out, "\nOffer %d: %s\n", offer.ID, offer.Title)
	fmt.Fprintf(a.out, "Owner:   user %d\n", offer.OwnerID)
	fmt.Fprintf(a.out, "Status:  %s\n", status)
	fmt.Fprintf(a.out, "Listed:  %s\n", humanize.Time(offer.CreatedAt))
	fmt.Fprintln(a.out)
	return offer, nil
}

// DeactivateOffer unlists an offer.
func (a *DirectoryAdapter) DeactivateOffer(ctx context.Context, offerID int64) error {
	if err := a.service.DeactivateOffer(ctx, offerID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Offer %d deactivated\n", offerID)
	return nil
}
