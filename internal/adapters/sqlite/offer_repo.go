package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/example/barter/internal/core/messaging"
	"github.com/example/barter/internal/ports/secondary"
)

// OfferRepository implements secondary.OfferRepository with SQLite.
type OfferRepository struct {
	db *sql.DB
}

// NewOfferRepository creates a new SQLite offer repository.
func NewOfferRepository(db *sql.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// Create persists a new offer and writes the assigned ID back.
func (r *OfferRepository) Create(ctx context.Context, offer *secondary.OfferRecord) error {
	if offer.CreatedAt.IsZero() {
		offer.CreatedAt = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx,
		"INSERT INTO offers (owner_id, title, is_active, created_at) VALUES (?, ?, ?, ?) RETURNING id",
		offer.OwnerID, offer.Title, boolToInt(offer.Active), offer.CreatedAt.UnixNano(),
	).Scan(&offer.ID)
	if err != nil {
		return storeError("create offer", err)
	}

	return nil
}

// GetByID retrieves an offer by its ID.
func (r *OfferRepository) GetByID(ctx context.Context, id int64) (*secondary.OfferRecord, error) {
	var (
		activeInt int
		createdAt int64
	)

	record := &secondary.OfferRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, owner_id, title, is_active, created_at FROM offers WHERE id = ?",
		id,
	).Scan(&record.ID, &record.OwnerID, &record.Title, &activeInt, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, &messaging.NotFoundError{Entity: "offer", ID: id}
	}
	if err != nil {
		return nil, storeError("get offer", err)
	}

	record.Active = activeInt == 1
	record.CreatedAt = time.Unix(0, createdAt).UTC()

	return record, nil
}

// SetActive lists or unlists an offer.
func (r *OfferRepository) SetActive(ctx context.Context, id int64, active bool) error {
	result, err := r.db.ExecContext(ctx, "UPDATE offers SET is_active = ? WHERE id = ?", boolToInt(active), id)
	if err != nil {
		return storeError("update offer", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return &messaging.NotFoundError{Entity: "offer", ID: id}
	}

	return nil
}

// IsActive reports whether the offer exists and is still listed.
func (r *OfferRepository) IsActive(ctx context.Context, offerID int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM offers WHERE id = ? AND is_active = 1",
		offerID,
	).Scan(&count)
	if err != nil {
		return false, storeError("check offer", err)
	}
	return count > 0, nil
}

// GetTitle returns the offer title whether or not the offer is still listed.
func (r *OfferRepository) GetTitle(ctx context.Context, offerID int64) (string, bool, error) {
	var title string
	err := r.db.QueryRowContext(ctx, "SELECT title FROM offers WHERE id = ?", offerID).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storeError("get offer title", err)
	}
	return title, true, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Ensure OfferRepository implements the interface.
var _ secondary.OfferRepository = (*OfferRepository)(nil)
