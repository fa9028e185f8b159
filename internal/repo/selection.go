package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lmercier/triptailor/internal/domain"
)

// SelectionRepo persists the proposals most recently generated for a caller
// token, so the accommodation swap can later locate "the currently selected
// trip". One row per (token, position); ReplaceAll is last-write-wins per
// token, which is the documented concurrency discipline for concurrent
// generation requests sharing a token.
type SelectionRepo interface {
	// ReplaceAll drops the token's previous proposals and stores the new set,
	// positions assigned from slice order.
	ReplaceAll(ctx context.Context, token string, proposals []domain.TripProposal) error

	// Get returns the proposal stored at (token, position).
	// Returns domain.ErrNotFound if nothing is stored there.
	Get(ctx context.Context, token string, position int) (domain.TripProposal, error)

	// Update overwrites the proposal stored at (token, position).
	// Returns domain.ErrNotFound if nothing is stored there.
	Update(ctx context.Context, token string, position int, proposal domain.TripProposal) error
}

// pgSelectionRepo is the Postgres implementation of SelectionRepo.
// Proposals are stored whole as jsonb — they are read back only to be
// re-serialized for the caller, so a normalized schema would buy nothing.
type pgSelectionRepo struct {
	db db
}

// NewSelectionRepo constructs a SelectionRepo backed by the provided db connection.
func NewSelectionRepo(db db) SelectionRepo {
	return &pgSelectionRepo{db: db}
}

// ReplaceAll swaps the stored proposal set for a token.
func (r *pgSelectionRepo) ReplaceAll(ctx context.Context, token string, proposals []domain.TripProposal) error {
	const del = `DELETE FROM trip_selections WHERE token = @token`
	if _, err := r.db.Exec(ctx, del, pgx.NamedArgs{"token": token}); err != nil {
		return fmt.Errorf("repo.SelectionRepo.ReplaceAll: delete: %w", err)
	}

	const ins = `
		INSERT INTO trip_selections (token, position, proposal)
		VALUES (@token, @position, @proposal)`

	for i, p := range proposals {
		body, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("repo.SelectionRepo.ReplaceAll: marshal: %w", err)
		}
		args := pgx.NamedArgs{"token": token, "position": i, "proposal": body}
		if _, err := r.db.Exec(ctx, ins, args); err != nil {
			return fmt.Errorf("repo.SelectionRepo.ReplaceAll: insert: %w", err)
		}
	}
	return nil
}

// Get loads one stored proposal.
func (r *pgSelectionRepo) Get(ctx context.Context, token string, position int) (domain.TripProposal, error) {
	const q = `
		SELECT proposal
		FROM trip_selections
		WHERE token = @token AND position = @position`

	var body []byte
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"token": token, "position": position}).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripProposal{}, fmt.Errorf("repo.SelectionRepo.Get: %w", domain.ErrNotFound)
		}
		return domain.TripProposal{}, fmt.Errorf("repo.SelectionRepo.Get: %w", err)
	}

	var p domain.TripProposal
	if err := json.Unmarshal(body, &p); err != nil {
		return domain.TripProposal{}, fmt.Errorf("repo.SelectionRepo.Get: unmarshal: %w", err)
	}
	return p, nil
}

// Update overwrites one stored proposal in place.
func (r *pgSelectionRepo) Update(ctx context.Context, token string, position int, proposal domain.TripProposal) error {
	const q = `
		UPDATE trip_selections
		SET proposal = @proposal, updated_at = now()
		WHERE token = @token AND position = @position`

	body, err := json.Marshal(proposal)
	if err != nil {
		return fmt.Errorf("repo.SelectionRepo.Update: marshal: %w", err)
	}

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"token": token, "position": position, "proposal": body})
	if err != nil {
		return fmt.Errorf("repo.SelectionRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SelectionRepo.Update: %w", domain.ErrNotFound)
	}
	return nil
}
