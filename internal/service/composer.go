// Package service contains the trip composition engine.
// The composer drives the finder components through a retry loop bounded by
// one shared deadline; finders validate nothing about HTTP and know nothing
// about persistence beyond the repo interfaces they consume.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/multierr"

	"github.com/lmercier/triptailor/internal/domain"
)

// Composition defaults, overridable through ComposerConfig.
const (
	defaultTimeout     = 30 * time.Second
	defaultProposals   = 2
	defaultMaxAttempts = 40
	defaultBackoff     = 25 * time.Millisecond
)

// ComposerConfig carries the engine knobs. Zero values fall back to the
// defaults above.
type ComposerConfig struct {
	// Timeout is the shared wall-clock bound for one generation request.
	// All proposals pay into this single budget.
	Timeout time.Duration

	// Proposals is the number of independent itineraries to produce.
	Proposals int

	// MaxAttempts bounds the retries of the composition chain per proposal,
	// as a safety net against inputs that can never succeed (e.g. a zero
	// budget) spinning for the whole deadline.
	MaxAttempts uint64

	// Backoff is the constant pause between attempts.
	Backoff time.Duration
}

func (c ComposerConfig) withDefaults() ComposerConfig {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Proposals <= 0 {
		c.Proposals = defaultProposals
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.Backoff <= 0 {
		c.Backoff = defaultBackoff
	}
	return c
}

// TripComposer orchestrates one generation request: destination → transport
// (both legs) → journey matching → accommodation → activities, retrying the
// whole chain when any stage comes up empty.
//
// Stage failures are never surfaced individually; the only errors a caller
// sees are domain.ErrTimeout (deadline expired or attempt budget exhausted)
// and collaborator failures, which are not retried.
type TripComposer struct {
	destinations  *DestinationSelector
	transport     *TransportFinder
	accommodation *AccommodationFinder
	activities    *ActivityFinder
	cfg           ComposerConfig
	logger        *slog.Logger
}

// NewTripComposer wires the four finder components into a composer.
func NewTripComposer(
	destinations *DestinationSelector,
	transport *TransportFinder,
	accommodation *AccommodationFinder,
	activities *ActivityFinder,
	cfg ComposerConfig,
	logger *slog.Logger,
) *TripComposer {
	if logger == nil {
		logger = slog.Default()
	}
	return &TripComposer{
		destinations:  destinations,
		transport:     transport,
		accommodation: accommodation,
		activities:    activities,
		cfg:           cfg.withDefaults(),
		logger:        logger,
	}
}

// Compose produces the configured number of trip proposals for the filters.
// The deadline is measured once for the whole call: proposals are composed
// sequentially and each pays into the same budget, so a slow first proposal
// leaves less time for the second.
//
// On deadline expiry all in-flight catalog queries are cancelled through the
// shared context and domain.ErrTimeout is returned with no partial results.
func (c *TripComposer) Compose(ctx context.Context, filters domain.SearchFilters) ([]domain.TripProposal, error) {
	if err := filters.Validate(); err != nil {
		return nil, fmt.Errorf("service.TripComposer.Compose: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	proposals := make([]domain.TripProposal, 0, c.cfg.Proposals)
	for i := 0; i < c.cfg.Proposals; i++ {
		p, err := c.composeOne(ctx, filters)
		if err != nil {
			return nil, fmt.Errorf("service.TripComposer.Compose: %w", err)
		}
		proposals = append(proposals, p)
	}
	return proposals, nil
}

// composeOne runs the composition chain until it yields a proposal, an
// attempt limit or the deadline stops it, or a collaborator fails hard.
func (c *TripComposer) composeOne(ctx context.Context, filters domain.SearchFilters) (domain.TripProposal, error) {
	var (
		proposal  domain.TripProposal
		stageErrs error
		attempts  int
	)

	backoff := retry.WithMaxRetries(c.cfg.MaxAttempts, retry.NewConstant(c.cfg.Backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		p, err := c.attempt(ctx, filters)
		if err != nil {
			if isStageError(err) {
				stageErrs = appendDistinct(stageErrs, err)
				return retry.RetryableError(err)
			}
			return err
		}
		proposal = p
		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || isStageError(err) {
			c.logger.DebugContext(ctx, "trip composition gave up",
				"attempts", attempts,
				"stage_failures", fmt.Sprint(stageErrs),
			)
			return domain.TripProposal{}, domain.ErrTimeout
		}
		return domain.TripProposal{}, err
	}

	c.logger.DebugContext(ctx, "trip composed", "attempts", attempts, "total", proposal.Total)
	return proposal, nil
}

// attempt is one strictly ordered pass through the composition chain.
func (c *TripComposer) attempt(ctx context.Context, filters domain.SearchFilters) (domain.TripProposal, error) {
	destination, departure, err := c.destinations.Pick(ctx, filters)
	if err != nil {
		return domain.TripProposal{}, err
	}

	outbound, err := c.transport.Find(ctx, departure.ID, destination.ID, filters.OutboundRange(), filters.Travelers, filters.TransportClasses)
	if err != nil {
		return domain.TripProposal{}, err
	}
	inbound, err := c.transport.Find(ctx, destination.ID, departure.ID, filters.InboundRange(), filters.Travelers, filters.TransportClasses)
	if err != nil {
		return domain.TripProposal{}, err
	}

	journey := MatchJourney(filters.TransportClasses, outbound, inbound, filters.Budget, filters.Travelers)
	if journey == nil {
		return domain.TripProposal{}, domain.ErrNoJourney
	}

	nights := journey.Nights()
	accommodation, err := c.accommodation.Find(ctx, filters.Travelers, nights, destination, filters.Budget)
	if err != nil {
		return domain.TripProposal{}, err
	}
	if accommodation == nil {
		return domain.TripProposal{}, domain.ErrNoAccommodation
	}

	activities, err := c.activities.Find(ctx, filters.Travelers, filters.Budget, journey.StayStart(), journey.StayEnd(), destination, nights)
	if err != nil {
		return domain.TripProposal{}, err
	}

	return domain.NewTripProposal(filters.Travelers, departure, destination, *journey, *accommodation, activities), nil
}

// isStageError reports whether err is one of the non-fatal "no result"
// conditions that restart the chain instead of failing the request.
func isStageError(err error) bool {
	return errors.Is(err, domain.ErrNoDestination) ||
		errors.Is(err, domain.ErrNoJourney) ||
		errors.Is(err, domain.ErrNoAccommodation) ||
		errors.Is(err, domain.ErrNoActivities)
}

// appendDistinct accumulates err into agg unless an equivalent stage failure
// was already recorded, keeping the timeout log line readable across many
// attempts that fail the same way.
func appendDistinct(agg, err error) error {
	for _, existing := range multierr.Errors(agg) {
		if errors.Is(err, existing) || existing.Error() == err.Error() {
			return agg
		}
	}
	return multierr.Append(agg, err)
}
