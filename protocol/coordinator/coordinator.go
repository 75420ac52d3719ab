// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

// Package coordinator drives a single swap's protocol/alice or
// protocol/bob state machine to completion: it persists every state
// transition to backend.Database before returning it to the caller, so
// a crash between the transition and whatever side effect it implied
// (a broadcast, a network send) resumes from a state that already
// reflects the decision, and retries the transient failures
// swaperr.Retryable flags with exponential backoff rather than
// abandoning the swap.
package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	logging "github.com/ipfs/go-log/v2"

	"github.com/athanorlabs/atomic-swap-btc/protocol/alice"
	"github.com/athanorlabs/atomic-swap-btc/protocol/backend"
	"github.com/athanorlabs/atomic-swap-btc/protocol/bob"
	"github.com/athanorlabs/atomic-swap-btc/protocol/swaperr"
)

var log = logging.Logger("coordinator")

// newBackOff returns the retry policy transient transitions run under:
// exponential backoff starting at one second and capped at ten seconds
// between attempts, well under the cancel timelock, so a stuck retry
// loop does not itself become the reason a swap misses T1.
func newBackOff(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 0 // bounded by ctx instead, the caller decides how long is too long
	return backoff.WithContext(b, ctx)
}

// retryTransition runs advance, retrying with backoff as long as it
// returns a retryable error and ctx is not done. A non-retryable error,
// or ctx's cancellation, is returned immediately.
func retryTransition(ctx context.Context, swapID uuid.UUID, advance func() (interface{}, error)) (interface{}, error) {
	var result interface{}
	op := func() error {
		var err error
		result, err = advance()
		if err == nil {
			return nil
		}
		if !swaperr.Retryable(err) {
			return backoff.Permanent(err)
		}
		log.Warnf("%s: retryable error, backing off: %v", swapID, err)
		return err
	}

	if err := backoff.Retry(op, newBackOff(ctx)); err != nil {
		return nil, err
	}
	return result, nil
}

// AliceCoordinator drives protocol/alice's state machine for one swap,
// persisting every transition before returning it.
type AliceCoordinator struct {
	be      *backend.Backend
	swapID  uuid.UUID
	current alice.State
}

// NewAliceCoordinator constructs a coordinator already positioned at
// initial, which is typically alice.NewStarted for a fresh swap or the
// result of ResumeAlice for one being resumed after a restart.
func NewAliceCoordinator(be *backend.Backend, swapID uuid.UUID, initial alice.State) *AliceCoordinator {
	return &AliceCoordinator{be: be, swapID: swapID, current: initial}
}

// ResumeAlice reconstructs an AliceCoordinator from every state this
// swap has persisted, replaying the log in order so the coordinator
// resumes at exactly the last state it reached, not before.
func ResumeAlice(be *backend.Backend, swapID uuid.UUID, session alice.Session) (*AliceCoordinator, error) {
	encoded, err := be.DB.GetStates(swapID)
	if err != nil {
		return nil, fmt.Errorf("loading swap %s: %w", swapID, err)
	}
	if len(encoded) == 0 {
		return nil, fmt.Errorf("no persisted states for swap %s", swapID)
	}

	var current alice.State
	for _, rec := range encoded {
		current, err = DecodeAliceState(session, rec)
		if err != nil {
			return nil, fmt.Errorf("replaying swap %s: %w", swapID, err)
		}
	}

	log.Infof("%s: resumed at %s", swapID, current)
	return NewAliceCoordinator(be, swapID, current), nil
}

// Current returns the coordinator's current state.
func (c *AliceCoordinator) Current() alice.State { return c.current }

// Advance runs transition, persists its result, and updates Current.
// transition is expected to close over whichever alice.AdvanceX
// function applies to c.Current()'s concrete type; the coordinator
// does not dispatch by event type itself, since each event (a lock
// status update, a learned encrypted signature, an epoch change) needs
// its own typed parameters that only the caller has in hand.
func (c *AliceCoordinator) Advance(ctx context.Context, transition func(alice.State) (alice.State, error)) (alice.State, error) {
	result, err := retryTransition(ctx, c.swapID, func() (interface{}, error) {
		return transition(c.current)
	})
	if err != nil {
		return c.current, err
	}

	next := result.(alice.State)
	encoded, err := EncodeAliceState(next)
	if err != nil {
		return c.current, fmt.Errorf("encoding state %s: %w", next, err)
	}
	if err := c.be.DB.PutState(c.swapID, encoded); err != nil {
		return c.current, &swaperr.ResourceError{Op: "AliceCoordinator.Advance/PutState", Err: err}
	}

	c.current = next
	return next, nil
}

// BobCoordinator drives protocol/bob's state machine for one swap,
// mirroring AliceCoordinator.
type BobCoordinator struct {
	be      *backend.Backend
	swapID  uuid.UUID
	current bob.State
}

// NewBobCoordinator constructs a coordinator already positioned at
// initial.
func NewBobCoordinator(be *backend.Backend, swapID uuid.UUID, initial bob.State) *BobCoordinator {
	return &BobCoordinator{be: be, swapID: swapID, current: initial}
}

// ResumeBob reconstructs a BobCoordinator from every state this swap
// has persisted, mirroring ResumeAlice.
func ResumeBob(be *backend.Backend, swapID uuid.UUID, session bob.Session) (*BobCoordinator, error) {
	encoded, err := be.DB.GetStates(swapID)
	if err != nil {
		return nil, fmt.Errorf("loading swap %s: %w", swapID, err)
	}
	if len(encoded) == 0 {
		return nil, fmt.Errorf("no persisted states for swap %s", swapID)
	}

	var current bob.State
	for _, rec := range encoded {
		current, err = DecodeBobState(session, rec)
		if err != nil {
			return nil, fmt.Errorf("replaying swap %s: %w", swapID, err)
		}
	}

	log.Infof("%s: resumed at %s", swapID, current)
	return NewBobCoordinator(be, swapID, current), nil
}

// Current returns the coordinator's current state.
func (c *BobCoordinator) Current() bob.State { return c.current }

// Advance runs transition, persists its result, and updates Current.
func (c *BobCoordinator) Advance(ctx context.Context, transition func(bob.State) (bob.State, error)) (bob.State, error) {
	result, err := retryTransition(ctx, c.swapID, func() (interface{}, error) {
		return transition(c.current)
	})
	if err != nil {
		return c.current, err
	}

	next := result.(bob.State)
	encoded, err := EncodeBobState(next)
	if err != nil {
		return c.current, fmt.Errorf("encoding state %s: %w", next, err)
	}
	if err := c.be.DB.PutState(c.swapID, encoded); err != nil {
		return c.current, &swaperr.ResourceError{Op: "BobCoordinator.Advance/PutState", Err: err}
	}

	c.current = next
	return next, nil
}
