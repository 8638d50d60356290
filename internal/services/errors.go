// Package services defines the business logic for the point ledger, mission
// cancellation, letter disputes, and address reminders. This file centralizes
// common service-level error values so that they can be consistently returned
// by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

var (
	// ErrMissingFields is returned when a request omits a required field
	// (ids, reason text, participant list).
	ErrMissingFields = errors.New("required fields missing")

	// ErrMissionNotFound indicates that the referenced mission does not exist.
	ErrMissionNotFound = errors.New("mission not found")

	// ErrMatchNotFound indicates that the referenced penpal match does not exist.
	ErrMatchNotFound = errors.New("match not found")

	// ErrProofNotFound indicates that the referenced letter proof does not exist.
	ErrProofNotFound = errors.New("letter proof not found")

	// ErrMissionNotCompleted is returned when a reward is claimed on a
	// mission whose completion flag is still false.
	ErrMissionNotCompleted = errors.New("mission not completed")

	// ErrRewardAlreadyClaimed is returned when the mission's reward has
	// already been issued, including by a concurrent claim that won the race.
	ErrRewardAlreadyClaimed = errors.New("reward already claimed")

	// ErrNotParticipant is returned when the caller is neither of the
	// mission's two users.
	ErrNotParticipant = errors.New("caller is not a mission participant")

	// ErrAlreadyCancelled is returned when a cancellation is requested for a
	// mission that is already cancelled.
	ErrAlreadyCancelled = errors.New("mission already cancelled")

	// ErrNotReceiver is returned when a non-delivery report comes from
	// someone other than the proof's recorded receiver.
	ErrNotReceiver = errors.New("caller is not the letter receiver")

	// ErrAlreadyDisputed is returned when the proof was already disputed.
	ErrAlreadyDisputed = errors.New("letter already disputed")

	// ErrDisputeTooEarly is returned when the minimum waiting period since
	// the letter was sent has not elapsed. Callers wrap it with the actual
	// elapsed-day count; check with errors.Is.
	ErrDisputeTooEarly = errors.New("dispute window not reached")
)
