package dialog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"complaint-intake-backend/internal/model"
	"complaint-intake-backend/internal/resolve"
	"complaint-intake-backend/internal/state"
	"complaint-intake-backend/internal/store"
)

// Notifier is told about freshly filed complaints that have an assignee.
type Notifier interface {
	ComplaintFiled(complaintID int64)
}

// EventPublisher emits complaint.created events for downstream workflows.
type EventPublisher interface {
	ComplaintCreated(ctx context.Context, c *model.Complaint) error
}

const defaultMaxMessageLen = 2000

// Engine is the dialogue state machine. Each call to Process is a pure
// function of (persisted state, message); all cross-request state lives in the
// injected stores, so any number of handler goroutines or processes can share
// the work.
type Engine struct {
	store    store.Store
	states   state.Store
	notifier Notifier
	events   EventPublisher
	log      *zap.Logger
	maxLen   int
	locks    *userLocks
}

// NewEngine creates a dialogue engine. notifier and events may be nil.
func NewEngine(s store.Store, states state.Store, notifier Notifier, events EventPublisher, logger *zap.Logger, maxMessageLen int) *Engine {
	if maxMessageLen <= 0 {
		maxMessageLen = defaultMaxMessageLen
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		store:    s,
		states:   states,
		notifier: notifier,
		events:   events,
		log:      logger,
		maxLen:   maxMessageLen,
		locks:    newUserLocks(),
	}
}

// Process handles one inbound message and returns the reply to send back.
// Resolution ambiguity and stale sessions become guiding replies; only
// persistence failures are returned as errors.
func (e *Engine) Process(ctx context.Context, userID, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return replyEmptyMessage, nil
	}
	if len(message) > e.maxLen {
		return replyTooLong(e.maxLen), nil
	}

	unlock := e.locks.acquire(userID)
	defer unlock()

	sess, err := e.states.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if sess == nil {
		return e.startDialogue(ctx, userID, message)
	}

	switch sess.Step {
	case state.StepAwaitingExactName:
		return e.handleExactName(ctx, userID, message, sess)
	case state.StepAwaitingDescription:
		return e.handleDescription(ctx, userID, message, sess)
	case state.StepAwaitingType:
		return e.handleType(ctx, userID, message, sess)
	default:
		e.log.Warn("unknown dialogue step, resetting session",
			zap.String("user_id", userID),
			zap.String("step", string(sess.Step)))
		if err := e.states.Clear(ctx, userID); err != nil {
			return "", err
		}
		return replyReset, nil
	}
}

// startDialogue resolves machines from the first message of a conversation.
func (e *Engine) startDialogue(ctx context.Context, userID, message string) (string, error) {
	catalog, err := e.store.ListActiveResources(ctx)
	if err != nil {
		return "", err
	}

	matched := resolve.Machines(message, catalog)
	switch len(matched) {
	case 0:
		return replyNotFound, nil
	case 1:
		machine := matched[0]
		payload := state.Payload{
			MachineID:   machine.ID,
			MachineName: machine.Name,
			Location:    machine.Location,
		}
		if err := e.states.Upsert(ctx, userID, state.StepAwaitingDescription, payload); err != nil {
			return "", err
		}
		return replyMachineConfirmed(machine.Name, machine.Location), nil
	default:
		ids := make([]int64, len(matched))
		for i, m := range matched {
			ids[i] = m.ID
		}
		if err := e.states.Upsert(ctx, userID, state.StepAwaitingExactName, state.Payload{CandidateIDs: ids}); err != nil {
			return "", err
		}
		return replyMultipleMachines(matched), nil
	}
}

// handleExactName disambiguates between previously stored candidates.
func (e *Engine) handleExactName(ctx context.Context, userID, message string, sess *state.Session) (string, error) {
	candidates, err := e.store.ListActiveResourcesByIDs(ctx, sess.Payload.CandidateIDs)
	if err != nil {
		return "", err
	}
	// Candidates removed or deactivated since the last message; the session
	// cannot make progress anymore.
	if len(candidates) == 0 {
		if err := e.states.Clear(ctx, userID); err != nil {
			return "", err
		}
		return replyExpired, nil
	}

	matched := resolve.PickExactByName(message, candidates)
	if len(matched) == 0 {
		return replyNameNotMatched(candidates), nil
	}

	machine := matched[0]
	for _, m := range matched[1:] {
		if m.ID < machine.ID {
			machine = m
		}
	}

	payload := state.Payload{
		MachineID:   machine.ID,
		MachineName: machine.Name,
		Location:    machine.Location,
	}
	if err := e.states.Upsert(ctx, userID, state.StepAwaitingDescription, payload); err != nil {
		return "", err
	}
	return replyMachineConfirmed(machine.Name, machine.Location), nil
}

// handleDescription stores the message verbatim as the complaint description.
func (e *Engine) handleDescription(ctx context.Context, userID, message string, sess *state.Session) (string, error) {
	if sess.Payload.MachineID == 0 {
		if err := e.states.Clear(ctx, userID); err != nil {
			return "", err
		}
		return replyExpired, nil
	}

	payload := sess.Payload
	payload.Description = message
	if err := e.states.Upsert(ctx, userID, state.StepAwaitingType, payload); err != nil {
		return "", err
	}
	return replyAskType, nil
}

// handleType classifies the issue, files the complaint, and ends the dialogue.
func (e *Engine) handleType(ctx context.Context, userID, message string, sess *state.Session) (string, error) {
	if sess.Payload.MachineID == 0 || sess.Payload.Description == "" {
		if err := e.states.Clear(ctx, userID); err != nil {
			return "", err
		}
		return replyExpired, nil
	}

	issueType, ok := resolve.ClassifyIssueType(message)
	if !ok {
		return replyInvalidType, nil
	}

	inchargeRows, err := e.store.ListIncharge(ctx)
	if err != nil {
		return "", err
	}
	assignment := resolve.LocationAssignee(sess.Payload.Location, inchargeRows)

	locationName := assignment.LocationName
	if locationName == "" {
		locationName = sess.Payload.Location
	}

	complaint := &model.Complaint{
		Reference:    uuid.NewString(),
		MemberID:     assignment.MemberID,
		MachineID:    sess.Payload.MachineID,
		LocationName: locationName,
		LocationID:   assignment.LocationID,
		Description:  sess.Payload.Description,
		Type:         issueType,
		Status:       "Open",
	}
	if err := e.store.CreateComplaint(ctx, complaint); err != nil {
		return "", err
	}

	// The complaint is already recorded; a stale session row must not turn
	// the reply into a failure.
	if err := e.states.Clear(ctx, userID); err != nil {
		e.log.Error("failed to clear session after filing complaint",
			zap.String("user_id", userID), zap.Error(err))
	}

	e.log.Info("complaint filed",
		zap.String("reference", complaint.Reference),
		zap.Int64("machine_id", complaint.MachineID),
		zap.Int("type", int(complaint.Type)))

	if e.notifier != nil && complaint.MemberID != nil {
		e.notifier.ComplaintFiled(complaint.ComplaintID)
	}
	if e.events != nil {
		if err := e.events.ComplaintCreated(ctx, complaint); err != nil {
			e.log.Error("failed to publish complaint.created",
				zap.String("reference", complaint.Reference), zap.Error(err))
		}
	}

	return replyComplaintFiled(complaint.Reference, sess.Payload.MachineName, complaint.MemberID != nil, locationName), nil
}
