// Package wizard implements the conversational flow that collects an
// action spec one answer at a time.
package wizard

import (
	"time"

	"github.com/bizmatters/usdc-actions/internal/models"
)

// State is the step of the authoring flow a session is in.
type State string

const (
	StateIdle                State = "idle"
	StateAwaitingTitle       State = "awaiting_title"
	StateAwaitingIcon        State = "awaiting_icon"
	StateAwaitingDescription State = "awaiting_description"
	StateAwaitingLabel       State = "awaiting_label"
	StateAwaitingAmounts     State = "awaiting_amounts"
	StateAwaitingRecipient   State = "awaiting_recipient"
	StateFinalizing          State = "finalizing"
)

// Session is the persisted per-author dialogue state.
type Session struct {
	State     State             `json:"state"`
	Draft     models.ActionSpec `json:"draft"`
	UpdatedAt time.Time         `json:"updatedAt,omitempty"`
}

// NewSession returns an idle session with an empty draft.
func NewSession() Session {
	return Session{State: StateIdle}
}

// CreatingApp reports whether an authoring flow is in progress.
func (s Session) CreatingApp() bool {
	return s.State != StateIdle
}

// AwaitingIcon reports whether the next image is taken as the icon.
func (s Session) AwaitingIcon() bool {
	return s.State == StateAwaitingIcon
}

// Commands understood by the wizard.
const (
	CommandStart  = "start"
	CommandCreate = "create"
	CommandCancel = "cancel"
)

// Input is one event delivered to the state machine. Author messages and
// the results of effects the runner carried out share this type.
type Input interface {
	Kind() string
}

type (
	// Command is a slash command from the author.
	Command struct{ Name string }
	// Text is a plain text message.
	Text struct{ Body string }
	// Image is an uploaded image referenced by the transport's file id.
	Image struct{ FileID string }
	// IconStored reports a successful icon upload.
	IconStored struct{ URL string }
	// IconFailed reports a failed icon upload.
	IconFailed struct{ Err error }
	// Created reports a persisted spec.
	Created struct{ ID, Endpoint string }
	// CreateFailed reports a rejected or failed spec creation.
	CreateFailed struct{ Err error }
)

func (Command) Kind() string      { return "command" }
func (Text) Kind() string         { return "text" }
func (Image) Kind() string        { return "image" }
func (IconStored) Kind() string   { return "icon_stored" }
func (IconFailed) Kind() string   { return "icon_failed" }
func (Created) Kind() string      { return "created" }
func (CreateFailed) Kind() string { return "create_failed" }

// Effect is work requested by the state machine.
type Effect interface {
	effect()
}

type (
	// Reply sends a message to the author.
	Reply struct{ Text string }
	// StoreIcon uploads the referenced image as the draft's icon.
	StoreIcon struct{ FileID string }
	// Finalize submits the draft for creation. Draft is a private copy.
	Finalize struct{ Draft models.ActionSpec }
)

func (Reply) effect()     {}
func (StoreIcon) effect() {}
func (Finalize) effect()  {}
