package wizard

import (
	"strings"

	"github.com/bizmatters/usdc-actions/internal/models"
)

// Machine holds the constants the transitions depend on.
type Machine struct {
	DefaultIconURL string
	ShareBaseURL   string
}

// Advance applies one input to a session. It never performs I/O: work is
// returned as effects and the results come back as follow-up inputs.
func (m Machine) Advance(s Session, in Input) (Session, []Effect) {
	if cmd, ok := in.(Command); ok {
		return m.command(s, cmd)
	}

	if !KnownState(s.State) {
		return startOver()
	}

	switch s.State {
	case StateIdle:
		switch in.(type) {
		case Text, Image:
			return s, reply(msgMenu)
		}
		return s, nil

	case StateAwaitingTitle:
		if t, ok := in.(Text); ok {
			s.Draft.Title = t.Body
			s.State = StateAwaitingIcon
			return s, reply(msgAskIcon)
		}

	case StateAwaitingIcon:
		switch v := in.(type) {
		case Text:
			if strings.EqualFold(strings.TrimSpace(v.Body), "skip") {
				s.Draft.Icon = m.DefaultIconURL
				s.State = StateAwaitingDescription
				return s, reply(msgDefaultIcon)
			}
			return s, reply(msgIconRetry)
		case Image:
			return s, []Effect{StoreIcon{FileID: v.FileID}}
		case IconStored:
			s.Draft.Icon = v.URL
			s.State = StateAwaitingDescription
			return s, reply(msgIconUploaded)
		case IconFailed:
			return s, reply(msgIconFailed)
		}

	case StateAwaitingDescription:
		if t, ok := in.(Text); ok {
			s.Draft.Description = t.Body
			s.State = StateAwaitingLabel
			return s, reply(msgAskLabel)
		}

	case StateAwaitingLabel:
		if t, ok := in.(Text); ok {
			s.Draft.Label = t.Body
			s.State = StateAwaitingAmounts
			return s, reply(msgAskAmounts)
		}

	case StateAwaitingAmounts:
		if t, ok := in.(Text); ok {
			amounts, err := parseAmounts(t.Body)
			if err != nil {
				return s, reply(msgAmountsInvalid)
			}
			s.Draft.PredefinedAmounts = amounts
			s.State = StateAwaitingRecipient
			return s, reply(msgAskRecipient)
		}

	case StateAwaitingRecipient:
		if t, ok := in.(Text); ok {
			s.Draft.Recipient = strings.TrimSpace(t.Body)
			s.State = StateFinalizing
			return s, []Effect{Finalize{Draft: s.Draft.Clone()}}
		}

	case StateFinalizing:
		switch v := in.(type) {
		case Created:
			return NewSession(), []Effect{
				Reply{Text: createdMessage(v.ID, v.Endpoint, m.ShareBaseURL)},
				Reply{Text: shareMessage(m.ShareBaseURL, v.Endpoint)},
				Reply{Text: msgMenu},
			}
		case CreateFailed:
			return NewSession(), []Effect{
				Reply{Text: createFailedMessage(v.Err)},
				Reply{Text: msgMenu},
			}
		case Text:
			return startOver()
		}
	}

	// Images outside the icon step and stray effect results are ignored.
	return s, nil
}

func (m Machine) command(s Session, cmd Command) (Session, []Effect) {
	switch cmd.Name {
	case CommandStart:
		return s, reply(msgMenu)
	case CommandCreate:
		return Session{State: StateAwaitingTitle, Draft: models.ActionSpec{}}, reply(msgAskTitle)
	case CommandCancel:
		if s.State == StateIdle {
			return s, reply(msgNothingToCancel)
		}
		return NewSession(), []Effect{Reply{Text: msgCancelled}, Reply{Text: msgMenu}}
	default:
		return m.Advance(s, Text{Body: "/" + cmd.Name})
	}
}

func startOver() (Session, []Effect) {
	return NewSession(), []Effect{Reply{Text: msgStartOver}, Reply{Text: msgMenu}}
}

func reply(text string) []Effect {
	return []Effect{Reply{Text: text}}
}
