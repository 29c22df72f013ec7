package wizard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizmatters/usdc-actions/internal/models"
)

const defaultIcon = "https://example.com/default.png"

var testMachine = Machine{DefaultIconURL: defaultIcon, ShareBaseURL: "https://dial.to"}

func replies(effects []Effect) []string {
	var out []string
	for _, e := range effects {
		if r, ok := e.(Reply); ok {
			out = append(out, r.Text)
		}
	}
	return out
}

// drive feeds inputs in order and returns the final session and the effects
// of the last input.
func drive(t *testing.T, s Session, inputs ...Input) (Session, []Effect) {
	t.Helper()
	var effects []Effect
	for _, in := range inputs {
		next, eff := testMachine.Advance(s, in)
		require.True(t, CanTransition(s.State, next.State), "%s -> %s", s.State, next.State)
		s, effects = next, eff
	}
	return s, effects
}

func TestAdvance_HappyPathWithSkip(t *testing.T) {
	s, effects := drive(t, NewSession(), Command{Name: CommandCreate})
	assert.Equal(t, StateAwaitingTitle, s.State)
	assert.Equal(t, []string{msgAskTitle}, replies(effects))

	s, effects = drive(t, s, Text{Body: "Coffee"})
	assert.Equal(t, StateAwaitingIcon, s.State)
	assert.True(t, s.AwaitingIcon())
	assert.Equal(t, []string{msgAskIcon}, replies(effects))

	s, effects = drive(t, s, Text{Body: "  SKIP "})
	assert.Equal(t, StateAwaitingDescription, s.State)
	assert.Equal(t, defaultIcon, s.Draft.Icon)
	assert.Equal(t, []string{msgDefaultIcon}, replies(effects))

	s, effects = drive(t, s, Text{Body: "Tips"})
	assert.Equal(t, StateAwaitingLabel, s.State)
	assert.Equal(t, []string{msgAskLabel}, replies(effects))

	s, effects = drive(t, s, Text{Body: "Tip"})
	assert.Equal(t, StateAwaitingAmounts, s.State)
	assert.Equal(t, []string{msgAskAmounts}, replies(effects))

	s, effects = drive(t, s, Text{Body: "1, 2.5,10"})
	assert.Equal(t, StateAwaitingRecipient, s.State)
	assert.Equal(t, []float64{1, 2.5, 10}, s.Draft.PredefinedAmounts)
	assert.Equal(t, []string{msgAskRecipient}, replies(effects))

	s, effects = drive(t, s, Text{Body: " Recipient111 "})
	assert.Equal(t, StateFinalizing, s.State)
	require.Len(t, effects, 1)
	fin, ok := effects[0].(Finalize)
	require.True(t, ok)
	assert.Equal(t, models.ActionSpec{
		Title:             "Coffee",
		Icon:              defaultIcon,
		Description:       "Tips",
		Label:             "Tip",
		PredefinedAmounts: []float64{1, 2.5, 10},
		Recipient:         "Recipient111",
	}, fin.Draft)

	// The finalize draft is a copy.
	fin.Draft.PredefinedAmounts[0] = 42
	assert.Equal(t, float64(1), s.Draft.PredefinedAmounts[0])

	s, effects = drive(t, s, Created{ID: "abc", Endpoint: "https://x/endpoint/app/abc"})
	assert.Equal(t, NewSession(), s)
	assert.False(t, s.CreatingApp())
	out := replies(effects)
	require.Len(t, out, 3)
	assert.Contains(t, out[0], "App created successfully!")
	assert.Contains(t, out[0], "ID: abc")
	assert.Contains(t, out[0], "Endpoint: https://x/endpoint/app/abc")
	assert.Equal(t, "Click here to create your Solana Action on Dialect: https://dial.to/?action=solana-action:https://x/endpoint/app/abc", out[1])
	assert.Equal(t, msgMenu, out[2])
}

func TestAdvance_IconUpload(t *testing.T) {
	s := Session{State: StateAwaitingIcon, Draft: models.ActionSpec{Title: "Coffee"}}

	next, effects := drive(t, s, Image{FileID: "file-1"})
	assert.Equal(t, StateAwaitingIcon, next.State)
	assert.Equal(t, []Effect{StoreIcon{FileID: "file-1"}}, effects)

	failed, effects := drive(t, next, IconFailed{Err: errors.New("boom")})
	assert.Equal(t, StateAwaitingIcon, failed.State)
	assert.Equal(t, "Coffee", failed.Draft.Title)
	assert.Equal(t, []string{msgIconFailed}, replies(effects))

	stored, effects := drive(t, next, IconStored{URL: "https://cdn/icon_1.jpg"})
	assert.Equal(t, StateAwaitingDescription, stored.State)
	assert.Equal(t, "https://cdn/icon_1.jpg", stored.Draft.Icon)
	assert.Equal(t, []string{msgIconUploaded}, replies(effects))

	retry, effects := drive(t, s, Text{Body: "no thanks"})
	assert.Equal(t, StateAwaitingIcon, retry.State)
	assert.Equal(t, []string{msgIconRetry}, replies(effects))
}

func TestAdvance_ImagesOutsideIconStepAreIgnored(t *testing.T) {
	for _, state := range []State{StateAwaitingTitle, StateAwaitingDescription, StateAwaitingLabel, StateAwaitingAmounts, StateAwaitingRecipient} {
		s := Session{State: state, Draft: models.ActionSpec{Title: "t"}}
		next, effects := testMachine.Advance(s, Image{FileID: "f"})
		assert.Equal(t, s, next, state)
		assert.Empty(t, effects, state)
	}

	// Idle sessions answer with the menu.
	next, effects := testMachine.Advance(NewSession(), Image{FileID: "f"})
	assert.Equal(t, NewSession(), next)
	assert.Equal(t, []string{msgMenu}, replies(effects))
}

func TestAdvance_Commands(t *testing.T) {
	inProgress := Session{
		State: StateAwaitingLabel,
		Draft: models.ActionSpec{Title: "t", Icon: "i", Description: "d"},
	}

	t.Run("start keeps the session", func(t *testing.T) {
		next, effects := testMachine.Advance(inProgress, Command{Name: CommandStart})
		assert.Equal(t, inProgress, next)
		assert.Equal(t, []string{msgMenu}, replies(effects))
	})

	t.Run("create discards the previous draft", func(t *testing.T) {
		next, effects := testMachine.Advance(inProgress, Command{Name: CommandCreate})
		assert.Equal(t, StateAwaitingTitle, next.State)
		assert.Equal(t, models.ActionSpec{}, next.Draft)
		assert.Equal(t, []string{msgAskTitle}, replies(effects))
	})

	t.Run("cancel in every non-idle state", func(t *testing.T) {
		for state := range allowedTransitions {
			if state == StateIdle {
				continue
			}
			s := Session{State: state, Draft: models.ActionSpec{Title: "t"}}
			next, effects := testMachine.Advance(s, Command{Name: CommandCancel})
			assert.Equal(t, NewSession(), next, state)
			assert.Equal(t, []string{msgCancelled, msgMenu}, replies(effects), state)
		}
	})

	t.Run("cancel when idle", func(t *testing.T) {
		next, effects := testMachine.Advance(NewSession(), Command{Name: CommandCancel})
		assert.Equal(t, NewSession(), next)
		assert.Equal(t, []string{msgNothingToCancel}, replies(effects))
	})

	t.Run("unknown command is text", func(t *testing.T) {
		s := Session{State: StateAwaitingTitle}
		next, _ := testMachine.Advance(s, Command{Name: "help"})
		assert.Equal(t, "/help", next.Draft.Title)
	})
}

func TestAdvance_IdleText(t *testing.T) {
	next, effects := testMachine.Advance(NewSession(), Text{Body: "hello"})
	assert.Equal(t, NewSession(), next)
	assert.Equal(t, []string{msgMenu}, replies(effects))
}

func TestAdvance_BadAmountsKeepState(t *testing.T) {
	s := Session{State: StateAwaitingAmounts, Draft: models.ActionSpec{Title: "t", Label: "l"}}
	for _, body := range []string{"", "1,,2", "abc", "1,abc", "0", "-5", "1,-2", "NaN", "Inf", "1, +Inf"} {
		next, effects := testMachine.Advance(s, Text{Body: body})
		assert.Equal(t, s, next, body)
		assert.Equal(t, []string{msgAmountsInvalid}, replies(effects), body)
	}
}

func TestAdvance_CorruptedSessions(t *testing.T) {
	t.Run("unknown state", func(t *testing.T) {
		s := Session{State: "awaiting_something", Draft: models.ActionSpec{Title: "t"}}
		next, effects := testMachine.Advance(s, Text{Body: "hi"})
		assert.Equal(t, NewSession(), next)
		assert.Equal(t, []string{msgStartOver, msgMenu}, replies(effects))
	})

	t.Run("text while finalizing", func(t *testing.T) {
		s := Session{State: StateFinalizing}
		next, effects := testMachine.Advance(s, Text{Body: "hi"})
		assert.Equal(t, NewSession(), next)
		assert.Equal(t, []string{msgStartOver, msgMenu}, replies(effects))
	})
}

func TestAdvance_CreateFailed(t *testing.T) {
	s := Session{State: StateFinalizing, Draft: models.ActionSpec{Title: "t"}}
	next, effects := testMachine.Advance(s, CreateFailed{Err: errors.New("invalid recipient address")})
	assert.Equal(t, NewSession(), next)
	assert.Equal(t, []string{"Error creating app: invalid recipient address", msgMenu}, replies(effects))
}

func TestAdvance_TransitionsStayInTable(t *testing.T) {
	inputs := []Input{
		Command{Name: CommandStart},
		Command{Name: CommandCreate},
		Command{Name: CommandCancel},
		Text{Body: "skip"},
		Text{Body: "1,2"},
		Text{Body: "anything"},
		Image{FileID: "f"},
		IconStored{URL: "u"},
		IconFailed{Err: errors.New("x")},
		Created{ID: "id", Endpoint: "e"},
		CreateFailed{Err: errors.New("x")},
	}
	for from := range allowedTransitions {
		for _, in := range inputs {
			next, _ := testMachine.Advance(Session{State: from}, in)
			assert.True(t, KnownState(next.State), "%s + %T", from, in)
			assert.True(t, CanTransition(from, next.State), "%s + %T -> %s", from, in, next.State)
		}
	}
}

func TestParseAmounts(t *testing.T) {
	got, err := parseAmounts(" 1 ,5, 10.5")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 5, 10.5}, got)

	for _, bad := range []string{"", " ", "1,", ",1", "x", "0", "-1", "nan", "inf"} {
		_, err := parseAmounts(bad)
		assert.Error(t, err, bad)
	}
}
