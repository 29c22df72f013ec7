package wizard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/bizmatters/usdc-actions/internal/actions"
	"github.com/bizmatters/usdc-actions/internal/icons"
	"github.com/bizmatters/usdc-actions/internal/kv"
	"github.com/bizmatters/usdc-actions/internal/metrics"
	"github.com/bizmatters/usdc-actions/internal/models"
	"github.com/bizmatters/usdc-actions/internal/store"
)

// ErrNotAnImage is returned for uploads whose content does not sniff as an image.
var ErrNotAnImage = errors.New("upload is not an image")

// SpecCreator persists a finished draft.
type SpecCreator interface {
	Create(ctx context.Context, in models.ActionSpec) (*actions.CreateResult, error)
}

// FileFetcher downloads a file uploaded through the messaging transport.
type FileFetcher interface {
	FetchFile(ctx context.Context, fileID string) ([]byte, error)
}

// Wizard runs the state machine for one author at a time, carrying out
// effects and persisting the session between turns.
type Wizard struct {
	machine  Machine
	sessions *store.JSON[Session]
	creator  SpecCreator
	files    FileFetcher
	icons    icons.Store
	log      *zap.Logger
	metrics  *metrics.ActionMetrics
	tracer   trace.Tracer
	now      func() time.Time
}

type Option func(*Wizard)

func WithLogger(l *zap.Logger) Option {
	return func(w *Wizard) {
		w.log = l
	}
}

func WithMetrics(m *metrics.ActionMetrics) Option {
	return func(w *Wizard) {
		w.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(w *Wizard) {
		w.now = now
	}
}

// New creates a Wizard. Sessions are stored in backend under the session prefix.
func New(machine Machine, backend kv.Store, creator SpecCreator, files FileFetcher, iconStore icons.Store, opts ...Option) *Wizard {
	w := &Wizard{
		machine:  machine,
		sessions: store.NewJSON[Session](backend, store.SessionPrefix),
		creator:  creator,
		files:    files,
		icons:    iconStore,
		log:      zap.NewNop(),
		tracer:   otel.Tracer("wizard"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Handle processes one author input and returns the replies to send, in order.
// Replies are returned even when saving the session fails.
func (w *Wizard) Handle(ctx context.Context, author string, in Input) ([]string, error) {
	ctx, span := w.tracer.Start(ctx, "wizard.handle")
	defer span.End()

	sess := w.load(ctx, author)
	span.SetAttributes(
		attribute.String("wizard.author", author),
		attribute.String("wizard.state", string(sess.State)),
		attribute.String("wizard.input", in.Kind()),
	)
	if w.metrics != nil {
		w.metrics.RecordWizardTurn(ctx, string(sess.State), in.Kind())
	}

	var replies []string
	pending := []Input{in}
	for len(pending) > 0 {
		cur := pending[0]
		pending = pending[1:]

		next, effects := w.machine.Advance(sess, cur)
		if !CanTransition(sess.State, next.State) {
			w.log.Error("unexpected wizard transition",
				zap.String("author", author),
				zap.String("from", string(sess.State)),
				zap.String("to", string(next.State)),
			)
		}
		sess = next

		for _, eff := range effects {
			switch e := eff.(type) {
			case Reply:
				replies = append(replies, e.Text)
			case StoreIcon:
				pending = append(pending, w.storeIcon(ctx, e.FileID))
			case Finalize:
				pending = append(pending, w.finalize(ctx, e.Draft))
			}
		}
	}

	sess.UpdatedAt = w.now().UTC()
	if err := w.sessions.Put(ctx, author, sess); err != nil {
		span.RecordError(err)
		return replies, fmt.Errorf("failed to save session: %w", err)
	}
	return replies, nil
}

// Session returns the stored session for author, or a fresh idle one.
func (w *Wizard) Session(ctx context.Context, author string) Session {
	return w.load(ctx, author)
}

func (w *Wizard) load(ctx context.Context, author string) Session {
	sess, err := w.sessions.Get(ctx, author)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			w.log.Warn("discarding unreadable session", zap.String("author", author), zap.Error(err))
		}
		return NewSession()
	}
	return *sess
}

func (w *Wizard) storeIcon(ctx context.Context, fileID string) Input {
	ctx, span := w.tracer.Start(ctx, "wizard.store_icon")
	defer span.End()

	data, err := w.files.FetchFile(ctx, fileID)
	if err != nil {
		span.RecordError(err)
		w.log.Error("failed to fetch icon", zap.String("file_id", fileID), zap.Error(err))
		return IconFailed{Err: err}
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		err := fmt.Errorf("%w: %s", ErrNotAnImage, contentType)
		span.RecordError(err)
		w.log.Warn("rejected icon upload", zap.String("file_id", fileID), zap.String("content_type", contentType))
		return IconFailed{Err: err}
	}
	url, err := w.icons.Put(ctx, icons.ObjectName(w.now(), contentType), data, contentType)
	if err != nil {
		span.RecordError(err)
		w.log.Error("failed to store icon", zap.String("file_id", fileID), zap.Error(err))
		return IconFailed{Err: err}
	}
	return IconStored{URL: url}
}

func (w *Wizard) finalize(ctx context.Context, draft models.ActionSpec) Input {
	res, err := w.creator.Create(ctx, draft)
	if err != nil {
		w.log.Info("wizard draft rejected", zap.Error(err))
		return CreateFailed{Err: err}
	}
	return Created{ID: res.ID, Endpoint: res.Endpoint}
}
