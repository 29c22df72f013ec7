package actions

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/bizmatters/usdc-actions/internal/kv"
	"github.com/bizmatters/usdc-actions/internal/metrics"
	"github.com/bizmatters/usdc-actions/internal/models"
	"github.com/bizmatters/usdc-actions/internal/solana"
	"github.com/bizmatters/usdc-actions/internal/store"
)

// TransferBuilder builds unsigned transfer transactions.
type TransferBuilder interface {
	BuildTransfer(ctx context.Context, t solana.Transfer) (*solanago.Transaction, error)
}

// Service owns the lifecycle of action specs: create, read, render,
// execute and delete.
type Service struct {
	specs    *store.JSON[models.Spec]
	builder  TransferBuilder
	baseURL  string
	symbol   string
	decimals int32
	validate *validator.Validate
	log      *zap.Logger
	metrics  *metrics.ActionMetrics
	tracer   trace.Tracer
	now      func() time.Time
}

// CreateResult is returned by Create.
type CreateResult struct {
	ID       string
	Endpoint string
	Spec     models.Spec
}

// NewService creates a spec service over the given key-value store.
func NewService(backend kv.Store, builder TransferBuilder, baseURL string, opts ...Option) *Service {
	s := &Service{
		specs:    store.NewJSON[models.Spec](backend, store.SpecPrefix),
		builder:  builder,
		baseURL:  strings.TrimRight(baseURL, "/"),
		symbol:   "USDC",
		decimals: 6,
		validate: validator.New(),
		log:      zap.NewNop(),
		tracer:   otel.Tracer("actions-service"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EndpointURL is the public discovery URL of a spec.
func (s *Service) EndpointURL(id string) string {
	return s.baseURL + "/endpoint/app/" + id
}

// Create validates and persists a spec under a fresh id.
// Nothing is written unless every field is valid.
func (s *Service) Create(ctx context.Context, in models.ActionSpec) (*CreateResult, error) {
	ctx, span := s.tracer.Start(ctx, "actions.create")
	defer span.End()

	if err := s.validate.Struct(in); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	for _, a := range in.PredefinedAmounts {
		if math.IsInf(a, 0) {
			return nil, fmt.Errorf("%w: amount must be finite", ErrInvalidSpec)
		}
		if _, err := solana.ToBaseUnits(a, s.decimals); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
		}
	}

	recipient, err := solana.ParseAddress(in.Recipient)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipientAddress, err)
	}

	spec := models.Spec{
		ID:         uuid.NewString(),
		ActionSpec: in.Clone(),
		CreatedAt:  s.now().UTC(),
	}
	spec.Recipient = recipient.String()
	spec.Links = deriveLinks(spec.ID, s.symbol, spec.PredefinedAmounts)

	span.SetAttributes(
		attribute.String("spec.id", spec.ID),
		attribute.Int("spec.amounts", len(spec.PredefinedAmounts)),
	)

	if err := s.specs.Put(ctx, spec.ID, spec); err != nil {
		span.RecordError(err)
		s.log.Error("failed to persist spec", zap.String("id", spec.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	if s.metrics != nil {
		s.metrics.RecordSpecCreated(ctx, len(spec.PredefinedAmounts))
	}
	s.log.Info("spec created", zap.String("id", spec.ID), zap.String("title", spec.Title))

	return &CreateResult{
		ID:       spec.ID,
		Endpoint: s.EndpointURL(spec.ID),
		Spec:     spec,
	}, nil
}

// Get returns the stored spec.
func (s *Service) Get(ctx context.Context, id string) (*models.Spec, error) {
	ctx, span := s.tracer.Start(ctx, "actions.get")
	defer span.End()
	span.SetAttributes(attribute.String("spec.id", id))

	spec, err := s.specs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSpecNotFound
		}
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return spec, nil
}

// Render returns the discovery payload with every link made absolute
// against origin.
func (s *Service) Render(ctx context.Context, id, origin string) (*models.ActionGetResponse, error) {
	spec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	links := models.Links{Actions: make([]models.ActionLink, len(spec.Links.Actions))}
	for i, link := range spec.Links.Actions {
		link.Href = absoluteURL(origin, link.Href)
		links.Actions[i] = link
	}

	return &models.ActionGetResponse{
		Type:              models.ActionTypeAction,
		ID:                spec.ID,
		Icon:              spec.Icon,
		Title:             spec.Title,
		Description:       spec.Description,
		Label:             spec.Label,
		PredefinedAmounts: spec.PredefinedAmounts,
		Recipient:         spec.Recipient,
		Links:             links,
	}, nil
}

// Execute builds an unsigned transfer of amount (or the first predefined
// amount when nil) from account to the spec's recipient.
func (s *Service) Execute(ctx context.Context, id, account string, amount *float64) (*models.ActionPostResponse, error) {
	ctx, span := s.tracer.Start(ctx, "actions.execute")
	defer span.End()
	span.SetAttributes(attribute.String("spec.id", id))

	spec, err := s.Get(ctx, id)
	if err != nil {
		s.recordExecution(ctx, outcomeFor(err), 0)
		return nil, err
	}

	from, err := solana.ParseAddress(account)
	if err != nil {
		s.recordExecution(ctx, metrics.OutcomeInvalid, 0)
		return nil, fmt.Errorf("%w: %v", ErrInvalidAccount, err)
	}

	value := spec.PredefinedAmounts[0]
	if amount != nil {
		value = *amount
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		s.recordExecution(ctx, metrics.OutcomeInvalid, 0)
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, value)
	}

	to, err := solana.ParseAddress(spec.Recipient)
	if err != nil {
		s.recordExecution(ctx, metrics.OutcomeFailed, 0)
		return nil, fmt.Errorf("%w: stored recipient: %v", ErrTransactionBuildFailed, err)
	}

	start := s.now()
	tx, err := s.builder.BuildTransfer(ctx, solana.Transfer{From: from, To: to, Amount: value})
	elapsed := s.now().Sub(start)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, solana.ErrInvalidAmount) {
			s.recordExecution(ctx, metrics.OutcomeInvalid, elapsed)
			return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		s.recordExecution(ctx, metrics.OutcomeFailed, elapsed)
		s.log.Error("failed to build transfer", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrTransactionBuildFailed, err)
	}

	encoded, err := solana.EncodeUnsigned(tx)
	if err != nil {
		s.recordExecution(ctx, metrics.OutcomeFailed, elapsed)
		return nil, fmt.Errorf("%w: %v", ErrTransactionBuildFailed, err)
	}
	s.recordExecution(ctx, metrics.OutcomeSuccess, elapsed)

	return &models.ActionPostResponse{
		Type:        models.ActionTypeTransaction,
		Transaction: encoded,
		Message:     fmt.Sprintf("Send %s %s to %s", FormatAmount(value), s.symbol, spec.Recipient),
	}, nil
}

// Delete removes a spec. Deleting a missing id succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "actions.delete")
	defer span.End()
	span.SetAttributes(attribute.String("spec.id", id))

	if err := s.specs.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if s.metrics != nil {
		s.metrics.RecordSpecDeleted(ctx)
	}
	s.log.Info("spec deleted", zap.String("id", id))
	return nil
}

func (s *Service) recordExecution(ctx context.Context, outcome string, d time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordExecution(ctx, outcome, d)
	}
}

func outcomeFor(err error) string {
	if errors.Is(err, ErrSpecNotFound) {
		return metrics.OutcomeNotFound
	}
	return metrics.OutcomeFailed
}
