package solana

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// BlockhashSource supplies a recent blockhash for new transactions.
type BlockhashSource interface {
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
}

// Transfer describes a token transfer. Amount is in human units.
type Transfer struct {
	From   solana.PublicKey
	To     solana.PublicKey
	Amount float64
}

// Builder assembles unsigned token transfers for a single mint.
type Builder struct {
	mint      solana.PublicKey
	decimals  int32
	blockhash BlockhashSource
	tracer    trace.Tracer
}

// NewBuilder creates a Builder for the given mint.
func NewBuilder(mint string, decimals int32, blockhash BlockhashSource) (*Builder, error) {
	mintKey, err := ParseAddress(mint)
	if err != nil {
		return nil, fmt.Errorf("mint: %w", err)
	}
	return &Builder{
		mint:      mintKey,
		decimals:  decimals,
		blockhash: blockhash,
		tracer:    otel.Tracer("solana-builder"),
	}, nil
}

// BuildTransfer returns a transaction moving Amount of the mint from the
// sender's associated token account to the recipient's. The sender pays fees.
// The transaction carries empty signature slots for the wallet to fill in.
func (b *Builder) BuildTransfer(ctx context.Context, t Transfer) (*solana.Transaction, error) {
	ctx, span := b.tracer.Start(ctx, "solana.build_transfer")
	defer span.End()

	span.SetAttributes(
		attribute.String("transfer.from", t.From.String()),
		attribute.String("transfer.to", t.To.String()),
		attribute.Float64("transfer.amount", t.Amount),
	)

	units, err := ToBaseUnits(t.Amount, b.decimals)
	if err != nil {
		return nil, err
	}

	fromATA, _, err := solana.FindAssociatedTokenAddress(t.From, b.mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive sender token account: %w", err)
	}
	toATA, _, err := solana.FindAssociatedTokenAddress(t.To, b.mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive recipient token account: %w", err)
	}

	ix, err := token.NewTransferInstruction(
		units,
		fromATA,
		toATA,
		t.From,
		[]solana.PublicKey{},
	).ValidateAndBuild()
	if err != nil {
		return nil, fmt.Errorf("failed to build transfer instruction: %w", err)
	}

	recent, err := b.blockhash.LatestBlockhash(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get recent blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{ix},
		recent,
		solana.TransactionPayer(t.From),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	tx.Signatures = make([]solana.Signature, tx.Message.Header.NumRequiredSignatures)

	span.SetAttributes(attribute.Int64("transfer.base_units", int64(units)))
	return tx, nil
}

// EncodeUnsigned serializes tx in wire format and base64 encodes it.
func EncodeUnsigned(tx *solana.Transaction) (string, error) {
	if len(tx.Signatures) != int(tx.Message.Header.NumRequiredSignatures) {
		tx.Signatures = make([]solana.Signature, tx.Message.Header.NumRequiredSignatures)
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("failed to serialize transaction: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
