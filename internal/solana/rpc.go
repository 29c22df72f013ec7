package solana

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// RPCBlockhashSource fetches finalized blockhashes from a JSON-RPC node.
// Calls go through a circuit breaker so a failing node fails fast.
type RPCBlockhashSource struct {
	client  *rpc.Client
	breaker *gobreaker.CircuitBreaker
}

// NewRPCBlockhashSource creates a source for the node at rpcURL.
func NewRPCBlockhashSource(rpcURL string, log *zap.Logger) *RPCBlockhashSource {
	settings := gobreaker.Settings{
		Name:        "solana-rpc",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &RPCBlockhashSource{
		client:  rpc.New(rpcURL),
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (s *RPCBlockhashSource) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		out, err := s.client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
		if err != nil {
			return nil, err
		}
		if out == nil || out.Value == nil {
			return nil, fmt.Errorf("empty blockhash response")
		}
		return out.Value.Blockhash, nil
	})
	if err != nil {
		return solana.Hash{}, fmt.Errorf("rpc getLatestBlockhash: %w", err)
	}
	return result.(solana.Hash), nil
}
