package actions

import (
	"context"
	"fmt"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/bizmatters/usdc-actions/internal/kv"
)

// TestCreate_LinksFollowAmounts verifies that every valid spec gets exactly
// one link per amount, in input order, with the expected label and href.
func TestCreate_LinksFollowAmounts(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	svc := NewService(kv.NewMemoryStore(), &recordingBuilder{}, testBaseURL)
	recipient := solanago.NewWallet().PublicKey().String()

	properties.Property("links mirror predefined amounts", prop.ForAll(
		func(amounts []float64) bool {
			in := validSpec()
			in.Recipient = recipient
			in.PredefinedAmounts = amounts

			res, err := svc.Create(context.Background(), in)
			if err != nil {
				return false
			}
			if len(res.Spec.Links.Actions) != len(amounts) {
				return false
			}
			for i, a := range amounts {
				link := res.Spec.Links.Actions[i]
				if link.Label != fmt.Sprintf("Send %s USDC", FormatAmount(a)) {
					return false
				}
				if link.Href != "/endpoint/app/"+res.ID+"/transfer?amount="+FormatAmount(a) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(0.000001, 1_000_000)).SuchThat(func(v []float64) bool {
			return len(v) > 0
		}),
	))

	properties.TestingRun(t)
}
