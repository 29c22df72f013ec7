package helpers

import (
	solanago "github.com/gagliardetto/solana-go"

	"github.com/bizmatters/usdc-actions/internal/models"
)

// TestAdmin represents the admin account fixture
type TestAdmin struct {
	Username string
	Password string
}

// Default test fixtures
var (
	DefaultTestAdmin = TestAdmin{
		Username: "admin",
		Password: "test-password-123",
	}

	// USDCMint is the mainnet USDC mint used by every test builder.
	USDCMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

	// BaseURL is the public origin test stacks publish endpoints under.
	BaseURL = "https://actions.example.com"
)

// NewAddress returns a fresh random wallet address.
func NewAddress() string {
	return solanago.NewWallet().PublicKey().String()
}

// DefaultActionSpec returns a valid spec paying recipient.
func DefaultActionSpec(recipient string) models.ActionSpec {
	return models.ActionSpec{
		Title:             "Coffee tips",
		Icon:              "https://example.com/coffee.png",
		Description:       "Buy the team a coffee",
		Label:             "Tip",
		PredefinedAmounts: []float64{1, 5, 10},
		Recipient:         recipient,
	}
}
