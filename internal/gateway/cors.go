package gateway

import (
	"github.com/gin-gonic/gin"
)

// Action protocol headers sent with every /endpoint/app response.
const (
	ActionVersion = "2.1.3"
	// BlockchainIDs is the CAIP-2 id of Solana mainnet.
	BlockchainIDs = "solana:5eykt4UsFv8P8NJdTREpY1vzqKqZKvdp"
)

var actionCORSHeaders = map[string]string{
	"Access-Control-Allow-Origin":   "*",
	"Access-Control-Allow-Methods":  "GET,POST,PUT,OPTIONS,DELETE",
	"Access-Control-Allow-Headers":  "Content-Type, Authorization, Content-Encoding, Accept-Encoding",
	"Access-Control-Expose-Headers": "X-Action-Version, X-Blockchain-Ids",
	"X-Action-Version":              ActionVersion,
	"X-Blockchain-Ids":              BlockchainIDs,
}

// ActionCORS sets the permissive headers wallets and blink clients require.
func ActionCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		for k, v := range actionCORSHeaders {
			c.Header(k, v)
		}
		c.Next()
	}
}
