package wizard

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseAmounts parses a comma separated list of positive numbers.
// One bad token rejects the whole list.
func parseAmounts(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	amounts := make([]float64, 0, len(parts))
	for _, part := range parts {
		tok := strings.TrimSpace(part)
		if tok == "" {
			return nil, fmt.Errorf("empty amount in %q", s)
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("amount %q is not a number", tok)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return nil, fmt.Errorf("amount %q must be a positive number", tok)
		}
		amounts = append(amounts, v)
	}
	return amounts, nil
}
