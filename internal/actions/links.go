package actions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bizmatters/usdc-actions/internal/models"
)

// FormatAmount renders an amount in its shortest decimal form ("1", "2.5").
func FormatAmount(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}

// TransferPath is the relative execution path for a spec.
func TransferPath(id string) string {
	return "/endpoint/app/" + id + "/transfer"
}

// deriveLinks builds one link per amount, in input order.
func deriveLinks(id, symbol string, amounts []float64) models.Links {
	links := models.Links{Actions: make([]models.ActionLink, 0, len(amounts))}
	for _, a := range amounts {
		amount := FormatAmount(a)
		links.Actions = append(links.Actions, models.ActionLink{
			Label: fmt.Sprintf("Send %s %s", amount, symbol),
			Href:  TransferPath(id) + "?amount=" + amount,
		})
	}
	return links
}

// absoluteURL resolves href against origin. Absolute hrefs are kept as is.
func absoluteURL(origin, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	origin = strings.TrimRight(origin, "/")
	if strings.HasPrefix(href, "/") {
		return origin + href
	}
	return origin + "/" + href
}
