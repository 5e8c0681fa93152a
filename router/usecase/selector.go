package usecase

import (
	"sort"

	"github.com/uniroute-labs/uniroute/domain"
)

// SelectTopQuotes ranks whole split plans by gas-adjusted amount (output
// minus gas for EXACT_IN, input plus gas for EXACT_OUT), tie-breaking on
// fewer legs then on the split key, and returns the best n.
func SelectTopQuotes(splits []domain.QuoteSplit, tradeType domain.TradeType, n int) []domain.QuoteSplit {
	ranked := append([]domain.QuoteSplit(nil), splits...)
	sort.SliceStable(ranked, func(i, j int) bool {
		cmp := ranked[i].TotalAdjustedAmount(tradeType).Cmp(ranked[j].TotalAdjustedAmount(tradeType))
		if cmp == 0 {
			if len(ranked[i].Quotes) != len(ranked[j].Quotes) {
				return len(ranked[i].Quotes) < len(ranked[j].Quotes)
			}
			return splitKey(ranked[i]) < splitKey(ranked[j])
		}
		if tradeType == domain.ExactOut {
			return cmp < 0
		}
		return cmp > 0
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
