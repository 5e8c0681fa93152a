package usecase

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/uniroute-labs/uniroute/domain"
)

const (
	// At each percentage only the best non-conflicting quotes are explored.
	maxValidQuotesPerPercentage = 2

	// Relative improvement between consecutive levels below which the search
	// stops once enough levels have run.
	minImprovementPerLevel = 0.0001

	minSplitLevelsBeforeEarlyExit = 3
)

var splitSearchTimeoutCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "uniroute_split_search_timeouts_total",
		Help: "Total number of split searches stopped by the wall-clock budget",
	},
	[]string{"chain"},
)

func init() {
	prometheus.MustRegister(splitSearchTimeoutCounter)
}

// bestSplitFinder composes sub-route quotes into splits summing to exactly
// 100% of the trade with a bounded combinatorial search under a wall-clock
// budget.
type bestSplitFinder struct {
	step           int
	maxSplits      int
	maxSplitRoutes int
	timeout        time.Duration
	wrappedNative  common.Address
	chainName      string
}

func NewBestSplitFinder(config domain.RouterConfig, chain domain.ChainInfo) (*bestSplitFinder, error) {
	if config.PercentageStep < 5 || config.PercentageStep > 100 || 100%config.PercentageStep != 0 {
		return nil, fmt.Errorf("percentage step %d must divide 100 and lie in [5, 100]", config.PercentageStep)
	}
	return &bestSplitFinder{
		step:           config.PercentageStep,
		maxSplits:      config.MaxSplits,
		maxSplitRoutes: config.MaxSplitRoutes,
		timeout:        time.Duration(config.RouteSplitTimeoutMs) * time.Millisecond,
		wrappedNative:  chain.WrappedNative,
		chainName:      chain.Name,
	}, nil
}

type splitSearchState struct {
	byPercentage map[int][]domain.Quote
	tradeType    domain.TradeType
	deadline     time.Time
	timedOut     bool

	results []domain.QuoteSplit
	seen    map[string]struct{}
}

// FindBestSplits explores split levels 1..maxSplits over the quoted
// sub-routes and returns the surviving splits, best first. The input quotes
// carry a percentage and a quoted amount each.
func (f *bestSplitFinder) FindBestSplits(quotes []domain.Quote, tradeType domain.TradeType) []domain.QuoteSplit {
	state := &splitSearchState{
		byPercentage: sortQuotesByPercentage(quotes, tradeType),
		tradeType:    tradeType,
		deadline:     time.Now().Add(f.timeout),
		seen:         make(map[string]struct{}),
	}

	// Level 1: every full-size quote is a singleton split.
	for _, quote := range state.byPercentage[100] {
		state.addSplit(domain.QuoteSplit{Quotes: []domain.Quote{quote}})
	}
	f.trim(state)
	previousBest := bestAmount(state.results, tradeType)

	for level := 2; level <= f.maxSplits; level++ {
		before := len(state.seen)
		f.searchLevel(state, level, 100, nil)
		f.trim(state)

		if state.timedOut {
			splitSearchTimeoutCounter.WithLabelValues(f.chainName).Inc()
			break
		}
		if len(state.seen) == before {
			break
		}
		best := bestAmount(state.results, tradeType)
		if level >= minSplitLevelsBeforeEarlyExit && !improvedEnough(previousBest, best, tradeType) {
			break
		}
		previousBest = best
	}

	sortSplits(state.results, tradeType)
	return state.results
}

// searchLevel enumerates ordered partitions of the remaining percentage into
// partsLeft parts, each a positive multiple of the step, picking at most
// maxValidQuotesPerPercentage non-conflicting quotes per part.
func (f *bestSplitFinder) searchLevel(state *splitSearchState, partsLeft, remaining int, chosen []domain.Quote) {
	if state.timedOut {
		return
	}
	if !state.deadline.IsZero() && time.Now().After(state.deadline) {
		state.timedOut = true
		return
	}

	if partsLeft == 1 {
		// The final part receives exactly the remainder.
		if remaining < f.step || remaining > 100-f.step {
			return
		}
		for _, quote := range f.topCandidates(state, remaining, chosen) {
			state.addSplit(domain.QuoteSplit{Quotes: append(append([]domain.Quote(nil), chosen...), quote)})
		}
		return
	}

	maxPart := remaining - (partsLeft-1)*f.step
	if maxPart > 100-f.step {
		maxPart = 100 - f.step
	}
	for p := f.step; p <= maxPart; p += f.step {
		for _, quote := range f.topCandidates(state, p, chosen) {
			f.searchLevel(state, partsLeft-1, remaining-p, append(chosen, quote))
			if state.timedOut {
				return
			}
		}
	}
}

// topCandidates filters the percentage's sorted quotes against the partial
// combination and keeps the best few survivors.
func (f *bestSplitFinder) topCandidates(state *splitSearchState, percentage int, chosen []domain.Quote) []domain.Quote {
	candidates := make([]domain.Quote, 0, maxValidQuotesPerPercentage)
	for _, quote := range state.byPercentage[percentage] {
		if len(candidates) >= maxValidQuotesPerPercentage {
			break
		}
		if f.conflicts(quote, chosen) {
			continue
		}
		candidates = append(candidates, quote)
	}
	return candidates
}

// conflicts applies the two split-compatibility filters: no shared pool with
// any already-chosen leg, and no mixing of native-touching and
// wrapped-native-touching legs.
func (f *bestSplitFinder) conflicts(quote domain.Quote, chosen []domain.Quote) bool {
	for _, other := range chosen {
		if quote.Route.SharesPoolWith(other.Route) {
			return true
		}
	}
	quoteNative := touchesNative(quote.Route)
	quoteWrapped := !quoteNative && quote.Route.InvolvesToken(f.wrappedNative)
	for _, other := range chosen {
		otherNative := touchesNative(other.Route)
		otherWrapped := !otherNative && other.Route.InvolvesToken(f.wrappedNative)
		if (quoteNative && otherWrapped) || (quoteWrapped && otherNative) {
			return true
		}
	}
	return false
}

func touchesNative(route domain.Route) bool {
	return domain.IsNative(route.TokenIn) || domain.IsNative(route.TokenOut) || route.InvolvesToken(domain.NativeAddress)
}

// addSplit records the split unless an equivalent combination was already
// seen. Equivalence ignores leg order.
func (s *splitSearchState) addSplit(split domain.QuoteSplit) {
	key := splitKey(split)
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.results = append(s.results, split)
}

// splitKey is the order-insensitive identity of a combination: each leg's
// sorted pool keys plus its percentage, legs sorted.
func splitKey(split domain.QuoteSplit) string {
	legs := make([]string, 0, len(split.Quotes))
	for _, quote := range split.Quotes {
		pools := quote.Route.PoolKeys()
		sort.Strings(pools)
		legs = append(legs, strings.Join(pools, ",")+"@"+strconv.Itoa(quote.Route.Percentage))
	}
	sort.Strings(legs)
	return strings.Join(legs, "|")
}

// trim keeps full-size singletons unconditionally and truncates the rest to
// maxSplitRoutes by total amount.
func (f *bestSplitFinder) trim(state *splitSearchState) {
	singletons := make([]domain.QuoteSplit, 0, len(state.results))
	splits := make([]domain.QuoteSplit, 0, len(state.results))
	for _, split := range state.results {
		if len(split.Quotes) == 1 && split.Quotes[0].Route.Percentage == 100 {
			singletons = append(singletons, split)
		} else {
			splits = append(splits, split)
		}
	}
	sortSplits(splits, state.tradeType)
	if len(splits) > f.maxSplitRoutes {
		splits = splits[:f.maxSplitRoutes]
	}
	state.results = append(singletons, splits...)
}

// sortSplits orders by total quoted amount: descending output for EXACT_IN,
// ascending input for EXACT_OUT. Ties break on the split key for determinism.
func sortSplits(splits []domain.QuoteSplit, tradeType domain.TradeType) {
	sort.SliceStable(splits, func(i, j int) bool {
		cmp := splits[i].TotalQuotedAmount().Cmp(splits[j].TotalQuotedAmount())
		if cmp == 0 {
			return splitKey(splits[i]) < splitKey(splits[j])
		}
		if tradeType == domain.ExactOut {
			return cmp < 0
		}
		return cmp > 0
	})
}

func bestAmount(splits []domain.QuoteSplit, tradeType domain.TradeType) *big.Int {
	var best *big.Int
	for _, split := range splits {
		total := split.TotalQuotedAmount()
		if best == nil {
			best = total
			continue
		}
		if tradeType == domain.ExactOut {
			if total.Cmp(best) < 0 {
				best = total
			}
		} else if total.Cmp(best) > 0 {
			best = total
		}
	}
	return best
}

// improvedEnough reports whether the new best amount improves on the
// previous level's best by at least the minimum relative margin.
func improvedEnough(previous, current *big.Int, tradeType domain.TradeType) bool {
	if previous == nil || previous.Sign() == 0 {
		return current != nil
	}
	if current == nil {
		return false
	}
	diff := new(big.Float).Sub(new(big.Float).SetInt(current), new(big.Float).SetInt(previous))
	if tradeType == domain.ExactOut {
		diff.Neg(diff)
	}
	ratio, _ := new(big.Float).Quo(diff, new(big.Float).SetInt(previous)).Float64()
	return ratio >= minImprovementPerLevel
}

// sortQuotesByPercentage groups quotes by their percentage, best amount
// first per group.
func sortQuotesByPercentage(quotes []domain.Quote, tradeType domain.TradeType) map[int][]domain.Quote {
	byPercentage := make(map[int][]domain.Quote)
	for _, quote := range quotes {
		if quote.QuotedAmount == nil || quote.QuotedAmount.Sign() <= 0 {
			continue
		}
		byPercentage[quote.Route.Percentage] = append(byPercentage[quote.Route.Percentage], quote)
	}
	for percentage := range byPercentage {
		group := byPercentage[percentage]
		sort.SliceStable(group, func(i, j int) bool {
			cmp := group[i].QuotedAmount.Cmp(group[j].QuotedAmount)
			if tradeType == domain.ExactOut {
				return cmp < 0
			}
			return cmp > 0
		})
	}
	return byPercentage
}
