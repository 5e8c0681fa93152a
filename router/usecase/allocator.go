package usecase

import (
	"math/big"

	"github.com/uniroute-labs/uniroute/domain"
)

// AllocateRouteQuotes fans each route into one copy per percentage of the
// split grid {step, 2*step, ..., 100}, preserving route order so the quoter
// is called exactly once per (route, percentage) pair. The returned amounts
// slice is parallel to the routes slice and holds each copy's share of the
// requested amount.
func AllocateRouteQuotes(routes []domain.Route, amount *big.Int, step int) ([]domain.Route, []*big.Int) {
	if step <= 0 || step > 100 {
		step = 100
	}
	percentages := make([]int, 0, 100/step)
	for p := 100; p >= step; p -= step {
		percentages = append(percentages, p)
	}

	allocated := make([]domain.Route, 0, len(routes)*len(percentages))
	amounts := make([]*big.Int, 0, len(routes)*len(percentages))
	for _, route := range routes {
		for _, percentage := range percentages {
			allocated = append(allocated, route.WithPercentage(percentage))
			amounts = append(amounts, percentageOf(amount, percentage))
		}
	}
	return allocated, amounts
}

func percentageOf(amount *big.Int, percentage int) *big.Int {
	share := new(big.Int).Mul(amount, big.NewInt(int64(percentage)))
	return share.Quo(share, big.NewInt(100))
}
