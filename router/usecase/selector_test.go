package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uniroute-labs/uniroute/domain"
)

func splitWithGas(seed byte, quoted, gasCostQuote int64) domain.QuoteSplit {
	quote := splitQuote(seed, 100, quoted)
	quote.GasDetails = &domain.GasDetails{
		GasCostQuoteToken: big.NewInt(gasCostQuote),
	}
	return domain.QuoteSplit{Quotes: []domain.Quote{quote}}
}

func TestSelectTopQuotes_GasAdjustedOrder(t *testing.T) {
	// The raw-best quote loses once gas is subtracted.
	splits := []domain.QuoteSplit{
		splitWithGas(1, 1000, 200),
		splitWithGas(2, 950, 50),
		splitWithGas(3, 940, 10),
	}

	ranked := SelectTopQuotes(splits, domain.ExactIn, 0)

	require.Equal(t, "930", ranked[0].TotalAdjustedAmount(domain.ExactIn).String())
	require.Equal(t, "900", ranked[1].TotalAdjustedAmount(domain.ExactIn).String())
	require.Equal(t, "800", ranked[2].TotalAdjustedAmount(domain.ExactIn).String())
}

func TestSelectTopQuotes_ExactOutAscending(t *testing.T) {
	splits := []domain.QuoteSplit{
		splitWithGas(1, 1000, 10),
		splitWithGas(2, 990, 50),
	}

	ranked := SelectTopQuotes(splits, domain.ExactOut, 0)

	// For EXACT_OUT gas is added to the required input.
	require.Equal(t, "1010", ranked[0].TotalAdjustedAmount(domain.ExactOut).String())
	require.Equal(t, "1040", ranked[1].TotalAdjustedAmount(domain.ExactOut).String())
}

func TestSelectTopQuotes_Truncates(t *testing.T) {
	splits := []domain.QuoteSplit{
		splitWithGas(1, 1000, 0),
		splitWithGas(2, 900, 0),
		splitWithGas(3, 800, 0),
	}

	ranked := SelectTopQuotes(splits, domain.ExactIn, 2)
	require.Len(t, ranked, 2)
	require.Equal(t, "1000", ranked[0].TotalQuotedAmount().String())
}

func TestSelectTopQuotes_TieBreaksOnFewerLegs(t *testing.T) {
	single := splitWithGas(1, 1000, 0)
	double := domain.QuoteSplit{Quotes: []domain.Quote{
		splitQuote(2, 50, 600),
		splitQuote(3, 50, 400),
	}}

	ranked := SelectTopQuotes([]domain.QuoteSplit{double, single}, domain.ExactIn, 0)
	require.Len(t, ranked[0].Quotes, 1)
}

func TestSelectTopQuotes_InputUntouched(t *testing.T) {
	splits := []domain.QuoteSplit{
		splitWithGas(1, 100, 0),
		splitWithGas(2, 900, 0),
	}
	SelectTopQuotes(splits, domain.ExactIn, 1)
	require.Equal(t, "100", splits[0].TotalQuotedAmount().String())
}
