package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// USDBucket is the coarse quantisation of trade notional used to key the
// route cache. Bucket boundaries are stable across deploys.
type USDBucket string

const (
	USDBucket1    USDBucket = "USD_1"
	USDBucket10   USDBucket = "USD_10"
	USDBucket100  USDBucket = "USD_100"
	USDBucket1K   USDBucket = "USD_1_000"
	USDBucket10K  USDBucket = "USD_10_000"
	USDBucket100K USDBucket = "USD_100_000"
	USDBucket1M   USDBucket = "USD_1_000_000"
	USDBucket10M  USDBucket = "USD_10_000_000"
)

var usdBucketBoundaries = []struct {
	upper  float64
	bucket USDBucket
}{
	{1, USDBucket1},
	{10, USDBucket10},
	{100, USDBucket100},
	{1_000, USDBucket1K},
	{10_000, USDBucket10K},
	{100_000, USDBucket100K},
	{1_000_000, USDBucket1M},
}

// BucketForUSD maps a USD notional to its coarse bucket. Values above the
// largest boundary fall into the top bucket.
func BucketForUSD(usd float64) USDBucket {
	for _, boundary := range usdBucketBoundaries {
		if usd <= boundary.upper {
			return boundary.bucket
		}
	}
	return USDBucket10M
}

// FineBucketForUSD maps a USD notional to a fine-grained half-order-of-
// magnitude label used for metric dimensions only, never for cache keys.
func FineBucketForUSD(usd float64) string {
	if usd <= 0 {
		return "usd_0"
	}
	exp := math.Floor(math.Log10(usd) * 2)
	return fmt.Sprintf("usd_e%.1f", exp/2)
}

const cachedRouteKeyPrefix = "CACHEDROUTE"

// CachedRoutesKey identifies one cached route entry.
// Token addresses are normalised: lowercase, native currency as the zero
// address.
type CachedRoutesKey struct {
	Chain     ChainID
	TradeType TradeType
	TokenIn   common.Address
	TokenOut  common.Address
	Bucket    USDBucket
}

// String renders the Redis key.
func (k CachedRoutesKey) String() string {
	return fmt.Sprintf("%s#%d#%s#%s#%s",
		cachedRouteKeyPrefix,
		k.Chain,
		k.TradeType,
		strings.ToLower(k.TokenIn.Hex()),
		strings.ToLower(k.TokenOut.Hex()),
	) + "#" + string(k.Bucket)
}
