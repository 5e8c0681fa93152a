package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
	"github.com/uniroute-labs/uniroute/log"
)

var _ mvc.QuoteFetcher = &quoteFetcher{}

// quoteConcurrency bounds parallel quoter calls per request.
const quoteConcurrency = 8

// quoterV2Address maps chains to the QuoterV2 lens contract used for V3
// segments. V2 legs are priced locally from reserves and V4 legs are
// approximated at the pool mid price, so only V3 needs the lens.
var quoterV2Address = map[domain.ChainID]common.Address{
	domain.ChainMainnet:  common.HexToAddress("0x61fFE014bA17989E743c5F6cB21bF9697530B21e"),
	domain.ChainOptimism: common.HexToAddress("0x61fFE014bA17989E743c5F6cB21bF9697530B21e"),
	domain.ChainPolygon:  common.HexToAddress("0x61fFE014bA17989E743c5F6cB21bF9697530B21e"),
	domain.ChainArbitrum: common.HexToAddress("0x61fFE014bA17989E743c5F6cB21bF9697530B21e"),
	domain.ChainBase:     common.HexToAddress("0x3d4e44Eb1374240CE5F1B871ab261CD16335B76a"),
	domain.ChainBNB:      common.HexToAddress("0x78D78E420Da98ad378D7799bE8f4AF69033EB077"),
}

var (
	quoteExactInputSelector  = crypto.Keccak256([]byte("quoteExactInput(bytes,uint256)"))[:4]
	quoteExactOutputSelector = crypto.Keccak256([]byte("quoteExactOutput(bytes,uint256)"))[:4]
)

var quoteFetchCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "uniroute_quote_fetches_total",
		Help: "Total number of per-route quote computations by outcome",
	},
	[]string{"chain", "outcome"},
)

func init() {
	prometheus.MustRegister(quoteFetchCounter)
}

type quoteFetcher struct {
	chainClient mvc.ChainClient
	logger      log.Logger
}

// NewQuoteFetcher creates the per-route quote computer: V2 legs from cached
// reserves, V3 segments through the QuoterV2 lens, V4 legs at the mid price.
func NewQuoteFetcher(chainClient mvc.ChainClient, logger log.Logger) mvc.QuoteFetcher {
	return &quoteFetcher{
		chainClient: chainClient,
		logger:      logger.Named("quoter"),
	}
}

// FetchQuotes implements mvc.QuoteFetcher. Routes that fail to quote come
// back with a nil quoted amount rather than failing the batch; the caller
// drops them.
func (q *quoteFetcher) FetchQuotes(ctx context.Context, chain domain.ChainInfo, tradeType domain.TradeType, routes []domain.Route, amounts []*big.Int) ([]domain.Quote, error) {
	if len(routes) != len(amounts) {
		return nil, fmt.Errorf("quote fetch: %d routes with %d amounts", len(routes), len(amounts))
	}

	quotes := make([]domain.Quote, len(routes))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(quoteConcurrency)

	for i := range routes {
		i := i
		group.Go(func() error {
			quote, err := q.quoteRoute(groupCtx, chain, tradeType, routes[i], amounts[i])
			if err != nil {
				quoteFetchCounter.WithLabelValues(chain.Name, "failed").Inc()
				q.logger.Debug("route quote failed",
					zap.String("chain", chain.Name), zap.Int("route", i), zap.Error(err))
				quotes[i] = domain.Quote{Route: routes[i], RequestedAmount: new(big.Int).Set(amounts[i])}
				return nil
			}
			quoteFetchCounter.WithLabelValues(chain.Name, "ok").Inc()
			quotes[i] = quote
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return quotes, nil
}

func (q *quoteFetcher) quoteRoute(ctx context.Context, chain domain.ChainInfo, tradeType domain.TradeType, route domain.Route, amount *big.Int) (domain.Quote, error) {
	tokens, err := route.Tokens()
	if err != nil {
		return domain.Quote{}, err
	}

	data := &domain.QuoterData{
		InitializedTicksCrossed: make([]uint32, len(route.Pools)),
	}

	var quoted *big.Int
	if tradeType == domain.ExactOut {
		quoted, err = q.quoteExactOut(ctx, chain, route.Pools, tokens, amount, data)
	} else {
		quoted, err = q.quoteExactIn(ctx, chain, route.Pools, tokens, amount, data)
	}
	if err != nil {
		return domain.Quote{}, err
	}
	if quoted.Sign() <= 0 {
		return domain.Quote{}, fmt.Errorf("route quoted to zero")
	}

	return domain.Quote{
		Route:           route,
		RequestedAmount: new(big.Int).Set(amount),
		QuotedAmount:    quoted,
		QuoterData:      data,
	}, nil
}

// quoteExactIn pushes the input amount forward through the route.
// Consecutive V3 pools are batched into a single lens call.
func (q *quoteFetcher) quoteExactIn(ctx context.Context, chain domain.ChainInfo, pools []domain.Pool, tokens []common.Address, amountIn *big.Int, data *domain.QuoterData) (*big.Int, error) {
	amount := new(big.Int).Set(amountIn)
	var err error

	i := 0
	for i < len(pools) {
		pool := pools[i]
		switch {
		case pool.IsSynthetic():
			// Native wrap or unwrap, one to one.
			i++
		case pool.Protocol == domain.ProtocolV2:
			amount, err = v2AmountOut(pool, tokens[i], amount)
			i++
		case pool.Protocol == domain.ProtocolV3:
			j := i
			for j < len(pools) && pools[j].Protocol == domain.ProtocolV3 {
				j++
			}
			amount, err = q.quoteV3Segment(ctx, chain, quoteExactInputSelector, encodeV3Path(tokens[i:j+1], pools[i:j]), amount, data, i, false)
			i = j
		case pool.Protocol == domain.ProtocolV4:
			amount, err = v4AmountOut(pool, tokens[i], amount)
			i++
		default:
			return nil, fmt.Errorf("pool %s: unsupported protocol %q", pool.Address, pool.Protocol)
		}
		if err != nil {
			return nil, err
		}
		if amount.Sign() <= 0 {
			return nil, fmt.Errorf("leg %d quoted to zero", i)
		}
	}
	return amount, nil
}

// quoteExactOut pulls the required input backwards from the fixed output.
func (q *quoteFetcher) quoteExactOut(ctx context.Context, chain domain.ChainInfo, pools []domain.Pool, tokens []common.Address, amountOut *big.Int, data *domain.QuoterData) (*big.Int, error) {
	amount := new(big.Int).Set(amountOut)
	var err error

	i := len(pools) - 1
	for i >= 0 {
		pool := pools[i]
		switch {
		case pool.IsSynthetic():
			i--
		case pool.Protocol == domain.ProtocolV2:
			amount, err = v2AmountIn(pool, tokens[i], amount)
			i--
		case pool.Protocol == domain.ProtocolV3:
			j := i
			for j >= 0 && pools[j].Protocol == domain.ProtocolV3 {
				j--
			}
			// The exact-output path runs from the output token back to
			// the input token of the segment.
			path := encodeV3PathReversed(tokens[j+1:i+2], pools[j+1:i+1])
			amount, err = q.quoteV3Segment(ctx, chain, quoteExactOutputSelector, path, amount, data, i, true)
			i = j
		case pool.Protocol == domain.ProtocolV4:
			amount, err = v4AmountIn(pool, tokens[i], amount)
			i--
		default:
			return nil, fmt.Errorf("pool %s: unsupported protocol %q", pool.Address, pool.Protocol)
		}
		if err != nil {
			return nil, err
		}
		if amount.Sign() <= 0 {
			return nil, fmt.Errorf("leg %d quoted to zero", i+1)
		}
	}
	return amount, nil
}

// quoteV3Segment calls the QuoterV2 lens for one maximal V3 run. anchor is
// the route index of the pool the first path hop maps to; for exact output
// the hop lists come back in reverse route order.
func (q *quoteFetcher) quoteV3Segment(ctx context.Context, chain domain.ChainInfo, selector []byte, path []byte, amount *big.Int, data *domain.QuoterData, anchor int, reversed bool) (*big.Int, error) {
	quoter, ok := quoterV2Address[chain.ID]
	if !ok {
		return nil, fmt.Errorf("no quoter deployed on chain %d", chain.ID)
	}

	ret, err := q.chainClient.CallContract(ctx, chain.ID, quoter, encodeBytesUintCall(selector, path, amount))
	if err != nil {
		return nil, fmt.Errorf("quoter call: %w", err)
	}

	quoted, ticks, gasEstimate, err := decodeQuoterReturn(ret)
	if err != nil {
		return nil, err
	}

	for hop, crossed := range ticks {
		idx := anchor + hop
		if reversed {
			idx = anchor - hop
		}
		if idx >= 0 && idx < len(data.InitializedTicksCrossed) {
			data.InitializedTicksCrossed[idx] = crossed
		}
	}
	data.GasEstimate += gasEstimate

	return quoted, nil
}

// encodeV3Path packs the token/fee hop encoding consumed by the lens:
// token (20) | fee (3) | token (20) | ...
func encodeV3Path(tokens []common.Address, pools []domain.Pool) []byte {
	path := make([]byte, 0, 20+23*len(pools))
	path = append(path, tokens[0].Bytes()...)
	for i, pool := range pools {
		path = append(path, byte(pool.Fee>>16), byte(pool.Fee>>8), byte(pool.Fee))
		path = append(path, tokens[i+1].Bytes()...)
	}
	return path
}

func encodeV3PathReversed(tokens []common.Address, pools []domain.Pool) []byte {
	path := make([]byte, 0, 20+23*len(pools))
	path = append(path, tokens[len(tokens)-1].Bytes()...)
	for i := len(pools) - 1; i >= 0; i-- {
		fee := pools[i].Fee
		path = append(path, byte(fee>>16), byte(fee>>8), byte(fee))
		path = append(path, tokens[i].Bytes()...)
	}
	return path
}

// encodeBytesUintCall ABI-encodes a (bytes, uint256) call.
func encodeBytesUintCall(selector, payload []byte, amount *big.Int) []byte {
	padded := len(payload)
	if rem := padded % 32; rem != 0 {
		padded += 32 - rem
	}
	data := make([]byte, 0, 4+3*32+padded)
	data = append(data, selector...)
	data = append(data, common.LeftPadBytes(big.NewInt(64).Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(amount.Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(big.NewInt(int64(len(payload))).Bytes(), 32)...)
	data = append(data, common.RightPadBytes(payload, padded)...)
	return data
}

// decodeQuoterReturn unpacks the QuoterV2 response:
// (uint256 amount, uint160[] sqrtPriceAfter, uint32[] ticksCrossed, uint256 gasEstimate).
func decodeQuoterReturn(ret []byte) (*big.Int, []uint32, uint64, error) {
	if len(ret) < 128 {
		return nil, nil, 0, fmt.Errorf("quoter: short return data: %d bytes", len(ret))
	}
	amount := new(big.Int).SetBytes(ret[0:32])
	gasEstimate := new(big.Int).SetBytes(ret[96:128])
	if !gasEstimate.IsUint64() {
		return nil, nil, 0, fmt.Errorf("quoter: implausible gas estimate")
	}

	ticksOffset := new(big.Int).SetBytes(ret[64:96])
	if !ticksOffset.IsInt64() {
		return nil, nil, 0, fmt.Errorf("quoter: invalid ticks offset")
	}
	ticks, err := decodeUint32Array(ret, ticksOffset.Int64())
	if err != nil {
		return nil, nil, 0, err
	}

	return amount, ticks, gasEstimate.Uint64(), nil
}

func decodeUint32Array(ret []byte, offset int64) ([]uint32, error) {
	if offset < 0 || offset+32 > int64(len(ret)) {
		return nil, fmt.Errorf("quoter: array offset out of range")
	}
	length := new(big.Int).SetBytes(ret[offset : offset+32])
	if !length.IsInt64() || offset+32+length.Int64()*32 > int64(len(ret)) {
		return nil, fmt.Errorf("quoter: array length out of range")
	}
	values := make([]uint32, length.Int64())
	for i := range values {
		start := offset + 32 + int64(i)*32
		values[i] = uint32(new(big.Int).SetBytes(ret[start : start+32]).Uint64())
	}
	return values, nil
}
