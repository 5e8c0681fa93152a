package usecase

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
	"github.com/uniroute-labs/uniroute/log"
)

var _ mvc.TokenProvider = &tokenProvider{}

const (
	metadataCacheSize = 4096
	metadataCacheTTL  = 12 * time.Hour

	// Native price staleness tolerance. The price only feeds the cache
	// bucket key and USD gas figures, neither of which needs tick accuracy.
	nativePriceCacheTTL = 2 * time.Minute

	// Flash-loan size handed to the fee detector. Large enough that
	// integer rounding does not hide a 1 bps fee.
	feeDetectorBorrowAmount = 10_000
)

var (
	// symbol() and decimals().
	symbolSelector   = []byte{0x95, 0xd8, 0x9b, 0x41}
	decimalsSelector = []byte{0x31, 0x3c, 0xe5, 0x67}

	// slot0() on the reference V3 pool used for native pricing.
	slot0Selector = []byte{0x38, 0x50, 0xc7, 0xbd}

	// validateFeeSelector probes a token through the fee-on-transfer
	// detector contract.
	validateFeeSelector = crypto.Keccak256([]byte("validate(address,address,uint256)"))[:4]
)

// feeDetectorAddress maps chains to the deployed fee-on-transfer detector.
// Chains without an entry skip the probe and report zero fees.
var feeDetectorAddress = map[domain.ChainID]common.Address{
	domain.ChainMainnet: common.HexToAddress("0x19C97dc2a25845C7f9d1d519c8C2d4809c58b43f"),
}

var (
	tokenFetchCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniroute_token_metadata_fetches_total",
			Help: "Total number of on-chain token metadata fetches by outcome",
		},
		[]string{"chain", "outcome"},
	)

	nativePriceFailureCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniroute_native_price_failures_total",
			Help: "Total number of native USD price read failures (degraded to zero)",
		},
		[]string{"chain"},
	)
)

func init() {
	prometheus.MustRegister(tokenFetchCounter)
	prometheus.MustRegister(nativePriceFailureCounter)
}

type tokenProvider struct {
	chainClient mvc.ChainClient
	logger      log.Logger

	metadataCache *expirable.LRU[string, domain.TokenMetadata]
	priceCache    *expirable.LRU[domain.ChainID, float64]
}

// NewTokenProvider creates the on-chain token metadata provider. Metadata is
// read directly from the token contract and cached; fee-on-transfer fees are
// probed through the detector contract where one is deployed.
func NewTokenProvider(chainClient mvc.ChainClient, logger log.Logger) mvc.TokenProvider {
	return &tokenProvider{
		chainClient:   chainClient,
		logger:        logger.Named("tokens"),
		metadataCache: expirable.NewLRU[string, domain.TokenMetadata](metadataCacheSize, nil, metadataCacheTTL),
		priceCache:    expirable.NewLRU[domain.ChainID, float64](16, nil, nativePriceCacheTTL),
	}
}

func metadataCacheKey(chain domain.ChainID, address common.Address) string {
	return fmt.Sprintf("%d/%s", chain, strings.ToLower(address.Hex()))
}

// GetToken implements mvc.TokenProvider.
func (t *tokenProvider) GetToken(ctx context.Context, chain domain.ChainID, address common.Address) (domain.TokenMetadata, error) {
	key := metadataCacheKey(chain, address)
	if meta, ok := t.metadataCache.Get(key); ok {
		tokenFetchCounter.WithLabelValues(chainLabel(chain), "cache_hit").Inc()
		return meta, nil
	}

	meta, err := t.fetchToken(ctx, chain, address)
	if err != nil {
		tokenFetchCounter.WithLabelValues(chainLabel(chain), "error").Inc()
		return domain.TokenMetadata{}, err
	}

	tokenFetchCounter.WithLabelValues(chainLabel(chain), "fetched").Inc()
	t.metadataCache.Add(key, meta)
	return meta, nil
}

func (t *tokenProvider) fetchToken(ctx context.Context, chain domain.ChainID, address common.Address) (domain.TokenMetadata, error) {
	decimals, err := t.fetchDecimals(ctx, chain, address)
	if err != nil {
		t.logger.Warn("token decimals read failed",
			zap.Uint64("chain_id", uint64(chain)), zap.String("token", address.Hex()), zap.Error(err))
		return domain.TokenMetadata{}, domain.TokenNotFoundError{Chain: chain, Token: address}
	}

	meta := domain.TokenMetadata{
		Chain:    chain,
		Address:  address,
		Decimals: decimals,
	}

	// Symbol is cosmetic, a failed read does not fail the token.
	if symbol, err := t.fetchSymbol(ctx, chain, address); err == nil {
		meta.Symbol = symbol
	}

	meta.BuyFeeBps, meta.SellFeeBps = t.probeTransferFees(ctx, chain, address)

	return meta, nil
}

func (t *tokenProvider) fetchDecimals(ctx context.Context, chain domain.ChainID, address common.Address) (uint8, error) {
	ret, err := t.chainClient.CallContract(ctx, chain, address, decimalsSelector)
	if err != nil {
		return 0, fmt.Errorf("decimals: %w", err)
	}
	if len(ret) < 32 {
		return 0, fmt.Errorf("decimals: short return data: %d bytes", len(ret))
	}
	value := new(big.Int).SetBytes(ret[:32])
	if !value.IsUint64() || value.Uint64() > 77 {
		return 0, fmt.Errorf("decimals: implausible value %s", value)
	}
	return uint8(value.Uint64()), nil
}

func (t *tokenProvider) fetchSymbol(ctx context.Context, chain domain.ChainID, address common.Address) (string, error) {
	ret, err := t.chainClient.CallContract(ctx, chain, address, symbolSelector)
	if err != nil {
		return "", fmt.Errorf("symbol: %w", err)
	}
	return decodeStringReturn(ret)
}

// decodeStringReturn handles both the ABI string encoding and the legacy
// bytes32 symbol convention used by tokens such as MKR.
func decodeStringReturn(ret []byte) (string, error) {
	if len(ret) == 32 {
		return string(trimZeroBytes(ret)), nil
	}
	if len(ret) < 64 {
		return "", fmt.Errorf("symbol: short return data: %d bytes", len(ret))
	}
	offset := new(big.Int).SetBytes(ret[:32])
	if !offset.IsInt64() || offset.Int64()+32 > int64(len(ret)) {
		return "", fmt.Errorf("symbol: invalid string offset")
	}
	start := offset.Int64()
	length := new(big.Int).SetBytes(ret[start : start+32])
	if !length.IsInt64() || start+32+length.Int64() > int64(len(ret)) {
		return "", fmt.Errorf("symbol: invalid string length")
	}
	return string(ret[start+32 : start+32+length.Int64()]), nil
}

func trimZeroBytes(b []byte) []byte {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return b[:end]
}

// probeTransferFees measures the buy and sell fee of a token through the
// fee-on-transfer detector contract. Probe failures and chains without a
// detector report zero fees: a missed fee-on-transfer token degrades to a
// simulation failure rather than a routing failure.
func (t *tokenProvider) probeTransferFees(ctx context.Context, chain domain.ChainID, address common.Address) (uint16, uint16) {
	detector, ok := feeDetectorAddress[chain]
	if !ok {
		return 0, 0
	}
	chainInfo, ok := domain.GetChain(chain)
	if !ok || address == chainInfo.WrappedNative {
		return 0, 0
	}

	data := make([]byte, 0, 4+3*32)
	data = append(data, validateFeeSelector...)
	data = append(data, common.LeftPadBytes(address.Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(chainInfo.WrappedNative.Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(big.NewInt(feeDetectorBorrowAmount).Bytes(), 32)...)

	ret, err := t.chainClient.CallContract(ctx, chain, detector, data)
	if err != nil || len(ret) < 64 {
		t.logger.Debug("fee-on-transfer probe failed",
			zap.Uint64("chain_id", uint64(chain)), zap.String("token", address.Hex()), zap.Error(err))
		return 0, 0
	}

	buyFee := new(big.Int).SetBytes(ret[0:32])
	sellFee := new(big.Int).SetBytes(ret[32:64])
	return clampBps(buyFee), clampBps(sellFee)
}

func clampBps(v *big.Int) uint16 {
	if !v.IsUint64() || v.Uint64() > 10_000 {
		return 10_000
	}
	return uint16(v.Uint64())
}

func chainLabel(chain domain.ChainID) string {
	if info, ok := domain.GetChain(chain); ok {
		return info.Name
	}
	return fmt.Sprintf("%d", chain)
}
