package usecase

import (
	"bytes"
	"context"
	"fmt"
	"math/big"

	"github.com/andybalholm/brotli"
	"github.com/ethereum/go-ethereum/common"

	"github.com/uniroute-labs/uniroute/domain"
)

// OpGasPriceOracleAddress is the OP-stack predeploy exposing L1 fee data.
var OpGasPriceOracleAddress = common.HexToAddress("0x420000000000000000000000000000000000000F")

var (
	// GasPriceOracle.getL1GasUsed(bytes)
	getL1GasUsedSelector = []byte{0xde, 0x26, 0xc4, 0xa1}
	// GasPriceOracle.getL1Fee(bytes)
	getL1FeeSelector = []byte{0x49, 0x94, 0x8e, 0x0e}
	// ArbGasInfo.getPricesInWei()
	getPricesInWeiSelector = []byte{0x41, 0xb2, 0x47, 0xa8}
)

// estimateL1Gas returns the L1 data availability component of the trade.
// On chains without an L1 data fee, or when the relevant estimation is
// disabled in config, the contribution is zero.
func (g *gasEstimator) estimateL1Gas(ctx context.Context, chain domain.ChainInfo, gasPriceWei *big.Int, calldata []byte) (domain.GasDetails, error) {
	zero := domain.GasDetails{GasPriceWei: gasPriceWei, GasCostWei: new(big.Int)}

	switch {
	case chain.IsOpStack && g.config.OpStackEnabled:
		if len(calldata) == 0 {
			return zero, nil
		}
		return g.estimateOpStackL1Gas(ctx, chain, gasPriceWei, calldata)
	case chain.ID == domain.ChainArbitrum && g.config.ArbitrumEnabled:
		return g.estimateArbitrumL1Gas(ctx, chain, gasPriceWei, calldata)
	default:
		return zero, nil
	}
}

// estimateOpStackL1Gas asks the chain's GasPriceOracle predeploy to price the
// calldata. The L1 fee is charged at the L1 gas price, so GasCostWei comes
// straight from the oracle rather than from the L2 gas price.
func (g *gasEstimator) estimateOpStackL1Gas(ctx context.Context, chain domain.ChainInfo, gasPriceWei *big.Int, calldata []byte) (domain.GasDetails, error) {
	encoded := encodeBytesArg(calldata)

	gasUsedRet, err := g.chainClient.CallContract(ctx, chain.ID, OpGasPriceOracleAddress, append(append([]byte{}, getL1GasUsedSelector...), encoded...))
	if err != nil {
		return domain.GasDetails{}, fmt.Errorf("getL1GasUsed: %w", err)
	}
	feeRet, err := g.chainClient.CallContract(ctx, chain.ID, OpGasPriceOracleAddress, append(append([]byte{}, getL1FeeSelector...), encoded...))
	if err != nil {
		return domain.GasDetails{}, fmt.Errorf("getL1Fee: %w", err)
	}

	l1GasUsed, err := decodeUint256(gasUsedRet)
	if err != nil {
		return domain.GasDetails{}, fmt.Errorf("getL1GasUsed return: %w", err)
	}
	l1Fee, err := decodeUint256(feeRet)
	if err != nil {
		return domain.GasDetails{}, fmt.Errorf("getL1Fee return: %w", err)
	}

	return domain.GasDetails{
		GasPriceWei: gasPriceWei,
		GasCostWei:  l1Fee,
		GasUse:      l1GasUsed.Uint64(),
		GasCostEth:  weiToEth(l1Fee),
	}, nil
}

// estimateArbitrumL1Gas models the Arbitrum L1 calldata charge. The calldata
// is compressed the way the sequencer batches it, priced per compressed byte,
// and the resulting L1 fee is re-expressed as L2 gas units so that the cost
// equals the L2 gas price times the reported gas use.
func (g *gasEstimator) estimateArbitrumL1Gas(ctx context.Context, chain domain.ChainInfo, gasPriceWei *big.Int, calldata []byte) (domain.GasDetails, error) {
	var byteCount int
	if g.config.ArbitrumApproximateCalldata || len(calldata) == 0 {
		byteCount = g.config.ArbitrumCalldataBytes
	} else {
		compressed, err := compressBrotli(calldata)
		if err != nil {
			return domain.GasDetails{}, fmt.Errorf("compress calldata: %w", err)
		}
		byteCount = compressed
	}

	// 16 gas per calldata byte, plus a 20% batching overhead margin.
	l1GasUsed := uint64(float64(byteCount) * 16 * 1.2)

	prices, err := g.chainClient.CallContract(ctx, chain.ID, domain.ArbGasInfoAddress, append([]byte{}, getPricesInWeiSelector...))
	if err != nil {
		return domain.GasDetails{}, fmt.Errorf("getPricesInWei: %w", err)
	}
	perL2Tx, perL1CalldataByte, perArbGasTotal, err := decodeArbPrices(prices)
	if err != nil {
		return domain.GasDetails{}, fmt.Errorf("getPricesInWei return: %w", err)
	}
	if perArbGasTotal.Sign() == 0 {
		return domain.GasDetails{}, fmt.Errorf("getPricesInWei: zero per-gas price")
	}

	l1Fee := new(big.Int).Mul(perL1CalldataByte, new(big.Int).SetUint64(l1GasUsed))
	l1Fee.Add(l1Fee, perL2Tx)

	// Re-denominate the L1 fee in L2 gas units at the requested gas price so
	// the combined cost stays gasPrice * gasUse.
	gasUsedL1OnL2 := new(big.Int).Div(l1Fee, perArbGasTotal).Uint64()
	costWei := new(big.Int).Mul(gasPriceWei, new(big.Int).SetUint64(gasUsedL1OnL2))

	return domain.GasDetails{
		GasPriceWei: gasPriceWei,
		GasCostWei:  costWei,
		GasUse:      gasUsedL1OnL2,
		GasCostEth:  weiToEth(costWei),
	}, nil
}

// compressBrotli returns the brotli-compressed size of the payload at the
// sequencer's settings (quality 1, window 22).
func compressBrotli(data []byte) (int, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterOptions(&buf, brotli.WriterOptions{Quality: 1, LGWin: 22})
	if _, err := w.Write(data); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}

// encodeBytesArg ABI-encodes a single dynamic bytes argument.
func encodeBytesArg(data []byte) []byte {
	padded := len(data)
	if rem := padded % 32; rem != 0 {
		padded += 32 - rem
	}
	out := make([]byte, 64+padded)
	out[31] = 0x20
	big.NewInt(int64(len(data))).FillBytes(out[32:64])
	copy(out[64:], data)
	return out
}

func decodeUint256(ret []byte) (*big.Int, error) {
	if len(ret) < 32 {
		return nil, fmt.Errorf("short return data: %d bytes", len(ret))
	}
	return new(big.Int).SetBytes(ret[:32]), nil
}

// decodeArbPrices unpacks the (perL2Tx, perL1CalldataByte, perStorageAlloc,
// perArbGasBase, perArbGasCongestion, perArbGasTotal) tuple.
func decodeArbPrices(ret []byte) (perL2Tx, perL1CalldataByte, perArbGasTotal *big.Int, err error) {
	if len(ret) < 6*32 {
		return nil, nil, nil, fmt.Errorf("short return data: %d bytes", len(ret))
	}
	perL2Tx = new(big.Int).SetBytes(ret[0:32])
	perL1CalldataByte = new(big.Int).SetBytes(ret[32:64])
	perArbGasTotal = new(big.Int).SetBytes(ret[160:192])
	return perL2Tx, perL1CalldataByte, perArbGasTotal, nil
}
