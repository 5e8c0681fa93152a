package usecase

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/uniroute-labs/uniroute/domain"
)

// Universal Router command bytes.
const (
	commandV3SwapExactIn  = 0x00
	commandV3SwapExactOut = 0x01
	commandV2SwapExactIn  = 0x08
	commandV2SwapExactOut = 0x09
	commandV4Swap         = 0x10
)

// execute(bytes,bytes[],uint256)
var executeSelector = []byte{0x35, 0x93, 0x56, 0x4c}

const defaultDeadlineSeconds = 1800

// BuildMethodParameters encodes the winning split as a Universal Router
// execute call: one command byte and one ABI-encoded input per leg. Legs
// whose route starts at the native currency contribute their share to the
// transaction value.
func BuildMethodParameters(chain domain.ChainInfo, split domain.QuoteSplit, request domain.QuoteRequest) (domain.MethodParameters, error) {
	commands := make([]byte, 0, len(split.Quotes))
	inputs := make([][]byte, 0, len(split.Quotes))
	value := new(big.Int)

	recipient := domain.NativeAddress
	if request.Recipient != nil {
		recipient = *request.Recipient
	}

	for _, quote := range split.Quotes {
		command, input, err := encodeLeg(quote, request.TradeType, recipient)
		if err != nil {
			return domain.MethodParameters{}, err
		}
		commands = append(commands, command)
		inputs = append(inputs, input)

		if request.TokenInIsNative && quote.RequestedAmount != nil {
			if request.TradeType == domain.ExactIn {
				value.Add(value, quote.RequestedAmount)
			} else {
				value.Add(value, quote.QuotedAmount)
			}
		}
	}

	deadlineSeconds := request.DeadlineSeconds
	if deadlineSeconds <= 0 {
		deadlineSeconds = defaultDeadlineSeconds
	}
	deadline := big.NewInt(time.Now().Unix() + int64(deadlineSeconds))

	calldata := encodeExecute(commands, inputs, deadline)
	return domain.MethodParameters{
		To:       domain.UniversalRouterAddress.Hex(),
		Calldata: hexutil.Encode(calldata),
		Value:    hexutil.EncodeBig(value),
	}, nil
}

func encodeLeg(quote domain.Quote, tradeType domain.TradeType, recipient common.Address) (byte, []byte, error) {
	route := quote.Route
	if len(route.Pools) == 0 {
		return 0, nil, fmt.Errorf("build calldata: empty route")
	}

	var command byte
	switch route.Protocol() {
	case domain.ProtocolV2:
		command = commandV2SwapExactIn
		if tradeType == domain.ExactOut {
			command = commandV2SwapExactOut
		}
	case domain.ProtocolV3:
		command = commandV3SwapExactIn
		if tradeType == domain.ExactOut {
			command = commandV3SwapExactOut
		}
	default:
		// V4 and mixed routes go through the V4 swap planner.
		command = commandV4Swap
	}

	path, err := encodePath(route)
	if err != nil {
		return 0, nil, err
	}

	amount := quote.RequestedAmount
	limit := quote.QuotedAmount
	if tradeType == domain.ExactOut {
		amount, limit = quote.QuotedAmount, quote.RequestedAmount
	}

	return command, encodeSwapInput(recipient, amount, limit, path), nil
}

// encodePath packs the route as token (20 bytes) alternating with the pool
// fee (3 bytes). Synthetic connector pools are skipped; the wrap is implied.
func encodePath(route domain.Route) ([]byte, error) {
	tokens, err := route.Tokens()
	if err != nil {
		return nil, fmt.Errorf("build calldata: %w", err)
	}

	var path []byte
	path = append(path, tokens[0].Bytes()...)
	for i, pool := range route.Pools {
		if pool.IsSynthetic() {
			continue
		}
		fee := pool.Fee
		path = append(path, byte(fee>>16), byte(fee>>8), byte(fee))
		path = append(path, tokens[i+1].Bytes()...)
	}
	return path, nil
}

// encodeSwapInput ABI-encodes (address recipient, uint256 amount,
// uint256 amountLimit, bytes path, bool payerIsUser).
func encodeSwapInput(recipient common.Address, amount, limit *big.Int, path []byte) []byte {
	padded := len(path)
	if rem := padded % 32; rem != 0 {
		padded += 32 - rem
	}

	out := make([]byte, 5*32+32+padded)
	copy(out[12:32], recipient.Bytes())
	writeBig(out[32:64], amount)
	writeBig(out[64:96], limit)
	out[127] = 0xa0 // offset of the dynamic path
	out[159] = 0x01 // payerIsUser
	big.NewInt(int64(len(path))).FillBytes(out[160:192])
	copy(out[192:], path)
	return out
}

// encodeExecute ABI-encodes execute(bytes commands, bytes[] inputs,
// uint256 deadline).
func encodeExecute(commands []byte, inputs [][]byte, deadline *big.Int) []byte {
	head := make([]byte, 96)
	var tail []byte

	// commands
	commandsOffset := 96
	writeBig(head[0:32], big.NewInt(int64(commandsOffset)))
	tail = append(tail, lengthPrefixed(commands)...)

	// inputs
	inputsOffset := commandsOffset + len(lengthPrefixed(commands))
	writeBig(head[32:64], big.NewInt(int64(inputsOffset)))
	tail = append(tail, encodeBytesArray(inputs)...)

	writeBig(head[64:96], deadline)

	out := make([]byte, 0, 4+len(head)+len(tail))
	out = append(out, executeSelector...)
	out = append(out, head...)
	out = append(out, tail...)
	return out
}

func encodeBytesArray(items [][]byte) []byte {
	head := make([]byte, 32+32*len(items))
	big.NewInt(int64(len(items))).FillBytes(head[0:32])

	var tail []byte
	offset := 32 * len(items)
	for i, item := range items {
		big.NewInt(int64(offset+len(tail))).FillBytes(head[32+32*i : 64+32*i])
		tail = append(tail, lengthPrefixed(item)...)
	}
	return append(head, tail...)
}

func lengthPrefixed(data []byte) []byte {
	padded := len(data)
	if rem := padded % 32; rem != 0 {
		padded += 32 - rem
	}
	out := make([]byte, 32+padded)
	big.NewInt(int64(len(data))).FillBytes(out[0:32])
	copy(out[32:], data)
	return out
}

func writeBig(dst []byte, value *big.Int) {
	if value == nil {
		return
	}
	value.FillBytes(dst)
}
