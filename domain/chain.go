package domain

import (
	"github.com/ethereum/go-ethereum/common"
)

// ChainID identifies an EVM-compatible chain by its canonical numeric id.
type ChainID uint64

const (
	ChainMainnet  ChainID = 1
	ChainOptimism ChainID = 10
	ChainBNB      ChainID = 56
	ChainPolygon  ChainID = 137
	ChainBase     ChainID = 8453
	ChainArbitrum ChainID = 42161
)

// NativeAddress is the conventional address of the chain's native currency.
var NativeAddress = common.Address{}

// ArbGasInfoAddress is the Arbitrum precompile exposing L1 pricing data.
var ArbGasInfoAddress = common.HexToAddress("0x000000000000000000000000000000000000006C")

// UniversalRouterAddress is the swap router the produced method parameters
// target. The CREATE2 deployment shares this address on the supported chains.
var UniversalRouterAddress = common.HexToAddress("0x3fC91A3afd70395Cd496C647d5a6CC9D4B2b7FAD")

// GasConstants holds the closed-form gas formula constants for one chain.
type GasConstants struct {
	BaseSwapCost      uint64
	CostPerHop        uint64
	CostPerInitTick   uint64
	SingleHopOverhead uint64
	BaseSwapCostV2    uint64
	CostPerExtraHopV2 uint64
}

var defaultGasConstants = GasConstants{
	BaseSwapCost:      2000,
	CostPerHop:        80000,
	CostPerInitTick:   31000,
	SingleHopOverhead: 15000,
	BaseSwapCostV2:    135000,
	CostPerExtraHopV2: 50000,
}

// ChainInfo is the fixed per-chain metadata table entry.
type ChainInfo struct {
	ID   ChainID
	Name string

	WrappedNative common.Address

	V2Factory     common.Address
	V3Factory     common.Address
	V4PoolManager common.Address

	V2PairInitCodeHash common.Hash
	V3PoolInitCodeHash common.Hash

	// BaseTokens is the per-chain list of routing base tokens
	// (stablecoins and similar highly connected assets).
	BaseTokens []common.Address

	IsOpStack bool

	Gas GasConstants
}

var chainTable = map[ChainID]ChainInfo{
	ChainMainnet: {
		ID:            ChainMainnet,
		Name:          "mainnet",
		WrappedNative: common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
		V2Factory:     common.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f"),
		V3Factory:     common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984"),
		V4PoolManager: common.HexToAddress("0x000000000004444c5dc75cB358380D2e3dE08A90"),

		V2PairInitCodeHash: common.HexToHash("0x96e8ac4277198ff8b6f785478aa9a39f403cb768dd02cbee326c3e7da348845f"),
		V3PoolInitCodeHash: common.HexToHash("0xe34f199b19b2b4f47f68442619d555527d244f78a3297ea89325f843f87b8b54"),

		BaseTokens: []common.Address{
			common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), // USDC
			common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7"), // USDT
			common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F"), // DAI
			common.HexToAddress("0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599"), // WBTC
			common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"), // WETH
		},
		Gas: defaultGasConstants,
	},
	ChainOptimism: {
		ID:            ChainOptimism,
		Name:          "optimism",
		WrappedNative: common.HexToAddress("0x4200000000000000000000000000000000000006"),
		V3Factory:     common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984"),
		V4PoolManager: common.HexToAddress("0x9a13F98Cb987694C9F086b1F5eB990EeA8264Ec3"),

		V3PoolInitCodeHash: common.HexToHash("0xe34f199b19b2b4f47f68442619d555527d244f78a3297ea89325f843f87b8b54"),

		BaseTokens: []common.Address{
			common.HexToAddress("0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85"), // USDC
			common.HexToAddress("0x94b008aA00579c1307B0EF2c499aD98a8ce58e58"), // USDT
			common.HexToAddress("0xDA10009cBd5D07dd0CeCc66161FC93D7c9000da1"), // DAI
			common.HexToAddress("0x4200000000000000000000000000000000000006"), // WETH
		},
		IsOpStack: true,
		Gas:       defaultGasConstants,
	},
	ChainBNB: {
		ID:            ChainBNB,
		Name:          "bnb",
		WrappedNative: common.HexToAddress("0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c"),
		V2Factory:     common.HexToAddress("0x8909Dc15e40173Ff4699343b6eB8132c65e18eC6"),
		V3Factory:     common.HexToAddress("0xdB1d10011AD0Ff90774D0C6Bb92e5C5c8b4461F7"),

		V2PairInitCodeHash: common.HexToHash("0x00fb7f630766e6a796048ea87d01acd3068e8ff67d078148a3fa3f4a84f69bd5"),
		V3PoolInitCodeHash: common.HexToHash("0xe34f199b19b2b4f47f68442619d555527d244f78a3297ea89325f843f87b8b54"),

		BaseTokens: []common.Address{
			common.HexToAddress("0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d"), // USDC
			common.HexToAddress("0x55d398326f99059fF775485246999027B3197955"), // USDT
			common.HexToAddress("0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c"), // WBNB
		},
		Gas: defaultGasConstants,
	},
	ChainPolygon: {
		ID:            ChainPolygon,
		Name:          "polygon",
		WrappedNative: common.HexToAddress("0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270"),
		V3Factory:     common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984"),

		V3PoolInitCodeHash: common.HexToHash("0xe34f199b19b2b4f47f68442619d555527d244f78a3297ea89325f843f87b8b54"),

		BaseTokens: []common.Address{
			common.HexToAddress("0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359"), // USDC
			common.HexToAddress("0xc2132D05D31c914a87C6611C10748AEb04B58e8F"), // USDT
			common.HexToAddress("0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270"), // WMATIC
			common.HexToAddress("0x7ceB23fD6bC0adD59E62ac25578270cFf1b9f619"), // WETH
		},
		Gas: defaultGasConstants,
	},
	ChainBase: {
		ID:            ChainBase,
		Name:          "base",
		WrappedNative: common.HexToAddress("0x4200000000000000000000000000000000000006"),
		V2Factory:     common.HexToAddress("0x8909Dc15e40173Ff4699343b6eB8132c65e18eC6"),
		V3Factory:     common.HexToAddress("0x33128a8fC17869897dcE68Ed026d694621f6FDfD"),
		V4PoolManager: common.HexToAddress("0x498581fF718922c3f8e6A244956aF099B2652b2b"),

		V2PairInitCodeHash: common.HexToHash("0x8b1e0b41496afbb5749f686a12e4c95f394a8ab54faae061132b1b18f27a6a56"),
		V3PoolInitCodeHash: common.HexToHash("0xe34f199b19b2b4f47f68442619d555527d244f78a3297ea89325f843f87b8b54"),

		BaseTokens: []common.Address{
			common.HexToAddress("0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"), // USDC
			common.HexToAddress("0x50c5725949A6F0c72E6C4a641F24049A917DB0Cb"), // DAI
			common.HexToAddress("0x4200000000000000000000000000000000000006"), // WETH
		},
		IsOpStack: true,
		Gas:       defaultGasConstants,
	},
	ChainArbitrum: {
		ID:            ChainArbitrum,
		Name:          "arbitrum",
		WrappedNative: common.HexToAddress("0x82aF49447D8a07e3bd95BD0d56f35241523fBab1"),
		V2Factory:     common.HexToAddress("0xf1D7CC64Fb4452F05c498126312eBE29f30Fbcf9"),
		V3Factory:     common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984"),
		V4PoolManager: common.HexToAddress("0x360E68faCcca8cA495c1B759Fd9EEe466db9FB32"),

		V2PairInitCodeHash: common.HexToHash("0x96e8ac4277198ff8b6f785478aa9a39f403cb768dd02cbee326c3e7da348845f"),
		V3PoolInitCodeHash: common.HexToHash("0xe34f199b19b2b4f47f68442619d555527d244f78a3297ea89325f843f87b8b54"),

		BaseTokens: []common.Address{
			common.HexToAddress("0xaf88d065e77c8cC2239327C5EDb3A432268e5831"), // USDC
			common.HexToAddress("0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9"), // USDT
			common.HexToAddress("0xDA10009cBd5D07dd0CeCc66161FC93D7c9000da1"), // DAI
			common.HexToAddress("0x82aF49447D8a07e3bd95BD0d56f35241523fBab1"), // WETH
		},
		Gas: GasConstants{
			BaseSwapCost:      5000,
			CostPerHop:        80000,
			CostPerInitTick:   31000,
			SingleHopOverhead: 15000,
			BaseSwapCostV2:    135000,
			CostPerExtraHopV2: 50000,
		},
	},
}

// expensiveTransferTokens maps mainnet tokens whose transfer is known to be
// unusually costly to the gas surcharge they incur per route.
var expensiveTransferTokens = map[common.Address]uint64{
	common.HexToAddress("0x7Fc66500c84A76Ad7e9c93437bFc5Ac33E2DDaE9"): 150000, // AAVE
	common.HexToAddress("0x5A98FcBEA516Cf06857215779Fd812CA3beF1B32"): 150000, // LDO
}

// GetChain returns the chain table entry for the given chain id.
func GetChain(id ChainID) (ChainInfo, bool) {
	info, ok := chainTable[id]
	return info, ok
}

// IsChainSupported returns true if the chain id is in the chain table.
func IsChainSupported(id ChainID) bool {
	_, ok := chainTable[id]
	return ok
}

// TokenGasOverhead returns the fixed gas surcharge for routes touching
// expensive-transfer tokens. Non-zero only on mainnet.
func TokenGasOverhead(chain ChainID, tokens []common.Address) uint64 {
	if chain != ChainMainnet {
		return 0
	}
	var overhead uint64
	for _, token := range tokens {
		overhead += expensiveTransferTokens[token]
	}
	return overhead
}

// IsNative returns true for the zero-address native currency sentinel.
func IsNative(addr common.Address) bool {
	return addr == NativeAddress
}

// WrapNative maps the native sentinel to the chain's wrapped-native token,
// returning other addresses unchanged.
func WrapNative(chain ChainInfo, addr common.Address) common.Address {
	if IsNative(addr) {
		return chain.WrappedNative
	}
	return addr
}
