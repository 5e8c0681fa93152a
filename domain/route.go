package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Route is an ordered list of pools whose tokens chain from TokenIn to
// TokenOut. Percentage is the share of the trade assigned to the route
// during split search.
type Route struct {
	Pools []Pool `json:"pools"`

	// TokenIn and TokenOut are the path endpoints. They are the wrapped form
	// of the caller's tokens unless a synthetic native connector pool lets
	// the path carry the native sentinel address.
	TokenIn  common.Address `json:"tokenIn"`
	TokenOut common.Address `json:"tokenOut"`

	Percentage int `json:"percentage"`
}

// Protocol returns the route-level protocol tag: the single protocol of all
// pools, or ProtocolMixed when more than one protocol appears. The synthetic
// native/wrapped connector pool is ignored.
func (r Route) Protocol() Protocol {
	seen := map[Protocol]struct{}{}
	var last Protocol
	for _, pool := range r.Pools {
		if pool.IsSynthetic() {
			continue
		}
		seen[pool.Protocol] = struct{}{}
		last = pool.Protocol
	}
	if len(seen) > 1 {
		return ProtocolMixed
	}
	return last
}

// Tokens returns the ordered token path including both endpoints.
// Returns an error if adjacent pools do not share a token.
func (r Route) Tokens() ([]common.Address, error) {
	tokens := make([]common.Address, 0, len(r.Pools)+1)
	current := r.TokenIn
	tokens = append(tokens, current)
	for _, pool := range r.Pools {
		if !pool.HasToken(current) {
			return nil, fmt.Errorf("route: pool %s does not contain token %s", pool.Address, current)
		}
		current = pool.OtherToken(current)
		tokens = append(tokens, current)
	}
	return tokens, nil
}

// Validate checks the route invariants: pools chain end to end, no token is
// visited twice, and the path terminates at TokenOut.
func (r Route) Validate() error {
	if len(r.Pools) == 0 {
		return fmt.Errorf("route: empty pool list")
	}
	tokens, err := r.Tokens()
	if err != nil {
		return err
	}
	seen := make(map[common.Address]struct{}, len(tokens))
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			return fmt.Errorf("route: token %s revisited", token)
		}
		seen[token] = struct{}{}
	}
	if tokens[len(tokens)-1] != r.TokenOut {
		return fmt.Errorf("route: terminates at %s, want %s", tokens[len(tokens)-1], r.TokenOut)
	}
	return nil
}

// InvolvesToken returns true if any pool in the route touches the token.
func (r Route) InvolvesToken(token common.Address) bool {
	for _, pool := range r.Pools {
		if pool.HasToken(token) {
			return true
		}
	}
	return false
}

// PoolKeys returns the canonical identifiers of all pools in the route.
func (r Route) PoolKeys() []string {
	keys := make([]string, 0, len(r.Pools))
	for _, pool := range r.Pools {
		keys = append(keys, pool.Key())
	}
	return keys
}

// SharesPoolWith returns true if the two routes have any pool in common.
func (r Route) SharesPoolWith(other Route) bool {
	keys := make(map[string]struct{}, len(r.Pools))
	for _, key := range r.PoolKeys() {
		keys[key] = struct{}{}
	}
	for _, key := range other.PoolKeys() {
		if _, ok := keys[key]; ok {
			return true
		}
	}
	return false
}

// String renders the route as a human-readable path with its percentage.
func (r Route) String() string {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(r.TokenIn.Hex()))
	current := r.TokenIn
	for _, pool := range r.Pools {
		next := pool.OtherToken(current)
		fmt.Fprintf(&sb, " -[%s %s]-> %s", pool.Protocol, pool.Key(), strings.ToLower(next.Hex()))
		current = next
	}
	fmt.Fprintf(&sb, " (%d%%)", r.Percentage)
	return sb.String()
}

// WithPercentage returns a copy of the route tagged with the given share.
func (r Route) WithPercentage(percentage int) Route {
	copied := r
	copied.Percentage = percentage
	return copied
}
