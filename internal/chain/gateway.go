package chain

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// contractGateway packs, calls, and unpacks one contract's view methods over
// a Caller. Typed gateways embed it and convert the raw output slices.
type contractGateway struct {
	caller  Caller
	address common.Address
	abi     abi.ABI
}

func newContractGateway(caller Caller, address string, abiJSON string) (contractGateway, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return contractGateway{}, err
	}

	return contractGateway{
		caller:  caller,
		address: common.HexToAddress(address),
		abi:     parsed,
	}, nil
}

func (g *contractGateway) call(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := g.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("cannot pack %s: %w", method, err)
	}

	output, err := g.caller.CallContract(ctx, ethereum.CallMsg{To: &g.address, Data: data})
	if err != nil {
		return nil, err
	}

	values, err := g.abi.Unpack(method, output)
	if err != nil {
		return nil, fmt.Errorf("cannot unpack %s: %w", method, err)
	}

	return values, nil
}

func (g *contractGateway) Address() common.Address {
	return g.address
}
