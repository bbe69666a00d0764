package evm

import (
	"context"
	"fmt"
	"math/big"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	goversion "github.com/hashicorp/go-version"

	"github.com/polywrap/safe-contracts-wrapper-sub000/internal/utils/safecast"
	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

// modulesPageSize is the page size used with getModulesPaginated.
const modulesPageSize = 10

// paginatedModulesVersion is the first Safe version that exposes getModulesPaginated.
var paginatedModulesVersion = goversion.Must(goversion.NewVersion("1.3.0"))

// Inspector gives access to the on-chain state of a Safe.
type Inspector struct {
	provider sdk.Provider
	address  common.Address
}

// NewInspector creates a new Inspector for the Safe at address.
func NewInspector(provider sdk.Provider, address common.Address) *Inspector {
	return &Inspector{
		provider: provider,
		address:  address,
	}
}

// Address returns the Safe address.
func (i *Inspector) Address() common.Address {
	return i.address
}

// GetVersion reads the Safe's VERSION constant.
func (i *Inspector) GetVersion(ctx context.Context) (string, error) {
	out, err := i.call(ctx, "VERSION")
	if err != nil {
		return "", err
	}

	return out[0].(string), nil
}

// GetNonce reads the Safe's current transaction nonce.
func (i *Inspector) GetNonce(ctx context.Context) (uint64, error) {
	out, err := i.call(ctx, "nonce")
	if err != nil {
		return 0, err
	}

	return safecast.BigToUint64(out[0].(*big.Int))
}

// GetOwners returns the owner list in the order the Safe stores it.
func (i *Inspector) GetOwners(ctx context.Context) ([]common.Address, error) {
	out, err := i.call(ctx, "getOwners")
	if err != nil {
		return nil, err
	}

	return out[0].([]common.Address), nil
}

// GetThreshold returns how many owner signatures a transaction needs.
func (i *Inspector) GetThreshold(ctx context.Context) (uint64, error) {
	out, err := i.call(ctx, "getThreshold")
	if err != nil {
		return 0, err
	}

	return safecast.BigToUint64(out[0].(*big.Int))
}

func (i *Inspector) IsOwner(ctx context.Context, owner common.Address) (bool, error) {
	out, err := i.call(ctx, "isOwner", owner)
	if err != nil {
		return false, err
	}

	return out[0].(bool), nil
}

// GetTransactionHash asks the Safe contract for the hash of d.
func (i *Inspector) GetTransactionHash(ctx context.Context, d types.SafeTransactionData) (common.Hash, error) {
	data, err := EncodeGetTransactionHash(d)
	if err != nil {
		return common.Hash{}, err
	}

	out, err := i.callRaw(ctx, "getTransactionHash", data)
	if err != nil {
		return common.Hash{}, err
	}

	return common.Hash(out[0].([32]byte)), nil
}

// ApprovedHashes returns the approval marker stored for owner and hash. Non-zero means approved.
func (i *Inspector) ApprovedHashes(ctx context.Context, owner common.Address, hash common.Hash) (*big.Int, error) {
	out, err := i.call(ctx, "approvedHashes", owner, hash)
	if err != nil {
		return nil, err
	}

	return out[0].(*big.Int), nil
}

// GetModules lists the enabled modules. Safe 1.3.0 and later only expose the paginated getter;
// the first page of modulesPageSize entries is returned.
func (i *Inspector) GetModules(ctx context.Context, version string) ([]common.Address, error) {
	v, err := goversion.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("invalid Safe version %q: %w", version, err)
	}

	if v.LessThan(paginatedModulesVersion) {
		out, err := i.call(ctx, "getModules")
		if err != nil {
			return nil, err
		}

		return out[0].([]common.Address), nil
	}

	out, err := i.call(ctx, "getModulesPaginated", types.SentinelAddress, big.NewInt(modulesPageSize))
	if err != nil {
		return nil, err
	}

	return out[0].([]common.Address), nil
}

func (i *Inspector) IsModuleEnabled(ctx context.Context, module common.Address) (bool, error) {
	out, err := i.call(ctx, "isModuleEnabled", module)
	if err != nil {
		return false, err
	}

	return out[0].(bool), nil
}

// GetBalance returns the Safe's ether balance.
func (i *Inspector) GetBalance(ctx context.Context) (*big.Int, error) {
	return i.provider.GetBalance(ctx, i.address)
}

func (i *Inspector) call(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := safeABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", method, err)
	}

	return i.callRaw(ctx, method, data)
}

func (i *Inspector) callRaw(ctx context.Context, method string, data []byte) ([]any, error) {
	return callView(ctx, i.provider, safeABI, i.address, method, data)
}

func callView(ctx context.Context, provider sdk.Provider, parsed *gethabi.ABI, to common.Address, method string, data []byte) ([]any, error) {
	raw, err := provider.CallContract(ctx, to, data)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s on %s: %w", method, to.Hex(), err)
	}

	out, err := parsed.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s result: %w", method, err)
	}

	return out, nil
}
