package evm

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"

	sdkerrors "github.com/polywrap/safe-contracts-wrapper-sub000/sdk/errors"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

// OwnerManager validates owner changes against the current owner list and encodes the Safe
// self-calls that apply them.
type OwnerManager struct {
	inspector *Inspector
}

func NewOwnerManager(inspector *Inspector) *OwnerManager {
	return &OwnerManager{inspector: inspector}
}

// EncodeAddOwnerWithThresholdData encodes addOwnerWithThreshold. A nil threshold keeps the
// current one.
func (m *OwnerManager) EncodeAddOwnerWithThresholdData(ctx context.Context, owner common.Address, threshold *uint64) ([]byte, error) {
	if err := validateAddress(owner, "owner"); err != nil {
		return nil, err
	}

	owners, err := m.inspector.GetOwners(ctx)
	if err != nil {
		return nil, err
	}
	if containsAddress(owners, owner) {
		return nil, sdkerrors.NewValidationError("address provided is already an owner")
	}

	newThreshold, err := m.resolveThreshold(ctx, threshold)
	if err != nil {
		return nil, err
	}
	if err := validateThreshold(newThreshold, uint64(len(owners))+1); err != nil {
		return nil, err
	}

	return EncodeAddOwnerWithThreshold(owner, newThreshold)
}

// EncodeRemoveOwnerData encodes removeOwner. A nil threshold lowers the current one by one.
func (m *OwnerManager) EncodeRemoveOwnerData(ctx context.Context, owner common.Address, threshold *uint64) ([]byte, error) {
	if err := validateAddress(owner, "owner"); err != nil {
		return nil, err
	}

	owners, err := m.inspector.GetOwners(ctx)
	if err != nil {
		return nil, err
	}
	index := indexOfAddress(owners, owner)
	if index < 0 {
		return nil, sdkerrors.NewValidationError("address provided is not an owner")
	}

	var newThreshold uint64
	if threshold != nil {
		newThreshold = *threshold
	} else {
		current, err := m.inspector.GetThreshold(ctx)
		if err != nil {
			return nil, err
		}
		if current > 0 {
			newThreshold = current - 1
		}
	}
	if err := validateThreshold(newThreshold, uint64(len(owners))-1); err != nil {
		return nil, err
	}

	return EncodeRemoveOwner(previousEntry(owners, index), owner, newThreshold)
}

// EncodeSwapOwnerData encodes swapOwner replacing oldOwner with newOwner.
func (m *OwnerManager) EncodeSwapOwnerData(ctx context.Context, oldOwner, newOwner common.Address) ([]byte, error) {
	if err := validateAddress(newOwner, "owner"); err != nil {
		return nil, err
	}
	if err := validateAddress(oldOwner, "owner"); err != nil {
		return nil, err
	}

	owners, err := m.inspector.GetOwners(ctx)
	if err != nil {
		return nil, err
	}
	if containsAddress(owners, newOwner) {
		return nil, sdkerrors.NewValidationError("address provided is already an owner")
	}
	index := indexOfAddress(owners, oldOwner)
	if index < 0 {
		return nil, sdkerrors.NewValidationError("address provided is not an owner")
	}

	return EncodeSwapOwner(previousEntry(owners, index), oldOwner, newOwner)
}

// EncodeChangeThresholdData encodes changeThreshold after checking it against the owner count.
func (m *OwnerManager) EncodeChangeThresholdData(ctx context.Context, threshold uint64) ([]byte, error) {
	owners, err := m.inspector.GetOwners(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateThreshold(threshold, uint64(len(owners))); err != nil {
		return nil, err
	}

	return EncodeChangeThreshold(threshold)
}

func (m *OwnerManager) resolveThreshold(ctx context.Context, threshold *uint64) (uint64, error) {
	if threshold != nil {
		return *threshold, nil
	}

	return m.inspector.GetThreshold(ctx)
}

func validateThreshold(threshold, ownerCount uint64) error {
	if threshold == 0 {
		return sdkerrors.NewValidationError("threshold needs to be greater than 0")
	}
	if threshold > ownerCount {
		return sdkerrors.NewValidationError("threshold cannot exceed owner count")
	}

	return nil
}

// validateAddress rejects the zero address and the linked-list sentinel. what names the list
// ("owner" or "module") in the error.
func validateAddress(addr common.Address, what string) error {
	if types.IsRestrictedAddress(addr) {
		return sdkerrors.NewValidationError("invalid " + what + " address provided")
	}

	return nil
}

func containsAddress(list []common.Address, addr common.Address) bool {
	return indexOfAddress(list, addr) >= 0
}

func indexOfAddress(list []common.Address, addr common.Address) int {
	_, index, found := lo.FindIndexOf(list, func(item common.Address) bool {
		return item == addr
	})
	if !found {
		return -1
	}

	return index
}

// previousEntry returns the linked-list predecessor the Safe needs for removals: the sentinel for
// the head, otherwise the preceding element.
func previousEntry(list []common.Address, index int) common.Address {
	if index == 0 {
		return types.SentinelAddress
	}

	return list[index-1]
}
