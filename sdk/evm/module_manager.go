package evm

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	sdkerrors "github.com/polywrap/safe-contracts-wrapper-sub000/sdk/errors"
)

// ModuleManager validates module changes and encodes the Safe self-calls that apply them.
type ModuleManager struct {
	inspector *Inspector
	version   string
}

func NewModuleManager(inspector *Inspector, version string) *ModuleManager {
	return &ModuleManager{inspector: inspector, version: version}
}

func (m *ModuleManager) GetModules(ctx context.Context) ([]common.Address, error) {
	return m.inspector.GetModules(ctx, m.version)
}

func (m *ModuleManager) IsModuleEnabled(ctx context.Context, module common.Address) (bool, error) {
	return m.inspector.IsModuleEnabled(ctx, module)
}

// EncodeEnableModuleData encodes enableModule for a module that is not yet enabled.
func (m *ModuleManager) EncodeEnableModuleData(ctx context.Context, module common.Address) ([]byte, error) {
	if err := validateAddress(module, "module"); err != nil {
		return nil, err
	}

	modules, err := m.GetModules(ctx)
	if err != nil {
		return nil, err
	}
	if containsAddress(modules, module) {
		return nil, sdkerrors.NewValidationError("module provided is already enabled")
	}

	return EncodeEnableModule(module)
}

// EncodeDisableModuleData encodes disableModule with the module's linked-list predecessor.
func (m *ModuleManager) EncodeDisableModuleData(ctx context.Context, module common.Address) ([]byte, error) {
	if err := validateAddress(module, "module"); err != nil {
		return nil, err
	}

	modules, err := m.GetModules(ctx)
	if err != nil {
		return nil, err
	}
	index := indexOfAddress(modules, module)
	if index < 0 {
		return nil, sdkerrors.NewValidationError("module provided is not enabled yet")
	}

	return EncodeDisableModule(previousEntry(modules, index), module)
}
