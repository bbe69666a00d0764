package types

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-playground/validator/v10"

	sdkerrors "github.com/polywrap/safe-contracts-wrapper-sub000/sdk/errors"
)

// SafeAccountConfig describes the owners and setup call of a Safe to deploy.
type SafeAccountConfig struct {
	Owners          []common.Address `json:"owners" validate:"min=1"`
	Threshold       uint64           `json:"threshold" validate:"gte=1"`
	To              common.Address   `json:"to"`
	Data            hexutil.Bytes    `json:"data"`
	FallbackHandler *common.Address  `json:"fallbackHandler,omitempty"`
	PaymentToken    common.Address   `json:"paymentToken"`
	Payment         *big.Int         `json:"payment,omitempty"`
	PaymentReceiver common.Address   `json:"paymentReceiver"`
}

// accountConfigMessages maps validator failures to the messages callers of the Safe SDK expect.
var accountConfigMessages = map[string]string{
	"Owners.min":    "owner list must have at least one owner",
	"Threshold.gte": "threshold must be greater than or equal to 1",
}

// Validate checks the owner list and threshold. It never touches the network.
func (c SafeAccountConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return translateValidationErr(err, accountConfigMessages)
	}

	if c.Threshold > uint64(len(c.Owners)) {
		return sdkerrors.NewValidationError("threshold must be lower than or equal to owners length")
	}

	seen := make(map[common.Address]struct{}, len(c.Owners))
	for _, owner := range c.Owners {
		if IsRestrictedAddress(owner) {
			return sdkerrors.NewValidationError("invalid owner address provided: " + owner.Hex())
		}
		if _, ok := seen[owner]; ok {
			return sdkerrors.NewValidationError("duplicate owner address provided: " + owner.Hex())
		}
		seen[owner] = struct{}{}
	}

	if c.Payment != nil && c.Payment.Sign() < 0 {
		return sdkerrors.NewValidationError("payment must be greater than or equal to 0")
	}

	return nil
}

// SafeDeploymentConfig is the input to a Safe proxy deployment.
type SafeDeploymentConfig struct {
	SafeAccountConfig SafeAccountConfig `json:"safeAccountConfig"`

	// SaltNonce is a non-negative decimal integer. Empty means 0.
	SaltNonce string `json:"saltNonce,omitempty" validate:"omitempty,numeric"`
}

var deploymentConfigMessages = map[string]string{
	"Owners.min":    accountConfigMessages["Owners.min"],
	"Threshold.gte": accountConfigMessages["Threshold.gte"],
}

// Validate checks the account config and the salt nonce. It never touches the network.
func (c SafeDeploymentConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "SaltNonce" {
			return sdkerrors.NewInvalidSaltNonceError(c.SaltNonce)
		}

		return translateValidationErr(err, deploymentConfigMessages)
	}

	if err := c.SafeAccountConfig.Validate(); err != nil {
		return err
	}

	_, err := c.SaltNonceValue()

	return err
}

// SaltNonceValue parses the salt nonce.
func (c SafeDeploymentConfig) SaltNonceValue() (*big.Int, error) {
	if c.SaltNonce == "" {
		return new(big.Int), nil
	}

	nonce, ok := new(big.Int).SetString(c.SaltNonce, 10)
	if !ok || nonce.Sign() < 0 {
		return nil, sdkerrors.NewInvalidSaltNonceError(c.SaltNonce)
	}

	return nonce, nil
}

func translateValidationErr(err error, messages map[string]string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return sdkerrors.NewValidationError(err.Error())
	}

	fe := verrs[0]
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return sdkerrors.NewValidationError(msg)
	}

	return sdkerrors.NewValidationError(fmt.Sprintf("invalid %s: failed %q check", fe.Field(), fe.Tag()))
}
