package abi

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Encode(t *testing.T) {
	t.Parallel()

	safe := common.HexToAddress("0x5b38da6a701c568545dcfcb03fcb875f56beddc4")

	tests := []struct {
		name       string
		giveABI    string
		giveValues []any
		want       string
		wantError  bool
	}{
		{
			name:       "success: domain separator words",
			giveABI:    `[{"type":"bytes32"},{"type":"uint256"},{"type":"address"}]`,
			giveValues: []any{common.HexToHash("0x01"), big.NewInt(5), safe},
			want: "0x" +
				"0000000000000000000000000000000000000000000000000000000000000001" +
				"0000000000000000000000000000000000000000000000000000000000000005" +
				"0000000000000000000000005b38da6a701c568545dcfcb03fcb875f56beddc4",
		},
		{
			name:       "success: operation byte",
			giveABI:    `[{"type":"uint8"}]`,
			giveValues: []any{uint8(1)},
			want:       "0x" + strings.Repeat("0", 63) + "1",
		},
		{
			name:       "success: dynamic bytes",
			giveABI:    `[{"type":"bytes"}]`,
			giveValues: []any{[]byte{0xca, 0xfe}},
			want: "0x" +
				"0000000000000000000000000000000000000000000000000000000000000020" +
				"0000000000000000000000000000000000000000000000000000000000000002" +
				"cafe000000000000000000000000000000000000000000000000000000000000",
		},
		{
			name:      "failure: invalid ABI type",
			giveABI:   `[{"type":"uint7"}]`,
			wantError: true,
		},
		{
			name:       "failure: missing value",
			giveABI:    `[{"type":"uint256"}]`,
			giveValues: []any{},
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Encode(tt.giveABI, tt.giveValues...)

			if tt.wantError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, hexutil.Encode(got))
			}
		})
	}
}

func Test_Decode(t *testing.T) {
	t.Parallel()

	owners := []common.Address{
		common.HexToAddress("0x1000000000000000000000000000000000000001"),
		common.HexToAddress("0x2000000000000000000000000000000000000002"),
	}
	encoded, err := Encode(`[{"type":"address[]"},{"type":"uint256"}]`, owners, big.NewInt(2))
	require.NoError(t, err)

	tests := []struct {
		name      string
		giveABI   string
		giveData  []byte
		want      []any
		wantError bool
	}{
		{
			name:     "success: owners and threshold",
			giveABI:  `[{"type":"address[]"},{"type":"uint256"}]`,
			giveData: encoded,
			want:     []any{owners, big.NewInt(2)},
		},
		{
			name:      "failure: truncated data",
			giveABI:   `[{"type":"uint256"}]`,
			giveData:  make([]byte, 16),
			wantError: true,
		},
		{
			name:      "failure: invalid ABI type",
			giveABI:   `[{"type":"invalid"}]`,
			giveData:  make([]byte, 32),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode(tt.giveABI, tt.giveData)

			if tt.wantError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
