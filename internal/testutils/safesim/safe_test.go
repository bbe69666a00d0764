package safesim

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

func TestLinkedIndex(t *testing.T) {
	t.Parallel()

	a, b, c := common.HexToAddress("0xa"), common.HexToAddress("0xb"), common.HexToAddress("0xc")
	list := []common.Address{a, b, c}

	tests := []struct {
		name      string
		prev      common.Address
		item      common.Address
		wantIndex int
		wantErr   string
	}{
		{name: "head", prev: types.SentinelAddress, item: a, wantIndex: 0},
		{name: "middle", prev: a, item: b, wantIndex: 1},
		{name: "wrong predecessor", prev: a, item: c, wantErr: "execution reverted: GS205"},
		{name: "unknown item", prev: c, item: common.HexToAddress("0xd"), wantErr: "execution reverted: GS205"},
		{name: "sentinel item", prev: c, item: types.SentinelAddress, wantErr: "execution reverted: GS205"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			index, err := linkedIndex(list, tt.prev, tt.item, "GS205")
			if tt.wantErr != "" {
				var revertErr *RevertError
				require.ErrorAs(t, err, &revertErr)
				assert.Equal(t, "GS205", revertErr.Reason)
				require.EqualError(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantIndex, index)
		})
	}
}
