package chain

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func Test_ParseLog_BountyCreated(t *testing.T) {
	log := ethtypes.Log{
		Address: common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Topics: []common.Hash{
			crypto.Keccak256Hash([]byte("BountyCreated(uint256,address)")),
			common.BigToHash(big.NewInt(42)),
			common.HexToHash("0x000000000000000000000000aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"),
		},
		TxHash:      common.HexToHash("0xdead"),
		BlockNumber: 100,
	}

	event, ok := ParseLog(log)
	require.True(t, ok)
	require.Equal(t, EventBountyCreated, event.Name)
	require.Equal(t, EventKindCreation, event.Kind)
	require.Equal(t, int64(42), event.EntityID)
	require.Equal(t, uint64(100), event.BlockNumber)
}

func Test_ParseLog_WinnersSelectedIsStateChange(t *testing.T) {
	log := ethtypes.Log{
		Topics: []common.Hash{
			crypto.Keccak256Hash([]byte("WinnersSelected(uint256,address[])")),
			common.BigToHash(big.NewInt(7)),
		},
	}

	event, ok := ParseLog(log)
	require.True(t, ok)
	require.Equal(t, EventWinnersSelected, event.Name)
	require.Equal(t, EventKindStateChange, event.Kind)
	require.Equal(t, int64(7), event.EntityID)
}

func Test_ParseLog_AchievementUnlocked(t *testing.T) {
	data, err := stringArguments.Pack("First Blood")
	require.NoError(t, err)

	user := common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	log := ethtypes.Log{
		Topics: []common.Hash{
			crypto.Keccak256Hash([]byte("AchievementUnlocked(address,uint256,string)")),
			common.BytesToHash(user.Bytes()),
			common.BigToHash(big.NewInt(3)),
		},
		Data: data,
	}

	event, ok := ParseLog(log)
	require.True(t, ok)
	require.Equal(t, EventAchievementUnlocked, event.Name)
	require.Equal(t, user.Hex(), event.UserAddress)
	require.Equal(t, int64(3), event.TokenID)
	require.Equal(t, "First Blood", event.Detail)
}

func Test_ParseLog_UnknownTopic(t *testing.T) {
	log := ethtypes.Log{
		Topics: []common.Hash{
			crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)")),
		},
	}

	_, ok := ParseLog(log)
	require.False(t, ok)

	_, ok = ParseLog(ethtypes.Log{})
	require.False(t, ok)
}
