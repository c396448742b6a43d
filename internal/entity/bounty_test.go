package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_BountyStatusFromChain(t *testing.T) {
	testCases := []struct {
		value  uint8
		status BountyStatusType
	}{
		{0, BountyOpen},
		{1, BountyJudging},
		{2, BountyResolved},
		{3, BountySlashed},
	}

	for _, tc := range testCases {
		status, err := BountyStatusFromChain(tc.value)
		require.NoError(t, err)
		require.Equal(t, tc.status, status)

		value, err := status.ChainValue()
		require.NoError(t, err)
		require.Equal(t, tc.value, value)
	}
}

func Test_BountyStatusFromChain_Unmapped(t *testing.T) {
	_, err := BountyStatusFromChain(4)
	require.Error(t, err)

	_, err = BountyStatusType("unknown").ChainValue()
	require.Error(t, err)
}

func Test_QuestEntryStatusFromChain_Unmapped(t *testing.T) {
	_, err := QuestEntryStatusFromChain(3)
	require.Error(t, err)
}
