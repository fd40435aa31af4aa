package quorum

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/JessicaMulein/BrightChain/internal/member"
)

func threeMembers(t *testing.T) []*member.Member {
	t.Helper()
	members := make([]*member.Member, 3)
	for i := range members {
		m, err := member.New()
		require.NoError(t, err)
		members[i] = m
	}
	return members
}

// Scenario 5: quorum 2-of-3. Seal "hello" with threshold 2. Unseal with
// members {0,1}: returns "hello". Unseal with member {0} alone: fails with
// NotEnoughMembersToUnlock.
func TestScenarioQuorumTwoOfThree(t *testing.T) {
	members := threeMembers(t)
	agentID := uuid.New()

	record, err := Seal(agentID, "hello", members, 2)
	require.NoError(t, err)
	require.Equal(t, 2, record.SharesRequired)
	require.Len(t, record.MemberIDs, 3)

	var got string
	err = Unseal(record, members[:2], &got)
	require.NoError(t, err)
	require.Equal(t, "hello", got)

	var got2 string
	err = Unseal(record, members[:1], &got2)
	require.ErrorIs(t, err, ErrNotEnoughMembersToUnlock)
}

func TestUnsealWithDifferentTwoOfThreeSubsetAlsoWorks(t *testing.T) {
	members := threeMembers(t)
	record, err := Seal(uuid.New(), "hello", members, 2)
	require.NoError(t, err)

	var got string
	err = Unseal(record, []*member.Member{members[0], members[2]}, &got)
	require.NoError(t, err)
	require.Equal(t, "hello", got)
}

func TestSealRejectsTooFewMembers(t *testing.T) {
	m, err := member.New()
	require.NoError(t, err)
	_, err = Seal(uuid.New(), "x", []*member.Member{m}, 0)
	require.ErrorIs(t, err, ErrInvalidMemberArray)
}

func TestSealRejectsThresholdAboveMemberCount(t *testing.T) {
	members := threeMembers(t)
	_, err := Seal(uuid.New(), "x", members, 4)
	require.ErrorIs(t, err, ErrInvalidMemberArray)
}

func TestUnsealFailsWithoutLoadedPrivateKey(t *testing.T) {
	members := threeMembers(t)
	record, err := Seal(uuid.New(), "hello", members, 2)
	require.NoError(t, err)

	pubOnly := member.NewFromPublicKey(members[0].ID, members[0].PublicKey)
	err = Unseal(record, []*member.Member{pubOnly, members[1]}, new(string))
	require.ErrorIs(t, err, ErrMissingPrivateKeys)
}

func TestUnsealRejectsUnknownMember(t *testing.T) {
	members := threeMembers(t)
	record, err := Seal(uuid.New(), "hello", members[:2], 2)
	require.NoError(t, err)

	err = Unseal(record, []*member.Member{members[0], members[2]}, new(string))
	require.ErrorIs(t, err, ErrMemberNotFound)
}

func TestSealWithPowerOfTwoMemberCountRoundTrips(t *testing.T) {
	members := make([]*member.Member, 8)
	for i := range members {
		m, err := member.New()
		require.NoError(t, err)
		members[i] = m
	}
	record, err := Seal(uuid.New(), "power of two", members, 5)
	require.NoError(t, err)

	var got string
	err = Unseal(record, members[:5], &got)
	require.NoError(t, err)
	require.Equal(t, "power of two", got)
}

func TestBitsForMemberCountStaysInRange(t *testing.T) {
	b, err := bitsForMemberCount(3)
	require.NoError(t, err)
	require.GreaterOrEqual(t, b, MinBits)

	_, err = bitsForMemberCount(MaximumShares)
	require.NoError(t, err)
}
