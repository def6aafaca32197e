package schemaname

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telkomindonesia/swagger-fixup/internal/config"
)

func TestBuild(t *testing.T) {
	n := New(config.Default())
	page := "Contracts.Page`1[[PaymentGateway.Contracts.PublicApi.Isv.Transactions.GetPage.GetIsvTransactionsResponse, ...]]"

	r, err := n.Build([]string{"Pet", page, "KeyValuePair`2", "Order"})
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())

	list := r.List()
	assert.Equal(t, Rename{Old: page, New: "TransactionsPageResponse", Reason: ReasonInvalidCharacters, Rule: RulePagedResponse}, list[0])
	assert.Equal(t, Rename{Old: "KeyValuePair`2", New: "KeyValuePair2", Reason: ReasonInvalidCharacters, Rule: RuleMarkerStrip}, list[1])

	got, ok := r.Get("KeyValuePair`2")
	require.True(t, ok)
	assert.Equal(t, "KeyValuePair2", got)
	_, ok = r.Get("Pet")
	assert.False(t, ok)
}

func TestBuildNothingToRename(t *testing.T) {
	r, err := New(config.Default()).Build([]string{"Pet", "Order"})
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestBuildCollision(t *testing.T) {
	n := New(config.Default())

	_, err := n.Build([]string{
		"Ns.List`1[[A.Pet, Asm]]",
		"Ns.List`1[[A.Order, Asm]]",
	})
	var collision *CollisionError
	require.True(t, errors.As(err, &collision))
	assert.Equal(t, "List", collision.Derived)
	assert.Equal(t, "Ns.List`1[[A.Pet, Asm]]", collision.First)
	assert.Equal(t, "Ns.List`1[[A.Order, Asm]]", collision.Second)
	assert.False(t, collision.Kept)
}

func TestBuildCollisionWithKeptName(t *testing.T) {
	n := New(config.Default())

	_, err := n.Build([]string{"Pair2", "Pair`2"})
	var collision *CollisionError
	require.True(t, errors.As(err, &collision))
	assert.True(t, collision.Kept)
	assert.Equal(t, "Pair2", collision.Derived)
	assert.Contains(t, err.Error(), "already exists")
}
