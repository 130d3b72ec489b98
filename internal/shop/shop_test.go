package shop

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studybuddy/internal/points"
	"github.com/abhisek/studybuddy/internal/rewards"
)

func ledgerWith(n int) *points.Ledger {
	l := points.New()
	l.Apply(n, points.ReasonAdminAdd)
	return l
}

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	assert.Len(t, c.Chests, 3)
	assert.Len(t, c.Armor, 5)

	beginner, ok := c.Chest("beginner")
	require.True(t, ok)
	assert.Equal(t, "Beginner Chest", beginner.Name)
	assert.Equal(t, 50, beginner.Cost)
	assert.Equal(t, rewards.RuleHalve, beginner.Table.Outcomes[0].Rule.Type)

	for _, ch := range c.Chests {
		assert.InDelta(t, 1.0, ch.Table.Sum(), 1e-9, ch.ID)
	}

	helmet, ok := c.ArmorPiece("helmet")
	require.True(t, ok)
	assert.Equal(t, 100, helmet.Cost)
}

func TestParseCatalog_Invalid(t *testing.T) {
	_, err := ParseCatalog([]byte(`chests: [{id: x, name: X, cost: 10, table: {name: X, outcomes: []}}]`))
	assert.ErrorIs(t, err, rewards.ErrEmptyTable)

	_, err = ParseCatalog([]byte(`armor: [{id: a, name: A, cost: 1}, {id: a, name: B, cost: 2}]`))
	assert.Error(t, err)

	_, err = ParseCatalog([]byte(`chests: [{id: x, name: X, cost: 10, table: {name: X, outcomes: [{label: y, probability: 1, rule: {type: explode}}]}}]`))
	assert.Error(t, err)
}

func TestBuyArmor(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	ledger := ledgerWith(150)
	s := New(c, ledger)

	bought, err := s.BuyArmor("helmet")
	require.NoError(t, err)
	assert.True(t, bought)
	assert.Equal(t, 50, ledger.Balance())
	assert.Equal(t, 1, s.ArmorCount())

	bought, err = s.BuyArmor("helmet")
	require.NoError(t, err)
	assert.False(t, bought)
	assert.Equal(t, 50, ledger.Balance())
	assert.Equal(t, 1, s.ArmorCount())

	_, err = s.BuyArmor("shield")
	assert.True(t, errors.Is(err, points.ErrInsufficientPoints))
	assert.False(t, s.Owns("shield"))

	_, err = s.BuyArmor("cape")
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestOpenChest(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	ledger := ledgerWith(60)
	s := New(c, ledger, WithRNG(&rewards.FixedRNG{Values: []float64{0.10}}))

	p, err := s.OpenChest("beginner")
	require.NoError(t, err)
	assert.Equal(t, 10, ledger.Balance())
	assert.Equal(t, 0, p.Spin.Result.Index)
	assert.Equal(t, 25, p.Spin.Result.NetValue)
	assert.Equal(t, p.Spin.Result.Outcome.Label, p.Spin.Winner().Label)

	bal, err := p.Claim(ledger)
	require.NoError(t, err)
	assert.Equal(t, 35, bal)
}

func TestOpenChest_InsufficientPoints(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	ledger := ledgerWith(40)
	s := New(c, ledger)

	_, err = s.OpenChest("beginner")
	assert.ErrorIs(t, err, points.ErrInsufficientPoints)
	assert.Equal(t, 40, ledger.Balance())
}

func TestInventoryOrder(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	s := New(c, ledgerWith(1000))

	s.BuyArmor("shield")
	s.BuyArmor("helmet")

	inv := s.Inventory()
	require.Len(t, inv, 2)
	assert.Equal(t, "helmet", inv[0].ID)
	assert.Equal(t, "shield", inv[1].ID)
}
