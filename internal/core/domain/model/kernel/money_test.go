package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create with positive amount", func(t *testing.T) {
		money, err := kernel.NewMoney(1500)

		require.NoError(t, err)
		assert.Equal(t, int64(1500), money.Amount())
	})

	t.Run("should create with zero amount", func(t *testing.T) {
		money, err := kernel.NewMoney(0)

		require.NoError(t, err)
		assert.True(t, money.IsZero())
	})

	t.Run("should fail with negative amount", func(t *testing.T) {
		_, err := kernel.NewMoney(-1)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestMoney_Add(t *testing.T) {
	t.Run("should add positive delta", func(t *testing.T) {
		money, _ := kernel.NewMoney(100)

		sum, err := money.Add(50)

		require.NoError(t, err)
		assert.Equal(t, int64(150), sum.Amount())
		// The receiver stays untouched.
		assert.Equal(t, int64(100), money.Amount())
	})

	t.Run("should allow negative delta down to zero", func(t *testing.T) {
		money, _ := kernel.NewMoney(100)

		sum, err := money.Add(-100)

		require.NoError(t, err)
		assert.True(t, sum.IsZero())
	})

	t.Run("should reject delta driving amount negative", func(t *testing.T) {
		money, _ := kernel.NewMoney(100)

		_, err := money.Add(-101)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestMoney_Comparisons(t *testing.T) {
	small, _ := kernel.NewMoney(10)
	big, _ := kernel.NewMoney(20)
	alsoSmall, _ := kernel.NewMoney(10)

	assert.True(t, big.GreaterThan(small))
	assert.False(t, small.GreaterThan(big))
	assert.False(t, small.GreaterThan(alsoSmall))
	assert.True(t, small.IsEqual(alsoSmall))
	assert.False(t, small.IsEqual(big))
}
