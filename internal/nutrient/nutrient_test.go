package nutrient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMap(t *testing.T) {
	t.Run("KnownKeysAndAliases", func(t *testing.T) {
		v, err := FromMap(map[string]float64{"protein": 20, "Vitamin C": 12, "kcal": 150})
		require.NoError(t, err)
		assert.Equal(t, 20.0, v[Protein])
		assert.Equal(t, 12.0, v[VitaminC])
		assert.Equal(t, 150.0, v[Calories])
	})

	t.Run("UnknownKeyRejected", func(t *testing.T) {
		_, err := FromMap(map[string]float64{"protein": 1, "unobtainium": 3})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownNutrient)
	})

	t.Run("NegativeRejected", func(t *testing.T) {
		_, err := FromMap(map[string]float64{"fat": -1})
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})
}

func TestVectorArithmetic(t *testing.T) {
	var a, b Vector
	a[Protein] = 10
	b[Protein] = 4
	b[Iron] = 1

	sum := a.Add(b)
	assert.Equal(t, 14.0, sum[Protein])
	assert.Equal(t, 10.0, a[Protein], "Add must not modify the receiver")

	diff := b.Sub(a)
	assert.Equal(t, 0.0, diff[Protein], "Sub clamps at zero")
	assert.Equal(t, 1.0, diff[Iron])

	assert.Equal(t, 5.0, a.Scale(0.5)[Protein])
	assert.Equal(t, map[string]float64{"protein": 10}, a.Map())
}

func TestDefaultTargets(t *testing.T) {
	targets := DefaultTargets(80)
	assert.InDelta(t, 64.0, targets.Ranges[Protein].Min, 1e-9)
	assert.Len(t, targets.TrackedNutrients(), Count)

	for _, n := range targets.TrackedNutrients() {
		r := targets.Ranges[n]
		assert.LessOrEqual(t, r.Min, r.Optimal, n.String())
		assert.LessOrEqual(t, r.Optimal, r.Max, n.String())
	}
}
