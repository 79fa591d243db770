package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCents_HalfUpRounding(t *testing.T) {
	tests := []struct {
		name     string
		dollars  float64
		expected Cents
	}{
		{"exact", 10.00, 1000},
		{"rounds up at half cent", 10.005, 1001},
		{"rounds down below half", 10.004, 1000},
		{"zero", 0, 0},
		{"negative exact", -5.25, -525},
		{"negative half rounds away from zero", -10.005, -1001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToCents(tt.dollars))
		})
	}
}

func TestCents_String(t *testing.T) {
	assert.Equal(t, "36.00", Cents(3600).String())
	assert.Equal(t, "0.00", Cents(0).String())
	assert.Equal(t, "-12.50", Cents(-1250).String())
	assert.Equal(t, "0.05", Cents(5).String())
}

func TestCents_IsSettled(t *testing.T) {
	assert.True(t, Cents(0).IsSettled())
	assert.True(t, Cents(1).IsSettled())
	assert.True(t, Cents(-1).IsSettled())
	assert.False(t, Cents(2).IsSettled())
}

func TestSum(t *testing.T) {
	assert.Equal(t, Cents(600), Sum(Cents(100), Cents(200), Cents(300)))
	assert.Equal(t, Cents(0), Sum())
}

func TestEqualWithinCent(t *testing.T) {
	assert.True(t, EqualWithinCent(Cents(1000), Cents(1001)))
	assert.True(t, EqualWithinCent(Cents(1000), Cents(999)))
	assert.False(t, EqualWithinCent(Cents(1000), Cents(998)))
}

func TestMarshalUnmarshalJSON(t *testing.T) {
	b, err := Cents(3650).MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, "36.50", string(b))

	var c Cents
	assert.NoError(t, c.UnmarshalJSON([]byte("36.5")))
	assert.Equal(t, Cents(3650), c)

	var zero Cents
	assert.NoError(t, zero.UnmarshalJSON([]byte("null")))
	assert.Equal(t, Cents(0), zero)
}
