package options

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func atTheMoney(style Style, right Right) Option {
	return Option{
		Name:       "atm",
		Style:      style,
		Right:      right,
		Spot:       100,
		Strike:     100,
		Rate:       0.05,
		Volatility: 0.2,
		Maturity:   1,
	}
}

func TestBlackScholes(t *testing.T) {
	call, delta := BlackScholes(atTheMoney(European, Call), Call)
	assert.InDelta(t, 10.4506, call, 1e-4)
	assert.InDelta(t, 0.6368, delta, 1e-4)

	put, delta := BlackScholes(atTheMoney(European, Put), Put)
	assert.InDelta(t, 5.5735, put, 1e-4)
	assert.InDelta(t, -0.3632, delta, 1e-4)
}

func TestBlackScholes_Dividend(t *testing.T) {
	o := atTheMoney(European, Call)
	o.Dividend = 0.03
	withDividend, _ := BlackScholes(o, Call)
	plain, _ := BlackScholes(atTheMoney(European, Call), Call)
	assert.Less(t, withDividend, plain)
}

func TestBinomial(t *testing.T) {
	europeanPut := Binomial(atTheMoney(European, Put), Put, DefaultSteps, false)
	assert.InDelta(t, 5.5735, europeanPut, 0.02)

	americanPut := Binomial(atTheMoney(American, Put), Put, DefaultSteps, true)
	assert.InDelta(t, 6.09, americanPut, 0.02)
	assert.Greater(t, americanPut, europeanPut)

	// Without dividends early exercise of a call is never optimal.
	americanCall := Binomial(atTheMoney(American, Call), Call, DefaultSteps, true)
	assert.InDelta(t, 10.4506, americanCall, 0.02)
}

func TestEvaluate(t *testing.T) {
	res := Evaluate(atTheMoney("European", "CALL"), 0)
	require.Empty(t, res.Error)
	require.NotNil(t, res.Value)
	require.NotNil(t, res.Delta)
	assert.Equal(t, "10.450584", res.Value.String())

	res = Evaluate(atTheMoney(American, Put), 0)
	require.Empty(t, res.Error)
	assert.Nil(t, res.Delta)
	assert.InDelta(t, 6.09, res.Value.InexactFloat64(), 0.02)
}

func TestEvaluate_Errors(t *testing.T) {
	bermudan := atTheMoney("bermudan", Call)
	assert.Contains(t, Evaluate(bermudan, 0).Error, ErrUnsupportedStyle.Error())

	straddle := atTheMoney(European, "straddle")
	assert.Contains(t, Evaluate(straddle, 0).Error, ErrUnsupportedRight.Error())

	expired := atTheMoney(European, Call)
	expired.Maturity = 0
	res := Evaluate(expired, 0)
	assert.Contains(t, res.Error, "maturity must be positive")
	assert.Nil(t, res.Value)
}

func TestEvaluateAll(t *testing.T) {
	results := EvaluateAll([]Option{atTheMoney(European, Call), atTheMoney("asian", Put)}, 0)
	require.Len(t, results, 2)
	assert.NotNil(t, results[0].Value)
	assert.NotEmpty(t, results[1].Error)
}

func TestEvaluate_StepsOverride(t *testing.T) {
	coarse := Evaluate(atTheMoney(American, Put), 3)
	fine := Evaluate(atTheMoney(American, Put), 0)
	require.NotNil(t, coarse.Value)
	require.NotNil(t, fine.Value)
	assert.False(t, coarse.Value.Equal(*fine.Value))

	own := atTheMoney(American, Put)
	own.Steps = 3
	assert.True(t, Evaluate(own, 500).Value.Equal(*coarse.Value), "an option's own steps win")
}

func TestOption_UnmarshalExercise(t *testing.T) {
	var portfolio []Option
	require.NoError(t, json.Unmarshal([]byte(`[
		{"name":"o1","exercise":"European","right":"call","spot":100,"strike":100,"rate":0.05,"volatility":0.2,"maturity":1},
		{"name":"o2","type":"american","exercise":"European","right":"put","spot":100,"strike":100,"rate":0.05,"volatility":0.2,"maturity":1}
	]`), &portfolio))
	require.Len(t, portfolio, 2)
	assert.Equal(t, Style("European"), portfolio[0].Style)
	assert.Equal(t, 100.0, portfolio[0].Spot)
	assert.Equal(t, American, portfolio[1].Style, "type wins over exercise")

	res := Evaluate(portfolio[0], 0)
	require.Empty(t, res.Error)
	assert.Equal(t, "10.450584", res.Value.String())
}
