package options

import "math"

func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

// BlackScholes returns the Merton price and delta of a European option on
// a stock paying a continuous dividend yield.
func BlackScholes(o Option, right Right) (value, delta float64) {
	sqrtT := math.Sqrt(o.Maturity)
	d1 := (math.Log(o.Spot/o.Strike) + (o.Rate-o.Dividend+0.5*o.Volatility*o.Volatility)*o.Maturity) /
		(o.Volatility * sqrtT)
	d2 := d1 - o.Volatility*sqrtT

	carry := math.Exp(-o.Dividend * o.Maturity)
	discount := math.Exp(-o.Rate * o.Maturity)

	if right == Put {
		value = o.Strike*discount*normCDF(-d2) - o.Spot*carry*normCDF(-d1)
		delta = -carry * normCDF(-d1)
		return value, delta
	}
	value = o.Spot*carry*normCDF(d1) - o.Strike*discount*normCDF(d2)
	delta = carry * normCDF(d1)
	return value, delta
}

// Binomial prices o on a Cox-Ross-Rubinstein tree of the given depth.
// With early set, every node may be exercised (American style).
func Binomial(o Option, right Right, steps int, early bool) float64 {
	dt := o.Maturity / float64(steps)
	up := math.Exp(o.Volatility * math.Sqrt(dt))
	down := 1 / up
	p := (math.Exp((o.Rate-o.Dividend)*dt) - down) / (up - down)
	discount := math.Exp(-o.Rate * dt)

	payoff := func(spot float64) float64 {
		if right == Put {
			return math.Max(o.Strike-spot, 0)
		}
		return math.Max(spot-o.Strike, 0)
	}

	values := make([]float64, steps+1)
	for i := 0; i <= steps; i++ {
		values[i] = payoff(o.Spot * math.Pow(up, float64(steps-i)) * math.Pow(down, float64(i)))
	}
	for step := steps - 1; step >= 0; step-- {
		for i := 0; i <= step; i++ {
			v := discount * (p*values[i] + (1-p)*values[i+1])
			if early {
				v = math.Max(v, payoff(o.Spot*math.Pow(up, float64(step-i))*math.Pow(down, float64(i))))
			}
			values[i] = v
		}
	}
	return values[0]
}
