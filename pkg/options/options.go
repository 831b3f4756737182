// Package options prices the equity options of a portfolio: European
// contracts with Black-Scholes, American ones on a Cox-Ross-Rubinstein tree.
package options

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultSteps is the depth of the binomial tree when an option names none.
const DefaultSteps = 200

type Style string

const (
	European Style = "european"
	American Style = "american"
)

type Right string

const (
	Call Right = "call"
	Put  Right = "put"
)

var (
	ErrUnsupportedStyle = errors.New("exercise type is not supported")
	ErrUnsupportedRight = errors.New("option right is not supported")
	ErrInvalidOption    = errors.New("invalid option")
)

// Option is one portfolio entry. Rate, Volatility and Dividend are annual
// and continuously compounded; Maturity is in years. The exercise style is
// read from "type", or from "exercise" when "type" is absent.
type Option struct {
	Name       string  `json:"name"`
	Style      Style   `json:"type"`
	Right      Right   `json:"right"`
	Spot       float64 `json:"spot"`
	Strike     float64 `json:"strike"`
	Rate       float64 `json:"rate"`
	Volatility float64 `json:"volatility"`
	Dividend   float64 `json:"dividend"`
	Maturity   float64 `json:"maturity"`
	Steps      int     `json:"steps,omitempty"`
}

// Result is the valuation of one option. Failed valuations carry Error
// instead of a price so the rest of a batch is still reported.
type Result struct {
	Name  string           `json:"name"`
	Style Style            `json:"type"`
	Right Right            `json:"right"`
	Value *decimal.Decimal `json:"value,omitempty"`
	Delta *decimal.Decimal `json:"delta,omitempty"`
	Error string           `json:"error,omitempty"`
}

func (o *Option) UnmarshalJSON(data []byte) error {
	type plain Option
	aux := struct {
		*plain
		Exercise Style `json:"exercise"`
	}{plain: (*plain)(o)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if o.Style == "" {
		o.Style = aux.Exercise
	}
	return nil
}

func (o Option) validate() error {
	switch {
	case o.Spot <= 0:
		return fmt.Errorf("%w: spot must be positive", ErrInvalidOption)
	case o.Strike <= 0:
		return fmt.Errorf("%w: strike must be positive", ErrInvalidOption)
	case o.Volatility <= 0:
		return fmt.Errorf("%w: volatility must be positive", ErrInvalidOption)
	case o.Maturity <= 0:
		return fmt.Errorf("%w: maturity must be positive", ErrInvalidOption)
	}
	switch Right(strings.ToLower(string(o.Right))) {
	case Call, Put:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedRight, o.Right)
	}
	return nil
}

// Evaluate prices o according to its exercise style. American options
// without their own Steps use a tree of depth steps (DefaultSteps when
// steps is not positive).
func Evaluate(o Option, steps int) Result {
	res := Result{Name: o.Name, Style: o.Style, Right: o.Right}
	value, delta, err := evaluate(o, steps)
	if err != nil {
		res.Error = fmt.Sprintf("error in processing option %s: %v", o.Name, err)
		return res
	}
	v := decimal.NewFromFloat(value).Round(6)
	res.Value = &v
	if delta != nil {
		d := decimal.NewFromFloat(*delta).Round(6)
		res.Delta = &d
	}
	return res
}

// EvaluateAll prices every option of a portfolio.
func EvaluateAll(portfolio []Option, steps int) []Result {
	results := make([]Result, len(portfolio))
	for i, o := range portfolio {
		results[i] = Evaluate(o, steps)
	}
	return results
}

func evaluate(o Option, defaultSteps int) (float64, *float64, error) {
	if err := o.validate(); err != nil {
		return 0, nil, err
	}
	right := Right(strings.ToLower(string(o.Right)))
	switch Style(strings.ToLower(string(o.Style))) {
	case European:
		value, delta := BlackScholes(o, right)
		return value, &delta, nil
	case American:
		steps := o.Steps
		if steps <= 0 {
			steps = defaultSteps
		}
		if steps <= 0 {
			steps = DefaultSteps
		}
		return Binomial(o, right, steps, true), nil, nil
	default:
		return 0, nil, fmt.Errorf("%w: %q", ErrUnsupportedStyle, o.Style)
	}
}
