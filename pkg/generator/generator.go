// Package generator produces the synthetic datasets the labs are fed with:
// abandoned carts, card transactions, stock orders, lending rows and
// replayed fraud transactions.
package generator

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// Generator wraps a seeded faker. A zero seed picks a random one.
type Generator struct {
	fake *gofakeit.Faker
	now  func() time.Time
}

func New(seed int64) *Generator {
	return &Generator{fake: gofakeit.New(seed), now: time.Now}
}

// price formats a random amount the way a shop would show it.
func (g *Generator) price(min, max float64) string {
	return fmt.Sprintf("$%.2f", g.fake.Price(min, max))
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
