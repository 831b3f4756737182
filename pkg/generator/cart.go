package generator

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// CartFile is the object name the cart dataset is stored under.
const CartFile = "cart_abandonment_data.csv"

var cartHeader = []string{"cart_id", "customer_id", "product_id", "product_amount", "product_price"}

var ErrMissingColumn = errors.New("missing csv column")

// CartRow is one abandoned product line.
type CartRow struct {
	CartID        int
	CustomerID    int
	ProductID     int
	ProductAmount int
	ProductPrice  string
}

// Cart returns n abandoned cart lines. Ids are small so that the
// aggregations downstream have something to group.
func (g *Generator) Cart(n int) []CartRow {
	rows := make([]CartRow, n)
	for i := range rows {
		rows[i] = CartRow{
			CartID:        g.fake.IntRange(0, 10),
			CustomerID:    g.fake.IntRange(0, 10),
			ProductID:     g.fake.IntRange(0, 10),
			ProductAmount: g.fake.IntRange(1, 20),
			ProductPrice:  g.price(1, 10000),
		}
	}
	return rows
}

func WriteCartCSV(w io.Writer, rows []CartRow) error {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			strconv.Itoa(r.CartID),
			strconv.Itoa(r.CustomerID),
			strconv.Itoa(r.ProductID),
			strconv.Itoa(r.ProductAmount),
			r.ProductPrice,
		}
	}
	return writeCSV(w, cartHeader, records)
}

// ReadCartCSV parses a cart dataset. Columns are located by header name so
// files with a leading index column are accepted too.
func ReadCartCSV(r io.Reader) ([]CartRow, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	idx := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		idx[name] = i
	}
	for _, name := range cartHeader {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	rows := make([]CartRow, 0, len(records)-1)
	for line, rec := range records[1:] {
		var row CartRow
		ints := []struct {
			col string
			dst *int
		}{
			{"cart_id", &row.CartID},
			{"customer_id", &row.CustomerID},
			{"product_id", &row.ProductID},
			{"product_amount", &row.ProductAmount},
		}
		for _, f := range ints {
			v, err := strconv.Atoi(rec[idx[f.col]])
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line+2, f.col, err)
			}
			*f.dst = v
		}
		row.ProductPrice = rec[idx["product_price"]]
		rows = append(rows, row)
	}
	return rows, nil
}
