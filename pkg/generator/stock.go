package generator

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strings"
	"time"
)

var (
	orderTypes    = []string{"buy", "sell"}
	categories    = []string{"amount", "price", "limited", "stop"}
	orderStatuses = []string{"pending", "open", "complete", "canceled", "rejected"}
	ordersEpoch   = time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
)

// DefaultTickers is used when no tickers file is supplied.
var DefaultTickers = []string{"AAPL", "AMZN", "GOOG", "MSFT", "META", "NFLX", "NVDA", "TSLA", "JPM", "V"}

var ErrNoTickers = errors.New("no tickers")

// StockOrder is a synthetic exchange order. It is the payload of the
// stock stream and the item stored by the stock consumer.
type StockOrder struct {
	Ticker     string  `json:"ticker" dynamodbav:"ticker"`
	OrderClass string  `json:"order_class" dynamodbav:"order_class"`
	OrderType  string  `json:"order_type" dynamodbav:"order_type"`
	Category   string  `json:"category" dynamodbav:"category"`
	Amount     int     `json:"amount" dynamodbav:"amount"`
	Executed   int     `json:"executed" dynamodbav:"executed"`
	Price      float64 `json:"price" dynamodbav:"price"`
	Status     string  `json:"status" dynamodbav:"status"`
	InvestorID int     `json:"investor_id" dynamodbav:"investor_id"`
	OrderDate  string  `json:"order_date" dynamodbav:"order_date"`
	OrderTime  string  `json:"order_time" dynamodbav:"order_time"`
}

// StockOrder draws one order for a ticker from tickers.
func (g *Generator) StockOrder(tickers []string) StockOrder {
	if len(tickers) == 0 {
		tickers = DefaultTickers
	}
	amount := g.fake.IntRange(1, 500)
	when := g.fake.DateRange(ordersEpoch, g.now())
	return StockOrder{
		Ticker:     g.fake.RandomString(tickers),
		OrderClass: "stocks",
		OrderType:  g.fake.RandomString(orderTypes),
		Category:   g.fake.RandomString(categories),
		Amount:     amount,
		Executed:   amount,
		Price:      math.Round(g.fake.Float64Range(10.12, 480.47)*100) / 100,
		Status:     g.fake.RandomString(orderStatuses),
		InvestorID: g.fake.IntRange(1, 10000000),
		OrderDate:  when.Format("2006-01-02"),
		OrderTime:  when.Format("15:04:05"),
	}
}

// ReadTickers returns the first column of a CSV with a header row.
func ReadTickers(r io.Reader) ([]string, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	var tickers []string
	for i, rec := range records {
		if i == 0 || len(rec) == 0 {
			continue
		}
		if t := strings.TrimSpace(rec[0]); t != "" {
			tickers = append(tickers, t)
		}
	}
	if len(tickers) == 0 {
		return nil, ErrNoTickers
	}
	return tickers, nil
}
