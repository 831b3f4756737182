package generator

import (
	"io"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// CardsFile is the object name the card export is stored under.
const CardsFile = "dataexport.csv"

// CardRow is one card transaction. TransactionAmount carries no currency
// symbol or thousands separator.
type CardRow struct {
	FirstName         string
	LastName          string
	TransactionDate   string
	CardNumber        string
	CardExpire        string
	CardType          string
	CardSecCode       string
	TransactionAmount string
	UserAgent         string
}

func (g *Generator) Cards(n int) []CardRow {
	now := g.now()
	monthStart := now.AddDate(0, 0, 1-now.Day())
	rows := make([]CardRow, n)
	for i := range rows {
		rows[i] = CardRow{
			FirstName:         g.fake.FirstName(),
			LastName:          g.fake.LastName(),
			TransactionDate:   g.fake.DateRange(monthStart, now).Format("2006-01-02"),
			CardNumber:        g.fake.CreditCardNumber(&gofakeit.CreditCardOptions{}),
			CardExpire:        g.fake.CreditCardExp(),
			CardType:          g.fake.CreditCardType(),
			CardSecCode:       g.fake.CreditCardCvv(),
			TransactionAmount: strings.NewReplacer("$", "", ",", "").Replace(g.price(1, 10000)),
			UserAgent:         g.fake.UserAgent(),
		}
	}
	return rows
}

func WriteCardsCSV(w io.Writer, rows []CardRow) error {
	header := []string{
		"first_name", "last_name", "transaction_date", "card_number", "card_expire",
		"card_type", "card_sec_code", "transaction_amount", "user_agent",
	}
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			r.FirstName, r.LastName, r.TransactionDate, r.CardNumber, r.CardExpire,
			r.CardType, r.CardSecCode, r.TransactionAmount, r.UserAgent,
		}
	}
	return writeCSV(w, header, records)
}
