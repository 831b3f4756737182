package generator

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

var loanTypes = []string{"Conventional", "Fixed-Rate", "Adjustable-Rate", "FHA", "USDA", "VA", "Jumbo"}

// LendingRow is a row of lending_table.
type LendingRow struct {
	CustomerID uint   `gorm:"column:customer_id;primaryKey;autoIncrement"`
	LoanType   string `gorm:"column:loan_type;size:20;not null"`
	LoanID     string `gorm:"column:loan_id;size:20;not null"`
	Payment    string `gorm:"column:payment;size:20;not null"`
}

func (LendingRow) TableName() string { return "lending_table" }

func (g *Generator) Lending() LendingRow {
	return LendingRow{
		LoanType: g.fake.RandomString(loanTypes),
		LoanID:   strings.ToUpper(g.fake.LetterN(4)) + g.fake.DigitN(14),
		Payment:  strconv.FormatFloat(math.Round(g.fake.Float64Range(500, 10000)*100)/100, 'f', 2, 64),
	}
}

// LendingWriter inserts generated rows, committing every batch rows.
type LendingWriter struct {
	db    *gorm.DB
	batch int
}

func NewLendingWriter(db *gorm.DB, batch int) *LendingWriter {
	if batch <= 0 {
		batch = 100
	}
	return &LendingWriter{db: db, batch: batch}
}

// Migrate creates lending_table when it is missing.
func (w *LendingWriter) Migrate(ctx context.Context) error {
	return w.db.WithContext(ctx).AutoMigrate(&LendingRow{})
}

// Write inserts n rows produced by next. progress, when set, is told how
// many rows each committed batch held.
func (w *LendingWriter) Write(ctx context.Context, n int, next func() LendingRow, progress func(int)) error {
	for done := 0; done < n; {
		size := min(w.batch, n-done)
		rows := make([]LendingRow, size)
		for i := range rows {
			rows[i] = next()
		}
		err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Create(&rows).Error
		})
		if err != nil {
			return fmt.Errorf("insert lending rows %d-%d: %w", done+1, done+size, err)
		}
		done += size
		if progress != nil {
			progress(size)
		}
	}
	return nil
}
