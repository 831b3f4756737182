package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/finlabs/internal/fixtures/mocks"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/firehose"
	firehosetypes "github.com/aws/aws-sdk-go-v2/service/firehose/types"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func fixed() *Generator {
	g := New(42)
	g.now = func() time.Time { return time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC) }
	return g
}

func TestCart_RoundTrip(t *testing.T) {
	rows := fixed().Cart(50)
	require.Len(t, rows, 50)
	for _, r := range rows {
		assert.GreaterOrEqual(t, r.ProductID, 0)
		assert.LessOrEqual(t, r.ProductID, 10)
		assert.GreaterOrEqual(t, r.ProductAmount, 1)
		assert.LessOrEqual(t, r.ProductAmount, 20)
		assert.True(t, strings.HasPrefix(r.ProductPrice, "$"))
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCartCSV(&buf, rows))
	back, err := ReadCartCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, rows, back)
}

func TestReadCartCSV_IndexColumnAndErrors(t *testing.T) {
	in := ",cart_id,customer_id,product_id,product_amount,product_price\n0,1,2,3,4,$5.00\n"
	rows, err := ReadCartCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []CartRow{{CartID: 1, CustomerID: 2, ProductID: 3, ProductAmount: 4, ProductPrice: "$5.00"}}, rows)

	_, err = ReadCartCSV(strings.NewReader("cart_id\n1\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = ReadCartCSV(strings.NewReader("cart_id,customer_id,product_id,product_amount,product_price\nx,1,1,1,$1\n"))
	assert.ErrorContains(t, err, "line 2")
}

func TestCards(t *testing.T) {
	rows := fixed().Cards(20)
	require.Len(t, rows, 20)
	for _, r := range rows {
		assert.NotContains(t, r.TransactionAmount, "$")
		assert.NotContains(t, r.TransactionAmount, ",")
		assert.True(t, strings.HasPrefix(r.TransactionDate, "2024-05-"), r.TransactionDate)
		assert.NotEmpty(t, r.CardNumber)
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCardsCSV(&buf, rows))
	assert.True(t, strings.HasPrefix(buf.String(), "first_name,last_name,transaction_date"))
	assert.Equal(t, 21, strings.Count(buf.String(), "\n"))
}

func TestStockOrder(t *testing.T) {
	g := fixed()
	for range 100 {
		o := g.StockOrder([]string{"AAA", "BBB"})
		assert.Contains(t, []string{"AAA", "BBB"}, o.Ticker)
		assert.Contains(t, orderTypes, o.OrderType)
		assert.Contains(t, categories, o.Category)
		assert.Contains(t, orderStatuses, o.Status)
		assert.Equal(t, o.Amount, o.Executed)
		assert.GreaterOrEqual(t, o.Price, 10.12)
		assert.LessOrEqual(t, o.Price, 480.47)
		assert.GreaterOrEqual(t, o.InvestorID, 1)
		assert.LessOrEqual(t, o.InvestorID, 10000000)
		assert.GreaterOrEqual(t, o.OrderDate, "2010-01-01")
	}
}

func TestReadTickers(t *testing.T) {
	tickers, err := ReadTickers(strings.NewReader("Symbol,Name\nAAPL,Apple\n\nMSFT,Microsoft\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, tickers)

	_, err = ReadTickers(strings.NewReader("Symbol\n"))
	assert.ErrorIs(t, err, ErrNoTickers)
}

func TestReplayFraudCSV(t *testing.T) {
	in := "Time,V1,Amount,Class\n0,-1.35, 149.62,'0'\n1,1.19,2.69,'0'\n2,-1.36,378.66,'1'\n"
	var got []string
	sent, err := ReplayFraudCSV(strings.NewReader(in), 2, func(i int, row string) error {
		got = append(got, row)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, []string{"0,-1.35,149.62", "1,1.19,2.69"}, got)

	boom := errors.New("boom")
	_, err = ReplayFraudCSV(strings.NewReader(in), 0, func(int, string) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestFirehoseSink(t *testing.T) {
	client := mocks.NewMockFirehoseClient(t)
	client.On("PutRecordBatch", mock.Anything, mock.MatchedBy(func(in *firehose.PutRecordBatchInput) bool {
		return *in.DeliveryStreamName == "stock-stream" && len(in.Records) == 2
	})).Return(&firehose.PutRecordBatchOutput{FailedPutCount: aws.Int32(0)}, nil).Twice()
	client.On("PutRecordBatch", mock.Anything, mock.MatchedBy(func(in *firehose.PutRecordBatchInput) bool {
		return len(in.Records) == 1
	})).Return(&firehose.PutRecordBatchOutput{FailedPutCount: aws.Int32(0)}, nil).Once()

	ctx := context.Background()
	sink := NewFirehoseSink(client, "stock-stream", 2)
	g := fixed()
	for range 5 {
		require.NoError(t, sink.Send(ctx, g.StockOrder(nil)))
	}
	require.NoError(t, sink.Flush(ctx))
	assert.Equal(t, 3, sink.Batches())
}

func TestFirehoseSink_FailedRecords(t *testing.T) {
	client := mocks.NewMockFirehoseClient(t)
	client.On("PutRecordBatch", mock.Anything, mock.Anything).
		Return(&firehose.PutRecordBatchOutput{FailedPutCount: aws.Int32(1)}, nil).Once()

	sink := NewFirehoseSink(client, "s", 1)
	assert.ErrorContains(t, sink.Send(context.Background(), map[string]int{"a": 1}), "1 records failed")
}

func TestFirehoseSink_RetriesOnlyRejected(t *testing.T) {
	client := mocks.NewMockFirehoseClient(t)
	client.On("PutRecordBatch", mock.Anything, mock.MatchedBy(func(in *firehose.PutRecordBatchInput) bool {
		return len(in.Records) == 3
	})).Return(&firehose.PutRecordBatchOutput{
		FailedPutCount: aws.Int32(1),
		RequestResponses: []firehosetypes.PutRecordBatchResponseEntry{
			{RecordId: aws.String("r0")},
			{ErrorCode: aws.String("ServiceUnavailableException"), ErrorMessage: aws.String("slow down")},
			{RecordId: aws.String("r2")},
		},
	}, nil).Once()
	client.On("PutRecordBatch", mock.Anything, mock.MatchedBy(func(in *firehose.PutRecordBatchInput) bool {
		return len(in.Records) == 1 && string(in.Records[0].Data) == `{"n":1}`
	})).Return(&firehose.PutRecordBatchOutput{FailedPutCount: aws.Int32(0)}, nil).Once()

	ctx := context.Background()
	sink := NewFirehoseSink(client, "stock-stream", 3)
	require.NoError(t, sink.Send(ctx, map[string]int{"n": 0}))
	require.NoError(t, sink.Send(ctx, map[string]int{"n": 1}))
	assert.ErrorContains(t, sink.Send(ctx, map[string]int{"n": 2}), "1 records failed")

	require.NoError(t, sink.Flush(ctx))
	assert.Equal(t, 1, sink.Batches())
}

type recordingWriter struct{ msgs []kafka.Message }

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestKafkaSink(t *testing.T) {
	w := &recordingWriter{}
	order := fixed().StockOrder(nil)
	require.NoError(t, NewKafkaSink(w).Send(context.Background(), order))
	require.Len(t, w.msgs, 1)

	var back StockOrder
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &back))
	assert.Equal(t, order, back)
}

func TestKinesisSink(t *testing.T) {
	client := mocks.NewMockKinesisClient(t)
	client.On("PutRecord", mock.Anything, mock.MatchedBy(func(in *kinesis.PutRecordInput) bool {
		return *in.StreamName == "TransactionsStream" && *in.PartitionKey == FraudPartitionKey && string(in.Data) == "1,2"
	})).Return(&kinesis.PutRecordOutput{}, nil).Once()

	assert.NoError(t, NewKinesisSink(client, "TransactionsStream").Send(context.Background(), "1,2"))
}

func TestLendingWriter(t *testing.T) {
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close() // nolint: errcheck
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, DriverName: "postgres"}), &gorm.Config{})
	require.NoError(t, err)

	for _, n := range []int{2, 1} {
		sqlMock.ExpectBegin()
		rows := sqlmock.NewRows([]string{"customer_id"})
		for i := range n {
			rows.AddRow(i + 1)
		}
		sqlMock.ExpectQuery(`INSERT INTO "lending_table"`).WillReturnRows(rows)
		sqlMock.ExpectCommit()
	}

	g := fixed()
	var progressed []int
	err = NewLendingWriter(db, 2).Write(context.Background(), 3, g.Lending, func(n int) { progressed = append(progressed, n) })
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, progressed)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestLending(t *testing.T) {
	row := fixed().Lending()
	assert.Contains(t, loanTypes, row.LoanType)
	assert.Len(t, row.LoanID, 18)
	assert.NotEmpty(t, row.Payment)
}
