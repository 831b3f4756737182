// Package datalake holds the cart abandonment pipeline: a generator that
// seeds the input bucket, two aggregations that feed the output bucket and
// the vote counter fed by a DynamoDB stream.
package datalake

import (
	"bytes"
	"cmp"
	"context"
	"encoding/csv"
	"log/slog"
	"slices"
	"strconv"

	"github.com/amirasaad/finlabs/pkg/awsapi"
	"github.com/amirasaad/finlabs/pkg/config"
	"github.com/amirasaad/finlabs/pkg/generator"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/aws/aws-lambda-go/events"
)

// Output object names.
const (
	PromotionFile  = "promotion_data.csv"
	AggregatedFile = "cart_aggregated_data.csv"
)

const (
	promotionsPerCustomer = 10
	topProducts           = 50
	csvContentType        = "text/csv"
)

// Handler works on the input and output buckets.
type Handler struct {
	s3      awsapi.S3Client
	buckets config.Buckets
	gen     *generator.Generator
	rows    int
	logger  *slog.Logger
}

func New(s3Client awsapi.S3Client, buckets config.Buckets, gen *generator.Generator, rows int, logger *slog.Logger) *Handler {
	if rows <= 0 {
		rows = 1000
	}
	return &Handler{s3: s3Client, buckets: buckets, gen: gen, rows: rows, logger: common.Logger(logger)}
}

// FakeData writes a fresh cart dataset to the input bucket.
func (h *Handler) FakeData(ctx context.Context) error {
	if err := common.Require(map[string]string{"BUCKET_INPUT": h.buckets.Input}); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := generator.WriteCartCSV(&buf, h.gen.Cart(h.rows)); err != nil {
		return err
	}
	if err := common.WriteObject(ctx, h.s3, h.buckets.Input, generator.CartFile, csvContentType, buf.Bytes()); err != nil {
		h.logger.Error("Cart data upload failed", "bucket", h.buckets.Input, "error", err)
		return err
	}
	h.logger.Info("Cart data uploaded", "bucket", h.buckets.Input, "rows", h.rows)
	return nil
}

// Promotion ranks, per customer, the ten products with the most abandoned
// units. It reads the object named by the S3 event, or the default cart
// file in the input bucket when the event names none.
func (h *Handler) Promotion(ctx context.Context, e events.S3Event) error {
	rows, err := h.readCart(ctx, e)
	if err != nil {
		return err
	}
	type key struct{ customer, product int }
	totals := map[key]int{}
	for _, r := range rows {
		totals[key{r.CustomerID, r.ProductID}] += r.ProductAmount
	}
	byCustomer := map[int][]productTotal{}
	for k, amount := range totals {
		byCustomer[k.customer] = append(byCustomer[k.customer], productTotal{k.product, amount})
	}
	customers := make([]int, 0, len(byCustomer))
	for c := range byCustomer {
		customers = append(customers, c)
	}
	slices.Sort(customers)

	records := [][]string{}
	for _, c := range customers {
		for _, p := range largest(byCustomer[c], promotionsPerCustomer) {
			records = append(records, []string{strconv.Itoa(c), strconv.Itoa(p.product), strconv.Itoa(p.amount)})
		}
	}
	return h.writeCSV(ctx, PromotionFile, []string{"customer_id", "product_id", "product_amount"}, records)
}

// Aggregate sums abandoned units per product and keeps the top fifty.
func (h *Handler) Aggregate(ctx context.Context, e events.S3Event) error {
	rows, err := h.readCart(ctx, e)
	if err != nil {
		return err
	}
	totals := map[int]int{}
	for _, r := range rows {
		totals[r.ProductID] += r.ProductAmount
	}
	products := make([]productTotal, 0, len(totals))
	for p, amount := range totals {
		products = append(products, productTotal{p, amount})
	}

	records := [][]string{}
	for _, p := range largest(products, topProducts) {
		records = append(records, []string{strconv.Itoa(p.product), strconv.Itoa(p.amount)})
	}
	return h.writeCSV(ctx, AggregatedFile, []string{"product_id", "abandoned_amount"}, records)
}

type productTotal struct {
	product int
	amount  int
}

// largest returns the n biggest totals, ties broken by product id.
func largest(totals []productTotal, n int) []productTotal {
	slices.SortFunc(totals, func(a, b productTotal) int {
		if c := cmp.Compare(b.amount, a.amount); c != 0 {
			return c
		}
		return cmp.Compare(a.product, b.product)
	})
	return totals[:min(n, len(totals))]
}

func (h *Handler) readCart(ctx context.Context, e events.S3Event) ([]generator.CartRow, error) {
	bucket, key := h.buckets.Input, generator.CartFile
	if len(e.Records) > 0 {
		bucket = e.Records[0].S3.Bucket.Name
		key = common.ObjectKey(e.Records[0])
	}
	if err := common.Require(map[string]string{"BUCKET_INPUT": bucket, "BUCKET_OUTPUT": h.buckets.Output}); err != nil {
		return nil, err
	}
	data, err := common.ReadObject(ctx, h.s3, bucket, key)
	if err != nil {
		return nil, err
	}
	return generator.ReadCartCSV(bytes.NewReader(data))
}

func (h *Handler) writeCSV(ctx context.Context, key string, header []string, records [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	if err := common.WriteObject(ctx, h.s3, h.buckets.Output, key, csvContentType, buf.Bytes()); err != nil {
		h.logger.Error("Aggregation upload failed", "key", key, "error", err)
		return err
	}
	h.logger.Info("Aggregation uploaded", "bucket", h.buckets.Output, "key", key, "rows", len(records))
	return nil
}
