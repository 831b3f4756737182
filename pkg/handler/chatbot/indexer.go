package chatbot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/finlabs/pkg/awsapi"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/amirasaad/finlabs/pkg/search"
	"github.com/aws/aws-lambda-go/events"
	"github.com/ledongthuc/pdf"
)

var ErrEmptyPDF = errors.New("pdf has no pages")

// DocumentIndex stores documents by id.
type DocumentIndex interface {
	Index(ctx context.Context, id string, doc search.Document) error
}

// Indexer adds every uploaded PDF to the search index, keyed by its
// object key.
type Indexer struct {
	s3     awsapi.S3Client
	index  DocumentIndex
	region string
	logger *slog.Logger
}

func NewIndexer(client awsapi.S3Client, index DocumentIndex, region string, logger *slog.Logger) *Indexer {
	return &Indexer{s3: client, index: index, region: region, logger: common.Logger(logger)}
}

func (x *Indexer) Handle(ctx context.Context, e events.S3Event) error {
	for _, r := range e.Records {
		bucket, key := r.S3.Bucket.Name, common.ObjectKey(r)
		log := x.logger.With("bucket", bucket, "key", key)

		data, err := common.ReadObject(ctx, x.s3, bucket, key)
		if err != nil {
			return err
		}
		content, err := FirstPageText(data)
		if err != nil {
			log.Error("Error parsing pdf file", "error", err)
			return fmt.Errorf("parse s3://%s/%s: %w", bucket, key, err)
		}
		doc := search.Document{
			Attachment: search.Attachment{Content: content},
			FilePath:   fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", x.region, bucket, key),
		}
		if err := x.index.Index(ctx, key, doc); err != nil {
			log.Error("Failed to index document", "error", err)
			return err
		}
		log.Info("Document indexed", "chars", len(content))
	}
	return nil
}

// FirstPageText extracts the plain text of page one. The parser panics on
// some malformed files; that is reported as an error.
func FirstPageText(data []byte) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("malformed pdf: %v", p)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	if r.NumPage() == 0 {
		return "", ErrEmptyPDF
	}
	page := r.Page(1)
	if page.V.IsNull() {
		return "", ErrEmptyPDF
	}
	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
