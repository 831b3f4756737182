package loan

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	textracttypes "github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/google/uuid"
)

// DateTimeLayout is month/day/year.
const DateTimeLayout = "01/02/2006 15:04:05"

// Form labels printed on the application.
const (
	FieldFirstName   = "First Name:"
	FieldLastName    = "Last Name:"
	FieldAddress     = "Address:"
	FieldDateOfBirth = "Date of Birth:"
	FieldPhone       = "Phone:"
	FieldEmail       = "E-mail:"
)

const selected = "SELECTED"

// Application is one loan_application item.
type Application struct {
	ID          string `dynamodbav:"id"`
	DateTime    string `dynamodbav:"date_time"`
	FirstName   string `dynamodbav:"first_name"`
	LastName    string `dynamodbav:"last_name"`
	Address     string `dynamodbav:"address"`
	DateOfBirth string `dynamodbav:"date_of_birth"`
	Phone       string `dynamodbav:"phone"`
	Email       string `dynamodbav:"email"`
	Option      string `dynamodbav:"option"`
}

// Form is the key/value content of one page.
type Form struct {
	Fields []Field
}

type Field struct {
	Key   string
	Value string
}

// Get returns the value of the field labelled key.
func (f Form) Get(key string) string {
	for _, field := range f.Fields {
		if field.Key == key {
			return field.Value
		}
	}
	return ""
}

// Selected returns the label of the first ticked checkbox.
func (f Form) Selected() string {
	for _, field := range f.Fields {
		if field.Value == selected {
			return field.Key
		}
	}
	return ""
}

// ParseForms groups the KEY_VALUE_SET blocks of a Textract response by page.
// Every PAGE block gets a form, empty when the page has no fields.
func ParseForms(blocks []textracttypes.Block) map[int32]Form {
	byID := make(map[string]textracttypes.Block, len(blocks))
	forms := map[int32]Form{}
	for _, b := range blocks {
		byID[aws.ToString(b.Id)] = b
		if b.BlockType == textracttypes.BlockTypePage {
			forms[pageOf(b)] = Form{}
		}
	}

	for _, b := range blocks {
		if b.BlockType != textracttypes.BlockTypeKeyValueSet || !isKey(b) {
			continue
		}
		field := Field{Key: text(b, byID)}
		for _, rel := range b.Relationships {
			if rel.Type != textracttypes.RelationshipTypeValue {
				continue
			}
			for _, id := range rel.Ids {
				if v, ok := byID[id]; ok {
					field.Value = text(v, byID)
				}
			}
		}
		page := pageOf(b)
		form := forms[page]
		form.Fields = append(form.Fields, field)
		forms[page] = form
	}
	return forms
}

// pageOf defaults to 1; single page responses may omit Page.
func pageOf(b textracttypes.Block) int32 {
	if p := aws.ToInt32(b.Page); p > 0 {
		return p
	}
	return 1
}

func isKey(b textracttypes.Block) bool {
	for _, t := range b.EntityTypes {
		if t == textracttypes.EntityTypeKey {
			return true
		}
	}
	return false
}

// text joins the words under b; a checkbox reads as its selection status.
func text(b textracttypes.Block, byID map[string]textracttypes.Block) string {
	var words []string
	for _, rel := range b.Relationships {
		if rel.Type != textracttypes.RelationshipTypeChild {
			continue
		}
		for _, id := range rel.Ids {
			child, ok := byID[id]
			if !ok {
				continue
			}
			switch child.BlockType {
			case textracttypes.BlockTypeWord:
				words = append(words, aws.ToString(child.Text))
			case textracttypes.BlockTypeSelectionElement:
				words = append(words, string(child.SelectionStatus))
			}
		}
	}
	return strings.Join(words, " ")
}

// OCR reads the S3 notifications queued on SQS, extracts each scanned form
// and stores one application per page. Messages that fail are retried.
func (h *Handler) OCR(ctx context.Context, e events.SQSEvent) (events.SQSEventResponse, error) {
	var failures common.Failures
	for _, msg := range e.Records {
		log := h.logger.With("message_id", msg.MessageId)
		if err := h.ocrMessage(ctx, msg.Body); err != nil {
			log.Error("Loan form extraction failed", "error", err)
			failures.Add(msg.MessageId)
		}
	}
	return failures.SQS(), nil
}

func (h *Handler) ocrMessage(ctx context.Context, body string) error {
	var notification events.S3Event
	if err := json.Unmarshal([]byte(body), &notification); err != nil {
		return fmt.Errorf("decode s3 notification: %w", err)
	}
	for _, r := range notification.Records {
		bucket, key := r.S3.Bucket.Name, common.ObjectKey(r)
		out, err := h.c.Textract.AnalyzeDocument(ctx, &textract.AnalyzeDocumentInput{
			Document: &textracttypes.Document{
				S3Object: &textracttypes.S3Object{Bucket: aws.String(bucket), Name: aws.String(key)},
			},
			FeatureTypes: []textracttypes.FeatureType{textracttypes.FeatureTypeForms},
		})
		if err != nil {
			return fmt.Errorf("analyze s3://%s/%s: %w", bucket, key, err)
		}

		forms := ParseForms(out.Blocks)
		pages := make([]int, 0, len(forms))
		for p := range forms {
			pages = append(pages, int(p))
		}
		sort.Ints(pages)
		for _, p := range pages {
			app, err := h.application(forms[int32(p)])
			if err != nil {
				return err
			}
			if err := common.PutItem(ctx, h.c.DynamoDB, h.s.Table, app); err != nil {
				return err
			}
			h.logger.Info("Loan application stored", "id", app.ID, "document", key, "page", p)
		}
	}
	return nil
}

func (h *Handler) application(form Form) (Application, error) {
	id, err := uuid.NewUUID()
	if err != nil {
		return Application{}, err
	}
	return Application{
		ID:          id.String(),
		DateTime:    h.now().Format(DateTimeLayout),
		FirstName:   form.Get(FieldFirstName),
		LastName:    form.Get(FieldLastName),
		Address:     form.Get(FieldAddress),
		DateOfBirth: form.Get(FieldDateOfBirth),
		Phone:       form.Get(FieldPhone),
		Email:       form.Get(FieldEmail),
		Option:      form.Selected(),
	}, nil
}
