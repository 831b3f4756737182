package loan

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/amirasaad/finlabs/internal/fixtures/mocks"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	comprehendtypes "github.com/aws/aws-sdk-go-v2/service/comprehend/types"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rekognitiontypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	textracttypes "github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSentiment(t *testing.T) {
	c := mocks.NewMockComprehendClient(t)
	c.On("DetectSentiment", mock.Anything, mock.MatchedBy(func(in *comprehend.DetectSentimentInput) bool {
		return *in.Text == "I love this bank" && in.LanguageCode == comprehendtypes.LanguageCodeEn
	})).Return(&comprehend.DetectSentimentOutput{Sentiment: comprehendtypes.SentimentTypePositive}, nil).Once()

	out, err := New(Clients{Comprehend: c}, Settings{}, nil).Sentiment(context.Background(), SentimentInput{Content: "I love this bank"})
	require.NoError(t, err)
	assert.Equal(t, "POSITIVE", out.Sentiment)
}

func TestModeration(t *testing.T) {
	r := mocks.NewMockRekognitionClient(t)
	r.On("DetectModerationLabels", mock.Anything, mock.Anything).
		Return(&rekognition.DetectModerationLabelsOutput{}, nil).Once()
	r.On("DetectModerationLabels", mock.Anything, mock.Anything).
		Return(&rekognition.DetectModerationLabelsOutput{ModerationLabels: []rekognitiontypes.ModerationLabel{{Name: aws.String("Violence")}}}, nil).Once()

	h := New(Clients{Rekognition: r}, Settings{}, nil)
	out, err := h.Moderation(context.Background(), ModerationInput{Bucket: "b", Key: "k.png"})
	require.NoError(t, err)
	assert.True(t, out.SafeContent)

	out, err = h.Moderation(context.Background(), ModerationInput{Bucket: "b", Key: "k.png"})
	require.NoError(t, err)
	assert.False(t, out.SafeContent)
}

func upload(key string) events.S3EventRecord {
	return events.S3EventRecord{S3: events.S3Entity{
		Bucket: events.S3Bucket{Name: "uploads"},
		Object: events.S3Object{Key: key},
	}}
}

func TestTrigger(t *testing.T) {
	s3c := mocks.NewMockS3Client(t)
	sf := mocks.NewMockSFNClient(t)

	s3c.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool { return *in.Key == "with.png" })).
		Return(&s3.HeadObjectOutput{Metadata: map[string]string{"message": "please approve"}}, nil).Once()
	s3c.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool { return *in.Key == "without.png" })).
		Return(&s3.HeadObjectOutput{}, nil).Once()
	sf.On("StartExecution", mock.Anything, mock.MatchedBy(func(in *sfn.StartExecutionInput) bool {
		var input ExecutionInput
		if err := json.Unmarshal([]byte(*in.Input), &input); err != nil {
			return false
		}
		return *in.StateMachineArn == "arn:sm" &&
			input == ExecutionInput{S3Info: S3Info{Bucket: "uploads", Key: "with.png"}, Message: Message{Content: "please approve"}}
	})).Return(&sfn.StartExecutionOutput{ExecutionArn: aws.String("arn:exec")}, nil).Once()

	h := New(Clients{S3: s3c, SFN: sf}, Settings{StateMachineArn: "arn:sm"}, nil)
	arns, err := h.Trigger(context.Background(), events.S3Event{Records: []events.S3EventRecord{upload("with.png"), upload("without.png")}})
	require.NoError(t, err)
	assert.Equal(t, []string{"arn:exec"}, arns)
}

func TestTrigger_RequiresStateMachine(t *testing.T) {
	_, err := New(Clients{}, Settings{}, nil).Trigger(context.Background(), events.S3Event{})
	assert.ErrorContains(t, err, "LOAN_STATE_MACHINE_ARN")
}

func word(id, text string) textracttypes.Block {
	return textracttypes.Block{Id: aws.String(id), BlockType: textracttypes.BlockTypeWord, Text: aws.String(text)}
}

func keyBlock(id, valueID string, page int32, words ...string) textracttypes.Block {
	return textracttypes.Block{
		Id:          aws.String(id),
		BlockType:   textracttypes.BlockTypeKeyValueSet,
		EntityTypes: []textracttypes.EntityType{textracttypes.EntityTypeKey},
		Page:        aws.Int32(page),
		Relationships: []textracttypes.Relationship{
			{Type: textracttypes.RelationshipTypeValue, Ids: []string{valueID}},
			{Type: textracttypes.RelationshipTypeChild, Ids: words},
		},
	}
}

func valueBlock(id string, children ...string) textracttypes.Block {
	return textracttypes.Block{
		Id:            aws.String(id),
		BlockType:     textracttypes.BlockTypeKeyValueSet,
		EntityTypes:   []textracttypes.EntityType{textracttypes.EntityTypeValue},
		Relationships: []textracttypes.Relationship{{Type: textracttypes.RelationshipTypeChild, Ids: children}},
	}
}

func formBlocks() []textracttypes.Block {
	return []textracttypes.Block{
		word("w1", "First"), word("w2", "Name:"), word("w3", "Jane"),
		keyBlock("k1", "v1", 1, "w1", "w2"), valueBlock("v1", "w3"),
		word("w4", "E-mail:"), word("w5", "jane@example.com"),
		keyBlock("k2", "v2", 1, "w4"), valueBlock("v2", "w5"),
		word("w6", "Mortgage"),
		{Id: aws.String("s1"), BlockType: textracttypes.BlockTypeSelectionElement, SelectionStatus: textracttypes.SelectionStatusSelected},
		keyBlock("k3", "v3", 1, "w6"), valueBlock("v3", "s1"),
		word("w7", "Cash"),
		{Id: aws.String("s2"), BlockType: textracttypes.BlockTypeSelectionElement, SelectionStatus: textracttypes.SelectionStatusNotSelected},
		keyBlock("k4", "v4", 1, "w7"), valueBlock("v4", "s2"),
	}
}

func TestParseForms(t *testing.T) {
	forms := ParseForms(formBlocks())
	require.Len(t, forms, 1)
	form := forms[1]
	assert.Equal(t, "Jane", form.Get(FieldFirstName))
	assert.Equal(t, "jane@example.com", form.Get(FieldEmail))
	assert.Equal(t, "", form.Get(FieldPhone))
	assert.Equal(t, "Mortgage", form.Selected())
}

func pageBlock(id string, page int32) textracttypes.Block {
	return textracttypes.Block{Id: aws.String(id), BlockType: textracttypes.BlockTypePage, Page: aws.Int32(page)}
}

func TestParseForms_BlankPage(t *testing.T) {
	blocks := append([]textracttypes.Block{pageBlock("p1", 1), pageBlock("p2", 2)}, formBlocks()...)
	forms := ParseForms(blocks)
	require.Len(t, forms, 2)
	assert.Equal(t, "Jane", forms[1].Get(FieldFirstName))
	assert.Empty(t, forms[2].Fields)
	assert.Equal(t, "", forms[2].Selected())

	// A PAGE block without a page number is page 1.
	forms = ParseForms([]textracttypes.Block{{Id: aws.String("p"), BlockType: textracttypes.BlockTypePage}})
	require.Len(t, forms, 1)
	assert.Contains(t, forms, int32(1))
}

func TestOCR_StoresBlankPage(t *testing.T) {
	tx := mocks.NewMockTextractClient(t)
	db := mocks.NewMockDynamoDBClient(t)

	blocks := append([]textracttypes.Block{pageBlock("p1", 1), pageBlock("p2", 2)}, formBlocks()...)
	tx.On("AnalyzeDocument", mock.Anything, mock.Anything).Return(&textract.AnalyzeDocumentOutput{Blocks: blocks}, nil).Once()

	names := map[string]string{}
	db.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		id := in.Item["id"].(*types.AttributeValueMemberS).Value
		name := ""
		if v, ok := in.Item["first_name"].(*types.AttributeValueMemberS); ok {
			name = v.Value
		}
		names[id] = name
		return id != ""
	})).Return(&dynamodb.PutItemOutput{}, nil).Twice()

	h := New(Clients{Textract: tx, DynamoDB: db}, Settings{Table: "loan_application"}, nil)
	res, err := h.OCR(context.Background(), events.SQSEvent{Records: []events.SQSMessage{
		sqsMessage("m1", "forms", "two-pages.pdf"),
	}})
	require.NoError(t, err)
	assert.Empty(t, res.BatchItemFailures)
	got := make([]string, 0, len(names))
	for _, name := range names {
		got = append(got, name)
	}
	assert.ElementsMatch(t, []string{"Jane", ""}, got)
}

func sqsMessage(id, bucket, key string) events.SQSMessage {
	body, _ := json.Marshal(events.S3Event{Records: []events.S3EventRecord{{S3: events.S3Entity{
		Bucket: events.S3Bucket{Name: bucket},
		Object: events.S3Object{Key: key},
	}}}})
	return events.SQSMessage{MessageId: id, Body: string(body)}
}

func TestOCR(t *testing.T) {
	tx := mocks.NewMockTextractClient(t)
	db := mocks.NewMockDynamoDBClient(t)

	tx.On("AnalyzeDocument", mock.Anything, mock.MatchedBy(func(in *textract.AnalyzeDocumentInput) bool {
		return *in.Document.S3Object.Name == "form.png" && in.FeatureTypes[0] == textracttypes.FeatureTypeForms
	})).Return(&textract.AnalyzeDocumentOutput{Blocks: formBlocks()}, nil).Once()
	tx.On("AnalyzeDocument", mock.Anything, mock.Anything).Return(nil, errors.New("unsupported document")).Once()

	db.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		s := func(k string) string { return in.Item[k].(*types.AttributeValueMemberS).Value }
		return *in.TableName == "loan_application" &&
			s("first_name") == "Jane" && s("email") == "jane@example.com" &&
			s("option") == "Mortgage" && s("date_time") == "07/04/2024 09:15:00" && s("id") != ""
	})).Return(&dynamodb.PutItemOutput{}, nil).Once()

	h := New(Clients{Textract: tx, DynamoDB: db}, Settings{Table: "loan_application"}, nil)
	h.now = func() time.Time { return time.Date(2024, 7, 4, 9, 15, 0, 0, time.UTC) }

	res, err := h.OCR(context.Background(), events.SQSEvent{Records: []events.SQSMessage{
		sqsMessage("m1", "forms", "form.png"),
		sqsMessage("m2", "forms", "broken.gif"),
		{MessageId: "m3", Body: "not json"},
	}})
	require.NoError(t, err)
	require.Len(t, res.BatchItemFailures, 2)
	assert.Equal(t, "m2", res.BatchItemFailures[0].ItemIdentifier)
	assert.Equal(t, "m3", res.BatchItemFailures[1].ItemIdentifier)
}
