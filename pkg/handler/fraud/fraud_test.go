package fraud

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amirasaad/finlabs/infra/cache"
	"github.com/amirasaad/finlabs/internal/fixtures/mocks"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func kinesisRecord(seq, data string) events.KinesisEventRecord {
	return events.KinesisEventRecord{Kinesis: events.KinesisRecord{SequenceNumber: seq, Data: []byte(data)}}
}

func invoked(payload string) any {
	return mock.MatchedBy(func(in *sagemakerruntime.InvokeEndpointInput) bool {
		return *in.EndpointName == "fraud-ep" && *in.ContentType == "text/csv" && string(in.Body) == payload
	})
}

func TestHandle(t *testing.T) {
	sm := mocks.NewMockSageMakerRuntimeClient(t)
	db := mocks.NewMockDynamoDBClient(t)

	sm.On("InvokeEndpoint", mock.Anything, invoked("1,2,3")).
		Return(&sagemakerruntime.InvokeEndpointOutput{Body: []byte(`{"predictions":[{"score":0.97,"predicted_label":1}]}`)}, nil).Once()
	sm.On("InvokeEndpoint", mock.Anything, invoked("4,5,6")).
		Return(&sagemakerruntime.InvokeEndpointOutput{Body: []byte(`{"predictions":[{"score":0.02,"predicted_label":0}]}`)}, nil).Once()
	sm.On("InvokeEndpoint", mock.Anything, invoked("7,8,9")).
		Return(nil, errors.New("endpoint down")).Once()

	db.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		dt := in.Item["datetime"].(*types.AttributeValueMemberS)
		score := in.Item["score"].(*types.AttributeValueMemberN)
		raw := in.Item["raw_transaction"].(*types.AttributeValueMemberS)
		_, hasID := in.Item["id"]
		return *in.TableName == "Fraud" && dt.Value == "31/01/2024 08:30:00" &&
			score.Value == "0.97" && raw.Value == "1,2,3" && hasID
	})).Return(&dynamodb.PutItemOutput{}, nil).Once()

	h := New(sm, db, "fraud-ep", "Fraud", common.NewOnce(cache.NewMemoryGuard(time.Minute), nil), nil)
	h.now = func() time.Time { return time.Date(2024, 1, 31, 8, 30, 0, 0, time.UTC) }

	res, err := h.Handle(context.Background(), events.KinesisEvent{Records: []events.KinesisEventRecord{
		kinesisRecord("s1", "1,2,3"),
		kinesisRecord("s1", "1,2,3"),
		kinesisRecord("s2", "4,5,6"),
		kinesisRecord("s3", "7,8,9"),
	}})
	require.NoError(t, err)
	require.Len(t, res.BatchItemFailures, 1)
	assert.Equal(t, "s3", res.BatchItemFailures[0].ItemIdentifier)
}

func TestScore_NoPrediction(t *testing.T) {
	sm := mocks.NewMockSageMakerRuntimeClient(t)
	sm.On("InvokeEndpoint", mock.Anything, mock.Anything).
		Return(&sagemakerruntime.InvokeEndpointOutput{Body: []byte(`{"predictions":[]}`)}, nil).Once()

	_, err := New(sm, nil, "fraud-ep", "Fraud", nil, nil).Score(context.Background(), "1")
	assert.ErrorIs(t, err, ErrNoPrediction)
}

func TestHandle_MissingEndpoint(t *testing.T) {
	_, err := New(nil, nil, "", "Fraud", nil, nil).Handle(context.Background(), events.KinesisEvent{})
	assert.ErrorIs(t, err, common.ErrMissingSetting)
}
