package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amirasaad/finlabs/internal/fixtures/mocks"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func stored(value string) any {
	return mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		v := in.Item["value"].(*types.AttributeValueMemberS)
		ts := in.Item["timestamp"].(*types.AttributeValueMemberS)
		return *in.TableName == "analytics" && v.Value == value && ts.Value == "2024-03-01T10:00:00Z"
	})
}

func TestHandle(t *testing.T) {
	db := mocks.NewMockDynamoDBClient(t)
	db.On("PutItem", mock.Anything, stored(`{"a":1}`)).Return(&dynamodb.PutItemOutput{}, nil).Once()
	db.On("PutItem", mock.Anything, stored(`{"b":2}`)).Return(nil, errors.New("throttled")).Once()

	h := New(db, "analytics", nil)
	h.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }

	res, err := h.Handle(context.Background(), events.KinesisFirehoseEvent{Records: []events.KinesisFirehoseEventRecord{
		{RecordID: "r1", Data: []byte(`{"a":1}`)},
		{RecordID: "r2", Data: []byte(`{"b":2}`)},
	}})
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.Equal(t, events.KinesisFirehoseTransformedStateOk, res.Records[0].Result)
	assert.Equal(t, []byte(`{"a":1}`), res.Records[0].Data)
	assert.Equal(t, "r2", res.Records[1].RecordID)
	assert.Equal(t, events.KinesisFirehoseTransformedStateProcessingFailed, res.Records[1].Result)
}
