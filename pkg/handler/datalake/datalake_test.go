package datalake

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/amirasaad/finlabs/infra/cache"
	"github.com/amirasaad/finlabs/internal/fixtures/mocks"
	"github.com/amirasaad/finlabs/pkg/config"
	"github.com/amirasaad/finlabs/pkg/generator"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const cartCSV = `cart_id,customer_id,product_id,product_amount,product_price
1,1,5,3,$1.00
2,1,5,4,$1.00
3,1,7,2,$1.00
4,2,7,9,$1.00
5,2,1,1,$1.00
`

func buckets() config.Buckets {
	return config.Buckets{Input: "in", Output: "out"}
}

// captureUpload records the body of the PutObject for key.
func captureUpload(client *mocks.MockS3Client, bucket, key string, body *string) {
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		if *in.Bucket != bucket || *in.Key != key {
			return false
		}
		if data, _ := io.ReadAll(in.Body); len(data) > 0 {
			*body = string(data)
		}
		return true
	})).Return(&s3.PutObjectOutput{}, nil).Once()
}

func expectCart(client *mocks.MockS3Client, bucket, key string) {
	client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return *in.Bucket == bucket && *in.Key == key
	})).Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(cartCSV))}, nil).Once()
}

func s3Event(bucket, key string) events.S3Event {
	return events.S3Event{Records: []events.S3EventRecord{{
		S3: events.S3Entity{
			Bucket: events.S3Bucket{Name: bucket},
			Object: events.S3Object{Key: key, URLDecodedKey: key},
		},
	}}}
}

func TestFakeData(t *testing.T) {
	client := mocks.NewMockS3Client(t)
	var body string
	captureUpload(client, "in", generator.CartFile, &body)

	h := New(client, buckets(), generator.New(1), 25, nil)
	require.NoError(t, h.FakeData(context.Background()))

	rows, err := generator.ReadCartCSV(strings.NewReader(body))
	require.NoError(t, err)
	assert.Len(t, rows, 25)
}

func TestFakeData_MissingBucket(t *testing.T) {
	h := New(mocks.NewMockS3Client(t), config.Buckets{}, generator.New(1), 0, nil)
	assert.ErrorIs(t, h.FakeData(context.Background()), common.ErrMissingSetting)
}

func TestPromotion(t *testing.T) {
	client := mocks.NewMockS3Client(t)
	expectCart(client, "landing", "carts/today.csv")
	var body string
	captureUpload(client, "out", PromotionFile, &body)

	h := New(client, buckets(), nil, 0, nil)
	require.NoError(t, h.Promotion(context.Background(), s3Event("landing", "carts/today.csv")))

	assert.Equal(t, "customer_id,product_id,product_amount\n1,5,7\n1,7,2\n2,7,9\n2,1,1\n", body)
}

func TestAggregate_DefaultsToInputBucket(t *testing.T) {
	client := mocks.NewMockS3Client(t)
	expectCart(client, "in", generator.CartFile)
	var body string
	captureUpload(client, "out", AggregatedFile, &body)

	h := New(client, buckets(), nil, 0, nil)
	require.NoError(t, h.Aggregate(context.Background(), events.S3Event{}))

	assert.Equal(t, "product_id,abandoned_amount\n7,11\n5,7\n1,1\n", body)
}

func TestLargest(t *testing.T) {
	got := largest([]productTotal{{3, 1}, {1, 5}, {2, 5}, {4, 0}}, 3)
	assert.Equal(t, []productTotal{{1, 5}, {2, 5}, {3, 1}}, got)
}

func voteRecord(id, name string, image map[string]events.DynamoDBAttributeValue) events.DynamoDBEventRecord {
	return events.DynamoDBEventRecord{
		EventID:   id,
		EventName: name,
		Change:    events.DynamoDBStreamRecord{NewImage: image},
	}
}

func TestVotes(t *testing.T) {
	db := mocks.NewMockDynamoDBClient(t)
	db.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
		imp := in.Key["improvement"].(*types.AttributeValueMemberS)
		reg := in.Key["region"].(*types.AttributeValueMemberS)
		return *in.TableName == "total_votes" && imp.Value == "faster checkout" && reg.Value == "emea" &&
			strings.HasPrefix(*in.UpdateExpression, "ADD ")
	})).Return(&dynamodb.UpdateItemOutput{}, nil).Once()
	db.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, errors.New("throttled")).Once()

	ballot := map[string]events.DynamoDBAttributeValue{
		"improvement": events.NewStringAttribute("faster checkout"),
		"region":      events.NewStringAttribute("emea"),
	}
	e := events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{
		voteRecord("1", "INSERT", ballot),
		voteRecord("1", "INSERT", ballot),
		voteRecord("2", "REMOVE", ballot),
		voteRecord("3", "MODIFY", map[string]events.DynamoDBAttributeValue{
			"improvement": events.NewNumberAttribute("1"),
			"region":      events.NewStringAttribute("emea"),
		}),
		voteRecord("4", "MODIFY", ballot),
	}}

	v := NewVotes(db, "total_votes", common.NewOnce(cache.NewMemoryGuard(time.Minute), nil), nil)
	res, err := v.Handle(context.Background(), e)
	require.NoError(t, err)
	assert.Equal(t, "Successfully processed 5 records.", res.Message)
	require.Len(t, res.BatchItemFailures, 1)
	assert.Equal(t, "4", res.BatchItemFailures[0].ItemIdentifier)
}
