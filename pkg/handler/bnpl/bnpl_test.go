package bnpl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amirasaad/finlabs/internal/fixtures/mocks"
	"github.com/amirasaad/finlabs/pkg/config"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func creditAPI(t *testing.T, scores map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		score, ok := scores[r.URL.Path[1:]]
		if !ok {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"score":` + score + `}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func request(id string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{PathParameters: map[string]string{"customer_id": id}}
}

func message(t *testing.T, res events.APIGatewayProxyResponse) string {
	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(res.Body), &body))
	return body["message"]
}

func TestHandle(t *testing.T) {
	srv := creditAPI(t, map[string]string{"good": "720", "poor": `"410"`})
	db := mocks.NewMockDynamoDBClient(t)
	db.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		v, ok := in.ExpressionAttributeValues[":0"].(*types.AttributeValueMemberS)
		return *in.TableName == "bnpl-plans" && ok && v.Value == "null" && *in.FilterExpression == "#0 = :0"
	})).Return(&dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{{
		"plan_id":      &types.AttributeValueMemberS{Value: "p3"},
		"installments": &types.AttributeValueMemberN{Value: "3"},
		"end_date":     &types.AttributeValueMemberS{Value: "null"},
	}}}, nil).Once()

	h := New(db, resty.New(), "bnpl-plans", config.Credit{Endpoint: srv.URL, MinScore: 500}, nil)
	ctx := context.Background()

	res, err := h.Handle(ctx, request("good"))
	require.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode)
	assert.Equal(t, "*", res.Headers["Access-Control-Allow-Origin"])
	var plans []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Body), &plans))
	require.Len(t, plans, 1)
	assert.Equal(t, "p3", plans[0]["plan_id"])

	res, err = h.Handle(ctx, request("poor"))
	require.NoError(t, err)
	assert.Equal(t, MsgInsufficientScore, message(t, res))

	res, err = h.Handle(ctx, request("unknown"))
	require.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode)
	assert.Equal(t, MsgScoreUnavailable, message(t, res))
}

func TestHandle_Errors(t *testing.T) {
	_, err := New(nil, resty.New(), "", config.Credit{}, nil).Handle(context.Background(), request("x"))
	assert.ErrorIs(t, err, common.ErrMissingSetting)

	h := New(nil, resty.New(), "bnpl-plans", config.Credit{Endpoint: "http://unused", MinScore: 500}, nil)
	res, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{})
	require.NoError(t, err)
	assert.Equal(t, 400, res.StatusCode)

	srv := creditAPI(t, map[string]string{"good": "800"})
	db := mocks.NewMockDynamoDBClient(t)
	db.On("Scan", mock.Anything, mock.Anything).Return(nil, errors.New("AccessDenied")).Once()
	h = New(db, resty.New(), "bnpl-plans", config.Credit{Endpoint: srv.URL, MinScore: 500}, nil)
	_, err = h.Handle(context.Background(), request("good"))
	assert.ErrorContains(t, err, "AccessDenied")
}
