package common

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// CORSHeaders are sent on every API Gateway response.
var CORSHeaders = map[string]string{
	"Content-Type":                "application/json",
	"Access-Control-Allow-Origin": "*",
}

// JSONResponse renders v as an API Gateway proxy response.
func JSONResponse(status int, v any) (events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	headers := make(map[string]string, len(CORSHeaders))
	for k, val := range CORSHeaders {
		headers[k] = val
	}
	return events.APIGatewayProxyResponse{StatusCode: status, Headers: headers, Body: string(body)}, nil
}

// ErrorResponse renders {"message": msg} with status.
func ErrorResponse(status int, msg string) (events.APIGatewayProxyResponse, error) {
	return JSONResponse(status, map[string]string{"message": msg})
}

// NotFound is the canned 404 answer.
func NotFound() (events.APIGatewayProxyResponse, error) {
	return ErrorResponse(http.StatusNotFound, http.StatusText(http.StatusNotFound))
}
