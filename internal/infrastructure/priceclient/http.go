package priceclient

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// getJSON performs a GET with fasthttp and decodes a 200 response body into out.
// The context deadline wins over the default timeout when both are set.
func getJSON(ctx context.Context, client *fasthttp.Client, timeout time.Duration, requestURL string, headers map[string]string, logger *zap.Logger, out any) error {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	logger.Debug("Requesting prices", zap.String("url", requestURL))

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = client.DoDeadline(req, resp, deadline)
	} else {
		err = client.DoTimeout(req, resp, timeout)
	}
	if err != nil {
		logger.Error("Failed to execute price request", zap.String("url", requestURL), zap.Error(err))
		return fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}

	rawBody := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		logger.Error("Price API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody))
		return fmt.Errorf("request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	if err := json.Unmarshal(rawBody, out); err != nil {
		logger.Error("Failed to unmarshal price response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err))
		return fmt.Errorf("failed to unmarshal response from %s: %w", requestURL, err)
	}
	return nil
}
