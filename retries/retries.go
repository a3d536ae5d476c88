package retries

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

const (
	DefaultAttempts  = 3
	DefaultBaseDelay = 50 * time.Millisecond

	HealthAttempts  = 2
	HealthBaseDelay = 100 * time.Millisecond
)

// Retry calls fn until it succeeds, returns a non-retriable error, or attempts
// run out. The delay doubles after every failed attempt.
func Retry(
	ctx context.Context,
	attempts int,
	baseDelay time.Duration,
	fn func() error,
	isRetriable func(error) bool,
) error {
	if attempts < 1 {
		attempts = 1
	}

	delay := baseDelay
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !isRetriable(err) || i == attempts-1 {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return err
}

func IsRetriableDbError(err error) bool {
	if err == nil {
		return false
	}

	var throughput *types.ProvisionedThroughputExceededException
	var limit *types.RequestLimitExceeded
	var internal *types.InternalServerError
	if errors.As(err, &throughput) || errors.As(err, &limit) || errors.As(err, &internal) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ThrottlingException", "ServiceUnavailable", "TransactionConflictException":
			return true
		}
	}

	return false
}
