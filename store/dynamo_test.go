package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/Yulian302/lfusys-services-requests/apperror"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupDynamo creates a throwaway table on localstack. Set LOCALSTACK_ENDPOINT
// (e.g. http://localhost:4566) to run.
func setupDynamo(t *testing.T) *DynamoDbRequestStoreImpl {
	endpoint := os.Getenv("LOCALSTACK_ENDPOINT")
	if endpoint == "" {
		t.Skip("LOCALSTACK_ENDPOINT not set")
	}
	ctx := context.Background()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-1"))
	require.NoError(t, err)

	db := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	table := "requests-" + uuid.NewString()[:8]
	_, err = db.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []types.AttributeDefinition{
			{
				AttributeName: aws.String("request_id"),
				AttributeType: types.ScalarAttributeTypeS,
			},
		},
		KeySchema: []types.KeySchemaElement{
			{
				AttributeName: aws.String("request_id"),
				KeyType:       types.KeyTypeHash,
			},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	var exists *types.ResourceInUseException
	if err != nil && !errors.As(err, &exists) {
		require.NoError(t, err)
	}
	t.Cleanup(func() {
		db.DeleteTable(context.Background(), &dynamodb.DeleteTableInput{TableName: aws.String(table)})
	})

	return NewDynamoDbRequestStoreImpl(db, table)
}

func TestDynamoStore_Lifecycle(t *testing.T) {
	s := setupDynamo(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.IsReady(ctx))

	req := sampleRequest(s.GenerateID(), now)
	require.NoError(t, s.Insert(ctx, req))
	require.Error(t, s.Insert(ctx, req))

	got, err := s.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, req.Files, got.Files)

	next := got.WithChunk(0, 10, now.Add(time.Second))
	next.Version++
	require.NoError(t, s.Update(ctx, next))
	require.ErrorIs(t, s.Update(ctx, next), ErrVersionConflict)

	require.NoError(t, s.Delete(ctx, req.ID))
	require.ErrorIs(t, s.Delete(ctx, req.ID), apperror.ErrRequestDoesNotExist)

	_, err = s.Get(ctx, req.ID)
	require.ErrorIs(t, err, apperror.ErrRequestDoesNotExist)
}

func TestDynamoStore_DeleteExpired(t *testing.T) {
	s := setupDynamo(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	old := sampleRequest("old", base)
	claimed := sampleRequest("claimed", base).WithProcessing(base)
	fresh := sampleRequest("fresh", base.Add(48*time.Hour))
	require.NoError(t, s.Insert(ctx, old))
	require.NoError(t, s.Insert(ctx, claimed))
	require.NoError(t, s.Insert(ctx, fresh))

	deleted, err := s.DeleteExpired(ctx, base.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, "old", deleted[0].ID)
}
