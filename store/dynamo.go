package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Yulian302/lfusys-services-requests/apperror"
	"github.com/Yulian302/lfusys-services-requests/models"
	"github.com/Yulian302/lfusys-services-requests/retries"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// modified_at mirrors Request.Modified as unix nanos so the expiry scan can
// compare numerically.
const modifiedAtAttr = "modified_at"

type DynamoDbRequestStoreImpl struct {
	client    *dynamodb.Client
	tableName string
}

func NewDynamoDbRequestStoreImpl(client *dynamodb.Client, tableName string) *DynamoDbRequestStoreImpl {
	return &DynamoDbRequestStoreImpl{
		client:    client,
		tableName: tableName,
	}
}

func (s *DynamoDbRequestStoreImpl) IsReady(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	return retries.Retry(
		ctx,
		retries.HealthAttempts,
		retries.HealthBaseDelay,
		func() error {
			_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
				TableName: aws.String(s.tableName),
			})

			return err
		},
		retries.IsRetriableDbError,
	)
}

func (s *DynamoDbRequestStoreImpl) Name() string {
	return "RequestStore[dynamodb]"
}

func (s *DynamoDbRequestStoreImpl) GenerateID() string {
	return uuid.NewString()
}

// WithTransaction runs fn directly. Every write is conditional on the item
// version, which gives the same lost-update protection per document.
func (s *DynamoDbRequestStoreImpl) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func requestKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"request_id": &types.AttributeValueMemberS{Value: id},
	}
}

func marshalRequest(req models.Request) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(req)
	if err != nil {
		return nil, err
	}
	item[modifiedAtAttr] = &types.AttributeValueMemberN{Value: strconv.FormatInt(req.Modified.UnixNano(), 10)}
	return item, nil
}

func (s *DynamoDbRequestStoreImpl) Get(ctx context.Context, id string) (*models.Request, error) {
	var req models.Request

	err := retries.Retry(
		ctx,
		retries.DefaultAttempts,
		retries.DefaultBaseDelay,
		func() error {
			out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
				TableName:      aws.String(s.tableName),
				Key:            requestKey(id),
				ConsistentRead: aws.Bool(true),
			})
			if err != nil {
				return err
			}

			if out.Item == nil {
				return apperror.ErrRequestDoesNotExist.WithContext("requestId", id)
			}

			return attributevalue.UnmarshalMap(out.Item, &req)
		},
		retries.IsRetriableDbError,
	)

	if err != nil {
		return nil, err
	}

	return &req, nil
}

func (s *DynamoDbRequestStoreImpl) Insert(ctx context.Context, req models.Request) error {
	item, err := marshalRequest(req)
	if err != nil {
		return err
	}

	return retries.Retry(
		ctx,
		retries.DefaultAttempts,
		retries.DefaultBaseDelay,
		func() error {
			_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
				TableName:           aws.String(s.tableName),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(request_id)"),
			})
			return err
		},
		retries.IsRetriableDbError,
	)
}

func (s *DynamoDbRequestStoreImpl) Update(ctx context.Context, req models.Request) error {
	item, err := marshalRequest(req)
	if err != nil {
		return err
	}

	err = retries.Retry(
		ctx,
		retries.DefaultAttempts,
		retries.DefaultBaseDelay,
		func() error {
			_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
				TableName:           aws.String(s.tableName),
				Item:                item,
				ConditionExpression: aws.String("version = :prev"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":prev": &types.AttributeValueMemberN{Value: strconv.FormatInt(req.Version-1, 10)},
				},
				ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
			})
			return err
		},
		retries.IsRetriableDbError,
	)

	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		if ccf.Item == nil {
			return apperror.ErrRequestDoesNotExist.WithContext("requestId", req.ID)
		}
		return ErrVersionConflict
	}
	return err
}

func (s *DynamoDbRequestStoreImpl) Delete(ctx context.Context, id string) error {
	err := retries.Retry(
		ctx,
		retries.DefaultAttempts,
		retries.DefaultBaseDelay,
		func() error {
			_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
				TableName:           aws.String(s.tableName),
				Key:                 requestKey(id),
				ConditionExpression: aws.String("attribute_exists(request_id)"),
			})
			return err
		},
		retries.IsRetriableDbError,
	)

	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return apperror.ErrRequestDoesNotExist.WithContext("requestId", id)
	}
	return err
}

// DeleteExpired scans for candidates and deletes each one with the same
// condition re-checked, so a Request touched in between is kept.
func (s *DynamoDbRequestStoreImpl) DeleteExpired(ctx context.Context, cutoff time.Time) ([]models.Request, error) {
	values := map[string]types.AttributeValue{
		":f":      &types.AttributeValueMemberBOOL{Value: false},
		":cutoff": &types.AttributeValueMemberN{Value: strconv.FormatInt(cutoff.UnixNano(), 10)},
	}
	names := map[string]string{"#m": modifiedAtAttr}
	condition := aws.String("processing = :f AND #m < :cutoff")

	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName:                 aws.String(s.tableName),
		FilterExpression:          condition,
		ProjectionExpression:      aws.String("request_id"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ConsistentRead:            aws.Bool(true),
	})

	var deleted []models.Request
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return deleted, err
		}

		for _, item := range page.Items {
			idAttr, ok := item["request_id"].(*types.AttributeValueMemberS)
			if !ok {
				continue
			}

			var old map[string]types.AttributeValue
			err := retries.Retry(
				ctx,
				retries.DefaultAttempts,
				retries.DefaultBaseDelay,
				func() error {
					out, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
						TableName:                 aws.String(s.tableName),
						Key:                       requestKey(idAttr.Value),
						ConditionExpression:       condition,
						ExpressionAttributeNames:  names,
						ExpressionAttributeValues: values,
						ReturnValues:              types.ReturnValueAllOld,
					})
					if err != nil {
						return err
					}
					old = out.Attributes
					return nil
				},
				retries.IsRetriableDbError,
			)

			var ccf *types.ConditionalCheckFailedException
			if errors.As(err, &ccf) {
				continue
			}
			if err != nil {
				return deleted, err
			}

			var req models.Request
			if err := attributevalue.UnmarshalMap(old, &req); err != nil {
				return deleted, err
			}
			deleted = append(deleted, req)
		}
	}

	return deleted, nil
}
