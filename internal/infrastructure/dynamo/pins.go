package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/crystal-land-academy/api/internal/domain"
)

// PinRepo provides typed DynamoDB operations for the pins table.
// The PIN value itself is the partition key, so uniqueness is enforced by
// the table and PutIfAbsent can insert atomically.
type PinRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPinRepo(client *dynamodb.Client, tableName string) *PinRepo {
	return &PinRepo{client: client, tableName: tableName}
}

// PutIfAbsent inserts the pin only when no record with the same value exists.
// A lost race returns domain.ErrConflict so the caller can retry with a new
// candidate instead of surfacing a generic failure.
func (r *PinRepo) PutIfAbsent(ctx context.Context, p *domain.Pin) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal pin: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(pin)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("pin already exists: %w", domain.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *PinRepo) Get(ctx context.Context, pin string) (*domain.Pin, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("pin", pin),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("pin not found: %w", domain.ErrNotFound)
	}
	var p domain.Pin
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Exists reports whether a record with this pin value is stored. Projects
// only the key attribute — the generation loop calls this per attempt.
func (r *PinRepo) Exists(ctx context.Context, pin string) (bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            aws.String(r.tableName),
		Key:                  strKey("pin", pin),
		ProjectionExpression: aws.String("pin"),
	})
	if err != nil {
		return false, err
	}
	return out.Item != nil, nil
}

// MarkUsed flips is_used and records the consumer. No endpoint calls this
// yet; verification deliberately leaves pins unconsumed.
func (r *PinRepo) MarkUsed(ctx context.Context, pin, usedBy string) error {
	ue, err := buildUpdateExpr(map[string]interface{}{"is_used": true, "used_by": usedBy})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("pin", pin),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}
