package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/crystal-land-academy/api/internal/domain"
)

// ClassLevelRepo provides typed DynamoDB operations for the class_levels table.
// Class levels are owned by another subsystem; this API only reads them.
type ClassLevelRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewClassLevelRepo(client *dynamodb.Client, tableName string) *ClassLevelRepo {
	return &ClassLevelRepo{client: client, tableName: tableName}
}

func (r *ClassLevelRepo) Get(ctx context.Context, classLevelID string) (*domain.ClassLevel, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("class_level_id", classLevelID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("class level not found: %w", domain.ErrNotFound)
	}
	var cl domain.ClassLevel
	if err := attributevalue.UnmarshalMap(out.Item, &cl); err != nil {
		return nil, err
	}
	return &cl, nil
}
