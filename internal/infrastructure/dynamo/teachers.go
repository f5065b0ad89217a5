package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/crystal-land-academy/api/internal/domain"
)

// TeacherRepo provides typed DynamoDB operations for the teachers table.
type TeacherRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewTeacherRepo(client *dynamodb.Client, tableName string) *TeacherRepo {
	return &TeacherRepo{client: client, tableName: tableName}
}

func (r *TeacherRepo) Get(ctx context.Context, teacherID string) (*domain.Teacher, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("teacher_id", teacherID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("teacher not found: %w", domain.ErrNotFound)
	}
	var t domain.Teacher
	if err := attributevalue.UnmarshalMap(out.Item, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetMany resolves each id with a point read, preserving input order.
// Missing ids are skipped rather than failing the whole lookup.
func (r *TeacherRepo) GetMany(ctx context.Context, teacherIDs []string) ([]domain.Teacher, error) {
	teachers := make([]domain.Teacher, 0, len(teacherIDs))
	for _, tid := range teacherIDs {
		t, err := r.Get(ctx, tid)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, err
		}
		teachers = append(teachers, *t)
	}
	return teachers, nil
}

func (r *TeacherRepo) Update(ctx context.Context, teacherID string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("teacher_id", teacherID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}
