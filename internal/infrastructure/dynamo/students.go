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

// StudentRepo provides typed DynamoDB operations for the students table.
type StudentRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewStudentRepo(client *dynamodb.Client, tableName string) *StudentRepo {
	return &StudentRepo{client: client, tableName: tableName}
}

func (r *StudentRepo) Get(ctx context.Context, studentID string) (*domain.Student, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("student_id", studentID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("student not found: %w", domain.ErrNotFound)
	}
	var s domain.Student
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListBySection queries the section GSI. Class and subclass narrowing
// happens in the service.
func (r *StudentRepo) ListBySection(ctx context.Context, section string) ([]domain.Student, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("section-index"),
		KeyConditionExpression: aws.String("#sec = :s"),
		// "section" is a DynamoDB reserved word.
		ExpressionAttributeNames: map[string]string{"#sec": "section"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":s": &types.AttributeValueMemberS{Value: section},
		},
	})
	if err != nil {
		return nil, err
	}
	var students []domain.Student
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// AppendComment pushes a comment onto the student's comment list, creating
// the list when absent.
func (r *StudentRepo) AppendComment(ctx context.Context, studentID string, c domain.StudentComment) error {
	av, err := attributevalue.Marshal([]domain.StudentComment{c})
	if err != nil {
		return fmt.Errorf("marshal comment: %w", err)
	}
	empty, err := attributevalue.Marshal([]domain.StudentComment{})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              strKey("student_id", studentID),
		UpdateExpression: aws.String("SET comments = list_append(if_not_exists(comments, :empty), :c)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c":     av,
			":empty": empty,
		},
		ConditionExpression: aws.String("attribute_exists(student_id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("student not found: %w", domain.ErrNotFound)
		}
		return err
	}
	return nil
}
