package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/crystal-land-academy/api/internal/domain"
)

// AcademicYearRepo provides typed DynamoDB operations for the academic_years table.
type AcademicYearRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewAcademicYearRepo(client *dynamodb.Client, tableName string) *AcademicYearRepo {
	return &AcademicYearRepo{client: client, tableName: tableName}
}

// Scan returns every academic year. The table holds a handful of records, so
// a full scan is acceptable here.
func (r *AcademicYearRepo) Scan(ctx context.Context) ([]domain.AcademicYear, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var years []domain.AcademicYear
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &years); err != nil {
		return nil, err
	}
	return years, nil
}
