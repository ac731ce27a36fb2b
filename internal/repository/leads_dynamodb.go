package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"support-widget/internal/domain"
)

type putItemAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// LeadTable appends leads to a DynamoDB table keyed by lead id.
type LeadTable struct {
	api       putItemAPI
	tableName string
}

// NewLeadTable creates a LeadTable.
func NewLeadTable(api putItemAPI, tableName string) (*LeadTable, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &LeadTable{api: api, tableName: tableName}, nil
}

// Append writes lead once; an existing id is never overwritten.
func (t *LeadTable) Append(ctx context.Context, lead domain.Lead) error {
	if lead.ID == "" {
		return errors.New("repository: Append: lead id is required")
	}
	item, err := attributevalue.MarshalMap(lead)
	if err != nil {
		return fmt.Errorf("repository: Append marshal: %w", err)
	}
	_, err = t.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(t.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return fmt.Errorf("repository: Append: %w", err)
	}
	return nil
}
