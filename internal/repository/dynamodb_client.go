package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"support-widget/internal/domain"
)

const (
	skPrefixMsg = "MSG#"
	skState     = "STATE#"
	ttlDuration = 30 * 24 * time.Hour // 30-day transcript TTL

	// DefaultStateTTL bounds how long an unanswered yes/no question stays armed.
	DefaultStateTTL = 30 * time.Minute
)

// dynamodbAPI is the minimal DynamoDB interface required by Client.
// Defined here for testability.
type dynamodbAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Client wraps a DynamoDB table holding conversation state and transcripts.
type Client struct {
	api       dynamodbAPI
	tableName string
	stateTTL  time.Duration
	now       func() time.Time
}

// New creates a new repository Client.
func New(api dynamodbAPI, tableName string, stateTTL time.Duration) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	if stateTTL <= 0 {
		stateTTL = DefaultStateTTL
	}
	return &Client{api: api, tableName: tableName, stateTTL: stateTTL, now: time.Now}, nil
}

// convPK returns the DynamoDB partition key for a conversation.
func convPK(conversationID string) string {
	return "CONV#" + conversationID
}

// msgSK returns the sort key for a transcript item.
func msgSK(ts time.Time) string {
	return skPrefixMsg + ts.UTC().Format(time.RFC3339Nano)
}

// ttlValue returns a Unix timestamp 30 days in the future.
func ttlValue() int64 {
	return time.Now().Add(ttlDuration).Unix()
}

func stateKey(conversationID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: convPK(conversationID)},
		"SK": &types.AttributeValueMemberS{Value: skState},
	}
}

// TakePending deletes the conversation's state item and reports whether it
// held an unexpired pending confirmation. DynamoDB TTL deletion is lazy, so the
// stored expiry is checked as well.
func (c *Client) TakePending(ctx context.Context, conversationID string) (bool, error) {
	out, err := c.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(c.tableName),
		Key:          stateKey(conversationID),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, fmt.Errorf("repository: TakePending delete item: %w", err)
	}
	if out == nil || len(out.Attributes) == 0 {
		return false, nil
	}

	expiry, err := int64Attr(out.Attributes, "ttl")
	if err != nil {
		return false, fmt.Errorf("repository: TakePending decode ttl: %w", err)
	}
	return c.now().Unix() < expiry, nil
}

// ArmPending writes the conversation's state item with a short TTL.
func (c *Client) ArmPending(ctx context.Context, conversationID string) error {
	now := c.now().UTC()
	_, err := c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item: map[string]types.AttributeValue{
			"PK":             &types.AttributeValueMemberS{Value: convPK(conversationID)},
			"SK":             &types.AttributeValueMemberS{Value: skState},
			"conversationId": &types.AttributeValueMemberS{Value: conversationID},
			"armedAt":        &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
			"ttl":            &types.AttributeValueMemberN{Value: strconv.FormatInt(now.Add(c.stateTTL).Unix(), 10)},
		},
	})
	if err != nil {
		return fmt.Errorf("repository: ArmPending: %w", err)
	}
	return nil
}

// WriteMessage persists a new transcript item.
func (c *Client) WriteMessage(ctx context.Context, msg domain.Message) error {
	if msg.PK == "" || msg.SK == "" {
		return errors.New("repository: WriteMessage: PK and SK are required")
	}

	_, err := c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(c.tableName),
		Item:                messageItem(msg),
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		return fmt.Errorf("repository: WriteMessage: %w", err)
	}
	return nil
}

// Record stores one answered turn in the conversation transcript.
func (c *Client) Record(ctx context.Context, turn domain.Turn) error {
	msg := NewMessage(domain.ConversationKey(turn.ClientID, turn.SessionID), turn.Question, turn.Kind.String())
	msg.Answer = turn.Answer
	if !turn.At.IsZero() {
		msg.SK = msgSK(turn.At)
	}
	if err := c.WriteMessage(ctx, msg); err != nil {
		return fmt.Errorf("repository: Record: %w", err)
	}
	return nil
}

// NewMessage constructs a Message with PK/SK/TTL set from conversationID and current time.
func NewMessage(conversationID, text, kind string) domain.Message {
	now := time.Now().UTC()
	return domain.Message{
		PK:             convPK(conversationID),
		SK:             msgSK(now),
		ConversationID: conversationID,
		Text:           text,
		Kind:           kind,
		TTL:            ttlValue(),
	}
}

func messageItem(msg domain.Message) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK":             &types.AttributeValueMemberS{Value: msg.PK},
		"SK":             &types.AttributeValueMemberS{Value: msg.SK},
		"conversationId": &types.AttributeValueMemberS{Value: msg.ConversationID},
		"text":           &types.AttributeValueMemberS{Value: msg.Text},
		"answer":         &types.AttributeValueMemberS{Value: msg.Answer},
		"kind":           &types.AttributeValueMemberS{Value: msg.Kind},
		"ttl":            &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", msg.TTL)},
	}
}

func int64Attr(item map[string]types.AttributeValue, key string) (int64, error) {
	v, ok := item[key]
	if !ok {
		return 0, fmt.Errorf("repository: missing attribute %q", key)
	}
	n, ok := v.(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("repository: attribute %q is not a number", key)
	}
	parsed, err := strconv.ParseInt(n.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("repository: parse attribute %q: %w", key, err)
	}
	return parsed, nil
}
