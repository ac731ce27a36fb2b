package bedrock

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

// converseAPI is the part of *bedrockruntime.Client used here.
type converseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// Client generates replies with the Bedrock Converse API.
type Client struct {
	api       converseAPI
	modelID   string
	maxTokens int32
}

// New creates a Client for modelID. maxTokens <= 0 leaves the model default.
func New(api converseAPI, modelID string, maxTokens int32) (*Client, error) {
	if api == nil {
		return nil, errors.New("bedrock: api must not be nil")
	}
	modelID = strings.TrimSpace(modelID)
	if modelID == "" {
		return nil, errors.New("bedrock: model id is required")
	}
	return &Client{api: api, modelID: modelID, maxTokens: maxTokens}, nil
}

// Generate sends prompt as a single user turn.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("bedrock: prompt must not be empty")
	}

	in := &bedrockruntime.ConverseInput{
		ModelId: aws.String(c.modelID),
		Messages: []brtypes.Message{{
			Role:    brtypes.ConversationRoleUser,
			Content: []brtypes.ContentBlock{&brtypes.ContentBlockMemberText{Value: prompt}},
		}},
	}
	if c.maxTokens > 0 {
		in.InferenceConfig = &brtypes.InferenceConfiguration{MaxTokens: aws.Int32(c.maxTokens)}
	}

	out, err := c.api.Converse(ctx, in)
	if err != nil {
		return "", fmt.Errorf("bedrock: Generate: %w", err)
	}
	return outputText(out)
}

func outputText(out *bedrockruntime.ConverseOutput) (string, error) {
	if out == nil {
		return "", errors.New("bedrock: response is nil")
	}
	msgOut, ok := out.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return "", errors.New("bedrock: response did not include a message output")
	}

	var b strings.Builder
	for _, block := range msgOut.Value.Content {
		if text, ok := block.(*brtypes.ContentBlockMemberText); ok {
			b.WriteString(text.Value)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", errors.New("bedrock: response contained no text")
	}
	return b.String(), nil
}
