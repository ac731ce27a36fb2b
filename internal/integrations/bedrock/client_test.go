package bedrock

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/stretchr/testify/require"
)

type fakeConverse struct {
	out  *bedrockruntime.ConverseOutput
	err  error
	last *bedrockruntime.ConverseInput
}

func (f *fakeConverse) Converse(_ context.Context, in *bedrockruntime.ConverseInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error) {
	f.last = in
	return f.out, f.err
}

func textOutput(parts ...string) *bedrockruntime.ConverseOutput {
	blocks := make([]brtypes.ContentBlock, 0, len(parts))
	for _, p := range parts {
		blocks = append(blocks, &brtypes.ContentBlockMemberText{Value: p})
	}
	return &bedrockruntime.ConverseOutput{
		Output: &brtypes.ConverseOutputMemberMessage{Value: brtypes.Message{
			Role:    brtypes.ConversationRoleAssistant,
			Content: blocks,
		}},
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, "model", 0)
	require.Error(t, err)
	_, err = New(&fakeConverse{}, " ", 0)
	require.Error(t, err)
}

func TestGenerate_HappyPath(t *testing.T) {
	api := &fakeConverse{out: textOutput("We open ", "at 8am.")}
	c, err := New(api, "anthropic.claude-3-haiku", 256)
	require.NoError(t, err)

	out, err := c.Generate(context.Background(), "When do you open?")
	require.NoError(t, err)
	require.Equal(t, "We open at 8am.", out)

	require.Equal(t, "anthropic.claude-3-haiku", *api.last.ModelId)
	require.Len(t, api.last.Messages, 1)
	require.Equal(t, brtypes.ConversationRoleUser, api.last.Messages[0].Role)
	require.Equal(t, int32(256), *api.last.InferenceConfig.MaxTokens)
}

func TestGenerate_NoInferenceConfigByDefault(t *testing.T) {
	api := &fakeConverse{out: textOutput("ok")}
	c, err := New(api, "m", 0)
	require.NoError(t, err)
	_, err = c.Generate(context.Background(), "hi")
	require.NoError(t, err)
	require.Nil(t, api.last.InferenceConfig)
}

func TestGenerate_Errors(t *testing.T) {
	c, err := New(&fakeConverse{err: errors.New("ThrottlingException")}, "m", 0)
	require.NoError(t, err)
	_, err = c.Generate(context.Background(), "hi")
	require.ErrorContains(t, err, "ThrottlingException")

	_, err = c.Generate(context.Background(), "  ")
	require.ErrorContains(t, err, "prompt")

	c, err = New(&fakeConverse{out: textOutput("  ")}, "m", 0)
	require.NoError(t, err)
	_, err = c.Generate(context.Background(), "hi")
	require.ErrorContains(t, err, "no text")

	c, err = New(&fakeConverse{out: &bedrockruntime.ConverseOutput{}}, "m", 0)
	require.NoError(t, err)
	_, err = c.Generate(context.Background(), "hi")
	require.ErrorContains(t, err, "message output")
}
