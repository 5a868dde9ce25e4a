package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoInput struct {
	Text  string `json:"text" jsonschema:"description=Text to echo,minLength=1,required"`
	Count int    `json:"count,omitempty"`
}

type echoOutput struct {
	Echo string `json:"echo"`
}

func newEchoTool() *Tool[echoInput, echoOutput] {
	return New("echo",
		func(_ context.Context, in echoInput) (echoOutput, error) {
			return echoOutput{Echo: in.Text}, nil
		},
		WithDescription("Echo the input back."),
	)
}

func TestNewDerivesSchema(t *testing.T) {
	echo := newEchoTool()
	info := echo.ToolInfo()

	assert.Equal(t, "echo", info.Name)
	assert.Equal(t, "Echo the input back.", info.Description)
	require.NotNil(t, info.Parameters)
	assert.Equal(t, "object", info.Parameters.Type)
	assert.Contains(t, info.Parameters.Properties, "text")
	assert.Equal(t, []string{"text"}, info.Parameters.Required)
}

func TestToolDefaultsToInformational(t *testing.T) {
	echo := newEchoTool()
	assert.Equal(t, SideEffectInformational, echo.SideEffect())
}

func TestWithSideEffect(t *testing.T) {
	mutating := New("mutate",
		func(_ context.Context, in echoInput) (echoOutput, error) {
			return echoOutput{}, nil
		},
		WithSideEffect(SideEffectWorldChanging),
	)
	assert.Equal(t, SideEffectWorldChanging, mutating.SideEffect())
}

func TestCall(t *testing.T) {
	echo := newEchoTool()

	out, err := echo.Call(context.Background(), `{"text":"hi"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"echo":"hi"}`, out)
}

func TestCallRepairsArguments(t *testing.T) {
	echo := newEchoTool()

	out, err := echo.Call(context.Background(), `{text: 'hi'}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"echo":"hi"}`, out)
}

func TestCatalogLookupIsCaseInsensitive(t *testing.T) {
	catalog := NewCatalog(newEchoTool())

	got, ok := catalog.Get("ECHO")
	require.True(t, ok)
	assert.Equal(t, "echo", got.ToolInfo().Name)

	assert.True(t, catalog.Has("Echo"))
	assert.False(t, catalog.Has("missing"))
	assert.Equal(t, 1, catalog.Size())
}

func TestCatalogDescriptionsSorted(t *testing.T) {
	b := New("banana", func(_ context.Context, in echoInput) (echoOutput, error) { return echoOutput{}, nil })
	a := New("apple", func(_ context.Context, in echoInput) (echoOutput, error) { return echoOutput{}, nil })

	catalog := NewCatalog(b, a)
	descriptions := catalog.Descriptions()

	require.Len(t, descriptions, 2)
	assert.Equal(t, "apple", descriptions[0].Name)
	assert.Equal(t, "banana", descriptions[1].Name)
}
