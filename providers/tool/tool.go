// Package tool provides the typed tool framework the agent dispatches
// against: a generic Tool bound to a Go function, a provider-agnostic
// interface for dispatch, and a Catalog for registration and lookup.
package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/procurea/scdra/core/parse"
	"github.com/procurea/scdra/internal/jsonschema"
	"github.com/procurea/scdra/providers/ai"
)

// SideEffectClass partitions tools by the consequences of invoking them.
type SideEffectClass string

const (
	// SideEffectInformational marks read-only tools that can be invoked
	// freely: their results describe the world without changing it.
	SideEffectInformational SideEffectClass = "informational"

	// SideEffectWorldChanging marks tools whose effect is irreversible or
	// external (notification dispatch, order modification). The executor
	// refuses to invoke them unless the run's approval gate passes.
	SideEffectWorldChanging SideEffectClass = "world-changing"
)

// Tool represents a typed, callable tool that can be advertised to a model.
// It binds a name and description to a strongly-typed Go function, and
// automatically derives a JSON schema for the input type I via reflection.
// Use [New] to construct a Tool; dispatch through [GenericTool].
type Tool[I, O any] struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
	Effect      SideEffectClass
	Function    func(ctx context.Context, input I) (O, error)
}

// GenericTool is the provider-agnostic interface for all tools. It abstracts
// over the concrete generic type parameters of [Tool] so tools can be stored,
// dispatched and introspected without knowing their exact input/output types.
type GenericTool interface {
	// ToolInfo returns the metadata (name, description, parameter schema)
	// used to advertise this tool to a model.
	ToolInfo() ai.ToolDescription

	// Call invokes the tool with a JSON-encoded input string and returns a
	// JSON-encoded output string. Returns an error if parsing or execution
	// fails.
	Call(ctx context.Context, inputJson string) (string, error)

	// SideEffect reports whether invoking this tool changes the world.
	SideEffect() SideEffectClass
}

// funcToolOptions holds optional configuration for a tool created via [New].
type funcToolOptions struct {
	Description string
	Effect      SideEffectClass
}

// WithDescription sets a human-readable description for the tool. Providers
// surface the description to the model to help it decide when and how to
// invoke the tool.
func WithDescription(description string) func(*funcToolOptions) {
	return func(o *funcToolOptions) {
		o.Description = description
	}
}

// WithSideEffect declares the tool's side-effect class. Tools default to
// [SideEffectInformational].
func WithSideEffect(effect SideEffectClass) func(*funcToolOptions) {
	return func(o *funcToolOptions) {
		o.Effect = effect
	}
}

// New constructs a [Tool] with the given name and handler function. The JSON
// schema for the input type I is derived via reflection from its json and
// jsonschema struct tags.
//
// Example:
//
//	pricing := tool.New("get_supplier_pricing", pricingFunc,
//	    tool.WithDescription("Fetch current pricing and lead time from a supplier."),
//	)
func New[I, O any](name string, function func(ctx context.Context, input I) (O, error), options ...func(*funcToolOptions)) *Tool[I, O] {
	toolOptions := &funcToolOptions{
		Effect: SideEffectInformational,
	}
	for _, option := range options {
		option(toolOptions)
	}

	parameters, err := jsonschema.GenerateJSONSchema[I]()
	if err != nil {
		// Schema generation only fails on malformed struct tags, which is a
		// programming error caught the first time the tool is registered.
		panic(fmt.Sprintf("tool %q: cannot derive input schema: %v", name, err))
	}

	return &Tool[I, O]{
		Name:        name,
		Description: toolOptions.Description,
		Parameters:  parameters,
		Effect:      toolOptions.Effect,
		Function:    function,
	}
}

// ToolInfo returns the [ai.ToolDescription] used to advertise this tool.
func (t *Tool[I, O]) ToolInfo() ai.ToolDescription {
	return ai.ToolDescription{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
	}
}

// SideEffect reports the tool's declared side-effect class.
func (t *Tool[I, O]) SideEffect() SideEffectClass {
	return t.Effect
}

// Call invokes the tool's underlying function with the given JSON-encoded
// input. It leniently deserializes inputJson into the input type I, executes
// the function, and returns the result serialized as JSON. Returns an error
// if JSON parsing, function execution, or output marshaling fails.
func (t *Tool[I, O]) Call(ctx context.Context, inputJson string) (string, error) {
	parsedInput, err := parse.ParseStringAs[I](inputJson)
	if err != nil {
		return "", err
	}

	output, err := t.Function(ctx, parsedInput)
	if err != nil {
		return "", err
	}

	outputBytes, err := json.Marshal(output)
	if err != nil {
		return "", err
	}

	return string(outputBytes), nil
}
