package tool

import (
	"sort"
	"strings"
	"sync"

	"github.com/procurea/scdra/providers/ai"
)

// Catalog manages the fixed registry of tools available to a run. Tools are
// registered once at construction and the catalog is treated as immutable
// afterwards; lookups are case-insensitive.
type Catalog struct {
	mu    sync.RWMutex
	tools map[string]GenericTool
}

// NewCatalog creates a new catalog pre-populated with the given tools.
// Tool names are taken from each tool's ToolInfo().Name; a later tool with
// the same name replaces an earlier one.
func NewCatalog(tools ...GenericTool) *Catalog {
	catalog := &Catalog{
		tools: make(map[string]GenericTool, len(tools)),
	}
	catalog.AddTools(tools...)
	return catalog
}

// AddTools registers tools in the catalog, keyed by lowercased name.
func (c *Catalog) AddTools(tools ...GenericTool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range tools {
		info := t.ToolInfo()
		c.tools[strings.ToLower(info.Name)] = t
	}
}

// Get retrieves a tool by name (case-insensitive).
// Returns the tool and true if found, nil and false otherwise.
func (c *Catalog) Get(name string) (GenericTool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, exists := c.tools[strings.ToLower(name)]
	return t, exists
}

// Has checks if a tool with the given name exists (case-insensitive).
func (c *Catalog) Has(name string) bool {
	_, exists := c.Get(name)
	return exists
}

// Size returns the number of tools in the catalog.
func (c *Catalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tools)
}

// Tools returns all registered tools sorted by name, so iteration order is
// deterministic across runs.
func (c *Catalog) Tools() []GenericTool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.tools))
	for name := range c.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]GenericTool, 0, len(names))
	for _, name := range names {
		out = append(out, c.tools[name])
	}
	return out
}

// Descriptions returns the tool descriptions advertised to the model,
// sorted by name.
func (c *Catalog) Descriptions() []ai.ToolDescription {
	tools := c.Tools()
	out := make([]ai.ToolDescription, 0, len(tools))
	for _, t := range tools {
		out = append(out, t.ToolInfo())
	}
	return out
}
