package hclexpr

import (
	"sync"

	"github.com/hashicorp/hcl/v2"
)

// Container is a thread-safe helper that gathers HCL expressions and provides
// analysis results, such as variable references and function calls.
type Container struct {
	mu          sync.RWMutex
	expressions []hcl.Expression

	analyzed        bool
	references      []hcl.Traversal
	calledFunctions []string
}

// NewContainer creates a new, empty expression container.
func NewContainer() *Container {
	return &Container{}
}

// Add adds expressions to the container. Nil expressions are ignored.
func (c *Container) Add(exprs ...hcl.Expression) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.analyzed = false
	for _, expr := range exprs {
		if expr != nil {
			c.expressions = append(c.expressions, expr)
		}
	}
}

// AddBody adds every attribute expression of body. Bodies with blocks only
// contribute what JustAttributes can see.
func (c *Container) AddBody(body hcl.Body) hcl.Diagnostics {
	attrs, diags := body.JustAttributes()
	for _, attr := range attrs {
		c.Add(attr.Expr)
	}
	return diags
}

func (c *Container) analyze() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.analyzed {
		return
	}
	c.references, c.calledFunctions = ReferencesAndFunctions(c.expressions...)
	c.analyzed = true
}

// References returns all unique variable traversals, sorted by TraversalKey.
func (c *Container) References() []hcl.Traversal {
	c.analyze()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.references
}

// ReferenceKeys returns References rendered with TraversalKey.
func (c *Container) ReferenceKeys() []string {
	refs := c.References()
	keys := make([]string, len(refs))
	for i, r := range refs {
		keys[i] = TraversalKey(r)
	}
	return keys
}

// CalledFunctions returns all unique function names, sorted.
func (c *Container) CalledFunctions() []string {
	c.analyze()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.calledFunctions
}
