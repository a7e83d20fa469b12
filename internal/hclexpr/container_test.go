package hclexpr_test

import (
	"sync"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/compilekit/internal/hclexpr"
)

// parseExpr is a test helper to quickly get an hcl.Expression from a string.
func parseExpr(t *testing.T, exprStr string) hcl.Expression {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(exprStr), "test.hcl", hcl.Pos{Line: 1, Column: 1})
	require.False(t, diags.HasErrors(), "Expression parsing failed: %s", diags.Error())
	return expr
}

func TestContainer_AddAndExtract(t *testing.T) {
	c := hclexpr.NewContainer()
	c.Add(
		parseExpr(t, `upper("hello")`),
		parseExpr(t, `var.foo.bar`),
		parseExpr(t, `lower(var.foo.baz)`),
		parseExpr(t, `var.foo.bar`), // duplicate reference
		nil,
	)

	require.Equal(t, []string{"lower", "upper"}, c.CalledFunctions())
	require.Equal(t, []string{"var.foo.bar", "var.foo.baz"}, c.ReferenceKeys())
}

func TestContainer_NestedFunctions(t *testing.T) {
	c := hclexpr.NewContainer()
	c.Add(parseExpr(t, `cond ? [for x in split(",", s) : trim(x)] : { "k" = join("-", l) }`))
	assert.Equal(t, []string{"join", "split", "trim"}, c.CalledFunctions())
	assert.Equal(t, []string{"cond", "l", "s"}, c.ReferenceKeys())
}

func TestContainer_AddAfterExtract(t *testing.T) {
	c := hclexpr.NewContainer()
	c.Add(parseExpr(t, `var.first`))
	require.Len(t, c.References(), 1)

	c.Add(parseExpr(t, `var.second`), parseExpr(t, `my_func()`))
	assert.Equal(t, []string{"my_func"}, c.CalledFunctions())
	assert.Equal(t, []string{"var.first", "var.second"}, c.ReferenceKeys())
}

func TestContainer_AddBody(t *testing.T) {
	file, diags := hclsyntax.ParseConfig([]byte("a = x + 1\nb = max(y, 2)\n"), "t.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors())

	c := hclexpr.NewContainer()
	require.False(t, c.AddBody(file.Body).HasErrors())
	assert.Equal(t, []string{"x", "y"}, c.ReferenceKeys())
	assert.Equal(t, []string{"max"}, c.CalledFunctions())
}

func TestContainer_ConcurrentReads(t *testing.T) {
	c := hclexpr.NewContainer()
	c.Add(parseExpr(t, `f(var.a) + var.b`))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, c.References(), 2)
			assert.Equal(t, []string{"f"}, c.CalledFunctions())
		}()
	}
	wg.Wait()
}

func TestFindUniqueBlock(t *testing.T) {
	file, diags := hclsyntax.ParseConfig([]byte("a {}\nb {}\nb {}\n"), "t.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors())
	content, _ := file.Body.Content(&hcl.BodySchema{Blocks: []hcl.BlockHeaderSchema{{Type: "a"}, {Type: "b"}}})

	block, diags := hclexpr.FindUniqueBlock(content.Blocks, "a")
	assert.NotNil(t, block)
	assert.False(t, diags.HasErrors())

	_, diags = hclexpr.FindUniqueBlock(content.Blocks, "b")
	assert.True(t, diags.HasErrors())

	block, diags = hclexpr.FindUniqueBlock(content.Blocks, "c")
	assert.Nil(t, block)
	assert.Empty(t, diags)
}
