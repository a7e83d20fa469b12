package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// rootSchema picks pipeline blocks out of a file and ignores the rest.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "pipeline", LabelNames: []string{"name"}},
	},
}

// Pipeline is the body of a `pipeline` block.
type Pipeline struct {
	Data   hcl.Expression `hcl:"data,optional"`
	Tokens []*Token       `hcl:"token,block"`
	Tasks  []*Task        `hcl:"task,block"`
}

// Token represents a `token` block: a named pattern parser type.
type Token struct {
	Name    string `hcl:"name,label"`
	Pattern string `hcl:"pattern"`
}

// Task represents a `task` block, one pipeline entry.
type Task struct {
	Name    string   `hcl:"name,label"`
	Type    string   `hcl:"type"`
	Parser  string   `hcl:"parser,optional"`
	Inputs  []string `hcl:"inputs,optional"`
	Outputs []string `hcl:"outputs,optional"`

	// From is "code" (the default) or "parse_result" for compile tasks.
	From            string         `hcl:"from,optional"`
	SaveParseResult bool           `hcl:"save_parse_result,optional"`
	ResultType      hcl.Expression `hcl:"result_type,optional"`
	Options         hcl.Expression `hcl:"options,optional"`
}
