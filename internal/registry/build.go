package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/compilekit/internal/compiler"
	"github.com/vk/compilekit/internal/config"
	"github.com/vk/compilekit/internal/ctxlog"
	"github.com/vk/compilekit/internal/parser"
	"github.com/vk/compilekit/internal/task"
)

// TokenTypes turns token definitions into pattern parser types that compile
// to their matched text.
func TokenTypes(tokens []*config.Token) (parser.Types, error) {
	types := make(parser.Types, len(tokens))
	var errs []error
	for _, tok := range tokens {
		if _, dup := types[tok.Name]; dup {
			errs = append(errs, fmt.Errorf("token '%s' is defined more than once", tok.Name))
			continue
		}
		p, err := parser.Regexp(tok.Pattern)
		if err != nil {
			errs = append(errs, fmt.Errorf("token '%s': %w", tok.Name, err))
			continue
		}
		types[tok.Name] = &parser.Type{Name: tok.Name, Parser: p, Compile: parser.CompileText}
	}
	return types, errors.Join(errs...)
}

// Build assembles a compiler for the pipeline. Tokens shadow the base parser
// types. All definition problems are collected into one error.
func (r *Registry) Build(ctx context.Context, p *config.Pipeline, base parser.Provider, env Env, opts ...compiler.Option) (*compiler.Compiler, compiler.Options, error) {
	logger := ctxlog.FromContext(ctx)
	if p == nil {
		return nil, compiler.Options{}, errors.New("no pipeline defined")
	}

	tokens, err := TokenTypes(p.Tokens)
	if err != nil {
		return nil, compiler.Options{}, fmt.Errorf("pipeline '%s': %w", p.Name, err)
	}
	env.Types = parser.Chain{tokens, base}

	var errs []error
	entries := make([]*task.Entry, 0, len(p.Tasks))
	for i, def := range p.Tasks {
		entry, err := r.entry(def, env)
		if err != nil {
			errs = append(errs, fmt.Errorf("task #%d: %w", i, err))
			continue
		}
		logger.Debug("Pipeline entry built.", "index", i, "entry", entry.String())
		entries = append(entries, entry)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, compiler.Options{}, fmt.Errorf("pipeline '%s': %w", p.Name, err)
	}

	logger.Debug("Pipeline built.", "pipeline", p.Name, "tasks", len(entries), "tokens", len(tokens))
	return compiler.New(p.Name, entries, opts...), compiler.Options{Data: p.Data}, nil
}

func (r *Registry) entry(def *config.Task, env Env) (*task.Entry, error) {
	f, ok := r.Factory(def.Type)
	if !ok {
		return nil, fmt.Errorf("task '%s': unknown task type '%s'", def.Name, def.Type)
	}
	t, err := f(def, env)
	if err != nil {
		return nil, err
	}
	ins, err := bindings(def.Inputs)
	if err != nil {
		return nil, fmt.Errorf("task '%s' inputs: %w", def.Name, err)
	}
	outs, err := bindings(def.Outputs)
	if err != nil {
		return nil, fmt.Errorf("task '%s' outputs: %w", def.Name, err)
	}
	return task.NewEntry(t, ins, outs)
}

func bindings(specs []string) ([]task.Binding, error) {
	out := make([]task.Binding, len(specs))
	for i, s := range specs {
		b, err := task.ParseBinding(s)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}
