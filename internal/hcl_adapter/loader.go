package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/compilekit/internal/config"
	"github.com/vk/compilekit/internal/ctxlog"
	"github.com/vk/compilekit/internal/fsutil"
	"github.com/vk/compilekit/internal/hclexpr"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL pipeline loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Files returns every file parsed so far, keyed by filename, for rendering
// diagnostics with source snippets.
func (l *Loader) Files() map[string]*hcl.File {
	return l.parser.Files()
}

// Load reads the .hcl files at paths (files or directories) and returns the
// model of the single pipeline they define.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	var found *hcl.Block
	for _, file := range hclFiles {
		hclFile, diags := l.parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		content, _, diags := hclFile.Body.PartialContent(rootSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		block, diags := hclexpr.FindUniqueBlock(content.Blocks, "pipeline")
		if diags.HasErrors() {
			return nil, fmt.Errorf("in HCL file %s: %w", file, diags)
		}
		if block == nil {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("pipeline %q in %s: a pipeline is already defined at %s", block.Labels[0], file, found.DefRange)
		}
		found = block
	}

	if found == nil {
		return nil, fmt.Errorf("no pipeline block found in %v", paths)
	}

	var root Pipeline
	if diags := gohcl.DecodeBody(found.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode pipeline %q: %w", found.Labels[0], diags)
	}

	pipeline, err := translatePipeline(ctx, found.Labels[0], &root)
	if err != nil {
		return nil, err
	}

	logger.Debug("HCL loading complete.", "pipeline", pipeline.Name, "tokens", len(pipeline.Tokens), "tasks", len(pipeline.Tasks))
	return &config.Model{Pipeline: pipeline}, nil
}

// findAllHCLFiles expands paths into a flat, de-duplicated list of .hcl
// files. Missing paths are errors.
func findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}
		found, err := fsutil.FindFilesBySuffix(path, ".hcl", true)
		if err != nil {
			return nil, err
		}
		for _, rel := range found {
			add(filepath.Join(path, filepath.FromSlash(rel)))
		}
	}
	return allFiles, nil
}
