package compiler

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"cs2ts/internal/diag"
	"cs2ts/internal/frontend/csharp"
	"cs2ts/internal/options"
	"cs2ts/internal/source"
)

// skipDirs are build output directories of C# projects.
var skipDirs = map[string]bool{"bin": true, "obj": true, "node_modules": true}

func (c *Compiler) openProject(ctx context.Context, req *ProjectRequest, _ *options.CompilerOptions) diag.Result[*Project] {
	done := c.progress.track(StageOpen)
	defer done()

	p := &Project{Root: req.Root, Service: req.Service, Strings: source.NewInterner()}
	var diags []*diag.Diagnostic
	if p.Service == nil {
		paths, err := findDocuments(req.Root)
		if err != nil {
			return diag.Failed[*Project](diag.New(diag.PrjReadFailed, nil, "cannot read project: %v", err))
		}
		p.Files = req.Files
		if p.Files == nil {
			p.Files = source.NewFileSet(req.Root)
		}
		for _, path := range paths {
			if ctx.Err() != nil {
				return diag.CancelledResult[*Project](diags...)
			}
			if _, err := p.Files.Load(path); err != nil {
				diags = append(diags, diag.New(diag.PrjReadFailed, nil, "cannot read document: %v", err))
			}
		}
		p.Service = csharp.New(p.Files, nil)
	}
	p.Documents = p.Service.Documents()
	for _, d := range p.Documents {
		c.progress.file(d.Path, StageOpen, StatusQueued, nil, 0)
	}
	if len(p.Documents) == 0 {
		root := req.Root
		if root == "" {
			root = "the project"
		}
		diags = append(diags, diag.New(diag.PrjNoDocuments, nil, "no C# documents found in %s", root))
	}
	return diag.NewResult(p, diags...)
}

// findDocuments lists the .cs files under root in lexical order, skipping
// hidden and build output directories.
func findDocuments(root string) ([]string, error) {
	if root == "" {
		root = "."
	}
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (skipDirs[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".cs") {
			out = append(out, path)
		}
		return nil
	})
	return out, errors.Wrapf(err, "walk %s", root)
}

// DocumentPaths lists the documents Compile would read from root as
// slash paths relative to root.
func DocumentPaths(root string) ([]string, error) {
	paths, err := findDocuments(root)
	if err != nil {
		return nil, err
	}
	for i, p := range paths {
		paths[i] = source.RelativeTo(p, root)
	}
	return paths, nil
}
