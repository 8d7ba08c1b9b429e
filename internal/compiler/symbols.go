package compiler

import (
	"context"

	"cs2ts/internal/diag"
	"cs2ts/internal/options"
	"cs2ts/internal/symcache"
	"cs2ts/internal/symtab"
)

// buildSymbolTables builds the four tables for the whole document set.
// With a cache configured, a build without diagnostics is stored and an
// unchanged project loads it back instead of rebuilding. Documents
// without content bypass the cache.
func (c *Compiler) buildSymbolTables(ctx context.Context, set *DocumentSet, opts *options.CompilerOptions) diag.Result[*TranslationSet] {
	done := c.progress.track(StageSymbols)
	defer done()

	var diags []*diag.Diagnostic
	cacheFailed := func(err error) {
		diags = append(diags, diag.New(diag.PrjSymbolCacheFailed, nil, "symbol cache: %v", err))
	}

	cache := c.cfg.Cache
	if !symcache.Cacheable(set.Docs()) {
		cache = nil
	}
	key := symcache.Key(set.Docs(), opts)
	if cache != nil {
		tables, hit, err := cache.Get(key)
		if err != nil {
			cacheFailed(err)
		}
		if hit {
			return diag.NewResult(&TranslationSet{DocumentSet: set, Tables: tables}, diags...)
		}
	}

	res := symtab.Build(ctx, set.Units, opts, symtab.Config{Jobs: opts.Jobs, Strings: set.Project.Strings})
	diags = append(diags, res.Diagnostics...)
	if res.Cancelled {
		return diag.CancelledResult[*TranslationSet](diags...)
	}
	if res.Value == nil {
		return diag.Failed[*TranslationSet](diags...)
	}
	if cache != nil && len(res.Diagnostics) == 0 {
		if err := cache.Put(key, res.Value); err != nil {
			cacheFailed(err)
		}
	}
	return diag.NewResult(&TranslationSet{DocumentSet: set, Tables: res.Value}, diags...)
}
