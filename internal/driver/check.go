package driver

import (
	"context"
	"runtime"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"stcheck/internal/ast"
	"stcheck/internal/config"
	"stcheck/internal/diag"
	"stcheck/internal/lexer"
	"stcheck/internal/parser"
	"stcheck/internal/rules"
	"stcheck/internal/source"
	"stcheck/internal/token"
)

// Checker runs the tokenize -> parse -> evaluate -> collect pipeline. One
// Checker serves a whole run; it is safe for concurrent per-file use since
// engine and config are read-only.
type Checker struct {
	Config config.File
	Engine *rules.Engine
	Cache  *DiskCache // nil disables caching
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Path      string
	FileID    source.FileID
	Bag       *diag.Bag
	FromCache bool
}

// Result aggregates a run over many files. Files keeps input order; the
// ordering inside each Bag is positional and deterministic.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
}

// HasErrors reports whether any file produced an Error-severity diagnostic.
// This boolean is the exit-status contract.
func (r *Result) HasErrors() bool {
	for i := range r.Files {
		if r.Files[i].Bag.HasErrors() {
			return true
		}
	}
	return false
}

// TotalDiagnostics counts diagnostics across all files.
func (r *Result) TotalDiagnostics() int {
	n := 0
	for i := range r.Files {
		n += r.Files[i].Bag.Len()
	}
	return n
}

// CheckSource runs the full pipeline over one loaded file and returns its
// sorted, deduplicated diagnostics.
func (c *Checker) CheckSource(file *source.File) *diag.Bag {
	bag := diag.NewBag(c.Config.Check.MaxDiagnostics)
	// duplicates are dropped at the source so they never count against the
	// bag's limit; Dedup below still guards the sorted result
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	if !utf8.Valid(file.Content) {
		bag.Add(diag.NewError(diag.LexInvalidEncoding,
			source.Span{File: file.ID, Start: 0, End: 0},
			"file is not valid UTF-8"))
		return bag
	}

	toks, lx := lexer.Tokenize(file, lexer.Options{Reporter: rep})
	tree := parser.Parse(file, toks, parser.Options{
		MaxErrors: uint(c.Config.Check.MaxDiagnostics),
		Reporter:  rep,
	})
	c.Engine.Check(file, tree, lx.Indents(), rep)

	bag.Sort()
	bag.Dedup()
	return bag
}

// TokenizeFile runs only the lexer, for the tokenize subcommand.
func (c *Checker) TokenizeFile(file *source.File) ([]token.Token, *diag.Bag) {
	bag := diag.NewBag(c.Config.Check.MaxDiagnostics)
	toks, _ := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	bag.Sort()
	return toks, bag
}

// ParseFile runs lexer and parser without rule evaluation, for the parse
// subcommand.
func (c *Checker) ParseFile(file *source.File) (*ast.File, *diag.Bag) {
	bag := diag.NewBag(c.Config.Check.MaxDiagnostics)
	rep := diag.BagReporter{Bag: bag}
	toks, _ := lexer.Tokenize(file, lexer.Options{Reporter: rep})
	tree := parser.Parse(file, toks, parser.Options{
		MaxErrors: uint(c.Config.Check.MaxDiagnostics),
		Reporter:  rep,
	})
	bag.Sort()
	bag.Dedup()
	return tree, bag
}

// CheckPaths loads and checks every path, fanning files out to a worker
// pool. Files share no state, so the only coordination is the per-index
// result slot each worker owns. Cancellation stops dispatching new files;
// in-flight files run to completion.
func (c *Checker) CheckPaths(ctx context.Context, paths []string, jobs int) (*Result, error) {
	fileSet := source.NewFileSet()
	res := &Result{
		FileSet: fileSet,
		Files:   make([]FileResult, len(paths)),
	}

	// FileSet loading is serial: Add is not concurrent-safe and IDs must
	// follow input order.
	loaded := make([]*source.File, len(paths))
	for i, path := range paths {
		res.Files[i].Path = path
		// an input named twice (explicit file plus directory expansion) is
		// read once and checked under one FileID
		if f, ok := fileSet.GetByPath(path); ok {
			res.Files[i].FileID = f.ID
			loaded[i] = f
			continue
		}
		id, err := fileSet.Load(path)
		if err != nil {
			// register an empty stand-in so spans and renderers still
			// resolve the path
			id = fileSet.AddVirtual(path, nil)
			bag := diag.NewBag(c.Config.Check.MaxDiagnostics)
			bag.Add(diag.NewError(diag.IOLoadFileError,
				source.Span{File: id, Start: 0, End: 0},
				"cannot read "+path+": "+err.Error()))
			res.Files[i].FileID = id
			res.Files[i].Bag = bag
			continue
		}
		res.Files[i].FileID = id
		loaded[i] = fileSet.Get(id)
	}

	if jobs <= 0 {
		jobs = c.Config.Check.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	digest := c.Config.Digest()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(paths), 1)))

	for i := range paths {
		if loaded[i] == nil {
			continue
		}
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			file := loaded[i]
			key := cacheKey(file.Hash, digest)
			if bag, ok := c.cacheGet(key, file.ID, c.Config.Check.MaxDiagnostics); ok {
				res.Files[i].Bag = bag
				res.Files[i].FromCache = true
				return nil
			}

			bag := c.CheckSource(file)
			res.Files[i].Bag = bag
			c.cachePut(key, bag)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return res, err
	}

	for i := range res.Files {
		if res.Files[i].Bag == nil {
			res.Files[i].Bag = diag.NewBag(1)
		}
	}
	return res, nil
}
