package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"stcheck/internal/config"
	"stcheck/internal/diag"
	"stcheck/internal/driver"
	"stcheck/internal/rules"
	"stcheck/internal/source"
)

func newChecker() *driver.Checker {
	return &driver.Checker{
		Config: config.Default(),
		Engine: rules.NewEngine(nil),
	}
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

const badClass = "CLASS cylinder\nEND_CLASS\n"
const goodClass = "CLASS Cylinder\nEND_CLASS\n"

func TestCheckSourceReportsRuleDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.st", []byte(badClass))
	bag := newChecker().CheckSource(fs.Get(id))

	if bag.Len() != 1 {
		t.Fatalf("diagnostics = %d, want 1: %v", bag.Len(), bag.Items())
	}
	if bag.Items()[0].Code != diag.RuleClassNaming {
		t.Fatalf("code = %s", bag.Items()[0].Code)
	}
	if bag.HasErrors() {
		t.Fatal("warning must not count as an error")
	}
}

func TestCheckSourceRejectsInvalidUTF8(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bin.st", []byte{0xff, 0xfe, 0x00})
	bag := newChecker().CheckSource(fs.Get(id))

	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.LexInvalidEncoding {
		t.Fatalf("diagnostics = %v", items)
	}
	if !bag.HasErrors() {
		t.Fatal("invalid encoding must be an error")
	}
}

func TestCheckSourceDeterministic(t *testing.T) {
	src := "CLASS cylinder\nVAR_INPUT\n\tenable : BOOL;\nEND_VAR\nEND_CLASS\n"
	var first []diag.Diagnostic
	for run := 0; run < 3; run++ {
		fs := source.NewFileSet()
		id := fs.AddVirtual("a.st", []byte(src))
		items := newChecker().CheckSource(fs.Get(id)).Items()
		if run == 0 {
			first = items
			continue
		}
		if len(items) != len(first) {
			t.Fatalf("run %d: %d diagnostics, want %d", run, len(items), len(first))
		}
		for i := range items {
			if items[i].Code != first[i].Code || items[i].Primary != first[i].Primary {
				t.Fatalf("run %d differs at %d: %v vs %v", run, i, items[i], first[i])
			}
		}
	}
}

func TestCheckPathsParallelMatchesSerial(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.st": badClass,
		"b.st": goodClass,
		"c.st": "INTERFACE Device\nEND_INTERFACE\n",
		"d.st": "FUNCTION_BLOCK FB_X\nMETHOD StopAndReset : BOOL\nEND_METHOD\nEND_FUNCTION_BLOCK\n",
	})
	paths, err := driver.Discover(root, []string{"**/*.st"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 4 {
		t.Fatalf("discovered %d files, want 4", len(paths))
	}

	serial, err := newChecker().CheckPaths(context.Background(), paths, 1)
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := newChecker().CheckPaths(context.Background(), paths, 8)
	if err != nil {
		t.Fatal(err)
	}

	for i := range serial.Files {
		s, p := serial.Files[i], parallel.Files[i]
		if s.Path != p.Path {
			t.Fatalf("path order differs at %d: %q vs %q", i, s.Path, p.Path)
		}
		if s.Bag.Len() != p.Bag.Len() {
			t.Fatalf("%s: %d vs %d diagnostics", s.Path, s.Bag.Len(), p.Bag.Len())
		}
		si, pi := s.Bag.Items(), p.Bag.Items()
		for j := range si {
			if si[j].Code != pi[j].Code || si[j].Message != pi[j].Message {
				t.Fatalf("%s: diagnostic %d differs", s.Path, j)
			}
		}
	}
}

func TestCheckPathsUnreadableFile(t *testing.T) {
	res, err := newChecker().CheckPaths(context.Background(),
		[]string{filepath.Join(t.TempDir(), "missing.st")}, 1)
	if err != nil {
		t.Fatal(err)
	}
	items := res.Files[0].Bag.Items()
	if len(items) != 1 || items[0].Code != diag.IOLoadFileError {
		t.Fatalf("diagnostics = %v", items)
	}
	if !res.HasErrors() {
		t.Fatal("unreadable input must fail the run")
	}
	// the stand-in file must resolve for renderers
	if res.FileSet.Get(res.Files[0].FileID) == nil {
		t.Fatal("stand-in file not registered")
	}
}

func TestCheckPathsUsesCache(t *testing.T) {
	root := writeTree(t, map[string]string{"a.st": badClass})
	cache, err := driver.OpenDiskCache(filepath.Join(root, ".stcheck"))
	if err != nil {
		t.Fatal(err)
	}
	c := newChecker()
	c.Cache = cache
	paths := []string{filepath.Join(root, "a.st")}

	cold, err := c.CheckPaths(context.Background(), paths, 1)
	if err != nil {
		t.Fatal(err)
	}
	if cold.Files[0].FromCache {
		t.Fatal("first run must not hit the cache")
	}

	warm, err := c.CheckPaths(context.Background(), paths, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !warm.Files[0].FromCache {
		t.Fatal("second run should hit the cache")
	}
	ci, wi := cold.Files[0].Bag.Items(), warm.Files[0].Bag.Items()
	if len(ci) != len(wi) {
		t.Fatalf("cached run differs: %d vs %d diagnostics", len(ci), len(wi))
	}
	for i := range ci {
		if ci[i].Code != wi[i].Code || ci[i].Message != wi[i].Message ||
			ci[i].Primary.Start != wi[i].Primary.Start {
			t.Fatalf("cached diagnostic %d differs: %v vs %v", i, ci[i], wi[i])
		}
	}
}

func TestCacheInvalidatedByConfigChange(t *testing.T) {
	root := writeTree(t, map[string]string{"a.st": badClass})
	cache, err := driver.OpenDiskCache(filepath.Join(root, ".stcheck"))
	if err != nil {
		t.Fatal(err)
	}
	paths := []string{filepath.Join(root, "a.st")}

	c1 := newChecker()
	c1.Cache = cache
	if _, err := c1.CheckPaths(context.Background(), paths, 1); err != nil {
		t.Fatal(err)
	}

	c2 := newChecker()
	c2.Cache = cache
	off := false
	c2.Config.Rules = map[string]config.RuleConfig{
		"ClassNaming": {Enabled: &off},
	}
	res, err := c2.CheckPaths(context.Background(), paths, 1)
	if err != nil {
		t.Fatal(err)
	}
	if res.Files[0].FromCache {
		t.Fatal("config change must invalidate the cache")
	}
}

func TestCheckPathsDuplicateInputSharesFile(t *testing.T) {
	root := writeTree(t, map[string]string{"a.st": badClass})
	path := filepath.Join(root, "a.st")

	res, err := newChecker().CheckPaths(context.Background(), []string{path, path}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if res.Files[0].FileID != res.Files[1].FileID {
		t.Fatalf("duplicate input got two FileIDs: %d and %d",
			res.Files[0].FileID, res.Files[1].FileID)
	}
	if res.FileSet.Len() != 1 {
		t.Fatalf("file set holds %d files, want 1", res.FileSet.Len())
	}
	if res.Files[0].Bag.Len() != res.Files[1].Bag.Len() {
		t.Fatalf("duplicate slots disagree: %d vs %d diagnostics",
			res.Files[0].Bag.Len(), res.Files[1].Bag.Len())
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := driver.OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := [32]byte{1}
	if err := cache.Put(key, []diag.Diagnostic{
		diag.NewWarning(diag.RuleClassNaming, source.Span{Start: 0, End: 1}, "x"),
	}); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Get(key, 0); !ok {
		t.Fatal("entry not written")
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Get(key, 0); ok {
		t.Fatal("entry survived DropAll")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := driver.OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := [32]byte{1, 2, 3}
	in := []diag.Diagnostic{
		diag.NewWarning(diag.RuleClassNaming,
			source.Span{File: 7, Start: 6, End: 14}, "class name 'cylinder' should be PascalCase"),
	}
	if err := cache.Put(key, in); err != nil {
		t.Fatal(err)
	}

	// spans rebind to the reader's file id
	out, ok := cache.Get(key, 3)
	if !ok || len(out) != 1 {
		t.Fatalf("Get = %v %t", out, ok)
	}
	got := out[0]
	if got.Code != diag.RuleClassNaming || got.Severity != diag.SevWarning {
		t.Errorf("code/severity = %s %s", got.Code, got.Severity)
	}
	if got.Primary.File != 3 || got.Primary.Start != 6 || got.Primary.End != 14 {
		t.Errorf("span = %v", got.Primary)
	}
	if got.Message != in[0].Message {
		t.Errorf("message = %q", got.Message)
	}

	if _, ok := cache.Get([32]byte{9}, 3); ok {
		t.Error("missing key should not resolve")
	}
}

func TestDiscoverIncludeExclude(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.st":             "",
		"sub/b.st":         "",
		"sub/deep/c.st":    "",
		"vendor/v.st":      "",
		"notes.txt":        "",
		"sub/readme.md":    "",
		"sub/deep/d.tmp":   "",
		"vendor/deep/e.st": "",
	})
	paths, err := driver.Discover(root, []string{"**/*.st"}, []string{"vendor/**"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(root, "a.st"),
		filepath.Join(root, "sub", "b.st"),
		filepath.Join(root, "sub", "deep", "c.st"),
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestExpandArgsMixesFilesAndDirs(t *testing.T) {
	root := writeTree(t, map[string]string{
		"single.st": "",
		"dir/a.st":  "",
		"dir/b.st":  "",
	})
	args := []string{
		filepath.Join(root, "single.st"),
		filepath.Join(root, "dir"),
	}
	paths, err := driver.ExpandArgs(args, []string{"**/*.st"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 3 {
		t.Fatalf("paths = %v", paths)
	}
	if paths[0] != args[0] {
		t.Errorf("explicit file not first: %v", paths)
	}
}
