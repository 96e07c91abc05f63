package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"stcheck/internal/diag"
	"stcheck/internal/rules"
)

// DefaultFileName is looked up in the working directory and its parents
// when no explicit --config is given.
const DefaultFileName = "stcheck.toml"

// File is the on-disk configuration shape.
type File struct {
	Check Check                 `toml:"check"`
	Rules map[string]RuleConfig `toml:"rules"`
}

// Check configures file discovery and run behavior.
type Check struct {
	Include        []string `toml:"include"`
	Exclude        []string `toml:"exclude"`
	Jobs           int      `toml:"jobs"`
	Cache          bool     `toml:"cache"`
	CacheDir       string   `toml:"cache-dir"`
	MaxDiagnostics int      `toml:"max-diagnostics"`
}

// RuleConfig overrides one rule. Enabled is a pointer so "absent" and
// "false" stay distinguishable.
type RuleConfig struct {
	Enabled  *bool  `toml:"enabled"`
	Severity string `toml:"severity"`
}

// Default returns the built-in configuration used when no file is found.
func Default() File {
	return File{
		Check: Check{
			Include:        []string{"**/*.{st,pou,TcPOU}"},
			Cache:          true,
			CacheDir:       ".stcheck",
			MaxDiagnostics: 1000,
		},
	}
}

// Load reads and validates a configuration file. Settings absent from the
// file keep their defaults.
func Load(path string) (File, error) {
	f := Default()
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return File{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return File{}, fmt.Errorf("load config %s: unknown key %q", path, undec[0].String())
	}
	if err := f.validate(); err != nil {
		return File{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return f, nil
}

// Find walks from dir upward looking for the default config file.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, DefaultFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func (f File) validate() error {
	if f.Check.Jobs < 0 {
		return fmt.Errorf("check.jobs must be >= 0, got %d", f.Check.Jobs)
	}
	if f.Check.MaxDiagnostics <= 0 {
		return fmt.Errorf("check.max-diagnostics must be > 0, got %d", f.Check.MaxDiagnostics)
	}
	for name, rc := range f.Rules {
		code, ok := diag.CodeByName(name)
		if !ok || !isRuleCode(code) {
			return fmt.Errorf("unknown rule %q", name)
		}
		if rc.Severity != "" {
			if _, err := diag.ParseSeverity(rc.Severity); err != nil {
				return fmt.Errorf("rule %q: %w", name, err)
			}
		}
	}
	return nil
}

func isRuleCode(code diag.Code) bool {
	return code >= 3000 && code < 4000
}

// Overrides converts the rule table into engine overrides. Validation has
// already run, so conversion cannot fail on a loaded File; the error path
// covers hand-built configs.
func (f File) Overrides() (map[diag.Code]rules.Override, error) {
	out := make(map[diag.Code]rules.Override, len(f.Rules))
	for name, rc := range f.Rules {
		code, ok := diag.CodeByName(name)
		if !ok || !isRuleCode(code) {
			return nil, fmt.Errorf("unknown rule %q", name)
		}
		ov := rules.Override{Enabled: rc.Enabled}
		if rc.Severity != "" {
			sev, err := diag.ParseSeverity(rc.Severity)
			if err != nil {
				return nil, fmt.Errorf("rule %q: %w", name, err)
			}
			ov.Severity = &sev
		}
		out[code] = ov
	}
	return out, nil
}

// Digest folds the settings that influence diagnostics into a string for
// cache keying: a config change must invalidate cached results.
func (f File) Digest() string {
	s := fmt.Sprintf("v1|max=%d", f.Check.MaxDiagnostics)
	names := make([]string, 0, len(f.Rules))
	for name := range f.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rc := f.Rules[name]
		enabled := "-"
		if rc.Enabled != nil {
			enabled = fmt.Sprintf("%t", *rc.Enabled)
		}
		s += fmt.Sprintf("|%s:%s:%s", name, enabled, rc.Severity)
	}
	return s
}
