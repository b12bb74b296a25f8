// Package script executes addon-provided Tengo files: class files resolved by
// the autoload registry and the optional "config"/"bootstrap" specials.
package script

import (
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Common script errors.
var (
	// ErrScriptExecution is returned when a script fails to compile or run.
	ErrScriptExecution = fmt.Errorf("error executing script")

	// ErrScriptFailed is returned when a script ran but reported an error
	// through its "err" variable.
	ErrScriptFailed = fmt.Errorf("script error")
)

// Runner compiles and runs Tengo scripts with a fixed set of stdlib modules.
type Runner struct {
	modules []string
}

// NewRunner creates a script runner exposing the default stdlib modules.
func NewRunner() *Runner {
	return &Runner{modules: []string{"fmt", "os", "strings", "times", "text", "json"}}
}

// RunFile reads and runs the script at path with the given variables bound.
func (r *Runner) RunFile(path string, vars map[string]interface{}) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read script %s: %w", path, err)
	}
	return r.Run(content, vars)
}

// Run executes the given script source with the given variables bound. A
// non-empty "err" variable left by the script is surfaced as ErrScriptFailed.
func (r *Runner) Run(src []byte, vars map[string]interface{}) error {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(r.modules...))

	for k, v := range vars {
		if err := script.Add(k, v); err != nil {
			return fmt.Errorf("failed to add variable '%s' to script: %w", k, err)
		}
	}

	compiled, err := script.Run()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScriptExecution, err)
	}

	errVar := compiled.Get("err")
	if errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return fmt.Errorf("%w: %w", ErrScriptFailed, v)
		case string:
			if v != "" {
				return fmt.Errorf("%w: %s", ErrScriptFailed, v)
			}
		}
	}

	return nil
}
