// Package analytics wraps the external GA4 admin script. The Client turns a
// logical operation plus typed arguments into one child-process invocation,
// keeps stdout and stderr apart, and normalizes whatever comes back into a
// Result. All Google API logic (auth, pagination, request construction)
// lives in the script; this side only dispatches and decodes.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	gopserrors "github.com/acidni/googleops/internal/errors"
	"github.com/acidni/googleops/internal/logging"
	pkgexec "github.com/acidni/googleops/pkg/exec"
)

const (
	// DefaultScript is the conventional location of the GA4 admin script.
	DefaultScript = "google-cli.py"
	// DefaultInterpreter runs the script.
	DefaultInterpreter = "python3"
)

// Options configures a Client. Zero fields fall back to defaults.
type Options struct {
	// ScriptPath locates the admin script. Must exist at construction time.
	ScriptPath string
	// Interpreter is the binary the script runs under, either a bare name
	// resolved on PATH or an absolute path.
	Interpreter string
	// Executor runs the child process. Tests inject a mock here.
	Executor pkgexec.CommandExecutor
	// Logger receives debug traces of each invocation. Never writes to
	// stdout, which carries results only.
	Logger *logging.Logger
	// Timeout bounds each invocation when positive. The default of zero
	// imposes none; the script's own API deadlines are the only bound then.
	Timeout time.Duration
}

// Flag is one optional command-line flag. Flags keep the order the caller
// gave them; for run-report that means metrics stay ahead of dimensions.
type Flag struct {
	Name  string
	Value string
}

// Client dispatches operations to the admin script. Immutable after New;
// safe for concurrent use because every call spawns its own child process
// and shares nothing.
type Client struct {
	scriptPath  string
	interpreter string
	executor    pkgexec.CommandExecutor
	logger      *logging.Logger
	timeout     time.Duration
}

// New builds a Client and verifies its configuration. Both the script and
// the interpreter must resolve now, so a missing script fails here rather
// than on first use.
func New(opts Options) (*Client, error) {
	scriptPath := opts.ScriptPath
	if scriptPath == "" {
		scriptPath = DefaultScript
	}
	interpreter := opts.Interpreter
	if interpreter == "" {
		interpreter = DefaultInterpreter
	}

	info, err := os.Stat(scriptPath)
	if err != nil {
		return nil, gopserrors.ConfigError{
			Field:      "cli.script",
			Value:      scriptPath,
			Message:    "GA4 admin script not found",
			Suggestion: "Set cli.script (or --script) to the location of google-cli.py",
		}
	}
	if info.IsDir() {
		return nil, gopserrors.ConfigError{
			Field:   "cli.script",
			Value:   scriptPath,
			Message: "script path is a directory",
		}
	}

	if strings.ContainsRune(interpreter, os.PathSeparator) {
		if _, err := os.Stat(interpreter); err != nil {
			return nil, gopserrors.ConfigError{
				Field:      "cli.interpreter",
				Value:      interpreter,
				Message:    "interpreter not found",
				Suggestion: "Point cli.interpreter at an existing binary",
			}
		}
	} else if _, err := exec.LookPath(interpreter); err != nil {
		return nil, gopserrors.ConfigError{
			Field:      "cli.interpreter",
			Value:      interpreter,
			Message:    "interpreter not found in PATH",
			Suggestion: "Install Python 3 from https://python.org/ or set cli.interpreter",
		}
	}

	executor := opts.Executor
	if executor == nil {
		executor = pkgexec.DefaultExecutor()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.New(false, false)
	}

	return &Client{
		scriptPath:  scriptPath,
		interpreter: interpreter,
		executor:    executor,
		logger:      logger,
		timeout:     opts.Timeout,
	}, nil
}

// ScriptPath returns the configured script location.
func (c *Client) ScriptPath() string {
	return c.scriptPath
}

// Interpreter returns the configured interpreter.
func (c *Client) Interpreter() string {
	return c.interpreter
}

// Execute runs one operation against the admin script and decodes its
// output.
//
// The assembled command line is always
//
//	interpreter script operation positional... [--flag value]...
//
// with unset optionals omitted entirely. A non-zero exit is returned as a
// *gopserrors.CommandError whose Message is the child's stderr text when
// non-empty, else its stdout text. A zero exit decodes per Result: empty
// output is an empty sequence, JSON objects/arrays are structured data, and
// anything else falls back to raw text without error. Exactly one child
// process runs per call; nothing is retried.
func (c *Client) Execute(ctx context.Context, operation string, positional []string, flags []Flag) (Result, error) {
	args := make([]string, 0, 2+len(positional)+2*len(flags))
	args = append(args, c.scriptPath, operation)
	args = append(args, positional...)
	for _, flag := range flags {
		args = append(args, "--"+flag.Name, flag.Value)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.logger.Debug("running %s %s", c.interpreter, strings.Join(args, " "))

	stdout, stderr, err := c.executor.Execute(ctx, c.interpreter, args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return Result{}, gopserrors.WrapCommandNotFound(c.interpreter, err)
		}

		payload := strings.TrimSpace(string(stderr))
		if payload == "" {
			payload = strings.TrimSpace(string(stdout))
		}
		if payload == "" {
			payload = err.Error()
		}
		exitCode, _ := pkgexec.ExitCode(err)

		c.logger.Debug("operation %s failed with exit code %d", operation, exitCode)
		return Result{}, gopserrors.CommandError{
			Command:  operation,
			ExitCode: exitCode,
			Message:  payload,
		}
	}

	return decodeResult(stdout), nil
}

// Dry assembles the argv for an operation without running it. The doctor
// command uses this to show what would run.
func (c *Client) Dry(operation string, positional []string, flags []Flag) []string {
	argv := make([]string, 0, 3+len(positional)+2*len(flags))
	argv = append(argv, c.interpreter, c.scriptPath, operation)
	argv = append(argv, positional...)
	for _, flag := range flags {
		argv = append(argv, "--"+flag.Name, flag.Value)
	}
	return argv
}

// String describes the client without exposing anything sensitive.
func (c *Client) String() string {
	return fmt.Sprintf("analytics.Client(%s %s)", c.interpreter, c.scriptPath)
}
