package analytics_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acidni/googleops/internal/analytics"
	gopserrors "github.com/acidni/googleops/internal/errors"
	"github.com/acidni/googleops/tests/testutil"
)

// writeScript drops a placeholder admin script into a temp dir so client
// construction passes its existence check.
func writeScript(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "google-cli.py")
	require.NoError(t, os.WriteFile(path, []byte("# placeholder\n"), 0o755))
	return path
}

// newTestClient builds a client around a mock executor. The interpreter is
// sh because construction resolves it on PATH.
func newTestClient(t *testing.T, mock *testutil.MockCommandExecutor) (*analytics.Client, string) {
	t.Helper()

	script := writeScript(t)
	client, err := analytics.New(analytics.Options{
		ScriptPath:  script,
		Interpreter: "sh",
		Executor:    mock,
	})
	require.NoError(t, err)
	return client, script
}

func TestNewFailsFastOnMissingScript(t *testing.T) {
	t.Parallel()

	_, err := analytics.New(analytics.Options{
		ScriptPath:  filepath.Join(t.TempDir(), "missing.py"),
		Interpreter: "sh",
	})

	require.Error(t, err)
	var cfgErr gopserrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "cli.script", cfgErr.Field)
}

func TestNewRejectsDirectoryScript(t *testing.T) {
	t.Parallel()

	_, err := analytics.New(analytics.Options{
		ScriptPath:  t.TempDir(),
		Interpreter: "sh",
	})

	var cfgErr gopserrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Message, "directory")
}

func TestNewFailsFastOnMissingInterpreter(t *testing.T) {
	t.Parallel()

	_, err := analytics.New(analytics.Options{
		ScriptPath:  writeScript(t),
		Interpreter: "googleops-no-such-python",
	})

	var cfgErr gopserrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "cli.interpreter", cfgErr.Field)
}

func TestNewAppliesDefaults(t *testing.T) {
	t.Parallel()

	// Default script resolves relative to the working directory, so stage
	// one and point at it explicitly.
	script := writeScript(t)
	client, err := analytics.New(analytics.Options{ScriptPath: script, Interpreter: "sh"})
	require.NoError(t, err)

	assert.Equal(t, script, client.ScriptPath())
	assert.Equal(t, "sh", client.Interpreter())
}

func TestExecuteAssemblesBareInvocation(t *testing.T) {
	t.Parallel()

	mock := testutil.NewMockCommandExecutor()
	client, script := newTestClient(t, mock)

	_, err := client.Execute(context.Background(), "list-accounts", nil, nil)
	require.NoError(t, err)

	require.Equal(t, 1, mock.CallCount())
	call := mock.LastCall()
	assert.Equal(t, "sh", call.Command)
	assert.Equal(t, []string{script, "list-accounts"}, call.Args)
}

func TestExecuteAppendsPositionalsInOrder(t *testing.T) {
	t.Parallel()

	mock := testutil.NewMockCommandExecutor()
	client, script := newTestClient(t, mock)

	_, err := client.Execute(context.Background(), "create-stream",
		[]string{"1001", "Terprint Web", "https://terprint.ai"}, nil)
	require.NoError(t, err)

	call := mock.LastCall()
	assert.Equal(t, []string{script, "create-stream", "1001", "Terprint Web", "https://terprint.ai"}, call.Args)
}

func TestExecuteFlagHandling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		flags    []analytics.Flag
		wantTail []string
	}{
		{
			name:     "no flags appended when none set",
			flags:    nil,
			wantTail: nil,
		},
		{
			name:     "single flag is one name value pair",
			flags:    []analytics.Flag{{Name: "url", Value: "https://acme.test"}},
			wantTail: []string{"--url", "https://acme.test"},
		},
		{
			name: "flags keep caller order",
			flags: []analytics.Flag{
				{Name: "metrics", Value: "activeUsers"},
				{Name: "dimensions", Value: "country"},
			},
			wantTail: []string{"--metrics", "activeUsers", "--dimensions", "country"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := testutil.NewMockCommandExecutor()
			client, script := newTestClient(t, mock)

			_, err := client.Execute(context.Background(), "op", []string{"arg"}, tt.flags)
			require.NoError(t, err)

			want := append([]string{script, "op", "arg"}, tt.wantTail...)
			assert.Equal(t, want, mock.LastCall().Args)
		})
	}
}

func TestExecuteNonZeroExitIsAlwaysFailure(t *testing.T) {
	t.Parallel()

	t.Run("stderr text becomes the payload", func(t *testing.T) {
		t.Parallel()

		mock := testutil.NewMockCommandExecutor()
		client, _ := newTestClient(t, mock)
		mock.AddResponse("sh", testutil.MockResponse{
			Stdout: []byte(`{"partial": "output"}`),
			Stderr: []byte(`{"error": "403 insufficient permissions"}`),
			Err:    &testutil.ExitError{Code: 1},
		})

		_, err := client.Execute(context.Background(), "get-property", []string{"1001"}, nil)
		require.Error(t, err)

		var cmdErr gopserrors.CommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, "get-property", cmdErr.Command)
		assert.Equal(t, 1, cmdErr.ExitCode)
		assert.Equal(t, `{"error": "403 insufficient permissions"}`, cmdErr.Message)
	})

	t.Run("stdout is the fallback payload when stderr is empty", func(t *testing.T) {
		t.Parallel()

		mock := testutil.NewMockCommandExecutor()
		client, _ := newTestClient(t, mock)
		mock.AddResponse("sh", testutil.MockResponse{
			Stdout: []byte("usage: google-cli.py [-h] ..."),
			Stderr: []byte{},
			Err:    &testutil.ExitError{Code: 2},
		})

		_, err := client.Execute(context.Background(), "bogus-op", nil, nil)

		var cmdErr gopserrors.CommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, 2, cmdErr.ExitCode)
		assert.Equal(t, "usage: google-cli.py [-h] ...", cmdErr.Message)
	})
}

func TestExecuteDecodesSuccessOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stdout   string
		wantKind analytics.ResultKind
	}{
		{name: "empty stdout is an empty sequence", stdout: "", wantKind: analytics.KindEmpty},
		{name: "whitespace stdout is an empty sequence", stdout: " \n ", wantKind: analytics.KindEmpty},
		{name: "json object", stdout: `{"name": "properties/1"}`, wantKind: analytics.KindObject},
		{name: "json array", stdout: `[1, 2]`, wantKind: analytics.KindList},
		{name: "non-json falls back to text", stdout: "plain words", wantKind: analytics.KindText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := testutil.NewMockCommandExecutor()
			client, _ := newTestClient(t, mock)
			mock.AddResponse("sh", testutil.MockResponse{Stdout: []byte(tt.stdout)})

			result, err := client.Execute(context.Background(), "list-accounts", nil, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, result.Kind())
		})
	}
}

func TestExecuteAgainstRealProcess(t *testing.T) {
	t.Parallel()

	// A shell script standing in for the admin script: the operation name
	// arrives as $1, just like the real thing.
	script := filepath.Join(t.TempDir(), "fake-cli.sh")
	body := `#!/bin/sh
case "$1" in
  ok) printf '{"name": "properties/1", "args": "%s %s"}' "$2" "$3" ;;
  silent) ;;
  garbled) printf 'not json at all' ;;
  fail) printf '{"error": "boom"}\n' >&2; exit 3 ;;
esac
`
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))

	client, err := analytics.New(analytics.Options{ScriptPath: script, Interpreter: "sh"})
	require.NoError(t, err)

	t.Run("success decodes json", func(t *testing.T) {
		t.Parallel()

		result, err := client.Execute(context.Background(), "ok", []string{"a", "b"}, nil)
		require.NoError(t, err)

		obj, isObj := result.Object()
		require.True(t, isObj)
		assert.Equal(t, "properties/1", obj["name"])
		assert.Equal(t, "a b", obj["args"])
	})

	t.Run("no output is an empty sequence", func(t *testing.T) {
		t.Parallel()

		result, err := client.Execute(context.Background(), "silent", nil, nil)
		require.NoError(t, err)
		assert.True(t, result.IsEmpty())
	})

	t.Run("unparseable output passes through", func(t *testing.T) {
		t.Parallel()

		result, err := client.Execute(context.Background(), "garbled", nil, nil)
		require.NoError(t, err)

		text, isText := result.Text()
		require.True(t, isText)
		assert.Equal(t, "not json at all", text)
	})

	t.Run("nonzero exit carries stderr payload and code", func(t *testing.T) {
		t.Parallel()

		_, err := client.Execute(context.Background(), "fail", nil, nil)
		require.Error(t, err)

		var cmdErr gopserrors.CommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, 3, cmdErr.ExitCode)
		assert.Equal(t, `{"error": "boom"}`, cmdErr.Message)
	})
}

func TestExecuteHonorsConfiguredTimeout(t *testing.T) {
	t.Parallel()

	script := filepath.Join(t.TempDir(), "slow.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nsleep 5\n"), 0o755))

	client, err := analytics.New(analytics.Options{
		ScriptPath:  script,
		Interpreter: "sh",
		Timeout:     50 * time.Millisecond,
	})
	require.NoError(t, err)

	start := time.Now()
	_, err = client.Execute(context.Background(), "anything", nil, nil)

	require.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestDryShowsFullArgv(t *testing.T) {
	t.Parallel()

	mock := testutil.NewMockCommandExecutor()
	client, script := newTestClient(t, mock)

	argv := client.Dry("run-report", []string{"1001", "7daysAgo", "today"},
		[]analytics.Flag{{Name: "metrics", Value: "sessions"}})

	assert.Equal(t, []string{"sh", script, "run-report", "1001", "7daysAgo", "today", "--metrics", "sessions"}, argv)
	assert.Zero(t, mock.CallCount())
}
