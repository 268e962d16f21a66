// Package testutil provides test doubles shared by the googleops packages.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	pkgexec "github.com/acidni/googleops/pkg/exec"
)

// MockCommandExecutor is a configurable stand-in for pkg/exec executors.
// Tests register responses per command pattern and inspect the recorded
// calls afterwards.
type MockCommandExecutor struct {
	mu sync.Mutex

	// Responses maps command patterns to their mock responses.
	// Key format: "command arg1 arg2" (space-separated command and args).
	Responses map[string]MockResponse

	// DefaultResponse is used when no matching pattern is found.
	DefaultResponse *MockResponse

	// RecordedCalls stores all calls made to Execute for verification.
	RecordedCalls []RecordedCall

	// StrictMode causes Execute to fail if no matching response is found.
	StrictMode bool
}

var _ pkgexec.CommandExecutor = (*MockCommandExecutor)(nil)

// MockResponse defines the output for a mocked command.
type MockResponse struct {
	Stdout []byte
	Stderr []byte
	Err    error
}

// RecordedCall stores one Execute invocation.
type RecordedCall struct {
	Command string
	Args    []string
	Context context.Context
}

// ExitError simulates a child process exiting non-zero. It satisfies the
// same ExitCode contract as *exec.ExitError, so pkg/exec.ExitCode extracts
// the status from it.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode returns the simulated status.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// NewMockCommandExecutor creates a mock executor with no responses.
func NewMockCommandExecutor() *MockCommandExecutor {
	return &MockCommandExecutor{
		Responses:     make(map[string]MockResponse),
		RecordedCalls: make([]RecordedCall, 0),
	}
}

// Execute records the call and returns the configured response.
func (m *MockCommandExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RecordedCalls = append(m.RecordedCalls, RecordedCall{
		Command: name,
		Args:    args,
		Context: ctx,
	})

	key := m.buildKey(name, args)

	if resp, ok := m.Responses[key]; ok {
		return resp.Stdout, resp.Stderr, resp.Err
	}

	for pattern, resp := range m.Responses {
		if m.matchesPattern(key, pattern) {
			return resp.Stdout, resp.Stderr, resp.Err
		}
	}

	if m.DefaultResponse != nil {
		return m.DefaultResponse.Stdout, m.DefaultResponse.Stderr, m.DefaultResponse.Err
	}

	if m.StrictMode {
		return nil, nil, fmt.Errorf("mock: no response configured for command: %s", key)
	}

	return []byte{}, []byte{}, nil
}

func (m *MockCommandExecutor) buildKey(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

// matchesPattern supports prefix matching, with "*" as a wildcard.
func (m *MockCommandExecutor) matchesPattern(key, pattern string) bool {
	if strings.Contains(pattern, "*") {
		return strings.HasPrefix(key, strings.Split(pattern, "*")[0])
	}
	return strings.HasPrefix(key, pattern)
}

// AddResponse registers a response for a command pattern.
func (m *MockCommandExecutor) AddResponse(commandPattern string, response MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[commandPattern] = response
}

// AddJSONResponse registers a successful response with JSON on stdout.
func (m *MockCommandExecutor) AddJSONResponse(commandPattern string, jsonData string) {
	m.AddResponse(commandPattern, MockResponse{
		Stdout: []byte(jsonData),
		Stderr: []byte{},
	})
}

// AddErrorResponse registers a failing response: errMsg on stderr and a
// simulated non-zero exit.
func (m *MockCommandExecutor) AddErrorResponse(commandPattern string, errMsg string, exitCode int) {
	m.AddResponse(commandPattern, MockResponse{
		Stdout: []byte{},
		Stderr: []byte(errMsg),
		Err:    &ExitError{Code: exitCode},
	})
}

// GetCalls returns the recorded calls for a command name.
func (m *MockCommandExecutor) GetCalls(commandName string) []RecordedCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matches []RecordedCall
	for _, call := range m.RecordedCalls {
		if call.Command == commandName {
			matches = append(matches, call)
		}
	}
	return matches
}

// CallCount returns how many times Execute ran.
func (m *MockCommandExecutor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.RecordedCalls)
}

// LastCall returns the most recent call, or nil when none were made.
func (m *MockCommandExecutor) LastCall() *RecordedCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.RecordedCalls) == 0 {
		return nil
	}
	call := m.RecordedCalls[len(m.RecordedCalls)-1]
	return &call
}

// Reset clears responses and recorded calls.
func (m *MockCommandExecutor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses = make(map[string]MockResponse)
	m.RecordedCalls = make([]RecordedCall, 0)
	m.DefaultResponse = nil
}

// AssertCalled verifies a command was called at least once.
func (m *MockCommandExecutor) AssertCalled(t interface{ Error(args ...interface{}) }, commandName string) bool {
	calls := m.GetCalls(commandName)
	if len(calls) == 0 {
		t.Error("expected command", commandName, "to be called, but it was not")
		return false
	}
	return true
}

// AssertNotCalled verifies a command was never called.
func (m *MockCommandExecutor) AssertNotCalled(t interface{ Error(args ...interface{}) }, commandName string) bool {
	calls := m.GetCalls(commandName)
	if len(calls) > 0 {
		t.Error("expected command", commandName, "to not be called, but it was called", len(calls), "times")
		return false
	}
	return true
}

// AssertCallCount verifies the exact number of calls for a command.
func (m *MockCommandExecutor) AssertCallCount(t interface{ Error(args ...interface{}) }, commandName string, expected int) bool {
	calls := m.GetCalls(commandName)
	if len(calls) != expected {
		t.Error("expected command", commandName, "to be called", expected, "times, but was called", len(calls), "times")
		return false
	}
	return true
}

// AdminScriptResponses provides canned GA4 admin script output.
type AdminScriptResponses struct{}

// Accounts returns a list-accounts payload.
func (AdminScriptResponses) Accounts() MockResponse {
	return MockResponse{
		Stdout: []byte(`[
			{"name": "accounts/100", "displayName": "Acidni", "regionCode": "US"},
			{"name": "accounts/200", "displayName": "Acidni EU", "regionCode": "DE"}
		]`),
	}
}

// Properties returns a list-properties payload.
func (AdminScriptResponses) Properties() MockResponse {
	return MockResponse{
		Stdout: []byte(`[
			{"name": "properties/1001", "displayName": "Terprint Web", "parent": "accounts/100", "timeZone": "America/New_York", "currencyCode": "USD"},
			{"name": "properties/1002", "displayName": "Terprint App", "parent": "accounts/100", "timeZone": "America/New_York", "currencyCode": "USD"}
		]`),
	}
}

// Property returns a get-property payload.
func (AdminScriptResponses) Property(id, displayName string) MockResponse {
	return MockResponse{
		Stdout: []byte(fmt.Sprintf(`{
			"name": "properties/%s",
			"displayName": "%s",
			"parent": "accounts/100",
			"timeZone": "America/New_York",
			"currencyCode": "USD",
			"industryCategory": "TECHNOLOGY"
		}`, id, displayName)),
	}
}

// PropertyWithStream returns a create-property --url payload, including the
// auto-provisioned web stream.
func (AdminScriptResponses) PropertyWithStream(id, displayName, measurementID, uri string) MockResponse {
	return MockResponse{
		Stdout: []byte(fmt.Sprintf(`{
			"name": "properties/%s",
			"displayName": "%s",
			"parent": "accounts/100",
			"stream": {
				"name": "properties/%s/dataStreams/42",
				"measurementId": "%s",
				"defaultUri": "%s"
			}
		}`, id, displayName, id, measurementID, uri)),
	}
}

// Deleted returns a delete-property payload.
func (AdminScriptResponses) Deleted(id string) MockResponse {
	return MockResponse{
		Stdout: []byte(fmt.Sprintf(`{"deleted": "properties/%s"}`, id)),
	}
}

// Report returns a run-report payload.
func (AdminScriptResponses) Report(propertyID, startDate, endDate string) MockResponse {
	return MockResponse{
		Stdout: []byte(fmt.Sprintf(`{
			"property": "properties/%s",
			"dateRange": {"startDate": "%s", "endDate": "%s"},
			"rowCount": 2,
			"rows": [
				{"dimensions": [], "metrics": ["125", "98"]},
				{"dimensions": [], "metrics": ["80", "61"]}
			]
		}`, propertyID, startDate, endDate)),
	}
}

// ScriptError returns the script's stderr error shape with exit status 1.
func (AdminScriptResponses) ScriptError(message string) MockResponse {
	return MockResponse{
		Stdout: []byte{},
		Stderr: []byte(fmt.Sprintf(`{"error": "%s"}`, message)),
		Err:    &ExitError{Code: 1},
	}
}

// AzMockResponses provides canned Azure CLI output for the Key Vault
// secret commands.
type AzMockResponses struct{}

// SecretSet returns the az keyvault secret set success payload.
func (AzMockResponses) SecretSet(vault, name string) MockResponse {
	return MockResponse{
		Stdout: []byte(fmt.Sprintf(`{
			"id": "https://%s.vault.azure.net/secrets/%s/abc123",
			"name": "%s",
			"attributes": {"enabled": true}
		}`, vault, name, name)),
	}
}

// SecretShow returns the plain value emitted by --query value --output tsv.
func (AzMockResponses) SecretShow(value string) MockResponse {
	return MockResponse{
		Stdout: []byte(value + "\n"),
	}
}

// SecretNotFound returns az's SecretNotFound failure.
func (AzMockResponses) SecretNotFound(name string) MockResponse {
	return MockResponse{
		Stdout: []byte{},
		Stderr: []byte(fmt.Sprintf("ERROR: (SecretNotFound) A secret with (name/id) %s was not found in this key vault.", name)),
		Err:    &ExitError{Code: 3},
	}
}
