// Package errors defines the typed errors surfaced by googleops. Each type
// carries an optional suggestion rendered alongside the message so CLI users
// get an actionable next step instead of a bare failure.
package errors

import (
	"fmt"
	"strings"
)

// UserError is a general error shown to the user with helpful context.
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError is raised for invalid or missing configuration, including the
// fail-fast construction checks (missing admin script, unresolvable
// interpreter). Never recovered from.
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// CommandError reports a child process that exited non-zero. Message holds
// the process's own words: its stderr text when it produced any, otherwise
// its stdout text, verbatim.
type CommandError struct {
	Command    string
	ExitCode   int
	Message    string
	Suggestion string
}

func (e CommandError) Error() string {
	msg := fmt.Sprintf("Command '%s' failed", e.Command)
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit code: %d)", e.ExitCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// StoreError reports a secret store failure with backend-specific context.
type StoreError struct {
	Store      string
	Op         string
	Secret     string
	Message    string
	Suggestion string
	Err        error
}

func (e StoreError) Error() string {
	msg := fmt.Sprintf("Secret store '%s' failed during %s", e.Store, e.Op)
	if e.Secret != "" {
		msg += fmt.Sprintf(" of '%s'", e.Secret)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

func (e StoreError) Unwrap() error {
	return e.Err
}

// WrapStoreError builds a StoreError around a backend failure, attaching a
// suggestion matched to the backend and the error text.
func WrapStoreError(store, op, secret string, err error) error {
	return StoreError{
		Store:      store,
		Op:         op,
		Secret:     secret,
		Suggestion: getStoreSuggestion(store, err),
		Err:        err,
	}
}

// getStoreSuggestion maps common backend failures to a next step.
func getStoreSuggestion(store string, err error) string {
	errStr := err.Error()

	switch store {
	case "azure.cli":
		if strings.Contains(errStr, "az login") || strings.Contains(errStr, "AADSTS") {
			return "Run 'az login' to authenticate with Azure"
		}
		if strings.Contains(errStr, "SecretNotFound") {
			return "Verify the secret name with 'az keyvault secret list --vault-name <vault>'"
		}
		if strings.Contains(errStr, "ForbiddenByPolicy") || strings.Contains(errStr, "Forbidden") {
			return "Check your Key Vault access policy includes secret get/set permissions"
		}
		if strings.Contains(errStr, "executable file not found") {
			return "Install the Azure CLI: https://learn.microsoft.com/cli/azure/install-azure-cli"
		}

	case "azure.keyvault":
		if strings.Contains(errStr, "SecretNotFound") || strings.Contains(errStr, "404") {
			return "Verify the secret exists in the vault and the vault URL is correct"
		}
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "Unauthorized") || strings.Contains(errStr, "DefaultAzureCredential") {
			return "Authenticate with 'az login' or configure a managed identity"
		}
		if strings.Contains(errStr, "403") || strings.Contains(errStr, "Forbidden") {
			return "Grant this identity 'Key Vault Secrets Officer' on the vault"
		}

	case "gcp.secretmanager":
		if strings.Contains(errStr, "PermissionDenied") {
			return "Grant roles/secretmanager.admin or check 'gcloud auth application-default login'"
		}
		if strings.Contains(errStr, "NotFound") {
			return "Verify the secret name and project. List with: 'gcloud secrets list'"
		}

	case "aws.secretsmanager", "aws.parameterstore":
		if strings.Contains(errStr, "credentials") || strings.Contains(errStr, "authorization") {
			return "Configure AWS credentials: 'aws configure' or set AWS_PROFILE"
		}
		if strings.Contains(errStr, "AccessDenied") {
			return "Check IAM permissions for the secretsmanager/ssm actions"
		}
		if strings.Contains(errStr, "ResourceNotFoundException") || strings.Contains(errStr, "ParameterNotFound") {
			return "Verify the secret name and region"
		}
	}

	if strings.Contains(errStr, "timeout") {
		return "The operation timed out. Check your network connection and try again"
	}
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host") {
		return "Unable to connect. Check your network and store configuration"
	}

	return ""
}

// WrapCommandNotFound decorates a missing-binary failure with an install hint.
func WrapCommandNotFound(command string, err error) error {
	suggestions := map[string]string{
		"python3": "Install Python 3 from https://python.org/",
		"python":  "Install Python from https://python.org/",
		"az":      "Install the Azure CLI: https://learn.microsoft.com/cli/azure/install-azure-cli",
		"gcloud":  "Install the Google Cloud CLI: https://cloud.google.com/sdk/docs/install",
	}

	suggestion := suggestions[command]
	if suggestion == "" {
		suggestion = fmt.Sprintf("Make sure '%s' is installed and in your PATH", command)
	}

	return CommandError{
		Command:    command,
		Message:    "command not found",
		Suggestion: suggestion,
	}
}
