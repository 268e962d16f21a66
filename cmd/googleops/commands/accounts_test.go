package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acidni/googleops/tests/testutil"
)

func TestAccountsList(t *testing.T) {
	mock := testutil.NewMockCommandExecutor()
	cfg, script := newCommandConfig(t, mock)
	mock.AddResponse(fmt.Sprintf("sh %s list-accounts", script), testutil.AdminScriptResponses{}.Accounts())

	output, err := captureOutput(t, NewAccountsCommand(cfg), []string{"list"})
	require.NoError(t, err)

	var accounts []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &accounts))
	require.Len(t, accounts, 2)
	assert.Equal(t, "accounts/100", accounts[0]["name"])
	assert.Equal(t, "Acidni", accounts[0]["displayName"])

	last := mock.LastCall()
	require.NotNil(t, last)
	assert.Equal(t, "sh", last.Command)
	assert.Equal(t, []string{script, "list-accounts"}, last.Args)
}

func TestAccountsListScriptFailure(t *testing.T) {
	mock := testutil.NewMockCommandExecutor()
	cfg, script := newCommandConfig(t, mock)
	mock.AddResponse(fmt.Sprintf("sh %s list-accounts", script), testutil.AdminScriptResponses{}.ScriptError("Permission denied for account"))

	_, err := captureOutput(t, NewAccountsCommand(cfg), []string{"list"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Permission denied for account")
	assert.Contains(t, err.Error(), "exit code: 1")
}

func TestAccountsListRejectsArguments(t *testing.T) {
	cfg, _ := newCommandConfig(t, testutil.NewMockCommandExecutor())

	cmd := NewAccountsCommand(cfg)
	cmd.SetArgs([]string{"list", "extra"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
