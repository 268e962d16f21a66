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

func TestSetupStoresMeasurementID(t *testing.T) {
	mock := testutil.NewMockCommandExecutor()
	cfg, script := newSecretConfig(t, mock, "vault:\n  type: azure.cli\n  vault_name: kv-acidni\n")
	mock.AddResponse(
		fmt.Sprintf("sh %s create-property Terprint 100 --url https://terprint.acidni.com", script),
		testutil.AdminScriptResponses{}.PropertyWithStream("1003", "Terprint", "G-TERP123", "https://terprint.acidni.com"),
	)
	mock.AddResponse(
		"az keyvault secret set --vault-name kv-acidni --name terprint-measurement-id --value G-TERP123",
		testutil.AzMockResponses{}.SecretSet("kv-acidni", "terprint-measurement-id"),
	)

	output, err := captureOutput(t, NewSetupCommand(cfg), []string{
		"Terprint", "100", "https://terprint.acidni.com", "terprint-measurement-id",
	})
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &payload))
	assert.Equal(t, "G-TERP123", payload["measurementId"])
	assert.Equal(t, "terprint-measurement-id", payload["secretName"])
	assert.NotContains(t, payload, "warning")

	property, ok := payload["property"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "properties/1003", property["name"])

	azCalls := mock.GetCalls("az")
	require.Len(t, azCalls, 1)
	assert.Contains(t, azCalls[0].Args, "G-TERP123")
}

func TestSetupWithoutStreamWarnsAndStoresNothing(t *testing.T) {
	mock := testutil.NewMockCommandExecutor()
	cfg, script := newSecretConfig(t, mock, "vault:\n  type: azure.cli\n  vault_name: kv-acidni\n")
	mock.AddResponse(
		fmt.Sprintf("sh %s create-property Terprint 100 --url https://terprint.acidni.com", script),
		testutil.AdminScriptResponses{}.Property("1003", "Terprint"),
	)

	output, err := captureOutput(t, NewSetupCommand(cfg), []string{
		"Terprint", "100", "https://terprint.acidni.com", "terprint-measurement-id",
	})
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &payload))
	assert.NotContains(t, payload, "measurementId")
	assert.Contains(t, payload["warning"], "no measurement id")

	assert.Empty(t, mock.GetCalls("az"), "nothing must be stored without a measurement id")
}

func TestSetupRequiresFourArguments(t *testing.T) {
	mock := testutil.NewMockCommandExecutor()
	cfg, _ := newCommandConfig(t, mock)

	cmd := NewSetupCommand(cfg)
	cmd.SetArgs([]string{"Terprint", "100", "https://terprint.acidni.com"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	require.Error(t, cmd.Execute())
	assert.Zero(t, mock.CallCount())
}
