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

func TestPropertiesList(t *testing.T) {
	mock := testutil.NewMockCommandExecutor()
	cfg, script := newCommandConfig(t, mock)
	mock.AddResponse(fmt.Sprintf("sh %s list-properties", script), testutil.AdminScriptResponses{}.Properties())

	output, err := captureOutput(t, NewPropertiesCommand(cfg), []string{"list"})
	require.NoError(t, err)

	var properties []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &properties))
	require.Len(t, properties, 2)
	assert.Equal(t, "Terprint Web", properties[0]["displayName"])
}

func TestPropertiesGet(t *testing.T) {
	mock := testutil.NewMockCommandExecutor()
	cfg, script := newCommandConfig(t, mock)
	mock.AddResponse(fmt.Sprintf("sh %s get-property 1001", script), testutil.AdminScriptResponses{}.Property("1001", "Terprint Web"))

	output, err := captureOutput(t, NewPropertiesCommand(cfg), []string{"get", "1001"})
	require.NoError(t, err)

	var property map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &property))
	assert.Equal(t, "properties/1001", property["name"])
	assert.Equal(t, "TECHNOLOGY", property["industryCategory"])
}

func TestPropertiesCreateWithURL(t *testing.T) {
	mock := testutil.NewMockCommandExecutor()
	cfg, script := newCommandConfig(t, mock)
	mock.AddResponse(
		fmt.Sprintf("sh %s create-property Terprint Web 100 --url https://terprint.acidni.com", script),
		testutil.AdminScriptResponses{}.PropertyWithStream("1003", "Terprint Web", "G-TERP123", "https://terprint.acidni.com"),
	)

	output, err := captureOutput(t, NewPropertiesCommand(cfg), []string{
		"create", "Terprint Web", "100", "--url", "https://terprint.acidni.com",
	})
	require.NoError(t, err)

	var property map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &property))
	stream, ok := property["stream"].(map[string]interface{})
	require.True(t, ok, "create --url result should include the stream block")
	assert.Equal(t, "G-TERP123", stream["measurementId"])

	last := mock.LastCall()
	require.NotNil(t, last)
	assert.Equal(t, []string{script, "create-property", "Terprint Web", "100", "--url", "https://terprint.acidni.com"}, last.Args)
}

func TestPropertiesCreateWithoutURL(t *testing.T) {
	mock := testutil.NewMockCommandExecutor()
	cfg, script := newCommandConfig(t, mock)
	mock.AddResponse(fmt.Sprintf("sh %s create-property Terprint Web 100", script), testutil.AdminScriptResponses{}.Property("1003", "Terprint Web"))

	_, err := captureOutput(t, NewPropertiesCommand(cfg), []string{"create", "Terprint Web", "100"})
	require.NoError(t, err)

	last := mock.LastCall()
	require.NotNil(t, last)
	assert.NotContains(t, last.Args, "--url")
}

func TestPropertiesDelete(t *testing.T) {
	mock := testutil.NewMockCommandExecutor()
	cfg, script := newCommandConfig(t, mock)
	mock.AddResponse(fmt.Sprintf("sh %s delete-property 1001", script), testutil.AdminScriptResponses{}.Deleted("1001"))

	output, err := captureOutput(t, NewPropertiesCommand(cfg), []string{"delete", "1001"})
	require.NoError(t, err)

	var deleted map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &deleted))
	assert.Equal(t, "properties/1001", deleted["deleted"])
}

func TestPropertiesArgValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "get without id", args: []string{"get"}},
		{name: "create with one arg", args: []string{"create", "Terprint Web"}},
		{name: "delete without id", args: []string{"delete"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockCommandExecutor()
			cfg, _ := newCommandConfig(t, mock)

			cmd := NewPropertiesCommand(cfg)
			cmd.SetArgs(tt.args)
			cmd.SetOut(io.Discard)
			cmd.SetErr(io.Discard)

			require.Error(t, cmd.Execute())
			assert.Zero(t, mock.CallCount(), "validation failures must not reach the script")
		})
	}
}
