package analytics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResultClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stdout   string
		wantKind ResultKind
	}{
		{name: "empty", stdout: "", wantKind: KindEmpty},
		{name: "whitespace only", stdout: "  \n\t\n", wantKind: KindEmpty},
		{name: "object", stdout: `{"name": "properties/1"}`, wantKind: KindObject},
		{name: "array", stdout: `[{"name": "accounts/100"}]`, wantKind: KindList},
		{name: "empty array", stdout: `[]`, wantKind: KindList},
		{name: "plain text", stdout: "operation completed", wantKind: KindText},
		{name: "truncated json", stdout: `{"name": "prop`, wantKind: KindText},
		{name: "bare number", stdout: "42", wantKind: KindText},
		{name: "bare string", stdout: `"done"`, wantKind: KindText},
		{name: "bare bool", stdout: "true", wantKind: KindText},
		{name: "bare null", stdout: "null", wantKind: KindText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := decodeResult([]byte(tt.stdout))
			assert.Equal(t, tt.wantKind, result.Kind())
		})
	}
}

func TestDecodeResultObject(t *testing.T) {
	t.Parallel()

	result := decodeResult([]byte(`{"name": "properties/1001", "rowCount": 2}`))

	obj, ok := result.Object()
	require.True(t, ok)
	assert.Equal(t, "properties/1001", obj["name"])
	assert.Equal(t, float64(2), obj["rowCount"])

	_, ok = result.List()
	assert.False(t, ok)
	_, ok = result.Text()
	assert.False(t, ok)
}

func TestDecodeResultEmptyBehavesAsSequence(t *testing.T) {
	t.Parallel()

	result := decodeResult([]byte("   \n"))

	assert.True(t, result.IsEmpty())

	list, ok := result.List()
	require.True(t, ok)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestDecodeResultTextIsVerbatim(t *testing.T) {
	t.Parallel()

	raw := "WARNING: quota nearly exhausted\nproperties/1001 ok"
	result := decodeResult([]byte(raw + "\n"))

	text, ok := result.Text()
	require.True(t, ok)
	assert.Equal(t, raw, text)
}

func TestResultJSONRoundTrip(t *testing.T) {
	t.Parallel()

	original := map[string]interface{}{
		"property":  "properties/1001",
		"dateRange": map[string]interface{}{"startDate": "7daysAgo", "endDate": "today"},
		"rowCount":  float64(1),
		"rows":      []interface{}{map[string]interface{}{"metrics": []interface{}{"125"}}},
	}

	encoded, err := json.Marshal(original)
	require.NoError(t, err)

	result := decodeResult(encoded)
	require.Equal(t, KindObject, result.Kind())
	assert.Equal(t, original, result.Value())

	reencoded, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, string(encoded), string(reencoded))
}

func TestResultConstructors(t *testing.T) {
	t.Parallel()

	obj := ObjectResult(map[string]interface{}{"deleted": "properties/9"})
	assert.Equal(t, KindObject, obj.Kind())

	list := ListResult([]interface{}{"a"})
	assert.Equal(t, KindList, list.Kind())

	text := TextResult("raw")
	assert.Equal(t, KindText, text.Kind())

	empty := EmptyResult()
	assert.True(t, empty.IsEmpty())

	encoded, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(encoded))
}
