package deepseek

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONValue_BareObject(t *testing.T) {
	in := `{"results": []}`
	assert.Equal(t, in, ExtractJSONValue(in))
}

func TestExtractJSONValue_ProseWrappedObject(t *testing.T) {
	in := "Here is the answer:\n{\"results\": [{\"score\": 1}]}\nHope that helps."
	assert.Equal(t, `{"results": [{"score": 1}]}`, ExtractJSONValue(in))
}

func TestExtractJSONValue_MarkdownFence(t *testing.T) {
	in := "```json\n{\"results\": []}\n```"
	assert.Equal(t, `{"results": []}`, ExtractJSONValue(in))
}

func TestExtractJSONValue_Array(t *testing.T) {
	in := "results follow [1, 2, 3] done"
	assert.Equal(t, `[1, 2, 3]`, ExtractJSONValue(in))
}

func TestExtractJSONValue_ObjectBeforeArray(t *testing.T) {
	in := `{"a": [1]} trailing`
	assert.Equal(t, `{"a": [1]}`, ExtractJSONValue(in))
}

func TestExtractJSONValue_NoJSON(t *testing.T) {
	assert.Equal(t, "plain text", ExtractJSONValue("  plain text  "))
}

func TestExtractJSONValue_Empty(t *testing.T) {
	assert.Equal(t, "", ExtractJSONValue("   "))
}
