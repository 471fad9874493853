package deepseek

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulateSSE_ConcatenatesDeltas(t *testing.T) {
	body := strings.Join([]string{
		`data: {"choices":[{"delta":{"content":"{\"results\""}}]}`,
		``,
		`data: {"choices":[{"delta":{"content":": []}"}}]}`,
		`data: {"choices":[{"delta":{},"finish_reason":"stop"}]}`,
		`data: [DONE]`,
	}, "\n")

	got, err := accumulateSSE(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, `{"results": []}`, got)
}

func TestAccumulateSSE_DoneSentinelAloneTerminates(t *testing.T) {
	body := strings.Join([]string{
		`data: {"choices":[{"delta":{"content":"hello"}}]}`,
		`data: [DONE]`,
	}, "\n")

	got, err := accumulateSSE(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestAccumulateSSE_MissingTerminalMarkerFails(t *testing.T) {
	body := `data: {"choices":[{"delta":{"content":"partial"}}]}`

	_, err := accumulateSSE(strings.NewReader(body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal marker")
}

func TestAccumulateSSE_IgnoresNonDataLines(t *testing.T) {
	body := strings.Join([]string{
		`: keep-alive`,
		`event: message`,
		`data: {"choices":[{"delta":{"content":"x"}}]}`,
		`data: [DONE]`,
	}, "\n")

	got, err := accumulateSSE(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "x", got)
}

func TestAccumulateSSE_ToleratesMalformedFrames(t *testing.T) {
	body := strings.Join([]string{
		`data: not-json`,
		`data: {"choices":[{"delta":{"content":"ok"},"finish_reason":"stop"}]}`,
	}, "\n")

	got, err := accumulateSSE(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestAccumulateSSE_EmptyStreamFails(t *testing.T) {
	_, err := accumulateSSE(strings.NewReader(""))
	assert.Error(t, err)
}
