package deepseek

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// streamState tracks the SSE accumulator.
type streamState int

const (
	stateAccumulating streamState = iota
	stateComplete
	stateFailed
)

const doneSentinel = "[DONE]"

// accumulateSSE reads server-sent-event frames from r and concatenates
// the delta content fragments in arrival order. It resolves once a
// terminal marker is observed: a frame with finish_reason "stop" or
// the literal [DONE] sentinel. Partial fragments are never parsed as
// the final payload; only the accumulated whole is returned.
func accumulateSSE(r io.Reader) (string, error) {
	var (
		content strings.Builder
		state   = stateAccumulating
	)

	scanner := bufio.NewScanner(r)
	// Frames carrying corpus-sized prompts echo large deltas.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for state == stateAccumulating && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == doneSentinel {
			state = stateComplete
			break
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			// Tolerate malformed keep-alive frames; the terminal
			// marker decides success.
			continue
		}
		for _, choice := range chunk.Choices {
			content.WriteString(choice.Delta.Content)
			if choice.FinishReason == "stop" {
				state = stateComplete
			}
		}
	}

	if err := scanner.Err(); err != nil {
		state = stateFailed
		return "", fmt.Errorf("stream read failed: %w", err)
	}
	if state != stateComplete {
		return "", fmt.Errorf("stream ended without terminal marker")
	}
	return content.String(), nil
}
