package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DecodeAudioPayload normalizes a synthesis provider response body to raw
// audio bytes. Providers disagree on framing: some return the audio bytes
// directly, others wrap a base64 string in a JSON envelope under an "audio"
// field. The body is sniffed rather than trusting a configuration flag so a
// provider-side format change does not corrupt cached artifacts.
func DecodeAudioPayload(body []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty audio payload")
	}
	if trimmed[0] != '{' {
		return trimmed, nil
	}

	var envelope struct {
		Audio string `json:"audio"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		// JSON-looking but unparseable bodies are almost certainly raw
		// audio that happens to start with 0x7B.
		return trimmed, nil
	}
	encoded := strings.TrimSpace(envelope.Audio)
	if encoded == "" {
		return nil, errors.New("audio payload envelope missing audio field")
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode base64 audio payload: %w", err)
	}
	if len(decoded) == 0 {
		return nil, errors.New("audio payload decoded to zero bytes")
	}
	return decoded, nil
}
