package ocr

import (
	"context"
	"sync"
)

// ScriptedResponse is one canned Detect result.
type ScriptedResponse struct {
	Detections []Detection
	Err        error
}

// ScriptedDetector replays canned responses in call order. Once the script
// is exhausted every further call reports no text. Safe for concurrent use.
type ScriptedDetector struct {
	mu        sync.Mutex
	responses []ScriptedResponse
	calls     int
}

// NewScriptedDetector builds a detector that replays the given responses.
func NewScriptedDetector(responses ...ScriptedResponse) *ScriptedDetector {
	return &ScriptedDetector{responses: responses}
}

// Detect returns the next scripted response.
func (d *ScriptedDetector) Detect(ctx context.Context, _ []byte) ([]Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.calls >= len(d.responses) {
		d.calls++
		return nil, nil
	}
	response := d.responses[d.calls]
	d.calls++
	return response.Detections, response.Err
}

// Calls reports how many times Detect has been invoked.
func (d *ScriptedDetector) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}
