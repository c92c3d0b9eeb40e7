package align

import (
	"encoding/json"
	"fmt"
)

// Plan is the persisted scene plan handed from the planning stage to the
// renderer through the queue row.
type Plan struct {
	Scenes []Scene `json:"scenes"`
}

// EncodePlan serializes aligned scenes for queue persistence.
func EncodePlan(scenes []Scene) (string, error) {
	payload, err := json.Marshal(Plan{Scenes: scenes})
	if err != nil {
		return "", fmt.Errorf("encode scene plan: %w", err)
	}
	return string(payload), nil
}

// DecodePlan parses a persisted scene plan.
func DecodePlan(data string) ([]Scene, error) {
	var plan Plan
	if err := json.Unmarshal([]byte(data), &plan); err != nil {
		return nil, fmt.Errorf("decode scene plan: %w", err)
	}
	return plan.Scenes, nil
}
