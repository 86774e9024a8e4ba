// Package main provides a scene control plugin.
// It maintains a viewport state file and applies zoom, rotate, pan, and
// select actions from gesture parameters to it.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Request represents the input from the plugin executor.
type Request struct {
	Action     string          `json:"action"`
	Gesture    string          `json:"gesture"`
	Confidence float64         `json:"confidence"`
	Config     json.RawMessage `json:"config"`
	Params     json.RawMessage `json:"params"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// pluginConfig holds the binding configuration for this plugin.
type pluginConfig struct {
	StateFile   string  `json:"stateFile"`
	Sensitivity float64 `json:"sensitivity"`
}

// viewport is the scene state persisted between invocations.
type viewport struct {
	Scale     float64 `json:"scale"`
	Rotation  float64 `json:"rotation"`
	OffsetX   float64 `json:"offsetX"`
	OffsetY   float64 `json:"offsetY"`
	SelectedX float64 `json:"selectedX"`
	SelectedY float64 `json:"selectedY"`
}

// gestureParams covers the parameter fields the supported actions read.
type gestureParams struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	ScaleFactor float64 `json:"scaleFactor"`
	Rotation    float64 `json:"rotation"`
	CenterX     float64 `json:"centerX"`
	CenterY     float64 `json:"centerY"`
}

func main() {
	// Read request from stdin
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	cfg := loadConfig(req.Config)

	var params gestureParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			writeErrorResponse(fmt.Sprintf("failed to decode params: %v", err))
			return
		}
	}

	vp, err := loadViewport(cfg.StateFile)
	if err != nil {
		writeErrorResponse(fmt.Sprintf("failed to load viewport: %v", err))
		return
	}

	switch req.Action {
	case "zoom":
		if params.ScaleFactor > 0 {
			vp.Scale *= params.ScaleFactor * cfg.Sensitivity
		}
	case "rotate":
		vp.Rotation += params.Rotation * cfg.Sensitivity
	case "pan":
		vp.OffsetX = params.CenterX
		vp.OffsetY = params.CenterY
	case "move":
		vp.OffsetX = params.X
		vp.OffsetY = params.Y
	case "select":
		vp.SelectedX = params.X
		vp.SelectedY = params.Y
	case "reset":
		vp = defaultViewport()
	default:
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	if err := saveViewport(cfg.StateFile, vp); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to save viewport: %v", err))
		return
	}

	data, _ := json.Marshal(vp)
	json.NewEncoder(os.Stdout).Encode(Response{Success: true, Data: data})
}

// loadConfig parses the binding configuration, filling in defaults.
func loadConfig(raw json.RawMessage) pluginConfig {
	cfg := pluginConfig{Sensitivity: 1.0}
	if len(raw) > 0 {
		json.Unmarshal(raw, &cfg)
	}
	if cfg.Sensitivity <= 0 {
		cfg.Sensitivity = 1.0
	}
	if cfg.StateFile == "" {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			cfg.StateFile = filepath.Join(homeDir, ".mudra", "scene-state.json")
		} else {
			cfg.StateFile = "scene-state.json"
		}
	}
	return cfg
}

func defaultViewport() viewport {
	return viewport{Scale: 1.0}
}

// loadViewport reads the persisted scene state, returning the default
// state when the file does not exist yet.
func loadViewport(path string) (viewport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultViewport(), nil
		}
		return viewport{}, err
	}

	var vp viewport
	if err := json.Unmarshal(data, &vp); err != nil {
		return viewport{}, err
	}
	return vp, nil
}

// saveViewport writes the scene state, creating the parent directory if needed.
func saveViewport(path string, vp viewport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(vp, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	json.NewEncoder(os.Stdout).Encode(Response{
		Success: false,
		Error:   errMsg,
	})
}
