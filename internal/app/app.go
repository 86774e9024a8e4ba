// Package app wires the gesture recognizer to the event log, action
// bindings, and broadcast observers.
package app

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/touch"
)

// DefaultPluginTimeoutMs bounds each plugin execution.
const DefaultPluginTimeoutMs = 5000

// Config holds configuration options for the application.
type Config struct {
	Store           *store.Store
	PluginDir       string
	PluginTimeoutMs int
}

// App owns the input surface and the recognizer bound to it. Every
// classified gesture is appended to the event log, handed to the bound
// plugin action, and fanned out to subscribed observers.
type App struct {
	config     Config
	surface    *touch.EventTarget
	recognizer *touch.Recognizer
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor

	mu          sync.RWMutex
	enabled     bool
	observers   []func(touch.GestureEvent)
	lastGesture touch.Type
}

// New creates a new App instance with the given configuration. Recognition
// is enabled by default.
func New(config Config) *App {
	timeout := config.PluginTimeoutMs
	if timeout <= 0 {
		timeout = DefaultPluginTimeoutMs
	}

	a := &App{
		config:     config,
		surface:    touch.NewEventTarget(),
		pluginMgr:  plugin.NewManager(config.PluginDir),
		pluginExec: plugin.NewExecutor(timeout),
		enabled:    true,
	}
	a.recognizer = touch.NewRecognizer(a.surface, a.handleGesture)

	return a
}

// Surface returns the input surface. Raw input events dispatched onto it
// are classified synchronously.
func (a *App) Surface() *touch.EventTarget {
	return a.surface
}

// Recognizer returns the gesture recognizer.
func (a *App) Recognizer() *touch.Recognizer {
	return a.recognizer
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// SetEnabled enables or disables gesture handling. While disabled, input
// is still classified but nothing is logged, executed, or broadcast.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture handling is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// LastGesture returns the type of the most recently handled gesture, or ""
// if none has been handled yet.
func (a *App) LastGesture() touch.Type {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastGesture
}

// Subscribe registers an observer that receives every handled gesture.
// Observers must be registered before input flows; there is no unsubscribe.
func (a *App) Subscribe(fn func(touch.GestureEvent)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.observers = append(a.observers, fn)
}

// Close destroys the recognizer. The surface stops producing gestures;
// further dispatches are no-ops.
func (a *App) Close() {
	a.recognizer.Destroy()
}

// handleGesture is the recognizer callback.
func (a *App) handleGesture(g touch.GestureEvent) {
	a.mu.Lock()
	if !a.enabled {
		a.mu.Unlock()
		return
	}
	a.lastGesture = g.Type
	observers := make([]func(touch.GestureEvent), len(a.observers))
	copy(observers, a.observers)
	a.mu.Unlock()

	params, err := json.Marshal(g.Parameters)
	if err != nil {
		log.Printf("Failed to marshal gesture parameters: %v", err)
		params = json.RawMessage("{}")
	}

	if a.config.Store != nil {
		record := &store.EventRecord{
			GestureType: string(g.Type),
			Parameters:  params,
			Confidence:  g.Confidence,
			TimestampMS: g.Timestamp,
		}
		if err := a.config.Store.Events().Append(record); err != nil {
			log.Printf("Failed to log gesture event: %v", err)
		}
	}

	a.executeBinding(g, params)

	for _, fn := range observers {
		fn(g)
	}
}

// executeBinding looks up the enabled binding for the gesture type and runs
// its plugin action. Execution happens on its own goroutine so a slow
// plugin cannot stall input classification.
func (a *App) executeBinding(g touch.GestureEvent, params json.RawMessage) {
	if a.config.Store == nil {
		return
	}

	binding, err := a.config.Store.Bindings().GetByGestureType(string(g.Type))
	if err != nil {
		// A gesture with no binding is the common case; anything else is a
		// real store failure.
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("Failed to look up binding for %s: %v", g.Type, err)
		}
		return
	}

	p, err := a.pluginMgr.Get(binding.PluginName)
	if err != nil {
		log.Printf("Binding %s references unknown plugin %q", binding.ID, binding.PluginName)
		return
	}

	req := &plugin.Request{
		Action:     binding.ActionName,
		Gesture:    string(g.Type),
		Confidence: g.Confidence,
		Config:     binding.Config,
		Params:     params,
	}

	go func() {
		resp, err := a.pluginExec.Execute(p, req)
		if err != nil {
			log.Printf("Plugin %s action %s failed: %v", binding.PluginName, binding.ActionName, err)
			return
		}
		if !resp.Success {
			log.Printf("Plugin %s action %s reported failure: %s", binding.PluginName, binding.ActionName, resp.Error)
		}
	}()
}
