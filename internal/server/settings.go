package server

import (
	"strings"
	"sync"

	"github.com/temirov/supacode-demo/internal/config"
)

// Settings holds the edge function URL entered by the visitor. Each submit takes a snapshot.
type Settings struct {
	mutex           sync.RWMutex
	edgeFunctionURL string
}

func NewSettings(edgeFunctionURL string) *Settings {
	return &Settings{edgeFunctionURL: strings.TrimSpace(edgeFunctionURL)}
}

func (settings *Settings) EdgeFunctionURL() string {
	settings.mutex.RLock()
	defer settings.mutex.RUnlock()
	return settings.edgeFunctionURL
}

// SetEdgeFunctionURL stores a validated https URL. An empty value clears the setting.
func (settings *Settings) SetEdgeFunctionURL(edgeFunctionURL string) error {
	trimmed := strings.TrimSpace(edgeFunctionURL)
	if trimmed != "" {
		if err := config.ValidateEdgeFunctionURL(trimmed); err != nil {
			return err
		}
	}
	settings.mutex.Lock()
	settings.edgeFunctionURL = trimmed
	settings.mutex.Unlock()
	return nil
}
