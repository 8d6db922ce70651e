// server/internal/socket/hub_test.go
package socket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSendToOfflineClientIsNotAnError(t *testing.T) {
	hub := NewHub(zap.NewNop())

	err := hub.Send("absent-user", "sos_acknowledged", map[string]any{"id": "abc"})
	assert.NoError(t, err)
}

func TestBroadcastWithNoClients(t *testing.T) {
	hub := NewHub(zap.NewNop())

	// Nothing to deliver to; must not panic or block.
	hub.Broadcast("donation_completed", map[string]any{"bloodGroup": "O-"})
}

func TestUnregisterUnknownClient(t *testing.T) {
	hub := NewHub(zap.NewNop())
	hub.Unregister("never-registered")
}
