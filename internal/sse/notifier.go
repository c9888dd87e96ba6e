package sse

import (
	"time"

	"github.com/GTDGit/inventory_api/internal/models"
)

// HubNotifier pushes recomputed metrics to the owner's dashboard streams.
type HubNotifier struct {
	hub *Hub
	now func() time.Time
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub, now: time.Now}
}

// MetricsChanged implements workspace.Notifier.
func (n *HubNotifier) MetricsChanged(ownerID string, m models.DerivedMetrics) {
	if n.hub.ClientCount(ownerID) == 0 {
		return
	}
	n.hub.Broadcast(ownerID, &MetricsEvent{
		Event:     EventMetricsUpdated,
		Metrics:   m,
		Timestamp: n.now(),
	})
}
