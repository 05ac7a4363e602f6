// Package queue defines message payloads exchanged over the message broker.
package queue

// InventoryChangedQueue is the queue inventory mutation events are
// published to and consumed from.
const InventoryChangedQueue = "inventory.changed"

// Inventory event actions.
const (
	ActionContainerCreated = "container.created"
	ActionContainerDeleted = "container.deleted"
	ActionItemAdded        = "item.added"
	ActionItemDeleted      = "item.deleted"
)

// InventoryChangedEvent is published whenever a container or item is
// created or deleted. It carries enough information for downstream
// consumers to log or trigger notifications without querying the
// primary database.
type InventoryChangedEvent struct {
	Action      string `json:"action"`
	EntityID    string `json:"entity_id"`
	QRCode      string `json:"qr_code"`
	ItemName    string `json:"item_name,omitempty"`
	OccurredAt  string `json:"occurred_at"`
}
