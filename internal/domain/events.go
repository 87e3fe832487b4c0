package domain

// Event names emitted by the lifecycle engine. orderUpdate carries the
// created/updated order, or no payload for bulk operations; tableReset
// carries the table id.
const (
	EventOrderUpdate = "orderUpdate"
	EventTableReset  = "tableReset"
)

// TopicGlobal reaches every connected client. Per-table topics reach
// clients that explicitly joined that table.
const TopicGlobal = "global"

func TableTopic(tableID string) string { return "table-" + tableID }
