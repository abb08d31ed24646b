package ports

// Event names published after a successful commit.
const (
	EventOrderCreated     = "order:created"
	EventOrderUpdated     = "order:updated"
	EventOrderDeleted     = "order:deleted"
	EventPauseUpdated     = "pause:updated"
	EventOrderLiveMetrics = "order:live-metrics"

	EventCleaningCreated = "cleaning:created"
	EventCleaningUpdated = "cleaning:updated"
	EventCleaningDeleted = "cleaning:deleted"
)

// Notifier publishes state changes to interested clients. Emit never blocks on
// slow consumers and never fails the operation that triggered it.
type Notifier interface {
	Emit(event string, payload any)
}
