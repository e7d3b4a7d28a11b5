package checkout

// Notifier is the non-blocking user notification surface. Every error the
// orchestrator hits is converted to a notification here; nothing escalates
// to a global handler.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}
