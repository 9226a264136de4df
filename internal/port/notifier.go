package port

import "context"

type Notification struct {
	Operation string
	ProductID int
	Message   string
	Err       error
}

type Notifier interface {
	// Notify reports a failed cart operation to the user
	Notify(ctx context.Context, n Notification)
}
