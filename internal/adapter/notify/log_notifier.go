package notify

import (
	"context"
	"log"

	"github.com/rl1809/storefront-cart/internal/port"
	"github.com/rl1809/storefront-cart/internal/requestid"
)

// LogNotifier writes cart failures to a logger.
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, note port.Notification) {
	if note.Err != nil {
		n.logger.Printf("cart: %s product=%d request=%s: %s: %v", note.Operation, note.ProductID, requestid.From(ctx), note.Message, note.Err)
		return
	}
	n.logger.Printf("cart: %s product=%d request=%s: %s", note.Operation, note.ProductID, requestid.From(ctx), note.Message)
}
