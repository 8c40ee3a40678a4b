package mail

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/nexus/pkg/slogx"
)

// LogMailer writes messages to the request logger instead of sending them.
// Used in development so invitation links can be copied from the logs.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg Message) error {
	slogx.FromContext(ctx).Info("email not sent (log provider)",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Text),
	)
	return nil
}
