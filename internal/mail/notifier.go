package mail

import (
	"context"
	"sync"
	"time"

	"github.com/yakoovad/hackathon-registration/internal/model"
	"go.uber.org/zap"
)

const defaultSendTimeout = 30 * time.Second

// AsyncNotifier sends confirmations in the background. A failed send is
// logged and never undoes the registration.
type AsyncNotifier struct {
	sender  Sender
	logger  *zap.Logger
	timeout time.Duration

	wg sync.WaitGroup
}

func NewAsyncNotifier(sender Sender, l *zap.Logger) *AsyncNotifier {
	return &AsyncNotifier{
		sender:  sender,
		logger:  l,
		timeout: defaultSendTimeout,
	}
}

func (n *AsyncNotifier) WithTimeout(d time.Duration) *AsyncNotifier {
	n.timeout = d
	return n
}

// Notify renders the confirmation and hands it to the sender on a separate
// goroutine. It reports whether a real delivery was started.
func (n *AsyncNotifier) Notify(ctx context.Context, reg *model.Registration) bool {
	msg, err := BuildConfirmation(reg)
	if err != nil {
		n.logger.Error("failed to render confirmation",
			zap.String("hackathon_id", reg.HackathonID),
			zap.Error(err))
		return false
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
		defer cancel()

		if err := n.sender.Send(sendCtx, msg); err != nil {
			n.logger.Error("failed to send confirmation",
				zap.String("hackathon_id", reg.HackathonID),
				zap.String("to", msg.To),
				zap.Error(err))
			return
		}
		n.logger.Info("confirmation sent",
			zap.String("hackathon_id", reg.HackathonID),
			zap.String("to", msg.To))
	}()

	return n.sender.Live()
}

// Wait blocks until every started send has finished.
func (n *AsyncNotifier) Wait() {
	n.wg.Wait()
}
