package salesboard

import "context"

type noopActionHook struct{}

func (noopActionHook) ActionTriggered(context.Context, ActionEvent) error { return nil }

// ActionHookFunc adapts a function to ActionHook.
type ActionHookFunc func(ctx context.Context, event ActionEvent) error

// ActionTriggered calls fn.
func (fn ActionHookFunc) ActionTriggered(ctx context.Context, event ActionEvent) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

// MultiActionHook fans an event out to several hooks and stops at the first
// error.
type MultiActionHook []ActionHook

// ActionTriggered implements ActionHook.
func (hooks MultiActionHook) ActionTriggered(ctx context.Context, event ActionEvent) error {
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		if err := hook.ActionTriggered(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// ActionPublisher is the minimal surface of an external notifications or
// messaging client.
type ActionPublisher interface {
	PublishSalesAction(ctx context.Context, channel string, event ActionEvent) error
}

// PublisherHook forwards action events to an external publisher.
type PublisherHook struct {
	Publisher ActionPublisher
	Channel   string
}

// ActionTriggered publishes the event when a publisher is configured.
func (h *PublisherHook) ActionTriggered(ctx context.Context, event ActionEvent) error {
	if h == nil || h.Publisher == nil {
		return nil
	}
	channel := h.Channel
	if channel == "" {
		channel = "salesboard.actions"
	}
	return h.Publisher.PublishSalesAction(ctx, channel, event)
}
