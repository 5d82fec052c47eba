package repo

import "context"

// AlertRepo mirrors operator notifications to a side channel
type AlertRepo interface {
	Notify(ctx context.Context, text string) error
}
