package export

import "context"

// Sink persists an export bundle somewhere the website can read it.
type Sink interface {
	Name() string
	Write(ctx context.Context, b *Bundle) error
}
