// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock supplies the current time. Every component that needs "now" reads it here.
type Clock interface {
	Now() time.Time
}
