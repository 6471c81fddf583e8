// Package framework runs the player components side by side.
package framework

import "context"

// Named is implemented by components reporting a name in logs.
type Named interface {
	Name() string
}

// Runnable is a component running until its context is done.
type Runnable interface {
	Run(context.Context) error
}
