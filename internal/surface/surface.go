// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package surface decides whether a display surface is present to render the map on.
package surface

import (
	"github.com/deepak-ramesh/map-task/internal/config"
)

// Guard reports whether rendering may be initialized. It is consulted once at startup.
type Guard interface {
	Available() bool
}

// GuardFunc adapts a function to the Guard interface.
type GuardFunc func() bool

func (f GuardFunc) Available() bool {
	return f()
}

// Static returns a Guard with a fixed answer.
func Static(available bool) Guard {
	return GuardFunc(func() bool { return available })
}

// FromConfig returns a Guard that fails in headless mode or when no listen address is configured.
func FromConfig(conf *config.Config) Guard {
	return GuardFunc(func() bool {
		return !conf.Server.Headless && conf.Server.Listen != ""
	})
}
