// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package mapview

import "fmt"

// State is the initialization progress of a Controller. Ready and Failed are terminal.
type State int32

const (
	Uninitialized State = iota
	SurfaceChecked
	MapCreated
	BaseLayerAttached
	Ready
	Failed
)

var stateNames = map[State]string{
	Uninitialized:     "uninitialized",
	SurfaceChecked:    "surface-checked",
	MapCreated:        "map-created",
	BaseLayerAttached: "base-layer-attached",
	Ready:             "ready",
	Failed:            "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int32(s))
}
