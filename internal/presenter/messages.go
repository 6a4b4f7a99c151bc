// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"github.com/vorlif/spreak/localize"

	"github.com/deepak-ramesh/map-task/internal/canvas"
)

// notifications maps each user action to the message shown once it completed.
var notifications = map[canvas.Action]localize.MsgID{
	canvas.ActionReloadStatic:   "Static Location Data Loaded",
	canvas.ActionClearStatic:    "Static Location Data Removed",
	canvas.ActionClearDynamic:   "Dynamic Location Data Removed",
	canvas.ActionRefetchDynamic: "Dynamic Location Data Loaded",
}

// actionLabels names the button of each user action.
var actionLabels = map[canvas.Action]localize.MsgID{
	canvas.ActionReloadStatic:   "Load Static Locations",
	canvas.ActionClearStatic:    "Remove Static Locations",
	canvas.ActionClearDynamic:   "Remove Dynamic Locations",
	canvas.ActionRefetchDynamic: "Load Dynamic Locations",
}

// i18nVars holds the words popup templates may translate with the loc function.
var i18nVars = map[string]localize.MsgID{
	"website":          "Website",
	"unnamed location": "Unnamed Location",
	"hotels":           "Hotels",
	"restaurants":      "Restaurants",
	"tourist spot":     "Tourist Spot",
}
