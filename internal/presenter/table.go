// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/deepak-ramesh/map-task/internal/geo"
	"github.com/deepak-ramesh/map-task/internal/geodata"
)

const maxNameWidth = 40

// FeatureTable writes the features as an aligned text table, nearest to center first.
func (p *Presenter) FeatureTable(w io.Writer, caption string, center geo.Coordinate,
	features []geodata.LocationFeature,
) error {
	rows := make([]geodata.LocationFeature, len(features))
	copy(rows, features)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Coordinate.DistanceTo(center) < rows[j].Coordinate.DistanceTo(center)
	})

	names := make([]string, len(rows))
	width := runewidth.StringWidth(p.localizer.Get("Name"))
	for i, row := range rows {
		name := row.Name
		if name == "" {
			name = p.localizer.Get(geodata.UnnamedLocation)
		}
		names[i] = runewidth.Truncate(name, maxNameWidth, "…")
		width = max(width, runewidth.StringWidth(names[i]))
	}

	if caption == "" {
		caption = center.String()
	}
	buf := new(strings.Builder)
	buf.WriteString(p.localizer.Getf("Locations near %s", caption) + "\n\n")
	fmt.Fprintf(buf, "%s  %10s  %s\n", runewidth.FillRight(p.localizer.Get("Name"), width),
		p.localizer.Get("Distance"), p.localizer.Get("Coordinates"))
	buf.WriteString(strings.Repeat("-", width+2+10+2+len(center.String())) + "\n")
	for i, row := range rows {
		fmt.Fprintf(buf, "%s  %8.0f m  %s\n", runewidth.FillRight(names[i], width),
			row.Coordinate.DistanceTo(center), row.Coordinate)
	}
	buf.WriteString("\n" + p.localizer.NGetf("%d location found", "%d locations found", len(rows), len(rows)) + "\n")

	if _, err := io.WriteString(w, buf.String()); err != nil {
		return fmt.Errorf("failed to write feature table: %w", err)
	}
	return nil
}
