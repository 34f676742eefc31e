package main

import (
	"fmt"
	"strconv"
	"strings"

	"grid-tower-defense/internal/defs"
	"grid-tower-defense/pkg/gridmap"
)

// placement - одна башня из флага -towers.
type placement struct {
	Kind defs.TowerKind
	Cell gridmap.Coord
}

// parseBuildOrder разбирает строку вида "arrow@6,4;cannon@8,6" (вид@строка,столбец).
func parseBuildOrder(s string) ([]placement, error) {
	var out []placement
	for _, item := range strings.Split(s, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		kind, pos, ok := strings.Cut(item, "@")
		if !ok {
			return nil, fmt.Errorf("tower %q: expected kind@row,col", item)
		}
		k := defs.TowerKind(strings.ToLower(strings.TrimSpace(kind)))
		if !k.Valid() {
			return nil, fmt.Errorf("tower %q: unknown kind %q", item, kind)
		}
		rowStr, colStr, ok := strings.Cut(pos, ",")
		if !ok {
			return nil, fmt.Errorf("tower %q: expected row,col", item)
		}
		row, err := strconv.Atoi(strings.TrimSpace(rowStr))
		if err != nil {
			return nil, fmt.Errorf("tower %q: bad row: %w", item, err)
		}
		col, err := strconv.Atoi(strings.TrimSpace(colStr))
		if err != nil {
			return nil, fmt.Errorf("tower %q: bad col: %w", item, err)
		}
		out = append(out, placement{Kind: k, Cell: gridmap.Coord{Row: row, Col: col}})
	}
	return out, nil
}
