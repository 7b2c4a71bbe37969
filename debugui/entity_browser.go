package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/cubekiller/ecs"
)

// EntityInfo is one row of the entity browser.
type EntityInfo struct {
	ID       ecs.EntityId
	Kind     ecs.Kind
	Body     ecs.BodyType
	Position [3]float64
	Opacity  float64
}

type entityBrowserCache struct {
	entities      []EntityInfo
	sortColumn    int
	sortAscending bool
}

// EntityBrowser lists live entities in a sortable, filterable table.
type EntityBrowser struct {
	cache              *entityBrowserCache
	selectedEntityId   ecs.EntityId
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

func NewEntityBrowser(maxEntitiesPerPage int) EntityBrowser {
	return EntityBrowser{
		cache: &entityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowser) Render(registry *ecs.Registry) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 300), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 360), imgui.CondOnce)

	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuild(registry)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	filtered := filterEntities(eb.cache.entities, eb.filterText)
	totalPages := max(1, (len(filtered)+eb.maxEntitiesPerPage-1)/eb.maxEntitiesPerPage)
	eb.currentPage = min(eb.currentPage, totalPages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 5, tableFlags, imgui.NewVec2(0, -30), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Body")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Opacity")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortEntities(eb.cache.entities, eb.cache.sortColumn, eb.cache.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		start := eb.currentPage * eb.maxEntitiesPerPage
		end := min(start+eb.maxEntitiesPerPage, len(filtered))
		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(entity.Kind.String())

			imgui.TableNextColumn()
			imgui.Text(entity.Body.String())

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f, %.1f, %.1f", entity.Position[0], entity.Position[1], entity.Position[2]))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.2f", entity.Opacity))
		}

		imgui.EndTable()
	}

	if totalPages > 1 {
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// rebuild refreshes the rows every frame; entities move continuously.
func (eb *EntityBrowser) rebuild(registry *ecs.Registry) {
	eb.cache.entities = collectEntities(registry, eb.cache.entities[:0])
	sortEntities(eb.cache.entities, eb.cache.sortColumn, eb.cache.sortAscending)
	if eb.selectedEntityId != 0 && !registry.Alive(eb.selectedEntityId) {
		eb.selectedEntityId = 0
	}
}

func collectEntities(registry *ecs.Registry, dst []EntityInfo) []EntityInfo {
	for e := range registry.All() {
		p := e.VisualPosition()
		dst = append(dst, EntityInfo{
			ID:       e.Id,
			Kind:     e.Kind,
			Body:     e.Body,
			Position: [3]float64{p.X, p.Y, p.Z},
			Opacity:  e.Opacity,
		})
	}
	return dst
}

func sortEntities(entities []EntityInfo, column int, ascending bool) {
	slices.SortStableFunc(entities, func(a, b EntityInfo) int {
		var c int
		switch column {
		case 1:
			c = strings.Compare(a.Kind.String(), b.Kind.String())
		case 2:
			c = strings.Compare(a.Body.String(), b.Body.String())
		case 3:
			c = cmp.Compare(a.Position[0]*a.Position[0]+a.Position[2]*a.Position[2],
				b.Position[0]*b.Position[0]+b.Position[2]*b.Position[2])
		case 4:
			c = cmp.Compare(a.Opacity, b.Opacity)
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if !ascending {
			return -c
		}
		return c
	})
}

// filterEntities matches the filter against the id, kind and body type.
func filterEntities(entities []EntityInfo, filterText string) []EntityInfo {
	if filterText == "" {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	filterLower := strings.ToLower(filterText)

	for _, entity := range entities {
		idStr := fmt.Sprintf("%d", entity.ID)
		if strings.Contains(idStr, filterLower) ||
			strings.Contains(entity.Kind.String(), filterLower) ||
			strings.Contains(entity.Body.String(), filterLower) {
			filtered = append(filtered, entity)
		}
	}

	return filtered
}

// Selected returns the highlighted entity, or zero.
func (eb *EntityBrowser) Selected() ecs.EntityId {
	return eb.selectedEntityId
}
