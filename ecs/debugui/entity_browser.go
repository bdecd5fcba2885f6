package debugui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/jmge/ecs"
)

type EntityInfo struct {
	Index          uint32
	ComponentTypes []string
}

type entityBrowserCache struct {
	entities      []EntityInfo
	liveCount     int
	indexCount    int
	occupied      int
	sortColumn    int
	sortAscending bool
}

func newEntityBrowser(maxEntitiesPerPage int) *entityBrowser {
	return &entityBrowser{
		cache: &entityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
			liveCount:     -1,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

// Render draws the browser and returns the selected entity's index, if any.
func (eb *entityBrowser) Render(w *ecs.World) (uint32, bool) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return eb.selectedIndex, eb.hasSelection
	}

	eb.rebuildCacheIfNeeded(w)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterComponent = ""
	}
	imgui.SameLine()
	if imgui.Button("Refresh") {
		eb.cache.entities = nil
		eb.rebuildCacheIfNeeded(w)
	}

	if imgui.TreeNodeStr("Filter by component") {
		for _, t := range w.ComponentTypes() {
			name := ecs.ComponentName(t)
			if imgui.SelectableBoolV(name, eb.filterComponent == name, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
				if eb.filterComponent == name {
					eb.filterComponent = ""
				} else {
					eb.filterComponent = name
				}
				eb.currentPage = 0
			}
		}
		imgui.TreePop()
	}

	filteredEntities := eb.filteredEntities()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Index")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
			filteredEntities = eb.filteredEntities()
		}

		startIdx, endIdx := eb.pageBounds(len(filteredEntities))
		for _, entity := range filteredEntities[startIdx:endIdx] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.hasSelection && eb.selectedIndex == entity.Index
			if imgui.SelectableBoolV(strconv.FormatUint(uint64(entity.Index), 10), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedIndex = entity.Index
				eb.hasSelection = true
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(entity.ComponentTypes)))
		}

		imgui.EndTable()
	}

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := (len(filteredEntities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
	return eb.selectedIndex, eb.hasSelection
}

func (eb *entityBrowser) pageBounds(total int) (int, int) {
	start := eb.currentPage * eb.maxEntitiesPerPage
	if start > total {
		eb.currentPage = 0
		start = 0
	}
	return start, min(start+eb.maxEntitiesPerPage, total)
}

// rebuildCacheIfNeeded rescans the World when the number of live entities,
// allocated indices or filled slots has changed since the last scan.
func (eb *entityBrowser) rebuildCacheIfNeeded(w *ecs.World) {
	stats := w.CollectStats()
	occupied := 0
	for _, cs := range stats.ComponentBreakdown {
		occupied += cs.Occupied
	}

	if eb.cache.liveCount != stats.LiveEntityCount ||
		eb.cache.indexCount != stats.IndexCount ||
		eb.cache.occupied != occupied {
		eb.cache.entities = nil
		eb.cache.liveCount = stats.LiveEntityCount
		eb.cache.indexCount = stats.IndexCount
		eb.cache.occupied = occupied
	}

	if eb.cache.entities == nil {
		eb.cache.entities = collectEntityInfo(w)
		eb.sortEntities()
	}

	if eb.hasSelection {
		if _, ok := w.EntityAt(eb.selectedIndex); !ok {
			eb.hasSelection = false
		}
	}
}

func collectEntityInfo(w *ecs.World) []EntityInfo {
	entities := make([]EntityInfo, 0, 1024)
	for e := range w.Entities() {
		types := w.ComponentsOf(e)
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = ecs.ComponentName(t)
		}
		entities = append(entities, EntityInfo{
			Index:          e.Index(),
			ComponentTypes: names,
		})
	}
	return entities
}

func (eb *entityBrowser) sortEntities() {
	sort.SliceStable(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		var less bool

		switch eb.cache.sortColumn {
		case 1:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 2:
			less = len(a.ComponentTypes) < len(b.ComponentTypes)
		default:
			less = a.Index < b.Index
		}

		if !eb.cache.sortAscending {
			return !less
		}
		return less
	})
}

func (eb *entityBrowser) filteredEntities() []EntityInfo {
	if eb.filterText == "" && eb.filterComponent == "" {
		return eb.cache.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		if eb.filterComponent != "" && !hasComponentNamed(entity, eb.filterComponent) {
			continue
		}

		if eb.filterText != "" {
			idStr := strconv.FormatUint(uint64(entity.Index), 10)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

func hasComponentNamed(entity EntityInfo, name string) bool {
	for _, t := range entity.ComponentTypes {
		if t == name {
			return true
		}
	}
	return false
}
