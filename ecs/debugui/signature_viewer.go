package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/gdxcore/ecs"
)

type SignatureViewerCache struct {
	signatures []SignatureInfo
	lastTick   uint64
	valid      bool
}

func NewSignatureViewerComponent() SignatureViewerComponent {
	return SignatureViewerComponent{
		cache:         &SignatureViewerCache{},
		sortColumn:    3,
		sortAscending: false,
	}
}

// Render draws the signature table. It returns the signature clicked this
// frame, or nil.
func (sv *SignatureViewerComponent) Render(engine *ecs.Engine) *uint64 {
	if !imgui.BeginV("Signature Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	sv.rebuildCacheIfNeeded(engine)

	maxEntityCount := 0
	for _, sig := range sv.cache.signatures {
		maxEntityCount = max(maxEntityCount, sig.EntityCount)
	}

	var clicked *uint64

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("SignatureTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Signature")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Comp Count")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.sortColumn = int(spec.ColumnIndex())
			sv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sv.sortSignatures()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, sig := range sv.cache.signatures {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := sv.selectedSig == sig.Signature
			if imgui.SelectableBoolV(fmt.Sprintf("%016x", sig.Signature), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				picked := sig.Signature
				sv.selectedSig = picked
				clicked = &picked
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(sig.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sig.ComponentCount))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sig.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(sig.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	if sv.selectedSig != 0 && imgui.Button("Clear Selection") {
		sv.selectedSig = 0
		none := uint64(0)
		clicked = &none
	}

	imgui.End()
	return clicked
}

func (sv *SignatureViewerComponent) rebuildCacheIfNeeded(engine *ecs.Engine) {
	ticks := engine.Stats().Ticks
	if sv.cache.valid && sv.cache.lastTick == ticks {
		return
	}
	sv.cache.signatures = CollectSignatures(engine)
	sv.cache.lastTick = ticks
	sv.cache.valid = true
	sv.sortSignatures()
}

func (sv *SignatureViewerComponent) sortSignatures() {
	sort.SliceStable(sv.cache.signatures, func(i, j int) bool {
		a, b := sv.cache.signatures[i], sv.cache.signatures[j]
		var less bool

		switch sv.sortColumn {
		case 0:
			less = a.Signature < b.Signature
		case 1:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 2:
			less = a.ComponentCount < b.ComponentCount
		default:
			less = a.EntityCount < b.EntityCount
		}

		if !sv.sortAscending {
			return !less
		}
		return less
	})
}
