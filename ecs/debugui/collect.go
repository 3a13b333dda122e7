package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/plus3/gdxcore/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	Name           string
	Parent         ecs.EntityId
	Signature      uint64
	ComponentTypes []string
	ComponentCount int
}

// SignatureInfo groups the entities sharing a component signature.
type SignatureInfo struct {
	Signature      uint64
	ComponentTypes []string
	EntityCount    int
	ComponentCount int
}

func typeNames(types []ecs.TypeId) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = ecs.TypeName(t)
	}
	return names
}

// CollectEntities snapshots every live entity of engine, ordered by id.
func CollectEntities(engine *ecs.Engine) []EntityInfo {
	entities := make([]EntityInfo, 0, engine.Count())
	for entity := range engine.Entities() {
		info := EntityInfo{
			ID:             entity.Id(),
			Name:           entity.Name(),
			Signature:      entity.Signature(),
			ComponentTypes: typeNames(entity.Types()),
			ComponentCount: len(entity.Components()),
		}
		if parent, ok := entity.Parent(); ok {
			info.Parent = parent.Id()
		}
		entities = append(entities, info)
	}
	sort.Slice(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })
	return entities
}

// CollectSignatures groups the live entities of engine by signature, the
// most populated first.
func CollectSignatures(engine *ecs.Engine) []SignatureInfo {
	index := make(map[uint64]int)
	var signatures []SignatureInfo
	for entity := range engine.Entities() {
		signature := entity.Signature()
		if i, ok := index[signature]; ok {
			signatures[i].EntityCount++
			continue
		}
		index[signature] = len(signatures)
		names := typeNames(entity.Types())
		signatures = append(signatures, SignatureInfo{
			Signature:      signature,
			ComponentTypes: names,
			EntityCount:    1,
			ComponentCount: len(names),
		})
	}
	sort.Slice(signatures, func(i, j int) bool {
		if signatures[i].EntityCount != signatures[j].EntityCount {
			return signatures[i].EntityCount > signatures[j].EntityCount
		}
		return signatures[i].Signature < signatures[j].Signature
	})
	return signatures
}

// ComponentTypes returns the names of the component types present on any
// live entity, sorted, with their ids.
func ComponentTypes(engine *ecs.Engine) ([]string, map[string]ecs.TypeId) {
	ids := make(map[string]ecs.TypeId)
	for entity := range engine.Entities() {
		for _, t := range entity.Types() {
			ids[ecs.TypeName(t)] = t
		}
	}
	names := make([]string, 0, len(ids))
	for name := range ids {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, ids
}

// QueryResult is the outcome of running an ad hoc query against an engine.
type QueryResult struct {
	Query      ecs.EntityQuery
	Signatures []SignatureInfo
	Entities   int
}

// RunQuery matches the entities holding every include type and not every
// exclude type, by name. A name no live entity carries is an error.
func RunQuery(engine *ecs.Engine, include, exclude []string) (QueryResult, error) {
	_, ids := ComponentTypes(engine)
	resolve := func(names []string) ([]ecs.TypeId, error) {
		types := make([]ecs.TypeId, 0, len(names))
		for _, name := range names {
			id, ok := ids[name]
			if !ok {
				return nil, fmt.Errorf("%w: no live entity has %q", ecs.ErrComponentMissing, name)
			}
			types = append(types, id)
		}
		return types, nil
	}

	includeIds, err := resolve(include)
	if err != nil {
		return QueryResult{}, err
	}
	excludeIds, err := resolve(exclude)
	if err != nil {
		return QueryResult{}, err
	}

	result := QueryResult{Query: ecs.NewQuery(includeIds...).Without(excludeIds...)}
	index := make(map[uint64]int)
	for entity := range engine.Find(result.Query) {
		result.Entities++
		signature := entity.Signature()
		if i, ok := index[signature]; ok {
			result.Signatures[i].EntityCount++
			continue
		}
		index[signature] = len(result.Signatures)
		names := typeNames(entity.Types())
		result.Signatures = append(result.Signatures, SignatureInfo{
			Signature:      signature,
			ComponentTypes: names,
			EntityCount:    1,
			ComponentCount: len(names),
		})
	}
	return result, nil
}

// FilterEntities keeps the entities whose id, name, signature or component
// names contain text, case-insensitively. A non-zero signature also
// restricts the result to that signature.
func FilterEntities(entities []EntityInfo, text string, signature uint64) []EntityInfo {
	if text == "" && signature == 0 {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	filterLower := strings.ToLower(text)

	for _, entity := range entities {
		if signature != 0 && entity.Signature != signature {
			continue
		}

		if text != "" {
			idStr := fmt.Sprintf("%d", entity.ID.Index())
			sigStr := fmt.Sprintf("%x", entity.Signature)
			nameStr := strings.ToLower(entity.Name)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(sigStr, filterLower) &&
				!strings.Contains(nameStr, filterLower) &&
				!strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}
