package ecs

import (
	"sort"
)

// ManagerStats is a point-in-time summary of an EntityManager.
type ManagerStats struct {
	EntityCount        int
	ComponentTypeCount int
	LiveQueryCount     int
	SingletonCount     int

	CacheBuilds     uint64
	CacheEvictions  uint64
	CacheUpdates    uint64
	EntitiesCreated uint64
	EntitiesDestroy uint64

	Tables         []TableStats
	Queries        []QueryStats
	SingletonTypes []string
}

// TableStats describes one component table.
type TableStats struct {
	Type ComponentType
	Name string
	Size int
}

// QueryStats describes one live query cache.
type QueryStats struct {
	ID      QueryId
	Matches int
	Refs    int
	AllOf   []string
	AnyOf   []string
	NoneOf  []string
}

// CollectStats gathers statistics about tables, live query caches and singletons.
func (m *EntityManager) CollectStats() *ManagerStats {
	stats := &ManagerStats{
		EntityCount:        m.allEntities.Len(),
		ComponentTypeCount: m.registry.Len(),
		LiveQueryCount:     m.caches.Len(),
		SingletonCount:     len(m.singletons),
		CacheBuilds:        m.stats.cacheBuilds,
		CacheEvictions:     m.stats.cacheEvictions,
		CacheUpdates:       m.stats.cacheUpdates,
		EntitiesCreated:    uint64(m.nextEntity - 1),
		EntitiesDestroy:    m.stats.destroyed,
		Tables:             make([]TableStats, 0, m.registry.Len()),
		Queries:            make([]QueryStats, 0, m.caches.Len()),
		SingletonTypes:     make([]string, 0, len(m.singletons)),
	}

	for i, t := range m.registry.tables {
		ct := ComponentType(i)
		stats.Tables = append(stats.Tables, TableStats{
			Type: ct,
			Name: m.registry.Name(ct),
			Size: t.len(),
		})
	}

	for _, c := range m.caches.Values() {
		stats.Queries = append(stats.Queries, QueryStats{
			ID:      c.id,
			Matches: c.matches.Len(),
			Refs:    c.refs,
			AllOf:   m.typeNames(c.desc.allOf),
			AnyOf:   m.typeNames(c.desc.anyOf),
			NoneOf:  m.typeNames(c.desc.noneOf),
		})
	}
	sort.Slice(stats.Queries, func(i, j int) bool {
		return stats.Queries[i].ID < stats.Queries[j].ID
	})

	for t := range m.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}

func (m *EntityManager) typeNames(types []ComponentType) []string {
	names := make([]string, len(types))
	for i, ct := range types {
		names[i] = m.registry.Name(ct)
	}
	return names
}
