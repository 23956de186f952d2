package core

func hasClientSibling(components []Component, pascalName string) bool {
	for _, other := range components {
		if other.PascalName == pascalName && other.Mode == ModeClient {
			return true
		}
	}
	return false
}

// IsIsland reports whether c renders as an island. Server components with no
// client counterpart are still embeddable, so they become islands too.
func IsIsland(c Component, components []Component) bool {
	if c.Island {
		return true
	}
	return c.Mode == ModeServer && !hasClientSibling(components, c.PascalName)
}

func IsServerOnly(c Component, components []Component, placeholderPath string) bool {
	if c.Mode != ModeServer {
		return false
	}
	if placeholderPath != "" && c.FilePath == placeholderPath {
		return false
	}
	return !hasClientSibling(components, c.PascalName)
}

func Islands(components []Component) []Component {
	var islands []Component
	for _, c := range components {
		if IsIsland(c, components) {
			islands = append(islands, c)
		}
	}
	return islands
}

// NonIslands keeps the island flag as the only criterion; server-only
// components stay in the list and are typed as islands instead.
func NonIslands(components []Component) []Component {
	result := make([]Component, 0, len(components))
	for _, c := range components {
		if !c.Island {
			result = append(result, c)
		}
	}
	return result
}

type GlobalBuckets struct {
	Lazy []string
	Sync []string
}

func (b GlobalBuckets) Empty() bool {
	return len(b.Lazy) == 0 && len(b.Sync) == 0
}

// PartitionGlobals splits global components by registration strategy,
// de-duplicating pascal names in first-seen order.
func PartitionGlobals(components []Component) GlobalBuckets {
	var buckets GlobalBuckets
	seenLazy := make(map[string]bool)
	seenSync := make(map[string]bool)

	for _, c := range components {
		switch c.Global {
		case GlobalSync:
			if !seenSync[c.PascalName] {
				seenSync[c.PascalName] = true
				buckets.Sync = append(buckets.Sync, c.PascalName)
			}
		case GlobalLazy:
			if !seenLazy[c.PascalName] {
				seenLazy[c.PascalName] = true
				buckets.Lazy = append(buckets.Lazy, c.PascalName)
			}
		}
	}

	return buckets
}

func LazyName(pascalName string) string {
	return "Lazy" + pascalName
}
