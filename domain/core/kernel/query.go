package kernel

import (
	"uavi-backend/domain/core/entities"
)

// Query returns every valid node whose content contains text as a
// case-insensitive substring, optionally restricted to one kind. Results
// follow repository insertion order; there is no ranking. This is a
// keyword placeholder for a future semantic search.
func (k *Kernel) Query(text string, kindFilter *entities.NodeKind) []*entities.Node {
	k.mu.RLock()
	defer k.mu.RUnlock()

	matches := []*entities.Node{}
	for _, node := range k.graph.GetNodes() {
		if !node.IsValid() {
			continue
		}
		if kindFilter != nil && node.Kind() != *kindFilter {
			continue
		}
		if !node.Content().Matches(text) {
			continue
		}
		matches = append(matches, node)
	}
	return matches
}
