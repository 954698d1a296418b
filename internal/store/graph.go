package store

import "sort"

// Graph helpers treat a table as node storage and a caller-supplied adjacency
// function as the edge relation. Adjacency results may reference ids with no
// row (dangling refs); those are skipped, matching Ref resolution semantics.
// Neighbors are visited in sorted id order for deterministic traversal.

// AdjacencyFunc returns the neighbor ids of a node.
type AdjacencyFunc[T any] func(EntityID, T) []EntityID

// TraverseBFS walks the graph breadth-first from start, invoking visit for
// each reachable node. Visit returns false to stop the traversal.
// The start node must exist.
func TraverseBFS[T any](s Store, start EntityID, adj AdjacencyFunc[T], visit func(EntityID, T) bool) error {
	if _, err := Entry[T](s, start); err != nil {
		return err
	}
	seen := map[EntityID]bool{start: true}
	queue := []EntityID{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		value, ok := Lookup[T](s, id)
		if !ok {
			continue
		}
		if !visit(id, value) {
			return nil
		}
		for _, next := range sortedNeighbors(s, id, value, adj) {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return nil
}

// FindPath returns a shortest path from one node to another, inclusive of
// both endpoints. The bool result reports whether any path exists; both
// endpoints must have rows.
func FindPath[T any](s Store, from, to EntityID, adj AdjacencyFunc[T]) ([]EntityID, bool, error) {
	if _, err := Entry[T](s, from); err != nil {
		return nil, false, err
	}
	if _, err := Entry[T](s, to); err != nil {
		return nil, false, err
	}
	if from == to {
		return []EntityID{from}, true, nil
	}
	parent := map[EntityID]EntityID{from: from}
	queue := []EntityID{from}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		value, ok := Lookup[T](s, id)
		if !ok {
			continue
		}
		for _, next := range sortedNeighbors(s, id, value, adj) {
			if _, visited := parent[next]; visited {
				continue
			}
			parent[next] = id
			if next == to {
				return rebuildPath(parent, from, to), true, nil
			}
			queue = append(queue, next)
		}
	}
	return nil, false, nil
}

// ConnectedComponents partitions the table into weakly connected components.
// Edges are treated as undirected for grouping. Components are ordered by
// their smallest member id; members are sorted.
func ConnectedComponents[T any](s Store, adj AdjacencyFunc[T]) ([][]EntityID, error) {
	// Build the undirected neighbor sets up front.
	undirected := make(map[EntityID][]EntityID)
	err := EachEntry(s, func(id EntityID, value T) bool {
		for _, next := range sortedNeighbors(s, id, value, adj) {
			undirected[id] = append(undirected[id], next)
			undirected[next] = append(undirected[next], id)
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	seen := make(map[EntityID]bool)
	var components [][]EntityID
	err = EachEntry(s, func(id EntityID, _ T) bool {
		if seen[id] {
			return true
		}
		var members []EntityID
		queue := []EntityID{id}
		seen[id] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			members = append(members, cur)
			for _, next := range undirected[cur] {
				if !seen[next] {
					seen[next] = true
					queue = append(queue, next)
				}
			}
		}
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
		components = append(components, members)
		return true
	})
	if err != nil {
		return nil, err
	}
	return components, nil
}

// Degree reports the number of resolvable out-edges of a node.
func Degree[T any](s Store, id EntityID, adj AdjacencyFunc[T]) (int, error) {
	value, err := Entry[T](s, id)
	if err != nil {
		return 0, err
	}
	return len(sortedNeighbors(s, id, value, adj)), nil
}

// sortedNeighbors filters adjacency output down to ids with rows, sorted.
func sortedNeighbors[T any](s Store, id EntityID, value T, adj AdjacencyFunc[T]) []EntityID {
	raw := adj(id, value)
	neighbors := make([]EntityID, 0, len(raw))
	for _, next := range raw {
		if Exists[T](s, next) {
			neighbors = append(neighbors, next)
		}
	}
	sort.Slice(neighbors, func(i, j int) bool { return neighbors[i] < neighbors[j] })
	return neighbors
}

// rebuildPath walks parent pointers back from to, reversing into path order.
func rebuildPath(parent map[EntityID]EntityID, from, to EntityID) []EntityID {
	var reversed []EntityID
	for cur := to; ; cur = parent[cur] {
		reversed = append(reversed, cur)
		if cur == from {
			break
		}
	}
	path := make([]EntityID, len(reversed))
	for i, id := range reversed {
		path[len(path)-1-i] = id
	}
	return path
}
