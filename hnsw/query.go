package hnsw

import "sort"

// Knn implements K-NN-SEARCH (§4.7): descend from the entry point one
// nearest-id at a time down to layer 1, then expand the bottom layer with
// ef = max(EfSearch, k) and return the k nearest. The returned slice is
// sorted by ascending distance for caller convenience, though callers that
// only need the unordered set may ignore the order.
func (g *Core[T, D]) Knn(query T, k int) ([]SearchResult[T, D], error) {
	if !g.built {
		return nil, newError(NotBuilt, "Build has not completed")
	}
	if k <= 0 {
		return nil, newError(InvalidParameters, "k must be positive, got %d", k)
	}
	if len(g.items) == 0 {
		return nil, nil // EmptyIndex: not an error, see §7.
	}

	span := g.tracer.StartSpan("hnsw.Knn")
	defer span.Finish()
	span.SetTag("k", k)

	costs := g.costsForQuery(query)
	epID := g.entryPoint
	for l := g.nodes[epID].maxLayer; l >= 1; l-- {
		w := g.layerSearch(epID, costs, 1, l)
		epID = nearest(w, costs)
	}

	ef := g.params.EfSearch
	if ef < k {
		ef = k
	}
	w := g.layerSearch(epID, costs, ef, 0)

	out := make([]SearchResult[T, D], 0, len(w))
	for _, id := range w {
		out = append(out, SearchResult[T, D]{ID: id, Item: g.items[id], Distance: costs.From(id)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	if len(out) > k {
		out = out[:k]
	}

	g.logger.Debug().Int("k", k).Int("ef", ef).Int("results", len(out)).Msg("knn query")
	return out, nil
}
