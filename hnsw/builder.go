package hnsw

import "cmp"

// graphBuilder drives INSERT (§4.6): layer descent, connect, and prune. It
// borrows the Core it's building rather than Core holding a back-reference
// to it, avoiding the circular Core<->Selector ownership the source
// expressed (§9).
type graphBuilder[T any, D cmp.Ordered] struct {
	core *Core[T, D]
}

func (b *graphBuilder[T, D]) insert(i int) {
	g := b.core
	span := g.tracer.StartSpan("hnsw.Insert")
	defer span.Finish()
	span.SetTag("id", i)

	costs := g.costsForNode(i)
	newNode := g.nodes[i]
	epID := g.entryPoint
	epMaxLayer := g.nodes[epID].maxLayer

	// Zoom-in: narrow to a single entry point, descending from the
	// current entry point's top layer to one above the new node's own.
	for l := epMaxLayer; l > newNode.maxLayer; l-- {
		w := g.layerSearch(epID, costs, 1, l)
		epID = nearest(w, costs)
	}

	// Connect: link the new node into every layer it participates in.
	top := epMaxLayer
	if newNode.maxLayer < top {
		top = newNode.maxLayer
	}
	for l := top; l >= 0; l-- {
		w := g.layerSearch(epID, costs, g.params.EfConstruction, l)
		r := g.selector.Select(g, w, costs, l)

		for _, rID := range r {
			g.connect(i, rID, l)
			g.connect(rID, i, l)
			g.shrinkIfNeeded(rID, l)
			if costs.From(rID) < costs.From(epID) {
				epID = rID
			}
		}
	}

	if newNode.maxLayer > g.nodes[g.entryPoint].maxLayer {
		g.entryPoint = i
	}
}

// connect adds a one-directional edge from -> to at layer, leaving the
// reverse side for the caller (Connect always calls this twice, once per
// direction). Adding past a neighbor list's +1 slack is a programming
// error: shrinkIfNeeded must run before the list fills again.
func (g *Core[T, D]) connect(from, to, layer int) {
	nl := g.nodes[from].layers[layer]
	if nl.Contains(to) {
		return
	}
	if !nl.Add(to) {
		panic("hnsw: neighbor list capacity exceeded during connect")
	}
}

// shrinkIfNeeded re-selects id's neighbor list at layer down to Mmax(layer)
// when Connect has pushed it over. This is the one place HNSW's own paper
// can drop a just-added edge on the remote side — see the Open Questions in
// §9; the core makes no attempt to protect the newest edge.
func (g *Core[T, D]) shrinkIfNeeded(id, layer int) {
	nl := g.nodes[id].layers[layer]
	mmax := g.params.mmax(layer)
	if nl.Len() <= mmax {
		return
	}
	costs := g.costsForNode(id)
	selected := g.selector.Select(g, nl.IDs(), costs, layer)
	nl.Replace(selected)
}
