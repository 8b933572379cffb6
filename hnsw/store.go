package hnsw

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"

	"github.com/opentracing/opentracing-go"
	"github.com/rs/zerolog"
)

// The teacher's store.go round-tripped the whole HNSW struct through
// encoding/json and encoding/gob, which can't express the BFS-ordered,
// layer-major adjacency contract §6 requires and would serialize the
// unexported heap/selector plumbing besides. This adopts the
// length-prefixed binary format §9 calls for instead: a 4-byte magic, a
// version, and then every node's adjacency in BFS order from the entry
// point. Items are never persisted — callers must supply the same ordered
// items at Deserialize time.

var storeMagic = [4]byte{'H', 'N', 'S', '1'}

const storeVersion uint32 = 1

// Serialize round-trips (entryPointId, entryPointMaxLayer, per-layer
// adjacency) visited in BFS order from the entry point, per §6.
func (g *Core[T, D]) Serialize() ([]byte, error) {
	if !g.built {
		return nil, newError(NotBuilt, "Build has not completed")
	}

	var buf bytes.Buffer
	write := func(v any) error { return binary.Write(&buf, binary.LittleEndian, v) }

	if _, err := buf.Write(storeMagic[:]); err != nil {
		return nil, err
	}
	if err := write(storeVersion); err != nil {
		return nil, err
	}

	n := len(g.items)
	if err := write(int32(n)); err != nil {
		return nil, err
	}
	if n == 0 {
		return buf.Bytes(), nil
	}

	if err := write(int32(g.entryPoint)); err != nil {
		return nil, err
	}
	if err := write(int32(g.nodes[g.entryPoint].maxLayer)); err != nil {
		return nil, err
	}

	order := g.bfsOrder()
	if len(order) < n {
		// Deserialize reads exactly n node records; append any node the
		// layer-0 BFS did not reach, in id order.
		seen := make([]bool, n)
		for _, id := range order {
			seen[id] = true
		}
		for id := 0; id < n; id++ {
			if !seen[id] {
				order = append(order, id)
			}
		}
	}
	for _, id := range order {
		if err := write(int32(id)); err != nil {
			return nil, err
		}
	}
	for _, id := range order {
		nd := g.nodes[id]
		if err := write(int32(nd.maxLayer)); err != nil {
			return nil, err
		}
		for l := 0; l <= nd.maxLayer; l++ {
			ids := nd.layers[l].IDs()
			if err := write(int32(len(ids))); err != nil {
				return nil, err
			}
			for _, nb := range ids {
				if err := write(int32(nb)); err != nil {
					return nil, err
				}
			}
		}
	}
	return buf.Bytes(), nil
}

// bfsOrder walks layer 0 — the layer every node inhabits — breadth-first
// from the entry point along each node's outgoing layer-0 edges. A node
// that no such path reaches is not included.
func (g *Core[T, D]) bfsOrder() []int {
	order := make([]int, 0, len(g.nodes))
	visited := make([]bool, len(g.nodes))
	queue := []int{g.entryPoint}
	visited[g.entryPoint] = true
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, nb := range g.nodes[id].layers[0].IDs() {
			if !visited[nb] {
				visited[nb] = true
				queue = append(queue, nb)
			}
		}
	}
	return order
}

// Deserialize rebuilds a Core from Serialize's output. items must be the
// same ordered sequence supplied to the original Build; distance and
// params configure behavior for subsequent Knn calls exactly as Build would.
func Deserialize[T any, D cmp.Ordered](items []T, distance DistanceFunc[T, D], data []byte, params Parameters) (*Core[T, D], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.EfSearch <= 0 {
		params.EfSearch = 50
	}

	r := bytes.NewReader(data)
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("hnsw: read magic: %w", err)
	}
	if magic != storeMagic {
		return nil, fmt.Errorf("hnsw: bad magic %q", magic[:])
	}
	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("hnsw: read version: %w", err)
	}
	if version != storeVersion {
		return nil, fmt.Errorf("hnsw: unsupported format version %d", version)
	}

	var n int32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("hnsw: read item count: %w", err)
	}
	if int(n) != len(items) {
		return nil, fmt.Errorf("hnsw: serialized item count %d does not match %d supplied items", n, len(items))
	}

	g := &Core[T, D]{
		items:      items,
		distance:   distance,
		params:     params,
		entryPoint: -1,
		rng:        rand.New(rand.NewSource(1)),
		tracer:     opentracing.NoopTracer{},
		logger:     zerolog.Nop(),
	}
	switch params.NeighborHeuristic {
	case SelectSimple:
		g.selector = simpleSelector[T, D]{}
	default:
		g.selector = heuristicSelector[T, D]{}
	}
	if n == 0 {
		g.built = true
		return g, nil
	}

	var entryID, entryMaxLayer int32
	if err := binary.Read(r, binary.LittleEndian, &entryID); err != nil {
		return nil, fmt.Errorf("hnsw: read entry point: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &entryMaxLayer); err != nil {
		return nil, fmt.Errorf("hnsw: read entry max layer: %w", err)
	}

	order := make([]int32, n)
	for i := range order {
		if err := binary.Read(r, binary.LittleEndian, &order[i]); err != nil {
			return nil, fmt.Errorf("hnsw: read bfs order: %w", err)
		}
	}

	g.nodes = make([]*node, n)
	for _, id32 := range order {
		id := int(id32)
		var maxLayer int32
		if err := binary.Read(r, binary.LittleEndian, &maxLayer); err != nil {
			return nil, fmt.Errorf("hnsw: read node %d max layer: %w", id, err)
		}
		nd := newNode(id, int(maxLayer), params)
		for l := 0; l <= int(maxLayer); l++ {
			var cnt int32
			if err := binary.Read(r, binary.LittleEndian, &cnt); err != nil {
				return nil, fmt.Errorf("hnsw: read node %d layer %d adjacency count: %w", id, l, err)
			}
			ids := make([]int, cnt)
			for k := range ids {
				var nb int32
				if err := binary.Read(r, binary.LittleEndian, &nb); err != nil {
					return nil, fmt.Errorf("hnsw: read node %d layer %d neighbor: %w", id, l, err)
				}
				ids[k] = int(nb)
			}
			nd.layers[l].Replace(ids)
		}
		g.nodes[id] = nd
	}

	g.entryPoint = int(entryID)
	if g.nodes[g.entryPoint].maxLayer != int(entryMaxLayer) {
		return nil, fmt.Errorf("hnsw: entry point max layer mismatch after deserialize")
	}
	g.built = true
	return g, nil
}
