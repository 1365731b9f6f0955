package sinew

import (
	"fmt"
	"sort"
)

// bucket is every element of one layer that writes the same node.
type bucket struct {
	node     *Node
	nodeIdx  int // index into System.touched
	elements []Element
}

// layer is one execution phase. Buckets are ordered shallowest node first.
type layer struct {
	number   int
	buckets  []bucket
	elements []Element
}

// buildLayers partitions elements (already in group order) into the
// contiguous layer range [min, max]. Numbers without elements produce empty
// layers.
func buildLayers(elements []Element) []layer {
	if len(elements) == 0 {
		return nil
	}
	minL, maxL := elements[0].Base().Layer, elements[0].Base().Layer
	for _, e := range elements[1:] {
		l := e.Base().Layer
		if l < minL {
			minL = l
		}
		if l > maxL {
			maxL = l
		}
	}

	layers := make([]layer, maxL-minL+1)
	index := make([]map[*Node]int, len(layers))
	for i := range layers {
		layers[i].number = minL + i
		index[i] = make(map[*Node]int)
	}

	for _, e := range elements {
		li := e.Base().Layer - minL
		l := &layers[li]
		l.elements = append(l.elements, e)
		for _, n := range e.Base().Nodes() {
			bi, ok := index[li][n]
			if !ok {
				bi = len(l.buckets)
				index[li][n] = bi
				l.buckets = append(l.buckets, bucket{node: n, nodeIdx: -1})
			}
			b := &l.buckets[bi]
			if !containsElement(b.elements, e) {
				b.elements = append(b.elements, e)
			}
		}
	}

	for i := range layers {
		sortBuckets(layers[i].buckets)
	}
	return layers
}

// sortBuckets orders buckets ancestors first and each bucket's elements by
// owning group. Both sorts are stable: siblings and unrelated subtrees at the
// same depth keep discovery order.
func sortBuckets(buckets []bucket) {
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].node.Depth() < buckets[j].node.Depth()
	})
	for i := range buckets {
		els := buckets[i].elements
		sort.SliceStable(els, func(a, b int) bool {
			return els[a].Base().group < els[b].Base().group
		})
	}
}

func containsElement(list []Element, e Element) bool {
	for _, x := range list {
		if x == e {
			return true
		}
	}
	return false
}

// layerIndex maps a layer number to its position in the execution order.
// A miss means the plan was built inconsistently and is fatal.
func (s *System) layerIndex(number int) int {
	i := number - s.minLayer
	if i < 0 || i >= len(s.layers) || s.layers[i].number != number {
		panic(fmt.Sprintf("sinew: layer %d missing from execution order", number))
	}
	return i
}
