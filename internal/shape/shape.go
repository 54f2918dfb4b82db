// Package shape assembles flat draw buffers into nested expression lists.
package shape

import (
	"fmt"
	"slices"

	"symrand/domain/core"
	"symrand/domain/expr"
)

// Array is a row-major buffer with an explicit shape.
type Array[T any] struct {
	Shape []int
	Data  []T
}

// Size returns the number of elements a buffer of the given shape holds.
// The empty shape holds one element.
func Size(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// NewArray wraps data with shape, checking that the sizes agree.
func NewArray[T any](shape []int, data []T) (Array[T], error) {
	for _, d := range shape {
		if d < 0 {
			return Array[T]{}, core.NewShapeError(fmt.Sprint(shape))
		}
	}
	if len(data) != Size(shape) {
		return Array[T]{}, fmt.Errorf("%w: shape %v needs %d elements, got %d",
			core.ErrInvalidShape, shape, Size(shape), len(data))
	}
	return Array[T]{Shape: append([]int(nil), shape...), Data: data}, nil
}

// Stack pairs two arrays of equal shape along a new trailing axis of length 2.
func Stack[T any](a, b Array[T]) (Array[T], error) {
	if !slices.Equal(a.Shape, b.Shape) {
		return Array[T]{}, fmt.Errorf("%w: cannot stack %v with %v", core.ErrInvalidShape, a.Shape, b.Shape)
	}
	data := make([]T, 0, 2*len(a.Data))
	for i := range a.Data {
		data = append(data, a.Data[i], b.Data[i])
	}
	shape := append(append([]int(nil), a.Shape...), 2)
	return Array[T]{Shape: shape, Data: data}, nil
}

// Build partitions a along its leading axes until depth levels of nesting
// exist and hands every terminal block to leaf. A depth of len(a.Shape)
// gives one-element blocks; a smaller depth gives blocks spanning the
// remaining axes.
func Build[T any](a Array[T], depth int, leaf func([]T) expr.Expr) (expr.Expr, error) {
	if depth < 0 || depth > len(a.Shape) {
		return nil, fmt.Errorf("%w: depth %d for shape %v", core.ErrInvalidShape, depth, a.Shape)
	}
	if len(a.Data) != Size(a.Shape) {
		return nil, fmt.Errorf("%w: shape %v does not match %d elements", core.ErrInvalidShape, a.Shape, len(a.Data))
	}
	return build(a.Shape[:depth], Size(a.Shape[depth:]), a.Data, leaf), nil
}

// BuildScalar is Build at full depth with a per-element leaf.
func BuildScalar[T any](a Array[T], leaf func(T) expr.Expr) (expr.Expr, error) {
	return Build(a, len(a.Shape), func(block []T) expr.Expr { return leaf(block[0]) })
}

func build[T any](dims []int, block int, data []T, leaf func([]T) expr.Expr) expr.Expr {
	if len(dims) == 0 {
		return leaf(data[:block:block])
	}
	stride := block * Size(dims[1:])
	leaves := make([]expr.Expr, dims[0])
	for i := range leaves {
		leaves[i] = build(dims[1:], block, data[i*stride:(i+1)*stride], leaf)
	}
	return expr.List(leaves...)
}
