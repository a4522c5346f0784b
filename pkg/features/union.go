package features

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Union concatenates the outputs of its member transformers column-wise,
// in member order.
type Union struct {
	Members []Transformer
}

func NewUnion(members ...Transformer) *Union {
	return &Union{Members: members}
}

func (u *Union) NumFeatures() int {
	total := 0
	for _, m := range u.Members {
		total += m.NumFeatures()
	}
	return total
}

func (u *Union) Fit(texts []string) error {
	for _, m := range u.Members {
		if err := m.Fit(texts); err != nil {
			return err
		}
	}
	return nil
}

func (u *Union) Transform(texts []string) (*mat.Dense, error) {
	if len(u.Members) == 0 {
		return nil, fmt.Errorf("feature union has no members")
	}

	out := mat.NewDense(len(texts), u.NumFeatures(), nil)
	offset := 0
	for _, m := range u.Members {
		block, err := m.Transform(texts)
		if err != nil {
			return nil, err
		}
		rows, cols := block.Dims()
		if rows != len(texts) {
			return nil, fmt.Errorf("feature block has %d rows, expected %d", rows, len(texts))
		}
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				out.Set(i, offset+j, block.At(i, j))
			}
		}
		offset += cols
	}
	return out, nil
}
