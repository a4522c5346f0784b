package features

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// TfidfTransformer reweights a count matrix with smoothed inverse document
// frequencies and L2-normalizes each row. With UseIDF disabled only the
// normalization is applied.
type TfidfTransformer struct {
	UseIDF bool
	IDF    []float64
}

func NewTfidfTransformer(useIDF bool) *TfidfTransformer {
	return &TfidfTransformer{UseIDF: useIDF}
}

// Fit computes the smoothed IDF vector from a count matrix:
// idf = ln((1+n)/(1+df)) + 1.
func (t *TfidfTransformer) Fit(counts *mat.Dense) error {
	rows, cols := counts.Dims()
	if rows == 0 {
		return fmt.Errorf("cannot fit tf-idf on zero documents")
	}

	t.IDF = make([]float64, cols)
	for j := 0; j < cols; j++ {
		df := 0
		for i := 0; i < rows; i++ {
			if counts.At(i, j) > 0 {
				df++
			}
		}
		t.IDF[j] = math.Log(float64(1+rows)/float64(1+df)) + 1
	}
	return nil
}

// Transform applies the IDF weights when enabled, then L2-normalizes rows.
func (t *TfidfTransformer) Transform(counts *mat.Dense) (*mat.Dense, error) {
	rows, cols := counts.Dims()
	if t.UseIDF {
		if t.IDF == nil {
			return nil, fmt.Errorf("tf-idf transformer is not fitted")
		}
		if len(t.IDF) != cols {
			return nil, fmt.Errorf("tf-idf fitted on %d features, got %d", len(t.IDF), cols)
		}
	}

	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		var norm float64
		for j := 0; j < cols; j++ {
			v := counts.At(i, j)
			if t.UseIDF {
				v *= t.IDF[j]
			}
			out.Set(i, j, v)
			norm += v * v
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := 0; j < cols; j++ {
				out.Set(i, j, out.At(i, j)/norm)
			}
		}
	}
	return out, nil
}
