package train

import (
	"math"
	"math/rand"

	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

// Split shuffles the positions 0..n-1 with seed and returns the train and
// test positions. The test part holds ceil(n*testSize) rows; both parts are
// non-empty.
func Split(n int, testSize float64, seed int64) (trainIdx, testIdx []int, err error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, errors.NewValidationError("test_size", "must be in (0, 1)", testSize)
	}
	nTest := int(math.Ceil(float64(n) * testSize))
	if n < 2 || nTest >= n {
		return nil, nil, errors.NewValidationError("samples", "too few rows to split", n)
	}

	indices := rand.New(rand.NewSource(seed)).Perm(n)
	testIdx = append([]int(nil), indices[:nTest]...)
	trainIdx = append([]int(nil), indices[nTest:]...)
	return trainIdx, testIdx, nil
}
