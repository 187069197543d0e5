package preprocessing

import (
	"math"
	"sort"
)

// quantile は線形補間による分位点を返す（Hyndman-Fan type 7、numpy のデフォルト）。
// values は変更しない。空の場合は NaN を返す。
func quantile(values []float64, q float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if n == 1 {
		return sorted[0]
	}

	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// quartiles は第1・第3四分位点を返す
func quartiles(values []float64) (q1, q3 float64) {
	return quantile(values, 0.25), quantile(values, 0.75)
}
