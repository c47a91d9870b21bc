package forecast

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// rcond is the relative singular-value cutoff used to decide the numerical rank.
const rcond = 1e-10

// linearModel is y ≈ coef·x + intercept.
type linearModel struct {
	coef      []float64
	intercept float64
}

// fitOLS fits an ordinary least-squares model with intercept. Features and target
// are centered first; the centered system is solved through a truncated SVD so
// collinear or constant columns get the minimum-norm coefficients.
func fitOLS(x [][]float64, y []float64) (*linearModel, error) {
	n := len(x)
	if n == 0 || n != len(y) {
		return nil, errors.New("ols: feature and target length mismatch")
	}
	p := len(x[0])

	xMean := make([]float64, p)
	yMean := 0.0
	for i, row := range x {
		for j, v := range row {
			xMean[j] += v
		}
		yMean += y[i]
	}
	for j := range xMean {
		xMean[j] /= float64(n)
	}
	yMean /= float64(n)

	a := mat.NewDense(n, p, nil)
	b := mat.NewVecDense(n, nil)
	for i, row := range x {
		for j, v := range row {
			a.Set(i, j, v-xMean[j])
		}
		b.SetVec(i, y[i]-yMean)
	}

	coef := make([]float64, p)
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, errors.New("ols: svd factorization failed")
	}
	if rank := svd.Rank(rcond); rank > 0 {
		w := mat.NewVecDense(p, nil)
		svd.SolveVecTo(w, b, rank)
		for j := range coef {
			coef[j] = w.AtVec(j)
		}
	}

	intercept := yMean
	for j, c := range coef {
		intercept -= c * xMean[j]
	}
	return &linearModel{coef: coef, intercept: intercept}, nil
}

func (m *linearModel) predict(row []float64) float64 {
	v := m.intercept
	for j, c := range m.coef {
		v += c * row[j]
	}
	return v
}

// r2 is the coefficient of determination of m over (x, y). A constant target
// scores 1 when fitted exactly and 0 otherwise.
func (m *linearModel) r2(x [][]float64, y []float64) float64 {
	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))

	var ssRes, ssTot float64
	for i, row := range x {
		d := y[i] - m.predict(row)
		ssRes += d * d
		t := y[i] - mean
		ssTot += t * t
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}
