// Package fieldmap loads two-column on-axis field maps and resamples
// them onto the uniform grid the solver consumes. This is preprocessing
// glue: the solver itself only ever sees uniformly spaced arrays.
package fieldmap

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Load reads a two-column text file of (z, value) rows. Blank lines and
// lines starting with '#' are skipped; columns split on whitespace or
// commas. Rows are returned sorted by z.
func Load(path string) (z, v []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ','
		})
		if len(fields) < 2 {
			return nil, nil, fmt.Errorf("fieldmap: %s:%d: need two columns", path, line)
		}
		zi, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("fieldmap: %s:%d: %w", path, line, err)
		}
		vi, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("fieldmap: %s:%d: %w", path, line, err)
		}
		z = append(z, zi)
		v = append(v, vi)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	if len(z) < 2 {
		return nil, nil, fmt.Errorf("fieldmap: %s: need at least two rows", path)
	}
	if !sort.Float64sAreSorted(z) {
		idx := make([]int, len(z))
		for i := range idx {
			idx[i] = i
		}
		sort.Slice(idx, func(a, b int) bool { return z[idx[a]] < z[idx[b]] })
		zs := make([]float64, len(z))
		vs := make([]float64, len(v))
		for i, j := range idx {
			zs[i] = z[j]
			vs[i] = v[j]
		}
		z, v = zs, vs
	}
	return z, v, nil
}

// Resample evaluates the map at n uniformly spaced positions spanning
// [0, length] by linear interpolation, returning the samples and their
// spacing. Positions outside the map are zero-filled, matching the
// convention that fields vanish away from the mapped element.
func Resample(z, v []float64, length float64, n int) ([]float64, float64, error) {
	if len(z) != len(v) || len(z) < 2 {
		return nil, 0, fmt.Errorf("fieldmap: need matching arrays with at least two points")
	}
	if length <= 0 || n < 2 {
		return nil, 0, fmt.Errorf("fieldmap: need positive length and at least two samples")
	}
	h := length / float64(n-1)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = Interp(float64(i)*h, z, v)
	}
	return out, h, nil
}

// Interp linearly interpolates the map at x, returning 0 outside its
// range. The z array must be sorted ascending.
func Interp(x float64, z, v []float64) float64 {
	if x < z[0] || x > z[len(z)-1] {
		return 0
	}
	i := sort.SearchFloat64s(z, x)
	if i < len(z) && z[i] == x {
		return v[i]
	}
	// z[i-1] < x < z[i]
	t := (x - z[i-1]) / (z[i] - z[i-1])
	return v[i-1] + t*(v[i]-v[i-1])
}
