// Package palette derives a small ordered set of representative colors from a
// raster image, rendered as lowercase #rrggbb strings for the design system.
package palette

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Method selects the quantization strategy.
type Method int

const (
	MethodDominant Method = iota
	MethodKMeans
)

func (m Method) String() string {
	switch m {
	case MethodKMeans:
		return "kmeans"
	default:
		return "dominant"
	}
}

// ParseMethod maps a config string to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "", "dominant":
		return MethodDominant, nil
	case "kmeans":
		return MethodKMeans, nil
	default:
		return MethodDominant, fmt.Errorf("unknown palette method %q", s)
	}
}

// Extract opens and decodes the image at path and returns up to count dominant
// colors as hex strings. Any open or decode failure is returned to the caller;
// the pipeline treats it as non-fatal and degrades to an empty palette.
func Extract(path string, count int, method Method) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return FromImage(img, count, method), nil
}

// FromImage extracts a palette from an already-decoded image.
func FromImage(img image.Image, count int, method Method) []string {
	if count <= 0 {
		return []string{}
	}

	var cols []colorful.Color
	if method == MethodKMeans {
		cols = kmeansPalette(img, count)
	}
	if len(cols) == 0 {
		// Default path, and the fallback when kmeans yields nothing
		// (degenerate or fully transparent inputs).
		cols = dominantPalette(img, count)
	}

	hexes := make([]string, 0, len(cols))
	for _, c := range cols {
		hexes = append(hexes, c.Clamped().Hex())
	}
	return hexes
}

// dominantPalette ranks weighted dominant-color candidates and greedily picks
// count colors that stay close to the strongest tones while spreading out in
// Lab space, so near-duplicate shades don't crowd the palette.
func dominantPalette(img image.Image, count int) []colorful.Color {
	candidates := dominantcolor.FindWeight(img, max(24, count*4))
	if len(candidates) == 0 {
		return nil
	}

	type cand struct {
		col     colorful.Color
		l, a, b float64
		weight  float64
	}
	cands := make([]cand, 0, len(candidates))
	maxW := 0.0
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		col = col.Clamped()
		l, a, b := col.Lab()
		w := c.Weight
		if w <= 0 {
			w = 1e-6
		}
		if w > maxW {
			maxW = w
		}
		cands = append(cands, cand{col: col, l: l, a: a, b: b, weight: w})
	}
	if count > len(cands) {
		count = len(cands)
	}

	picked := make([]int, 0, count)
	taken := make([]bool, len(cands))

	// Seed with the heaviest candidate.
	seed := 0
	for i := range cands {
		if cands[i].weight > cands[seed].weight {
			seed = i
		}
	}
	picked = append(picked, seed)
	taken[seed] = true

	for len(picked) < count {
		best, bestScore := -1, -1.0
		for i := range cands {
			if taken[i] {
				continue
			}
			minD := math.MaxFloat64
			for _, p := range picked {
				dl := cands[i].l - cands[p].l
				da := cands[i].a - cands[p].a
				db := cands[i].b - cands[p].b
				if d := dl*dl + da*da + db*db; d < minD {
					minD = d
				}
			}
			score := math.Sqrt(minD) * (0.5 + 0.5*math.Sqrt(cands[i].weight/maxW))
			if score > bestScore {
				bestScore, best = score, i
			}
		}
		if best < 0 {
			break
		}
		taken[best] = true
		picked = append(picked, best)
	}

	out := make([]colorful.Color, 0, len(picked))
	for _, i := range picked {
		out = append(out, cands[i].col)
	}
	return out
}

// kmeansPalette clusters a subsample of the pixels and returns cluster centers
// ordered by population. Fully transparent pixels are skipped.
func kmeansPalette(img image.Image, count int) []colorful.Color {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	// Subsample to keep clustering tractable on large images.
	const maxSamples = 10000
	step := 1
	if w*h > maxSamples {
		step = int(math.Sqrt(float64(w*h)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(w*h, maxSamples))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r) / 65535.0,
				float64(g) / 65535.0,
				float64(b) / 65535.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	k := min(count, len(dataset))
	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil || len(cc) == 0 {
		return nil
	}

	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	out := make([]colorful.Color, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		out = append(out, colorful.Color{
			R: c.Center[0],
			G: c.Center[1],
			B: c.Center[2],
		}.Clamped())
	}
	return out
}
