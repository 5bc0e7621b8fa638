package quadra

import "github.com/chewxy/math32"

// zLessOrEqual reports whether an instance at z=a may be placed before one
// at z=b. Taking the left run on equality keeps the merge stable. NaN sorts
// after every number and ties with itself.
func zLessOrEqual(a, b float32) bool {
	if math32.IsNaN(b) {
		return true
	}
	if math32.IsNaN(a) {
		return false
	}
	return a <= b
}

// mergeSort sorts b.entries in place by ascending z using b.sortBuf as
// scratch space. Bottom-up merge sort: stable, and allocation free after the
// scratch buffer reaches its high-water mark.
func (b *BatchBuilder) mergeSort() {
	n := len(b.entries)
	if n <= 1 {
		return
	}
	if cap(b.sortBuf) < n {
		b.sortBuf = make([]planEntry, n)
	}
	b.sortBuf = b.sortBuf[:n]

	src := b.entries
	dst := b.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(src, dst, lo, mid, hi)
		}
		src, dst = dst, src
		swapped = !swapped
	}

	if swapped {
		copy(b.entries, b.sortBuf)
	}
}

// mergeRun merges the sorted runs [lo, mid) and [mid, hi) of src into dst.
func mergeRun(src, dst []planEntry, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if zLessOrEqual(src[i].inst.Extra[0], src[j].inst.Extra[0]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], src[i:mid])
	copy(dst[k:], src[j:hi])
}
