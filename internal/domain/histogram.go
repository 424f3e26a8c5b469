package domain

import (
	"math"
	"sort"
)

// LanguageHistogram maps a language name to its cumulative byte count
// across the sampled repositories.
type LanguageHistogram map[string]int

// Merge sums the byte counts of other into the histogram. Merging is
// commutative and associative, so group completion order does not affect
// the final counts.
func (h LanguageHistogram) Merge(other map[string]int) {
	for lang, bytes := range other {
		h[lang] += bytes
	}
}

// LanguageShare is one histogram entry, used for ranked views.
type LanguageShare struct {
	Name  string `json:"name"`
	Bytes int    `json:"bytes"`
}

// Shares returns the histogram entries ordered by byte count descending,
// ties broken by name ascending so identical input always yields the same
// order.
func (h LanguageHistogram) Shares() []LanguageShare {
	shares := make([]LanguageShare, 0, len(h))
	for lang, bytes := range h {
		shares = append(shares, LanguageShare{Name: lang, Bytes: bytes})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Bytes != shares[j].Bytes {
			return shares[i].Bytes > shares[j].Bytes
		}
		return shares[i].Name < shares[j].Name
	})
	return shares
}

// DoughnutData is a doughnut-chart-ready view of the histogram: language
// labels and sizes in kibibytes. Empty slices mean "no data".
type DoughnutData struct {
	Labels   []string `json:"labels"`
	SizesKiB []int    `json:"sizes_kib"`
}

// Doughnut converts the histogram to chart data, ordered like Shares.
// Byte counts are converted to KiB and rounded to the nearest integer.
func (h LanguageHistogram) Doughnut() DoughnutData {
	shares := h.Shares()
	data := DoughnutData{
		Labels:   make([]string, 0, len(shares)),
		SizesKiB: make([]int, 0, len(shares)),
	}
	for _, s := range shares {
		data.Labels = append(data.Labels, s.Name)
		data.SizesKiB = append(data.SizesKiB, int(math.Round(float64(s.Bytes)/1024)))
	}
	return data
}

// LanguageSample selects the repositories whose languages are fetched:
// the largest languageSampleSize repositories by size, using a stable sort
// so repositories of equal size keep their fetch order.
func LanguageSample(repos []Repository) []Repository {
	sample := make([]Repository, len(repos))
	copy(sample, repos)
	sort.SliceStable(sample, func(i, j int) bool {
		return sample[i].SizeKB > sample[j].SizeKB
	})
	if len(sample) > languageSampleSize {
		sample = sample[:languageSampleSize]
	}
	return sample
}
