package accuracy

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"vocal-coach-go/internal/types"
)

// wordListCap bounds the missing/added word lists in a report.
const wordListCap = 10

// Normalize lowercases, strips punctuation and collapses runs of whitespace
// to single spaces.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Similarity is the Ratcliff-Obershelp ratio between the normalized texts, in
// [0, 1]. The feedback tier thresholds are calibrated to this exact family of
// sequence similarity, so the algorithm must not be swapped for an
// edit-distance one.
func Similarity(transcript, target string) float64 {
	a := []rune(Normalize(transcript))
	b := []rune(Normalize(target))
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	matched := matchingTotal(a, b)
	return 2.0 * float64(matched) / float64(len(a)+len(b))
}

// matchingTotal sums the lengths of the matching blocks found by recursively
// splitting around the longest common substring.
func matchingTotal(a, b []rune) int {
	size, ai, bi := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += matchingTotal(a[:ai], b[:bi])
	total += matchingTotal(a[ai+size:], b[bi+size:])
	return total
}

func longestCommonBlock(a, b []rune) (size, ai, bi int) {
	// prev[j] holds the match run ending at a[i-1], b[j-1].
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > size {
					size = cur[j]
					ai = i - size
					bi = j - size
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return size, ai, bi
}

// Evaluate scores a transcript against the target text.
func Evaluate(transcript, target string) *types.ContentAccuracy {
	score := Score(transcript, target)

	targetWords := wordSet(Normalize(target))
	spokenWords := wordSet(Normalize(transcript))

	return &types.ContentAccuracy{
		AccuracyScore: score,
		Feedback:      tierFeedback(score),
		MissingWords:  capped(difference(targetWords, spokenWords)),
		AddedWords:    capped(difference(spokenWords, targetWords)),
	}
}

// EvaluateComparative additionally scores the benchmark transcript against
// the same target and appends a comparison sentence.
func EvaluateComparative(transcript, benchmarkTranscript, target string) *types.ContentAccuracy {
	result := Evaluate(transcript, target)
	if benchmarkTranscript == "" {
		return result
	}
	benchScore := Score(benchmarkTranscript, target)
	result.BenchmarkAccuracy = &benchScore

	switch {
	case result.AccuracyScore >= benchScore:
		result.Feedback += fmt.Sprintf(" Your content accuracy (%d%%) meets or beats the benchmark recording (%d%%).", result.AccuracyScore, benchScore)
	default:
		result.Feedback += fmt.Sprintf(" The benchmark recording hit %d%% content accuracy; yours is %d%%.", benchScore, result.AccuracyScore)
	}
	return result
}

// Score is the similarity on a 0-100 integer scale.
func Score(transcript, target string) int {
	return int(math.Round(100 * Similarity(transcript, target)))
}

func tierFeedback(score int) string {
	switch {
	case score >= 90:
		return "Excellent content accuracy! You delivered the message very close to the intended text."
	case score >= 70:
		return "Good content accuracy with some variations from the original text."
	case score >= 50:
		return "Fair content accuracy. A number of passages drifted from the intended text."
	default:
		return "Your delivery varied significantly from the intended text. Consider practicing to improve content accuracy."
	}
}

func wordSet(normalized string) map[string]bool {
	set := map[string]bool{}
	for _, w := range strings.Fields(normalized) {
		set[w] = true
	}
	return set
}

func difference(a, b map[string]bool) []string {
	var out []string
	for w := range a {
		if !b[w] {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

func capped(words []string) []string {
	if len(words) > wordListCap {
		return words[:wordListCap]
	}
	return words
}
