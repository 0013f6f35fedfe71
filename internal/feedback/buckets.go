package feedback

import "math"

// quality ranks a bucket for the strength/suggestion split: a dimension lands
// in strengths at qualityGood or better and in suggestions below that.
type quality int

const (
	qualityPoor quality = iota
	qualityFair
	qualityGood
	qualityExcellent
)

// bucket is one named range of a dimension. A value selects the first bucket
// whose upper bound it is below; the last bucket is unbounded.
type bucket struct {
	name    string
	upper   float64
	quality quality
	// clause feeds the overall assessment; feedback is the per-dimension
	// sentence; strength/suggestion are used by the respective lists.
	clause     string
	feedback   string
	strength   string
	suggestion string
}

type dimension struct {
	name string
	// highStart marks where the dimension becomes "high" for the comparative
	// overdone rule.
	highStart float64
	buckets   []bucket
}

func (d dimension) pick(v float64) bucket {
	for _, b := range d.buckets {
		if v < b.upper {
			return b
		}
	}
	return d.buckets[len(d.buckets)-1]
}

func (d dimension) isHigh(v float64) bool { return v >= d.highStart }

func (d dimension) isGood(v float64) bool { return d.pick(v).quality >= qualityGood }

var pitchDim = dimension{
	name:      "pitch variation",
	highStart: 30,
	buckets: []bucket{
		{
			name: "low", upper: 15, quality: qualityPoor,
			clause:     "Your speech sounds somewhat monotone.",
			feedback:   "Your speech has limited pitch variation, which can sound monotonous. Try varying your tone more to sound engaging.",
			suggestion: "Practice emphasizing key words by raising or lowering your pitch. Exaggerate at first, then find a natural level.",
		},
		{
			name: "medium", upper: 30, quality: qualityFair,
			clause:     "Your tonal variation is moderate.",
			feedback:   "Your pitch variation is moderate. A little more tonal movement would make your delivery more engaging.",
			suggestion: "Try 'mirroring' the delivery of speakers you admire, then find your own level of tonal movement.",
		},
		{
			name: "high", upper: 40, quality: qualityGood,
			clause:   "Your speech has good tonal variation.",
			feedback: "Your pitch variation is good. You're using a pleasant range of tones.",
			strength: "Good pitch variation that keeps your speech engaging",
		},
		{
			name: "excellent", upper: math.Inf(1), quality: qualityExcellent,
			clause:   "Your tonal variation is excellent.",
			feedback: "You're using excellent pitch variation. Your voice is very expressive and engaging.",
			strength: "Excellent, expressive pitch range",
		},
	},
}

var energyDim = dimension{
	name:      "volume variation",
	highStart: 0.06,
	buckets: []bucket{
		{
			name: "low", upper: 0.03, quality: qualityPoor,
			clause:     "Your volume stays mostly flat.",
			feedback:   "Try emphasizing important words by varying your volume more.",
			suggestion: "Record yourself reading a passage with deliberate emphasis on key words, slightly increasing your volume on each.",
		},
		{
			name: "medium", upper: 0.06, quality: qualityFair,
			clause:     "Your volume variation is developing.",
			feedback:   "Your volume variation is developing. Lean into louder and softer moments to add contrast.",
			suggestion: "Pick two or three key words per sentence and push their volume noticeably above the rest.",
		},
		{
			name: "high", upper: 0.1, quality: qualityGood,
			clause:   "You vary your volume well.",
			feedback: "Your volume variation is good. You're emphasizing words appropriately.",
			strength: "Effective use of emphasis through volume variation",
		},
		{
			name: "excellent", upper: math.Inf(1), quality: qualityExcellent,
			clause:   "Your volume is dynamic across the delivery.",
			feedback: "Excellent job varying your volume for emphasis. Your speech is dynamic and engaging.",
			strength: "Dynamic, engaging volume range",
		},
	},
}

var rateDim = dimension{
	name:      "speaking pace",
	highStart: 4.5,
	buckets: []bucket{
		{
			name: "too slow", upper: 2.0, quality: qualityPoor,
			clause:     "Your pacing is very slow, which might reduce engagement.",
			feedback:   "Your speaking pace is quite slow, which may reduce engagement. Try picking it up.",
			suggestion: "Practice with a metronome set slightly faster than your comfortable speaking rate.",
		},
		{
			name: "slow", upper: 2.5, quality: qualityFair,
			clause:     "Your pacing is quite slow, which might reduce engagement.",
			feedback:   "Your speaking pace is a bit slow. Try speaking slightly faster to maintain engagement.",
			suggestion: "Read a familiar passage aloud and aim to finish a touch sooner each run without dropping words.",
		},
		{
			name: "measured", upper: 3.0, quality: qualityFair,
			clause:     "Your pacing is measured.",
			feedback:   "Your pace is measured. A slightly quicker delivery would add energy.",
			suggestion: "Nudge your pace up on less important passages and save the slower delivery for key points.",
		},
		{
			name: "optimal", upper: 4.5, quality: qualityGood,
			clause:   "Your speaking pace is appropriate.",
			feedback: "Your speaking pace is good - not too fast or too slow.",
			strength: "Well-balanced speaking pace that's easy to follow",
		},
		{
			name: "fast", upper: 5.0, quality: qualityFair,
			clause:     "Your speaking pace is quite fast, which might make it difficult for listeners to follow.",
			feedback:   "You're speaking quite quickly. Try slowing down slightly and adding pauses for emphasis.",
			suggestion: "Mark your script with deliberate pause points and practice honoring those pauses.",
		},
		{
			name: "too fast", upper: math.Inf(1), quality: qualityPoor,
			clause:     "Your speaking pace is very fast, which might make it difficult for listeners to follow.",
			feedback:   "You're speaking very fast, which can make it hard for listeners to follow. Slow down.",
			suggestion: "Practice delivering each sentence on a single relaxed breath, pausing fully at punctuation.",
		},
	},
}

var pauseDim = dimension{
	name:      "pauses",
	highStart: 0.25,
	buckets: []bucket{
		{
			name: "low", upper: 0.1, quality: qualityFair,
			feedback:   "Try adding more strategic pauses to give listeners time to absorb important points.",
			suggestion: "Practice inserting a deliberate pause before important points and after questions.",
		},
		{
			name: "medium", upper: 0.15, quality: qualityGood,
			feedback: "You're using pauses effectively to shape your delivery.",
			strength: "Effective use of pauses for emphasis",
		},
		{
			name: "high", upper: 0.25, quality: qualityGood,
			feedback: "You're giving listeners generous breathing room with your pauses.",
			strength: "Generous pausing that lets key points land",
		},
		{
			name: "elevated", upper: 0.35, quality: qualityFair,
			feedback:   "You pause fairly often. Some pauses are effective, but check for unnecessary hesitations.",
			suggestion: "Record yourself and listen for hesitations that aren't serving the message, then trim them.",
		},
		{
			name: "excessive", upper: math.Inf(1), quality: qualityPoor,
			feedback:   "Your speech has many pauses, which can break the flow. Try to reduce hesitations.",
			suggestion: "Rehearse the passage until the words come without searching, so pauses become choices.",
		},
	},
}

var emphasisDim = dimension{
	name:      "emphasis",
	highStart: 0.15,
	buckets: []bucket{
		{
			name: "low", upper: 0.01, quality: qualityFair,
			feedback:   "Very few moments stood out as emphasized. Pushing key words harder would add punch.",
			suggestion: "Choose the single most important word in each sentence and hit it noticeably harder.",
		},
		{
			name: "moderate", upper: 0.05, quality: qualityGood,
			feedback: "You're emphasizing selected moments well without overdoing it.",
			strength: "Selective emphasis that highlights key moments",
		},
		{
			name: "strong", upper: 0.15, quality: qualityGood,
			feedback: "You make strong use of emphasis across your delivery.",
			strength: "Strong, confident emphasis",
		},
		{
			name: "excessive", upper: math.Inf(1), quality: qualityFair,
			feedback:   "A large share of your delivery is at peak intensity, which dulls the contrast. Save the punch for key words.",
			suggestion: "Deliver most of the passage at a relaxed level so emphasized words stand out again.",
		},
	},
}

// desirableEmotions is the fixed set treated as the "good bucket" for the
// emotion dimension, and used by the comparative promotion rule.
var desirableEmotions = map[string]bool{
	"confident":  true,
	"joy":        true,
	"enthusiasm": true,
}
