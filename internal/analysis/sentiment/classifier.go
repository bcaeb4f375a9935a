package sentiment

import (
	"sync"

	"github.com/jonreiter/govader"
)

// Mood is the three-valued classification derived from a compound score.
type Mood string

const (
	Positive Mood = "positive"
	Neutral  Mood = "neutral"
	Negative Mood = "negative"
)

// ClassifyMood maps a VADER compound score in [-1, 1] to a mood. The
// boundary values 0.1 and -0.1 classify as neutral.
func ClassifyMood(score float64) Mood {
	switch {
	case score > 0.1:
		return Positive
	case score >= -0.1:
		return Neutral
	default:
		return Negative
	}
}

// Classifier scores short informal text with the VADER lexicon. The lexicon
// is provisioned once on first use; Prime forces provisioning up front so
// the first turn does not pay the cost.
type Classifier struct {
	once     sync.Once
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewClassifier returns a classifier with an unprovisioned lexicon.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Prime loads the lexicon if it is not already present.
func (c *Classifier) Prime() {
	c.once.Do(func() {
		c.analyzer = govader.NewSentimentIntensityAnalyzer()
	})
}

// Score returns the compound polarity of text in [-1, 1].
func (c *Classifier) Score(text string) float64 {
	c.Prime()
	return c.analyzer.PolarityScores(text).Compound
}

// Classify scores text and maps the result to a mood in one step.
func (c *Classifier) Classify(text string) (float64, Mood) {
	score := c.Score(text)
	return score, ClassifyMood(score)
}
