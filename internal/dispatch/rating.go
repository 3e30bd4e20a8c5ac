package dispatch

import (
	"strings"

	"github.com/aidanlsb/vql/internal/registry"
)

var ratingPhrases = []struct {
	rating  registry.Rating
	phrases []string
}{
	{registry.RatingHigh, []string{"high compliance", "compliance: high"}},
	{registry.RatingMedium, []string{"medium compliance", "compliance: medium"}},
	{registry.RatingLow, []string{"low compliance", "compliance: low"}},
}

var ratingWords = []struct {
	rating registry.Rating
	word   string
}{
	{registry.RatingHigh, "high"},
	{registry.RatingMedium, "medium"},
	{registry.RatingLow, "low"},
}

// ExtractRating derives a rating from free review text. Explicit phrases
// ("High compliance", "compliance: low") win over bare words such as
// "rated as HIGH." It returns "" when the text names no rating.
func ExtractRating(text string) registry.Rating {
	lower := strings.ToLower(text)

	for _, rp := range ratingPhrases {
		for _, phrase := range rp.phrases {
			if strings.Contains(lower, phrase) {
				return rp.rating
			}
		}
	}

	for _, rw := range ratingWords {
		for _, suffix := range []string{" ", ".", ","} {
			if strings.Contains(lower, " "+rw.word+suffix) {
				return rw.rating
			}
		}
	}

	return ""
}
