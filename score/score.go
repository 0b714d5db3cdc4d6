// Package score computes the 0-100 engagement score used to rank leads.
package score

import "math"

// Engagement derives a 0-100 score from follower count and average
// interactions. Comments weigh double: a commenter is more invested than
// a liker. A follower bonus of up to 20 points rewards reach, and the
// final score is capped at 100 and rounded to two decimals.
//
// Scraped candidates always score 0 because the engine observes no real
// social metrics.
func Engagement(followers int64, likesAvg, commentsAvg float64) float64 {
	if followers == 0 {
		return 0.0
	}

	engagementRate := ((likesAvg + commentsAvg*2) / float64(followers)) * 100
	s := math.Min(100, engagementRate*10)
	followerBonus := math.Min(20, float64(followers)/10000)

	return math.Round(math.Min(100, s+followerBonus)*100) / 100
}
