package score

import "testing"

func TestEngagement(t *testing.T) {
	tests := []struct {
		name        string
		followers   int64
		likesAvg    float64
		commentsAvg float64
		want        float64
	}{
		{"zero followers scores zero", 0, 100, 100, 0},
		{"no interactions scores only the follower bonus", 10000, 0, 0, 1},
		{"comments weigh double", 1000, 10, 5, 20.1},
		{"score caps at 100", 100, 500, 500, 100},
		{"follower bonus caps at 20", 10_000_000, 0, 0, 20},
		{"small account", 200, 1, 0, 5.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Engagement(tt.followers, tt.likesAvg, tt.commentsAvg)
			if got != tt.want {
				t.Errorf("Engagement(%d, %v, %v) = %v, want %v",
					tt.followers, tt.likesAvg, tt.commentsAvg, got, tt.want)
			}
		})
	}
}
