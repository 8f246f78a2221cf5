package severity

import (
	"math"
	"testing"
)

func TestRank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rating Rating
		want   int
	}{
		{name: "critical first", rating: CriticalRating, want: 0},
		{name: "high", rating: HighRating, want: 1},
		{name: "medium", rating: MediumRating, want: 2},
		{name: "low", rating: LowRating, want: 3},
		{name: "unknown", rating: UnknownRating, want: 4},
		{name: "none last", rating: NoneRating, want: 5},
		{name: "unrecognized treated as unknown", rating: Rating("BOGUS"), want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Rank(tt.rating); got != tt.want {
				t.Errorf("Rank(%q) = %v, want %v", tt.rating, got, tt.want)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	t.Parallel()

	valid := []Rating{CriticalRating, HighRating, MediumRating, LowRating}
	for _, rating := range valid {
		if !IsValid(rating) {
			t.Errorf("IsValid(%q) = false, want true", rating)
		}
	}

	invalid := []Rating{NoneRating, UnknownRating, Rating("critical"), Rating("")}
	for _, rating := range invalid {
		if IsValid(rating) {
			t.Errorf("IsValid(%q) = true, want false", rating)
		}
	}
}

func TestFromScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		score float64
		want  Rating
	}{
		{name: "critical", score: 9.8, want: CriticalRating},
		{name: "high", score: 7.5, want: HighRating},
		{name: "medium", score: 5.3, want: MediumRating},
		{name: "low", score: 3.9, want: LowRating},
		{name: "boundary to critical", score: 9.0, want: CriticalRating},
		{name: "zero is unknown", score: 0.0, want: UnknownRating},
		{name: "out of range is unknown", score: 11.0, want: UnknownRating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FromScore(tt.score); got != tt.want {
				t.Errorf("FromScore(%v) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}

func TestCalculateScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		vector     string
		wantScore  float64
		wantRating Rating
	}{
		{
			name:       "v3.0",
			vector:     "CVSS:3.0/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H",
			wantScore:  9.8,
			wantRating: CriticalRating,
		},
		{
			name:       "v3.1",
			vector:     "CVSS:3.1/AV:N/AC:H/PR:N/UI:N/S:U/C:N/I:H/A:N",
			wantScore:  5.9,
			wantRating: MediumRating,
		},
		{
			name:       "v2.0 has no prefix",
			vector:     "AV:N/AC:L/Au:N/C:N/I:N/A:C",
			wantScore:  7.8,
			wantRating: HighRating,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			score, rating, err := CalculateScore(tt.vector)
			if err != nil {
				t.Fatalf("CalculateScore(%q) returned error: %v", tt.vector, err)
			}
			if math.Abs(score-tt.wantScore) > 0.05 {
				t.Errorf("CalculateScore(%q) score = %v, want %v", tt.vector, score, tt.wantScore)
			}
			if rating != tt.wantRating {
				t.Errorf("CalculateScore(%q) rating = %v, want %v", tt.vector, rating, tt.wantRating)
			}
		})
	}
}

func TestCalculateScore_Invalid(t *testing.T) {
	t.Parallel()

	if _, _, err := CalculateScore("CVSS:3.1/not-a-vector"); err == nil {
		t.Error("CalculateScore() expected error, got nil")
	}
}
