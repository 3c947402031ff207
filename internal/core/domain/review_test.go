package domain

import "testing"

func TestAverageRating(t *testing.T) {
	cases := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"empty set is exactly zero", nil, 0},
		{"single review", []int{4}, 4.0},
		{"whole mean", []int{3, 4, 5}, 4.0},
		{"half mean", []int{4, 5}, 4.5},
		{"round half up", []int{3, 3, 3, 4}, 3.3}, // 3.25 rounds up
		{"round down", []int{1, 2, 2}, 1.7},       // 1.666 truncates to 1.7
		{"all minimum", []int{1, 1, 1}, 1.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reviews := make([]*Review, 0, len(tc.ratings))
			for _, r := range tc.ratings {
				reviews = append(reviews, &Review{Rating: r})
			}
			if got := AverageRating(reviews); got != tc.want {
				t.Fatalf("AverageRating(%v) = %v, want %v", tc.ratings, got, tc.want)
			}
		})
	}
}

func TestValidRating(t *testing.T) {
	for rating, want := range map[int]bool{0: false, 1: true, 5: true, 6: false, -1: false} {
		if got := ValidRating(rating); got != want {
			t.Fatalf("ValidRating(%d) = %v, want %v", rating, got, want)
		}
	}
}

func TestPrincipalRoleChecks(t *testing.T) {
	p := &Principal{UserID: "u1", Role: RoleLearner}
	if p.IsAdmin() {
		t.Fatalf("learner must not be admin")
	}
	if !p.HasAnyRole(RoleLearner, RoleAdmin) {
		t.Fatalf("expected learner role to match")
	}
	if p.HasAnyRole(RoleAdmin, RoleInstructor) {
		t.Fatalf("unexpected role match")
	}

	var missing *Principal
	if missing.HasAnyRole(RoleAdmin) || missing.IsAdmin() {
		t.Fatalf("nil principal must never pass a role check")
	}
}
