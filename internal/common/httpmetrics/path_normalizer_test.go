package httpmetrics

import "testing"

func TestNormalizePath(t *testing.T) {
	testCases := []struct {
		path string
		want string
	}{
		{"", "/"},
		{"/auth/signup", "/auth/signup"},
		{"/auth/login", "/auth/login"},
		{"/influencers", "/influencers"},
		{"/influencers/550e8400-e29b-41d4-a716-446655440000", "/influencers/{param}"},
		{"/influencers/550e8400-e29b-41d4-a716-446655440000/social-media", "/influencers/{param}/social-media"},
		{"/influencers/42", "/influencers/{param}"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			if got := NormalizePath(tc.path); got != tc.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}
