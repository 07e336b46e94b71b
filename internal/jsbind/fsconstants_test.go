package jsbind

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFSConstantsTableMatchesExpectedValues(t *testing.T) {
	// A representative subset, not the full table: enough to catch a
	// transcription slip without duplicating the whole map here.
	cases := []struct {
		name string
		want map[string]int
	}{
		{
			name: "access bits",
			want: map[string]int{
				"F_OK": 0,
				"R_OK": 4,
				"W_OK": 2,
				"X_OK": 1,
			},
		},
		{
			name: "open flags",
			want: map[string]int{
				"O_RDONLY": 0,
				"O_WRONLY": 1,
				"O_RDWR":   2,
				"O_CREAT":  64,
				"O_EXCL":   128,
				"O_TRUNC":  512,
				"O_APPEND": 1024,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := make(map[string]int, len(tc.want))
			for k := range tc.want {
				v, ok := fsConstants[k]
				if !ok {
					t.Fatalf("missing constant %q", k)
				}
				got[k] = v
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("fsConstants mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
