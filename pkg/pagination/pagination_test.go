package pagination

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   Params
		want Params
	}{
		{"zero value gets defaults", Params{}, Params{Limit: DefaultLimit, Offset: 0}},
		{"negative limit gets default", Params{Limit: -5, Offset: 10}, Params{Limit: DefaultLimit, Offset: 10}},
		{"limit above max is capped", Params{Limit: MaxLimit + 1}, Params{Limit: MaxLimit}},
		{"negative offset clamps to zero", Params{Limit: 25, Offset: -1}, Params{Limit: 25, Offset: 0}},
		{"valid params pass through", Params{Limit: 50, Offset: 100}, Params{Limit: 50, Offset: 100}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			if got != tc.want {
				t.Fatalf("Normalize(%+v) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}
