package convert

import "testing"

func TestLinkConverter_Rewrite(t *testing.T) {
	files := map[string]string{
		"4B9E2F0A77D845D1": "2024-03-09.md",
		"AB12CD34EF56AB78": "2024-03-10a.md",
	}

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "known link",
			body: "See [that day](dayone://view?entryId=4B9E2F0A77D845D1).",
			want: "See [[2024-03-09|that day]].",
		},
		{
			name: "legacy scheme",
			body: "[old](dayone2://view?entryId=AB12CD34EF56AB78)",
			want: "[[2024-03-10a|old]]",
		},
		{
			name: "unknown uuid preserved byte-identical",
			body: "[gone](dayone://view?entryId=FFFFFFFFFFFFFFFF)",
			want: "[gone](dayone://view?entryId=FFFFFFFFFFFFFFFF)",
		},
		{
			name: "known and unknown in one body",
			body: "[a](dayone://view?entryId=4B9E2F0A77D845D1) [b](dayone://view?entryId=FFFFFFFFFFFFFFFF)",
			want: "[[2024-03-09|a]] [b](dayone://view?entryId=FFFFFFFFFFFFFFFF)",
		},
		{
			name: "regular markdown link untouched",
			body: "[site](https://example.com)",
			want: "[site](https://example.com)",
		},
	}

	converter := NewLinkConverter(files)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := converter.Rewrite(tt.body); got != tt.want {
				t.Errorf("Rewrite(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}
