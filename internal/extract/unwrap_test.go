package extract

import "testing"

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "json fence",
			raw:  "```json\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "generic fence",
			raw:  "```\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "no fence",
			raw:  `{"a":1}`,
			want: `{"a":1}`,
		},
		{
			name: "surrounding whitespace",
			raw:  "  \n```json\n{\"a\":1}\n```  \n",
			want: `{"a":1}`,
		},
		{
			name: "fence without trailing marker",
			raw:  "```json\n{\"a\":1}",
			want: `{"a":1}`,
		},
		{
			name: "plain text untouched",
			raw:  "not json at all",
			want: "not json at all",
		},
		{
			name: "empty",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Unwrap(tt.raw); got != tt.want {
				t.Errorf("Unwrap(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
