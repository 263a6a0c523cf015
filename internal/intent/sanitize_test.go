package intent

import "testing"

func TestSanitize(t *testing.T) {
	t.Parallel()

	payload := `{"action":"list_products","message":"📋 listing"}`
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "clean payload untouched",
			raw:  payload,
			want: payload,
		},
		{
			name: "surrounding whitespace",
			raw:  "\n\t  " + payload + "  \n",
			want: payload,
		},
		{
			name: "json fence",
			raw:  "```json\n" + payload + "\n```",
			want: payload,
		},
		{
			name: "bare fence",
			raw:  "```\n" + payload + "\n```",
			want: payload,
		},
		{
			name: "prose around the object",
			raw:  "Here is the command you asked for:\n" + payload + "\nLet me know if you need anything else.",
			want: payload,
		},
		{
			name: "fence and prose combined",
			raw:  "Sure!\n```json\n" + payload + "\n```\nDone.",
			want: payload,
		},
		{
			name: "no braces passes through",
			raw:  "I cannot help with that.",
			want: "I cannot help with that.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Sanitize(tt.raw); got != tt.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestStripCodeFenceKeepsBracesOnFirstLine(t *testing.T) {
	t.Parallel()

	// A fence immediately followed by the object must not lose the
	// object's first line.
	raw := "```{\"action\":\"list_brands\"}```"
	got := StripCodeFence(raw)
	if got != `{"action":"list_brands"}` {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestExtractJSONObject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"object only", `{"a":1}`, `{"a":1}`},
		{"leading prose", `note {"a":1}`, `{"a":1}`},
		{"trailing prose", `{"a":1} done`, `{"a":1}`},
		{"nested braces", `x {"a":{"b":2}} y`, `{"a":{"b":2}}`},
		{"no object", `nothing here`, `nothing here`},
		{"close before open", `} {`, `} {`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExtractJSONObject(tt.in); got != tt.want {
				t.Fatalf("ExtractJSONObject(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
