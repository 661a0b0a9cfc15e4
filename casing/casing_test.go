package casing

import "testing"

func TestToOptionName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CC", "cc"},
		{"CXXFLAGS", "cxxflags"},
		{"exec_prefix", "exec-prefix"},
		{"man1ext", "man1ext"},
		{"SH_LINK_FLAGS", "sh-link-flags"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ToOptionName(tt.in); got != tt.want {
			t.Errorf("ToOptionName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
