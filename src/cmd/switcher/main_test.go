package main

import "testing"

func TestLooksLikeVersion(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want bool
	}{
		{
			name: "Tag with v prefix",
			arg:  "v5.024",
			want: true,
		},
		{
			name: "Bare version number",
			arg:  "5.024",
			want: true,
		},
		{
			name: "Subcommand switch",
			arg:  "switch",
			want: false,
		},
		{
			name: "Subcommand current",
			arg:  "current",
			want: false,
		},
		{
			name: "Subcommand list",
			arg:  "list",
			want: false,
		},
		{
			name: "Subcommand restore-bashrc",
			arg:  "restore-bashrc",
			want: false,
		},
		{
			name: "Help",
			arg:  "help",
			want: false,
		},
		{
			name: "Flag",
			arg:  "--verbose",
			want: false,
		},
		{
			name: "Old-style repository tag",
			arg:  "verilator_3_876",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := looksLikeVersion(tt.arg); got != tt.want {
				t.Errorf("looksLikeVersion(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

func TestTagForRoot(t *testing.T) {
	tests := []struct {
		name string
		root string
		want string
	}{
		{
			name: "Managed install",
			root: "/home/dev/.vvm/versions/verilator_v5.024",
			want: "v5.024",
		},
		{
			name: "Trailing slash",
			root: "/home/dev/.vvm/versions/verilator_v5.024/",
			want: "v5.024",
		},
		{
			name: "System install",
			root: "/usr/local",
			want: "",
		},
		{
			name: "Empty",
			root: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tagForRoot(tt.root); got != tt.want {
				t.Errorf("tagForRoot(%q) = %q, want %q", tt.root, got, tt.want)
			}
		})
	}
}
