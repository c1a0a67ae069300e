package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{
			name: "file:// URI is converted to local path",
			uri:  "file:///Users/test/papers/paper.pdf",
			want: "/Users/test/papers/paper.pdf",
		},
		{
			name: "file:// URI with spaces",
			uri:  "file:///Users/test/my papers/paper.pdf",
			want: "/Users/test/my papers/paper.pdf",
		},
		{
			name: "percent-encoded URI is unescaped",
			uri:  "file:///Users/test/my%20papers/paper.pdf",
			want: "/Users/test/my papers/paper.pdf",
		},
		{
			name: "bare path passes through unchanged",
			uri:  "/Users/test/papers/paper.pdf",
			want: "/Users/test/papers/paper.pdf",
		},
		{
			name: "relative path passes through unchanged",
			uri:  "relative/paper.pdf",
			want: "relative/paper.pdf",
		},
		{
			name: "empty string passes through",
			uri:  "",
			want: "",
		},
		{
			name: "windows-style path passes through",
			uri:  "C:\\Users\\test\\paper.pdf",
			want: "C:\\Users\\test\\paper.pdf",
		},
		{
			name: "file:// prefix only",
			uri:  "file://",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.uri))
		})
	}
}
