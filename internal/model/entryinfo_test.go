package model

import (
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEntryInfo_IsStale(t *testing.T) {
	tests := []struct {
		name  string
		entry EntryInfo
		want  bool
	}{
		{
			name:  "destination absent",
			entry: EntryInfo{SrcInfo: PathInfo{Kind: KindFile, Size: 5}},
			want:  true,
		},
		{
			name: "size differs",
			entry: EntryInfo{
				SrcInfo: PathInfo{Kind: KindFile, Size: 10, ModTime: time.Unix(100, 0)},
				DstInfo: PathInfo{Kind: KindFile, Size: 20, ModTime: time.Unix(100, 0)},
			},
			want: true,
		},
		{
			name: "size differs, source older",
			entry: EntryInfo{
				SrcInfo: PathInfo{Kind: KindFile, Size: 10, ModTime: time.Unix(50, 0)},
				DstInfo: PathInfo{Kind: KindFile, Size: 20, ModTime: time.Unix(100, 0)},
			},
			want: true,
		},
		{
			name: "source newer",
			entry: EntryInfo{
				SrcInfo: PathInfo{Kind: KindFile, Size: 5, ModTime: time.Unix(10100, 0)},
				DstInfo: PathInfo{Kind: KindFile, Size: 5, ModTime: time.Unix(10000, 0)},
			},
			want: true,
		},
		{
			name: "source older",
			entry: EntryInfo{
				SrcInfo: PathInfo{Kind: KindFile, Size: 5, ModTime: time.Unix(50, 0)},
				DstInfo: PathInfo{Kind: KindFile, Size: 5, ModTime: time.Unix(100, 0)},
			},
			want: false,
		},
		{
			name: "same files",
			entry: EntryInfo{
				SrcInfo: PathInfo{Kind: KindFile, Size: 10, ModTime: time.Unix(10000, 0)},
				DstInfo: PathInfo{Kind: KindFile, Size: 10, ModTime: time.Unix(10000, 0)},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.entry.IsStale())
		})
	}
}

func TestEntryInfo_KindMismatch(t *testing.T) {
	tests := []struct {
		name     string
		src, dst Kind
		want     bool
	}{
		{name: "both dirs", src: KindDir, dst: KindDir, want: false},
		{name: "both files", src: KindFile, dst: KindFile, want: false},
		{name: "file and symlink", src: KindSymlink, dst: KindFile, want: false},
		{name: "dir replaced by file", src: KindFile, dst: KindDir, want: true},
		{name: "file replaced by dir", src: KindDir, dst: KindFile, want: true},
		{name: "symlink replaced by dir", src: KindDir, dst: KindSymlink, want: true},
		{name: "source absent", src: KindAbsent, dst: KindDir, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := EntryInfo{SrcInfo: PathInfo{Kind: tt.src}, DstInfo: PathInfo{Kind: tt.dst}}
			require.Equal(t, tt.want, entry.KindMismatch())
		})
	}
}

func TestKindOf(t *testing.T) {
	require.Equal(t, KindDir, KindOf(fs.ModeDir|0o755))
	require.Equal(t, KindSymlink, KindOf(fs.ModeSymlink|0o777))
	require.Equal(t, KindFile, KindOf(0o644))
	require.Equal(t, KindFile, KindOf(fs.ModeNamedPipe))
}

func TestRelPath(t *testing.T) {
	requires := require.New(t)

	root := Root()
	requires.True(root.IsRoot())
	requires.Equal(".", root.String())
	requires.Equal("/src", root.Under("/src"))

	sub := root.Join("a").Join("b.txt")
	requires.False(sub.IsRoot())
	requires.Equal("a/b.txt", sub.String())
	requires.Equal("b.txt", sub.Name())
	requires.Equal("/dst/a/b.txt", sub.Under("/dst"))

	// siblings must not share the backing array
	base := root.Join("a")
	x, y := base.Join("x"), base.Join("y")
	requires.Equal("a/x", x.String())
	requires.Equal("a/y", y.String())
}
