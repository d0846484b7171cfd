package mirror

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	logmock "dirmirror/generated/mocks"
	"dirmirror/internal/log"
	"dirmirror/internal/model"
	"dirmirror/pkg/helpers/fsys"
)

var (
	tOld = time.Date(2020, 1, 1, 0, 0, 50, 0, time.UTC)
	tNew = time.Date(2020, 1, 1, 0, 1, 40, 0, time.UTC)
)

func getMockLogger(mockCtrl *gomock.Controller, any gomock.Matcher) *logmock.MockLogger {
	loggerMock := logmock.NewMockLogger(mockCtrl)
	loggerMock.EXPECT().Debug(any).AnyTimes()
	loggerMock.EXPECT().Debug(any, any).AnyTimes()
	loggerMock.EXPECT().Debug(any, any, any).AnyTimes()
	loggerMock.EXPECT().Debug(any, any, any, any).AnyTimes()
	loggerMock.EXPECT().Info(any, any, any).AnyTimes()
	loggerMock.EXPECT().Info(any, any, any, any).AnyTimes()
	loggerMock.EXPECT().Warn(any, any, any).AnyTimes()
	loggerMock.EXPECT().Error(any, any).AnyTimes()
	return loggerMock
}

type testRun struct {
	src, dst string
	out      *bytes.Buffer
	result   *Result
}

func runMirror(t *testing.T, logger log.Logger, src, dst string, dryRun bool) testRun {
	t.Helper()
	out := new(bytes.Buffer)
	m := New(logger, fsys.NewBaseOSFS(), Options{SrcDir: src, DstDir: dst, DryRun: dryRun, Out: out})
	result, err := m.Run(context.Background())
	require.NoError(t, err)
	return testRun{src: src, dst: dst, out: out, result: result}
}

// lines returns the transcript with both roots replaced by placeholders.
func (r testRun) lines() []string {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(r.out.String()), "\n") {
		if l == "" {
			continue
		}
		l = strings.ReplaceAll(l, r.src, "SRC")
		l = strings.ReplaceAll(l, r.dst, "DST")
		lines = append(lines, l)
	}
	return lines
}

func writeFile(req *require.Assertions, path, content string, modTime time.Time) {
	req.NoError(os.MkdirAll(filepath.Dir(path), 0o755))
	req.NoError(os.WriteFile(path, []byte(content), 0o644))
	req.NoError(os.Chtimes(path, modTime, modTime))
}

func symlink(req *require.Assertions, target, path string) {
	req.NoError(os.MkdirAll(filepath.Dir(path), 0o755))
	req.NoError(os.Symlink(target, path))
}

func mkdir(req *require.Assertions, path string) {
	req.NoError(os.MkdirAll(path, 0o755))
}

type node struct {
	Kind    model.Kind
	Content string
	Target  string
	ModTime time.Time
}

// snapshot describes every node under root by its relative path, without following links.
func snapshot(req *require.Assertions, root string) map[string]node {
	nodes := make(map[string]node)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		info, err := os.Lstat(path)
		if err != nil {
			return err
		}
		n := node{Kind: model.KindOf(info.Mode())}
		switch n.Kind {
		case model.KindSymlink:
			n.Target, err = os.Readlink(path)
		case model.KindFile:
			var b []byte
			b, err = os.ReadFile(path)
			n.Content, n.ModTime = string(b), info.ModTime()
		}
		nodes[filepath.ToSlash(rel)] = n
		return err
	})
	req.NoError(err)
	return nodes
}

func withoutTimes(nodes map[string]node) map[string]node {
	stripped := make(map[string]node, len(nodes))
	for k, n := range nodes {
		n.ModTime = time.Time{}
		stripped[k] = n
	}
	return stripped
}
