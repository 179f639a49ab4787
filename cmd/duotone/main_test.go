package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/duotone/internal/config"
	"github.com/dshills/duotone/internal/renderer"
	"github.com/dshills/duotone/internal/renderer/highlight"
)

const jsSource = "console.log(\"hi\")\nconst x = 1\n"

// syncBuffer is a bytes.Buffer safe for a concurrent writer and reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// workspace moves the test into an empty directory with no user config.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(strings.NewReader(stdin), &stdout, &stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func decodeJSON(t *testing.T, out string) [][]renderer.EncodedToken {
	t.Helper()
	lines, err := renderer.Decode(strings.NewReader(out), renderer.FormatJSON)
	require.NoError(t, err)
	return lines
}

func lineText(line []renderer.EncodedToken) string {
	var b strings.Builder
	for _, tok := range line {
		b.WriteString(tok.Content)
	}
	return b.String()
}

func TestRender_HTMLDefaults(t *testing.T) {
	workspace(t)
	writeFile(t, "app.js", jsSource)

	out, _, err := execute(t, "", "render", "app.js")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<pre class="duotone duotone-themes light-plus dark-plus"`), out)
	assert.Contains(t, out, "--duotone-dark:")
	assert.Contains(t, out, ">console</span>")
	assert.Contains(t, out, "&#34;hi&#34;")
	assert.Equal(t, 3, strings.Count(out, `<span class="line">`), out)
}

func TestRender_JSON(t *testing.T) {
	workspace(t)
	writeFile(t, "app.js", jsSource)

	out, _, err := execute(t, "", "render", "app.js", "-f", "json", "--explain", "-t", "a=monokai", "-t", "b=nord")
	require.NoError(t, err)

	lines := decodeJSON(t, out)
	require.Len(t, lines, 3)
	assert.Equal(t, `console.log("hi")`, lineText(lines[0]))
	assert.Equal(t, "const x = 1", lineText(lines[1]))
	assert.Empty(t, lines[2])

	offset := 0
	for _, tok := range lines[0] {
		assert.Equal(t, offset, tok.Offset)
		offset += len(tok.Content)
		assert.Len(t, tok.Variants, 2)
		assert.Contains(t, tok.Variants, "a")
		assert.Contains(t, tok.Variants, "b")
		assert.NotEmpty(t, tok.Explanation)
	}
}

func TestRender_Stdin(t *testing.T) {
	workspace(t)

	out, _, err := execute(t, "plain words\n", "render", "-f", "yaml", "-t", "one-dark")
	require.NoError(t, err)

	lines, err := renderer.Decode(strings.NewReader(out), renderer.FormatYAML)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Len(t, lines[0], 1)
	assert.Equal(t, "plain words", lines[0][0].Content)
	assert.Contains(t, lines[0][0].Variants, "one-dark")
}

func TestRender_ANSI(t *testing.T) {
	workspace(t)
	writeFile(t, "app.js", jsSource)

	out, _, err := execute(t, "", "render", "app.js", "-f", "ansi", "--no-color")
	require.NoError(t, err)
	assert.Equal(t, jsSource+"\n", out)
}

func TestRender_GlobsAndOutDir(t *testing.T) {
	dir := workspace(t)
	writeFile(t, "src/a.go", "package a\n")
	writeFile(t, "src/sub/b.go", "package b\n")
	writeFile(t, "src/notes.txt", "ignored\n")

	_, _, err := execute(t, "", "render", "src/**/*.go", "-o", "out", "-j", "1", "-f", "msgpack")
	require.NoError(t, err)

	for _, name := range []string{"src/a.go.msgpack", "src/sub/b.go.msgpack"} {
		f, err := os.Open(filepath.Join(dir, "out", name))
		require.NoError(t, err, name)
		lines, err := renderer.Decode(f, renderer.FormatMsgpack)
		_ = f.Close()
		require.NoError(t, err)
		assert.NotEmpty(t, lines)
	}
	_, err = os.Stat(filepath.Join(dir, "out", "src", "notes.txt.msgpack"))
	assert.True(t, os.IsNotExist(err))
}

func TestRender_OutDirKeepsPaths(t *testing.T) {
	dir := workspace(t)
	writeFile(t, "a/main.go", "package a\n")
	writeFile(t, "b/main.go", "package b\n")

	_, _, err := execute(t, "", "render", "a/main.go", "b/main.go", "-o", "out", "-f", "json")
	require.NoError(t, err)

	for _, pkg := range []string{"a", "b"} {
		data, err := os.ReadFile(filepath.Join(dir, "out", pkg, "main.go.json"))
		require.NoError(t, err, pkg)
		lines := decodeJSON(t, string(data))
		assert.Equal(t, "package "+pkg, lineText(lines[0]))
	}
}

func TestRender_OutDirCollision(t *testing.T) {
	dir := workspace(t)
	outside := t.TempDir()
	for _, sub := range []string{"x", "y"} {
		require.NoError(t, os.MkdirAll(filepath.Join(outside, sub), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(outside, sub, "main.go"), []byte("package main\n"), 0o644))
	}

	_, _, err := execute(t, "", "render",
		filepath.Join(outside, "x", "main.go"), filepath.Join(outside, "y", "main.go"),
		"-o", "out", "-f", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both write")

	_, err = os.Stat(filepath.Join(dir, "out"))
	assert.True(t, os.IsNotExist(err))
}

func TestRender_StdinOnce(t *testing.T) {
	workspace(t)

	out, _, err := execute(t, "plain words\n", "render", "-", "-", "-f", "json", "-t", "one-dark")
	require.NoError(t, err)
	assert.NotContains(t, out, "==>")

	lines := decodeJSON(t, out)
	assert.Equal(t, "plain words", lineText(lines[0]))
}

func TestRender_MultipleToStdout(t *testing.T) {
	workspace(t)
	writeFile(t, "a.py", "x = 1\n")
	writeFile(t, "b.rs", "fn main() {}\n")

	out, _, err := execute(t, "", "render", "a.py", "b.rs", "a.py")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "==> a.py <=="))
	assert.Less(t, strings.Index(out, "==> a.py <=="), strings.Index(out, "==> b.rs <=="))
}

func TestRender_ConfigFile(t *testing.T) {
	workspace(t)
	writeFile(t, ".duotone/config.yaml", `
format: json
themes:
  - day=github-light
  - night=one-dark
default_color: day
`)
	writeFile(t, "main.go", "package main\n")

	out, _, err := execute(t, "", "render", "main.go")
	require.NoError(t, err)

	lines := decodeJSON(t, out)
	require.NotEmpty(t, lines[0])
	assert.Contains(t, lines[0][0].Variants, "day")
	assert.Contains(t, lines[0][0].Variants, "night")
}

func TestRender_ThemeDir(t *testing.T) {
	workspace(t)
	writeFile(t, "themes/paper.toml", `
name = "paper"
type = "light"
extends = "light-plus"

[scopes."keyword.other"]
foreground = "#123456"
`)
	writeFile(t, "main.go", "package main\n")

	out, _, err := execute(t, "", "render", "main.go", "--theme-dir", "themes", "-t", "p=paper", "-f", "json")
	require.NoError(t, err)

	lines := decodeJSON(t, out)
	require.NotEmpty(t, lines[0])
	assert.Equal(t, "package", lines[0][0].Content)
	assert.Equal(t, "#123456", lines[0][0].Variants["p"].Color)
}

func TestRender_LuaLexer(t *testing.T) {
	workspace(t)
	writeFile(t, "ini.lua", `
language = "ini"
extensions = { ".ini" }
function highlight(line, state)
  local s, e = string.find(line, "^%[.-%]")
  if s then
    return { { "keyword", s, e } }, state
  end
  return {}, state
end
`)
	writeFile(t, "settings.ini", "[server]\nport=80\n")

	out, _, err := execute(t, "", "render", "settings.ini", "--lua-lexer", "ini.lua", "-f", "json", "-t", "dark-plus")
	require.NoError(t, err)

	lines := decodeJSON(t, out)
	require.Len(t, lines[0], 1)
	assert.Equal(t, "[server]", lines[0][0].Content)

	dark, _ := highlight.NewThemeRegistry().Get("dark-plus")
	want := dark.StyleForToken(highlight.TokenKeyword).Foreground.ToHex()
	assert.Equal(t, want, lines[0][0].Variants["dark-plus"].Color)
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		target error
		msg    string
	}{
		{name: "unknown theme", args: []string{"render", "app.js", "-t", "x=nope"}, target: highlight.ErrThemeNotFound},
		{name: "missing file", args: []string{"render", "missing.js"}, msg: "missing.js"},
		{name: "no glob match", args: []string{"render", "*.zig"}, msg: "no files match"},
		{name: "bad format", args: []string{"render", "app.js", "-f", "xml"}, target: config.ErrValidationFailed},
		{name: "bad request", args: []string{"render", "app.js", "-t", "=x"}, target: config.ErrValidationFailed},
		{name: "missing config", args: []string{"render", "app.js", "-c", "nope.yaml"}, target: config.ErrReadConfig},
		{name: "bad lua lexer", args: []string{"render", "app.js", "--lua-lexer", "nope.lua"}, msg: "nope.lua"},
		{name: "missing theme dir", args: []string{"themes", "--theme-dir", "nowhere"}, msg: "nowhere"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workspace(t)
			writeFile(t, "app.js", jsSource)

			_, _, err := execute(t, "", tt.args...)
			require.Error(t, err)
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target), "got %v", err)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestThemes(t *testing.T) {
	workspace(t)

	out, _, err := execute(t, "", "themes")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "NAME"))
	for _, name := range []string{"dark-plus", "light-plus", "nord", "github-light"} {
		assert.Contains(t, out, name)
	}

	out, _, err = execute(t, "", "themes", "--type", "light")
	require.NoError(t, err)
	assert.Contains(t, out, "light-plus")
	assert.NotContains(t, out, "dark-plus")
}

func TestCSS(t *testing.T) {
	workspace(t)

	out, _, err := execute(t, "", "css")
	require.NoError(t, err)
	assert.Contains(t, out, `[data-theme="dark"] .duotone,`)
	assert.Contains(t, out, "color: var(--duotone-dark) !important;")
	assert.NotContains(t, out, "--duotone-light")

	out, _, err = execute(t, "", "css", "-t", "a=nord", "-t", "b=dracula", "--selector", "html.{key} .duotone")
	require.NoError(t, err)
	assert.Contains(t, out, "html.b .duotone span {")
	assert.NotContains(t, out, "html.a")
}

// quitScreen presses q as soon as the preview starts.
type quitScreen struct {
	tcell.SimulationScreen
}

func (s quitScreen) Init() error {
	if err := s.SimulationScreen.Init(); err != nil {
		return err
	}
	s.SetSize(40, 5)
	s.InjectKey(tcell.KeyTab, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	return nil
}

func TestPreview(t *testing.T) {
	workspace(t)
	writeFile(t, "app.js", jsSource)

	orig := newScreen
	t.Cleanup(func() { newScreen = orig })
	newScreen = func() (tcell.Screen, error) {
		return quitScreen{tcell.NewSimulationScreen("UTF-8")}, nil
	}

	_, _, err := execute(t, "", "preview", "app.js", "--key", "dark")
	require.NoError(t, err)

	_, _, err = execute(t, "", "preview", "app.js", "--key", "sepia")
	assert.ErrorIs(t, err, renderer.ErrUnknownVariant)
}

func TestRender_Watch(t *testing.T) {
	workspace(t)
	writeFile(t, "app.js", jsSource)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stdout, stderr syncBuffer
	root := newRootCmd(strings.NewReader(""), &stdout, &stderr)
	root.SetArgs([]string{"render", "app.js", "-w", "-f", "json", "--log-level", "info"})

	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	waitFor := func(what string, cond func() bool) {
		t.Helper()
		deadline := time.Now().Add(5 * time.Second)
		for !cond() {
			if time.Now().After(deadline) {
				t.Fatalf("timed out waiting for %s\nstdout: %s\nstderr: %s", what, stdout.String(), stderr.String())
			}
			time.Sleep(10 * time.Millisecond)
		}
	}

	waitFor("watcher", func() bool { return strings.Contains(stderr.String(), "watching 1 files") })
	writeFile(t, "app.js", "let changed = true\n")
	waitFor("re-render", func() bool { return strings.Contains(stdout.String(), `"changed"`) })

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
