package main

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

var successLine = regexp.MustCompile(`^SUCCESS:(.+dice_result_\d{8}\.png):(player|bot|tie)$`)

// setupEnv points the renderer at empty temp directories and a missing font file.
func setupEnv(t *testing.T) (scratch string) {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	scratch = filepath.Join(dir, "out")
	t.Setenv("DICEBATTLE_SCRATCH_DIR", scratch)
	t.Setenv("DICEBATTLE_ASSETS_DIR", filepath.Join(dir, "assets"))
	t.Setenv("DICEBATTLE_FONT_PATH", filepath.Join(dir, "missing.ttf"))
	t.Setenv("DICEBATTLE_FONT_DIRS", filepath.Join(dir, "fonts"))
	t.Setenv("DICEBATTLE_LOG_LEVEL", "error")
	return scratch
}

func TestRunSuccess(t *testing.T) {
	scratch := setupEnv(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"4", "2", "null", "null", "Player1", "BotName"}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())

	line := strings.TrimSpace(stdout.String())
	m := successLine.FindStringSubmatch(line)
	require.NotNil(t, m, "unexpected stdout %q", line)
	require.Equal(t, "player", m[2])
	require.Equal(t, scratch, filepath.Dir(m[1]))

	img, err := imaging.Open(m[1])
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 700, 250), img.Bounds())
}

func TestRunWinners(t *testing.T) {
	tests := []struct {
		player, bot string
		winner      string
	}{
		{"1", "6", "bot"},
		{"3", "3", "tie"},
		{"6", "5", "player"},
	}
	for _, tt := range tests {
		t.Run(tt.player+"v"+tt.bot, func(t *testing.T) {
			setupEnv(t)
			var stdout, stderr bytes.Buffer
			code := run([]string{tt.player, tt.bot, "null", "null", "a", "b"}, &stdout, &stderr)
			require.Equal(t, 0, code)
			require.True(t, strings.HasSuffix(strings.TrimSpace(stdout.String()), ":"+tt.winner))
		})
	}
}

func TestRunInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"too few", []string{"4", "2", "null", "null", "Player1"}},
		{"none", nil},
		{"bad roll", []string{"9", "2", "null", "null", "a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scratch := setupEnv(t)

			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)
			require.NotEqual(t, 0, code)
			require.True(t, strings.HasPrefix(stdout.String(), "ERROR:"))
			require.Contains(t, stderr.String(), "usage:")

			_, err := os.Stat(scratch)
			require.True(t, os.IsNotExist(err), "scratch dir must not be created")
		})
	}
}

func TestRunTimeout(t *testing.T) {
	setupEnv(t)
	t.Setenv("DICEBATTLE_RUN_TIMEOUT", "1ns")

	var stdout, stderr bytes.Buffer
	code := run([]string{"4", "2", "null", "null", "a", "b"}, &stdout, &stderr)
	require.Equal(t, 1, code)
	require.True(t, strings.HasPrefix(stdout.String(), "ERROR:"))
}

func TestRunBadTheme(t *testing.T) {
	dir := t.TempDir()
	setupEnv(t)
	themePath := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(themePath, []byte("base_color: \"#nothex\"\n"), 0o600))
	t.Setenv("DICEBATTLE_THEME_FILE", themePath)

	var stdout, stderr bytes.Buffer
	code := run([]string{"4", "2", "null", "null", "a", "b"}, &stdout, &stderr)
	require.Equal(t, 1, code)
	require.True(t, strings.HasPrefix(stdout.String(), "ERROR:"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger("warn", &buf)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")

	_, err = newLogger("loud", &buf)
	require.Error(t, err)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
