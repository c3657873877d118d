package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/synclean/internal/config"
	"github.com/vvka-141/synclean/internal/tui"
	"github.com/vvka-141/synclean/internal/ui"
	"github.com/vvka-141/synclean/pkg/synclean"
)

// execute runs the root command with args and fresh flag values.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetSanitizeFlags()
	resetNormalizeFlags()
	t.Cleanup(func() {
		resetSanitizeFlags()
		resetNormalizeFlags()
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// isolateEnv clears every variable that could leak configuration into a test.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{config.EnvPolicy, config.EnvLogDir, config.EnvUserPartition, config.EnvSyncPattern, "ACCESSIBLE"} {
		t.Setenv(name, "")
	}
	t.Setenv("SYNCLEAN_NON_INTERACTIVE", "1")
}

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, n := range names {
		p := filepath.Join(root, n)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(n), 0644))
	}
}

func TestSanitizeCmd_EndToEnd(t *testing.T) {
	isolateEnv(t)
	root := t.TempDir()
	logDir := t.TempDir()
	writeFiles(t, root, "café.txt", "cafe.txt", filepath.Join("Dröp", "ünï.txt"), "CON")

	out, err := execute(t, "sanitize", root,
		"--policy", "accent-strip",
		"--log-dir", logDir,
		"--user-partition", filepath.Dir(root)+string(filepath.Separator))
	require.NoError(t, err)

	for _, p := range []string{"cafe.txt", "cafe-Copy0.txt", filepath.Join("Drop", "uni.txt"), "_CON"} {
		assert.FileExists(t, filepath.Join(root, p))
	}

	logFile := filepath.Join(logDir, filepath.Base(root)+synclean.LogFileSuffix)
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `Renaming: "café.txt" -> "cafe-Copy0.txt"`)
	assert.Contains(t, string(data), "have been sanitized.")

	assert.Contains(t, out, "4 renamed, 0 failed")
}

func TestSanitizeCmd_ForceSelectsAccentStrip(t *testing.T) {
	isolateEnv(t)
	root := t.TempDir()
	writeFiles(t, root, "résumé.pdf")

	_, err := execute(t, "sanitize", "-d", root, "-f",
		"--log-dir", t.TempDir(),
		"--user-partition", filepath.Dir(root)+string(filepath.Separator))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "resume.pdf"))
}

func TestSanitizeCmd_OutsidePartitionDeclinedWithoutTerminal(t *testing.T) {
	isolateEnv(t)
	root := t.TempDir()
	logDir := t.TempDir()
	writeFiles(t, root, "bad?.txt")

	out, err := execute(t, "sanitize", root,
		"--log-dir", logDir,
		"--user-partition", "/definitely/not/a/prefix/")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, "bad?.txt"))
	assert.NoFileExists(t, filepath.Join(logDir, filepath.Base(root)+synclean.LogFileSuffix))
	assert.Contains(t, out, "declined")
}

func TestSanitizeCmd_DiscoversSyncFolders(t *testing.T) {
	isolateEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFiles(t, home,
		filepath.Join("OneDrive - Contoso", "a:b.txt"),
		filepath.Join("Documents", "c:d.txt"),
		filepath.Join("Library", "OneDrive", "e:f.txt"))

	_, err := execute(t, "sanitize", "--log-dir", t.TempDir())
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(home, "OneDrive - Contoso", "a_b.txt"))
	assert.FileExists(t, filepath.Join(home, "Documents", "c:d.txt"), "non-sync folders are left alone")
	assert.FileExists(t, filepath.Join(home, "Library", "OneDrive", "e:f.txt"), "excluded folders are not searched")
}

func TestSanitizeCmd_NoSyncFolder(t *testing.T) {
	isolateEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	_, err := execute(t, "sanitize", "--log-dir", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, synclean.ErrNoRoots))
	assert.Equal(t, synclean.ExitRootNotFound, synclean.ExitCodeForError(err))
}

func TestSanitizeCmd_MissingFolder(t *testing.T) {
	isolateEnv(t)

	_, err := execute(t, "sanitize", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, synclean.ExitRootNotFound, synclean.ExitCodeForError(err))
}

func TestSanitizeCmd_MissingConfigFile(t *testing.T) {
	isolateEnv(t)

	_, err := execute(t, "sanitize", t.TempDir(), "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, synclean.ExitConfigError, synclean.ExitCodeForError(err))
}

func TestSanitizeCmd_ConfigFile(t *testing.T) {
	isolateEnv(t)
	root := t.TempDir()
	logDir := t.TempDir()
	writeFiles(t, root, "naïve.txt")

	cfgPath := filepath.Join(t.TempDir(), "synclean.yaml")
	content := "policy: accent-strip\nlog_dir: " + logDir + "\nuser_partition: " + filepath.Dir(root) + "/\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

	_, err := execute(t, "sanitize", root, "--config", cfgPath)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, "naive.txt"))
	assert.FileExists(t, filepath.Join(logDir, filepath.Base(root)+synclean.LogFileSuffix))
}

func TestSanitizeCmd_InvalidPolicy(t *testing.T) {
	isolateEnv(t)

	_, err := execute(t, "sanitize", t.TempDir(), "--policy", "shout")
	require.Error(t, err)
	assert.Equal(t, synclean.ExitUsageError, synclean.ExitCodeForError(err))
}

func TestSanitizeCmd_InvalidPolicyFromEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv(config.EnvPolicy, "shout")

	_, err := execute(t, "sanitize", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, synclean.ExitConfigError, synclean.ExitCodeForError(err))
}

func TestNormalizeCmd(t *testing.T) {
	out, err := execute(t, "normalize", "Report: Q1?.txt", "CON", "plain.txt")
	require.NoError(t, err)

	assert.Contains(t, out, `"Report: Q1?.txt" -> "Report_ Q1_.txt"`)
	assert.Contains(t, out, `"CON" -> "_CON"`)
	assert.Contains(t, out, `"plain.txt" unchanged`)
}

func TestNormalizeCmd_Force(t *testing.T) {
	out, err := execute(t, "normalize", "-f", "café résumé.pdf")
	require.NoError(t, err)
	assert.Contains(t, out, `"café résumé.pdf" -> "cafe resume.pdf"`)
}

func TestNormalizeCmd_OutsidePartition(t *testing.T) {
	out, err := execute(t, "normalize", "--outside-partition", "a__b")
	require.NoError(t, err)
	assert.Contains(t, out, `"a__b" unchanged`)

	out, err = execute(t, "normalize", "a__b")
	require.NoError(t, err)
	assert.Contains(t, out, `"a__b" -> "a_b"`)
}

func TestNormalizeCmd_EncodingError(t *testing.T) {
	_, err := execute(t, "normalize", "bad\x81name")
	require.Error(t, err)
	assert.True(t, errors.Is(err, synclean.ErrEncoding))
}

func TestNormalizeCmd_ArgsValidation(t *testing.T) {
	err := normalizeCmd.Args(normalizeCmd, []string{})
	require.Error(t, err)
	assert.Equal(t, synclean.ExitUsageError, synclean.ExitCodeForError(err))
}

func TestSelectApprover(t *testing.T) {
	assert.IsType(t, &ui.ForcedApprover{}, selectApprover(true, tui.ModeNonInteractive, false, "/Users/", false))
	assert.IsType(t, &ui.DeclineApprover{}, selectApprover(false, tui.ModeNonInteractive, false, "/Users/", false))
	assert.IsType(t, &ui.InteractiveApprover{}, selectApprover(false, tui.ModeInteractive, true, "/Users/", false))
	assert.IsType(t, &ui.FormApprover{}, selectApprover(false, tui.ModeInteractive, false, "/Users/", false))
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "synclean ")
}
