package expand

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	shader := filepath.Join(dir, "main.wgsl")
	require.NoError(t, os.WriteFile(shader, []byte("COLOR LEVEL\n"), 0o644))

	fromConfig := filepath.Join(dir, "from-config.wgsl")
	fromFlag := filepath.Join(dir, "from-flag.wgsl")
	cfgPath := filepath.Join(dir, "conf.yaml")
	cfgContent := "defines:\n" +
		"  COLOR: \"0.0\"\n" +
		"  LEVEL: \"7\"\n" +
		"output: " + fromConfig + "\n" +
		"validator: \"false\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0o644))

	err := Command.Run(context.Background(), []string{
		"expand",
		"--config", cfgPath,
		"--output", fromFlag,
		"--validator", "true",
		"-D", "COLOR=1.0",
		shader,
	})
	require.NoError(t, err)

	// The config's failing validator and output path lost to the flags:
	// the run succeeded and wrote to the flag path. Config defines still
	// apply (LEVEL), with the -D flag winning for COLOR.
	out, err := os.ReadFile(fromFlag)
	require.NoError(t, err)
	assert.Equal(t, "1.0 7\n", string(out))
	assert.NoFileExists(t, fromConfig)
}

func TestCommandValidator(t *testing.T) {
	v := commandValidator(context.Background(), "true")
	require.NoError(t, v.Validate("fn main() {}\n"))
}

func TestCommandValidatorFailure(t *testing.T) {
	v := commandValidator(context.Background(), "false")
	err := v.Validate("fn main() {}\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validator false")
}

func TestCommandValidatorEmptyCommand(t *testing.T) {
	v := commandValidator(context.Background(), "  ")
	require.Error(t, v.Validate(""))
}
