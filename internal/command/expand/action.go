package expand

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	wgslpp "github.com/mbullington/wgpu-pp"
	"github.com/mbullington/wgpu-pp/internal/config"
)

func action(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one input file, got %d", cmd.Args().Len())
	}
	source := cmd.Args().First()

	var cfgPaths []string
	if path := cmd.String("config"); path != "" {
		cfgPaths = []string{path}
	}
	cfg, err := config.Load(cfgPaths...)
	if err != nil {
		return err
	}

	// Flags override the config file.
	output := cfg.Output
	if cmd.IsSet("output") {
		output = cmd.String("output")
	}
	validator := cfg.Validator
	if cmd.IsSet("validator") {
		validator = cmd.String("validator")
	}

	p := wgslpp.New()
	for name, value := range cfg.Defines {
		p.DefineValue(name, value)
	}
	for _, d := range cmd.StringSlice("define") {
		name, value := wgslpp.ParseDefine(d)
		p.DefineValue(name, value)
	}

	expanded, err := p.Process(filepath.Base(source), filepath.Dir(source))
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}

	if validator != "" {
		v := commandValidator(ctx, validator)
		if err := v.Validate(expanded); err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}
		slog.Debug("Validator passed", "command", validator)
	}

	if output == "" {
		_, err := os.Stdout.WriteString(expanded)
		return err
	}
	slog.Info("Writing expanded source", "path", output)
	return os.WriteFile(output, []byte(expanded), 0o644)
}

// commandValidator wraps an external validator executable such as naga
// or tint: the expanded source is written to a temp file whose path is
// appended to the command, and a non-zero exit is reported with the
// tool's combined output as the message.
func commandValidator(ctx context.Context, command string) wgslpp.Validator {
	return wgslpp.ValidatorFunc(func(source string) error {
		parts := strings.Fields(command)
		if len(parts) == 0 {
			return fmt.Errorf("empty validator command")
		}

		tmp, err := os.CreateTemp("", "wgsl-pp-*.wgsl")
		if err != nil {
			return err
		}
		defer os.Remove(tmp.Name())
		if _, err := tmp.WriteString(source); err != nil {
			tmp.Close()
			return err
		}
		if err := tmp.Close(); err != nil {
			return err
		}

		args := append(parts[1:], tmp.Name())
		out, err := exec.CommandContext(ctx, parts[0], args...).CombinedOutput()
		if err != nil {
			if msg := strings.TrimSpace(string(out)); msg != "" {
				return fmt.Errorf("validator %s: %s", parts[0], msg)
			}
			return fmt.Errorf("validator %s: %w", parts[0], err)
		}
		return nil
	})
}
