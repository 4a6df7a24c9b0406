package app

import (
	"bytes"
	"context"
	"ejbctx/internal/core/ports"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// InterfaceEnv names the environment variable carrying the interface name to
// a generator command.
const InterfaceEnv = "EJBCTX_INTERFACE"

// CommandGenerator runs argv once per interface: the bundle document is written
// to stdin and stdout is taken as the markdown.
func CommandGenerator(argv []string) (ports.DocumentGenerator, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, fmt.Errorf("generator command must not be empty")
	}
	name, args := argv[0], append([]string(nil), argv[1:]...)

	return func(ctx context.Context, contextDocument, interfaceName string) (string, error) {
		cmd := exec.CommandContext(ctx, name, args...)
		cmd.Stdin = strings.NewReader(contextDocument)
		cmd.Env = append(os.Environ(), InterfaceEnv+"="+interfaceName)

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				return "", fmt.Errorf("run %s: %w", name, err)
			}
			return "", fmt.Errorf("run %s: %w: %s", name, err, msg)
		}

		out := strings.TrimSpace(stdout.String())
		if out == "" {
			return "", fmt.Errorf("%s produced no output for %s", name, interfaceName)
		}
		return out + "\n", nil
	}, nil
}
