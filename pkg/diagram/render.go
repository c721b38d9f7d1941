package diagram

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Write persists diagram text to path.
func Write(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write diagram: %w", err)
	}
	return nil
}

// RenderExternal invokes the configured renderer command on an
// already-written diagram file. The file is never removed on failure;
// the caller reports the error and keeps the text output.
func RenderExternal(ctx context.Context, command, path string) error {
	if command == "" {
		return fmt.Errorf("no renderer command configured")
	}

	cmd := exec.CommandContext(ctx, command, path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("renderer %s: %w: %s", command, err, msg)
		}
		return fmt.Errorf("renderer %s: %w", command, err)
	}
	return nil
}
