package git

import (
	"context"
	"errors"
	"os/exec"
)

// probeTool runs a helper binary and reports (ok, ran): ok when it exited
// cleanly, ran=false when it could not be started at all. Package variable
// so tests can stub out the gpg probes.
var probeTool = func(ctx context.Context, name string, args ...string) (ok, ran bool) {
	// #nosec G204 -- probes gpg or the program git's own config names
	err := exec.CommandContext(ctx, name, args...).Run()
	if err == nil {
		return true, true
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, true
	}
	return false, false
}

// SigningAvailable reports whether commits can be GPG signed. A configured
// signing key must be known to gpg; when gpg itself cannot be started the
// gpg.program setting and finally a bare gpg probe decide.
func (s *Service) SigningAvailable(ctx context.Context, dir string) bool {
	key := s.ConfigValue(ctx, dir, "user.signingkey")
	if key == "" {
		return false
	}
	if ok, ran := probeTool(ctx, "gpg", "--list-secret-keys", key); ran {
		return ok
	}
	if program := s.ConfigValue(ctx, dir, "gpg.program"); program != "" {
		if ok, ran := probeTool(ctx, program, "--version"); ran {
			return ok
		}
	}
	ok, _ := probeTool(ctx, "gpg", "--version")
	return ok
}
