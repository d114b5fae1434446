package sound

import (
	"log/slog"
	"os/exec"
)

// Player launches an external audio player on a sound file.
type Player interface {
	Play(path string)
}

// ExecPlayer plays files with a system audio player command such as paplay.
type ExecPlayer struct {
	Command string
}

// Play launches the player detached. The process is never waited on and its
// exit status is never observed; a failure to even start is logged at debug
// level and otherwise ignored.
func (p ExecPlayer) Play(path string) {
	command := p.Command
	if command == "" {
		command = "paplay"
	}

	cmd := exec.Command(command, path) //nolint:gosec
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		slog.Debug("Failed to start audio player", "command", command, "error", err)
		return
	}

	// Reap the child when it exits so it does not linger as a zombie for
	// the rest of the process lifetime.
	go func() { _ = cmd.Wait() }()
}
