// Package compose shells out to the docker compose CLI to manage the
// development stack lifecycle.
package compose

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

const dockerBin = "docker"

// Runner invokes docker compose against a fixed stack directory and an
// ordered list of compose files.
type Runner struct {
	Dir   string
	Files []string
}

// NewRunner validates the stack directory up front; a missing directory is
// a launch failure, not something to discover mid-poll.
func NewRunner(dir string, files []string) (*Runner, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stack directory %s not found: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("stack path %s is not a directory", dir)
	}

	return &Runner{Dir: dir, Files: files}, nil
}

// args builds the docker argv for a compose verb.
func (r *Runner) args(verb ...string) []string {
	argv := []string{"compose"}
	for _, f := range r.Files {
		argv = append(argv, "-f", f)
	}
	return append(argv, verb...)
}

func (r *Runner) run(verb ...string) (string, error) {
	cmd := exec.Command(dockerBin, r.args(verb...)...)
	cmd.Dir = r.Dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("docker compose %s failed: %w\n%s", verb[0], err, output)
	}

	return string(output), nil
}

// Up starts the named services in the background and waits for the compose
// command itself to exit.
func (r *Runner) Up(services ...string) error {
	_, err := r.run(append([]string{"up", "-d"}, services...)...)
	return err
}

// Down stops the stack.
func (r *Runner) Down() error {
	_, err := r.run("down")
	return err
}

// Pull pulls the latest images.
func (r *Runner) Pull() error {
	_, err := r.run("pull")
	return err
}

// PS returns the stack status listing.
func (r *Runner) PS() (string, error) {
	return r.run("ps")
}

// Logs returns the last tail lines of one service's logs.
func (r *Runner) Logs(service string, tail int) (string, error) {
	return r.run("logs", "--tail", strconv.Itoa(tail), service)
}

// Preflight checks that the docker daemon is reachable before anything is
// started.
func Preflight() error {
	if err := exec.Command(dockerBin, "info").Run(); err != nil {
		return fmt.Errorf("docker daemon not reachable: %w", err)
	}
	return nil
}
