package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"syscall"

	"github.com/kitstream/pathguard"
	"github.com/kitstream/pathguard/internal/logging"
	"github.com/spf13/cobra"
)

func NewRunCmd(log *logging.Logger) *cobra.Command {
	var (
		base     string
		workdir  string
		jsonLogs bool
	)

	cmd := &cobra.Command{
		Use:   "run -- COMMAND [ARGS...]",
		Short: "Run arbitrary commands with a validated working directory",
		Long: `Execute an arbitrary command with structured logging and exit code
forwarding.

The command is executed directly via execve (no shell). Use "--" to
separate pathguard flags from the command and its arguments.

If --workdir is set, it is checked with PathCheck against --base before the
child process is started: the resolved directory must be --base itself or
lie inside it. PathCheck does not require the directory to exist; a missing
directory makes the child process fail to start. This closes the same path-traversal hole a naive
"cd $USER_INPUT && exec" would open when --workdir comes from an untrusted
caller (a CI job, a webhook payload, a templated Kubernetes manifest).

stdout and stderr are captured and logged with timestamps. The child
process exit code is forwarded.`,
		Example: `  # Run a setup script
  pathguard run -- /bin/setup.sh

  # Run with JSON logs
  pathguard run --json -- python3 /scripts/init.py

  # Run in a directory validated against a trusted base
  pathguard run --base /work --workdir tenants/acme -- ./prepare.sh`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonLogs {
				log.SetJSON(true)
			}

			if len(args) == 0 {
				return fmt.Errorf("command is required after \"--\"")
			}

			dir := ""
			if workdir != "" {
				resolved, err := pathguard.PathCheck(workdir, base)
				if err != nil {
					return fmt.Errorf("invalid workdir: %w", err)
				}
				dir = resolved
			}

			log.Info("executing command", "command", args[0])

			exitCode, err := runCommandInDir(log, args, dir)
			if err != nil {
				return fmt.Errorf("run failed: %w", err)
			}

			if exitCode != 0 {
				return fmt.Errorf("command exited with code %d", exitCode)
			}

			log.Info("command completed successfully")
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", "/work", "Trusted base directory that --workdir is validated against")
	cmd.Flags().StringVar(&workdir, "workdir", "", "Working directory for the child process, relative to --base (default: inherit)")
	cmd.Flags().BoolVar(&jsonLogs, "json", false, "Enable JSON log output")

	return cmd
}

func runCommandInDir(log *logging.Logger, args []string, dir string) (int, error) {
	if dir == "" {
		return runCommand(log, args)
	}
	return runCommandWithDir(log, args, dir)
}

func runCommand(log *logging.Logger, args []string) (int, error) {
	c := newExecCommand(args[0], args[1:]...)
	return executeAndStream(log, c)
}

func runCommandWithDir(log *logging.Logger, args []string, dir string) (int, error) {
	c := newExecCommand(args[0], args[1:]...)
	c.Dir = dir
	return executeAndStream(log, c)
}

func newExecCommand(name string, args ...string) *exec.Cmd {
	c := exec.Command(name, args...)
	c.Stdin = nil
	return c
}

func executeAndStream(log *logging.Logger, c *exec.Cmd) (int, error) {
	stdoutPipe, err := c.StdoutPipe()
	if err != nil {
		return -1, fmt.Errorf("creating stdout pipe: %w", err)
	}

	stderrPipe, err := c.StderrPipe()
	if err != nil {
		return -1, fmt.Errorf("creating stderr pipe: %w", err)
	}

	if err := c.Start(); err != nil {
		return -1, fmt.Errorf("starting command %q: %w", c.Path, err)
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		streamLines(log, stdoutPipe, "stdout")
	}()

	go func() {
		defer wg.Done()
		streamLines(log, stderrPipe, "stderr")
	}()

	wg.Wait()

	err = c.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if ok := asExitError(err, &exitErr); ok {
		return exitErr.ExitCode(), nil
	}

	return -1, err
}

func asExitError(err error, target **exec.ExitError) bool {
	if e, ok := err.(*exec.ExitError); ok {
		*target = e
		return true
	}
	return false
}

func streamLines(log *logging.Logger, r io.Reader, stream string) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		log.Info(scanner.Text(), "stream", stream)
	}
}

// ExitCodeFromError extracts the exit code from a command error, for
// callers that need to propagate it (e.g., os.Exit).
func ExitCodeFromError(err error) int {
	if err == nil {
		return 0
	}

	var exitCode int
	if n, _ := fmt.Sscanf(err.Error(), "command exited with code %d", &exitCode); n == 1 {
		return exitCode
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
			return status.ExitStatus()
		}
	}

	return 1
}
