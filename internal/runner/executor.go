package runner

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strconv"
)

// Executor builds a generated graph.
type Executor interface {
	Build(ctx context.Context, dir string, jobs int) error
}

// Ninja runs the ninja binary in the graph's directory.
type Ninja struct {
	Binary string
	Stdout io.Writer
	Stderr io.Writer
}

// NewNinja creates an executor for binary writing to the process output.
func NewNinja(binary string) *Ninja {
	if binary == "" {
		binary = "ninja"
	}
	return &Ninja{Binary: binary, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Args are the command-line arguments for building in dir.
func (n *Ninja) Args(dir string, jobs int) []string {
	args := []string{"-C", dir}
	if jobs > 0 {
		args = append(args, "-j", strconv.Itoa(jobs))
	}
	return args
}

// Build runs ninja and waits for it to finish.
func (n *Ninja) Build(ctx context.Context, dir string, jobs int) error {
	args := n.Args(dir, jobs)
	log.Printf("[INFO] %s %v", n.Binary, args)

	cmd := exec.CommandContext(ctx, n.Binary, args...)
	cmd.Stdout = n.Stdout
	cmd.Stderr = n.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", n.Binary, err)
	}
	return nil
}
