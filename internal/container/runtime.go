// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container detects and drives a local container runtime. The
// markitdown extraction engine pipes document bytes through a container
// image; this package hides whether that container runs under docker or
// podman.
package container

import (
	"fmt"
	"io"
	"os/exec"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Runtime provides the container operations the conversion pipeline needs:
// availability probing, image verification, and piped execution.
type Runtime interface {
	// Name returns the runtime name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary exists on PATH and
	// responds to an info command.
	Available() bool

	// ImageExists checks whether the named image exists locally.
	ImageExists(image string) error

	// Run executes a container with the given image, wiring stdin and stdout.
	Run(image string, stdin io.Reader, stdout io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	return cmd.Run()
}

// runtime implements Runtime for one container binary. Docker and podman
// share the logic; they differ in binary name and the image-check
// subcommand.
type runtime struct {
	binary      string
	inspectArgs []string
	exec        executor
}

func (r *runtime) Name() string { return r.binary }

func (r *runtime) Available() bool {
	if _, err := r.exec.LookPath(r.binary); err != nil {
		return false
	}
	return r.exec.RunSilent(r.binary, "info") == nil
}

func (r *runtime) ImageExists(image string) error {
	args := append(append([]string{}, r.inspectArgs...), image)
	if err := r.exec.RunSilent(r.binary, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.binary, err)
	}
	return nil
}

func (r *runtime) Run(image string, stdin io.Reader, stdout io.Writer) error {
	if err := r.exec.RunPiped(r.binary, []string{"run", "--rm", "-i", image}, stdin, stdout); err != nil {
		return fmt.Errorf("running %s container %s: %w", r.binary, image, err)
	}
	return nil
}

func newDockerRuntime(exec executor) *runtime {
	return &runtime{binary: binDocker, inspectArgs: []string{"image", "inspect"}, exec: exec}
}

func newPodmanRuntime(exec executor) *runtime {
	return &runtime{binary: binPodman, inspectArgs: []string{"image", "exists"}, exec: exec}
}

var defaultExec = &osExecutor{}

// DetectRuntime tries docker first, then podman. It returns an error when
// neither runtime is operational.
func DetectRuntime() (Runtime, error) {
	return detectRuntime(defaultExec)
}

func detectRuntime(exec executor) (Runtime, error) {
	if docker := newDockerRuntime(exec); docker.Available() {
		return docker, nil
	}
	if podman := newPodmanRuntime(exec); podman.Available() {
		return podman, nil
	}
	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}
