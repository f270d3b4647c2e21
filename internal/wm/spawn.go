package wm

import (
	"os/exec"
	"syscall"
)

// Spawn launches line through the shell in its own session and forgets
// about it; a goroutine reaps the immediate child.
func Spawn(line string) error {
	cmd := exec.Command("/bin/sh", "-c", line)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
