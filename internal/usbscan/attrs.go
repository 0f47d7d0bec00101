package usbscan

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// walkTimeout bounds every udevadm invocation so a wedged device node
// cannot stall a scan pass indefinitely.
const walkTimeout = 10 * time.Second

// AttributeResolver returns the raw udev attribute walk for a device node.
// It exists so tests can substitute canned output for the host utility.
type AttributeResolver interface {
	Walk(ctx context.Context, devicePath string) (string, error)
}

// UdevResolver shells out to udevadm on the host.
type UdevResolver struct{}

// Walk runs `udevadm info --attribute-walk` for devicePath and returns its
// stdout. Any failure to run the utility, including a timeout, is returned
// as an error; callers treat that as "no attributes available", never as
// fatal.
func (UdevResolver) Walk(ctx context.Context, devicePath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, walkTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "udevadm", "info", "--attribute-walk", devicePath)
	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("udevadm timed out after %v for %s", walkTimeout, devicePath)
		}
		return "", fmt.Errorf("running udevadm for %s: %w", devicePath, err)
	}
	return string(out), nil
}
