package signal

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"

	"murmur/internal/logging"
)

// Receive runs the binary's streaming receive mode and hands every decoded
// message to deliver. It blocks until the context is cancelled or the
// subprocess exits. Lines that are not messages (receipts, typing events,
// malformed output) are logged at debug and skipped.
func (c *CLI) Receive(ctx context.Context, deliver func(InboundMessage)) error {
	cmd := exec.CommandContext(ctx, c.command,
		"-a", c.account, "-o", "json",
		"receive", "--timeout", "-1")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("receive pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start receive: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		msg, ok, err := decodeEnvelope(line)
		if err != nil {
			c.log.Debug("skipping undecodable envelope", logging.F("error", err))
			continue
		}
		if !ok {
			continue
		}
		deliver(msg)
	}
	if err := scanner.Err(); err != nil {
		_ = cmd.Wait()
		return fmt.Errorf("receive stream: %w", err)
	}
	if err := cmd.Wait(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("receive exited: %w", err)
	}
	return ctx.Err()
}
