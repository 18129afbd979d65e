// Package signal wraps a signal-cli compatible binary as the protocol
// collaborator: directory listings, outgoing sends, display-name resolution,
// and a long-running receive stream of decoded envelopes. Transport,
// encryption, and account linking all live in the external binary.
package signal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"murmur/internal/logging"
	"murmur/internal/types"
)

// Group is one entry of the group directory.
type Group struct {
	ID   string
	Name string
}

// Contact is one entry of the contact directory.
type Contact struct {
	Number string
	Name   string
}

// InboundMessage is a decoded incoming envelope: a direct message, a group
// message, or a sync copy of a message sent from another device of the same
// account (Destination set, group empty).
type InboundMessage struct {
	Source      string
	SourceName  string
	Destination string
	GroupID     string
	Text        string
	Attachments []types.Attachment
	Timestamp   time.Time
}

// Client is the collaborator contract the engine consumes. Name resolvers
// return the empty string for unknown identities.
type Client interface {
	ListGroups(ctx context.Context) ([]Group, error)
	ListContacts(ctx context.Context) ([]Contact, error)
	Send(ctx context.Context, recipient, body string, timestamp int64) error
	ContactName(identity string) string
	GroupName(groupID string) string
	SelfIdentity() string
}

// CLI shells out to a signal-cli compatible binary. Directory results are
// cached so name resolution never blocks on a subprocess.
type CLI struct {
	command string
	account string
	log     logging.Logger

	mu       sync.Mutex
	contacts map[string]string
	groups   map[string]string
}

func NewCLI(command, account string, log logging.Logger) *CLI {
	if log == nil {
		log = logging.Nop()
	}
	return &CLI{
		command:  command,
		account:  account,
		log:      log,
		contacts: make(map[string]string),
		groups:   make(map[string]string),
	}
}

// Check verifies the configured binary is runnable.
func (c *CLI) Check() error {
	if _, err := exec.LookPath(c.command); err != nil {
		return fmt.Errorf("signal-cli binary %q not found: %w", c.command, err)
	}
	if strings.TrimSpace(c.account) == "" {
		return fmt.Errorf("signal account is not configured")
	}
	return nil
}

func (c *CLI) SelfIdentity() string {
	return c.account
}

type wireGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type wireContact struct {
	Number  string `json:"number"`
	UUID    string `json:"uuid"`
	Name    string `json:"name"`
	Profile struct {
		GivenName  string `json:"givenName"`
		FamilyName string `json:"familyName"`
	} `json:"profile"`
}

func (c *CLI) ListGroups(ctx context.Context) ([]Group, error) {
	out, err := c.run(ctx, "listGroups")
	if err != nil {
		return nil, err
	}
	var raw []wireGroup
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("decode listGroups output: %w", err)
	}
	groups := make([]Group, 0, len(raw))
	c.mu.Lock()
	for _, g := range raw {
		if g.ID == "" {
			continue
		}
		if g.Name != "" {
			c.groups[g.ID] = g.Name
		}
		groups = append(groups, Group{ID: g.ID, Name: g.Name})
	}
	c.mu.Unlock()
	return groups, nil
}

func (c *CLI) ListContacts(ctx context.Context) ([]Contact, error) {
	out, err := c.run(ctx, "listContacts")
	if err != nil {
		return nil, err
	}
	var raw []wireContact
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("decode listContacts output: %w", err)
	}
	contacts := make([]Contact, 0, len(raw))
	c.mu.Lock()
	for _, entry := range raw {
		number := entry.Number
		if number == "" {
			number = entry.UUID
		}
		if number == "" {
			continue
		}
		name := contactDisplayName(entry)
		if name != "" {
			c.contacts[number] = name
			if entry.UUID != "" {
				c.contacts[entry.UUID] = name
			}
		}
		contacts = append(contacts, Contact{Number: number, Name: name})
	}
	c.mu.Unlock()
	return contacts, nil
}

func contactDisplayName(entry wireContact) string {
	if name := strings.TrimSpace(entry.Name); name != "" {
		return name
	}
	full := strings.TrimSpace(entry.Profile.GivenName + " " + entry.Profile.FamilyName)
	return full
}

func (c *CLI) ContactName(identity string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.contacts[identity]
}

func (c *CLI) GroupName(groupID string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.groups[groupID]
}

// Send dispatches one direct message. The timestamp is recorded for the log
// only; signal-cli stamps the wire message itself.
func (c *CLI) Send(ctx context.Context, recipient, body string, timestamp int64) error {
	cmd := exec.CommandContext(ctx, c.command, "-a", c.account, "send", "-m", body, recipient)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("send to %s: %w: %s", recipient, err, strings.TrimSpace(stderr.String()))
	}
	c.log.Debug("message sent", logging.F("recipient", recipient), logging.F("ts", timestamp))
	return nil
}

func (c *CLI) run(ctx context.Context, args ...string) ([]byte, error) {
	full := append([]string{"-o", "json", "-a", c.account}, args...)
	cmd := exec.CommandContext(ctx, c.command, full...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s %s: %w: %s", c.command, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
