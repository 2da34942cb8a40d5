package device

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// DefaultBinary is the pyatv command line client driving the device.
const DefaultBinary = "atvremote"

// RemoteClient drives a device by shelling out to the atvremote binary.
// One client is bound to one device identifier for its lifetime.
type RemoteClient struct {
	bin       string
	id        string
	creds     map[string]string // protocol name -> credentials
	opTimeout time.Duration
	features  map[Feature]bool
}

// RemoteScanner discovers devices through `atvremote scan`.
type RemoteScanner struct {
	bin     string
	timeout time.Duration
}

// NewRemoteScanner builds a scanner around the given binary.
func NewRemoteScanner(bin string, timeout time.Duration) *RemoteScanner {
	if bin == "" {
		bin = DefaultBinary
	}
	return &RemoteScanner{bin: bin, timeout: timeout}
}

// Scan runs a network scan and parses the discovered devices.
func (s *RemoteScanner) Scan(ctx context.Context) ([]Info, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout+2*time.Second)
	defer cancel()

	out, err := runCommand(ctx, s.bin, "--scan-timeout", strconv.Itoa(int(s.timeout.Seconds())), "scan")
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return parseScan(out), nil
}

// parseScan extracts devices from atvremote's block-formatted scan output.
func parseScan(out string) []Info {
	var devices []Info
	var current Info

	flush := func() {
		if current.Name != "" && current.Identifier != "" {
			devices = append(devices, current)
		}
		current = Info{}
	}

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Name:"):
			flush()
			current.Name = strings.TrimSpace(strings.TrimPrefix(line, "Name:"))
		case strings.HasPrefix(line, "Address:"):
			current.Address = strings.TrimSpace(strings.TrimPrefix(line, "Address:"))
		case strings.HasPrefix(line, "Identifier:"):
			current.Identifier = strings.TrimSpace(strings.TrimPrefix(line, "Identifier:"))
		}
	}
	flush()
	return devices
}

// Connect binds a client to a device and caches its feature availability.
// creds maps protocol names (Companion, AirPlay) to stored credentials.
func Connect(ctx context.Context, bin string, info Info, creds map[string]string, opTimeout time.Duration) (*RemoteClient, error) {
	if bin == "" {
		bin = DefaultBinary
	}
	c := &RemoteClient{
		bin:       bin,
		id:        info.Identifier,
		creds:     creds,
		opTimeout: opTimeout,
	}

	out, err := c.run(ctx, "features")
	if err != nil {
		return nil, fmt.Errorf("connexion a %s: %w", info.Name, err)
	}
	c.features = parseFeatures(out)
	return c, nil
}

// parseFeatures reads `atvremote features` output, one "Name: State" per line.
func parseFeatures(out string) map[Feature]bool {
	features := make(map[Feature]bool)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		name, state, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.Contains(state, "Available") {
			features[Feature(strings.TrimSpace(name))] = true
		}
	}
	return features
}

func (c *RemoteClient) baseArgs() []string {
	args := []string{"--id", c.id}
	for protocol, cred := range c.creds {
		switch strings.ToLower(protocol) {
		case "companion":
			args = append(args, "--companion-credentials", cred)
		case "airplay":
			args = append(args, "--airplay-credentials", cred)
		}
	}
	return args
}

func (c *RemoteClient) run(ctx context.Context, command ...string) (string, error) {
	args := append(c.baseArgs(), command...)
	return runCommand(ctx, c.bin, args...)
}

func runCommand(ctx context.Context, bin string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%s %s: %s", bin, strings.Join(args, " "), msg)
	}
	return stdout.String(), nil
}

// Supports implements Controller using the feature set cached at connect time.
func (c *RemoteClient) Supports(f Feature) bool {
	return c.features[f]
}

// PressButton sends a single remote button press.
func (c *RemoteClient) PressButton(ctx context.Context, b Button) error {
	_, err := c.run(ctx, string(b))
	return err
}

// Swipe performs a touch swipe gesture.
func (c *RemoteClient) Swipe(ctx context.Context, g Gesture) error {
	_, err := c.run(ctx, "swipe",
		strconv.Itoa(g.StartX), strconv.Itoa(g.StartY),
		strconv.Itoa(g.EndX), strconv.Itoa(g.EndY),
		strconv.Itoa(g.DurationMS))
	return err
}

// LaunchApp launches an application by bundle identifier.
func (c *RemoteClient) LaunchApp(ctx context.Context, bundleID string) error {
	_, err := c.run(ctx, "launch_app="+bundleID)
	return err
}

// TurnOn wakes the device. The power transition is bounded by the operation
// timeout; exceeding it is a terminal failure for the step.
func (c *RemoteClient) TurnOn(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()
	_, err := c.run(ctx, "turn_on")
	return err
}

// TurnOff puts the device to sleep, bounded like TurnOn.
func (c *RemoteClient) TurnOff(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()
	_, err := c.run(ctx, "turn_off")
	return err
}

// PowerState returns the current power state reported by the device.
func (c *RemoteClient) PowerState(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "power_state")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// VolumeUp raises the volume one step.
func (c *RemoteClient) VolumeUp(ctx context.Context) error {
	_, err := c.run(ctx, "volume_up")
	return err
}

// VolumeDown lowers the volume one step.
func (c *RemoteClient) VolumeDown(ctx context.Context) error {
	_, err := c.run(ctx, "volume_down")
	return err
}

// SetVolume sets the absolute volume, clamped to 0-100.
func (c *RemoteClient) SetVolume(ctx context.Context, level int) error {
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	_, err := c.run(ctx, fmt.Sprintf("set_volume=%d", level))
	return err
}

// Close releases the client. The exec-based transport holds no persistent
// connection, so there is nothing to tear down.
func (c *RemoteClient) Close() error { return nil }
