package config

import (
	"fmt"
	"math"
	"net/netip"
	"strconv"
	"time"

	"github.com/rileyhilliard/hostwatch/internal/errors"
)

// Target is the validated host and polling interval for one daemon instance.
// Construct it with ParseTarget; the zero value is not usable.
type Target struct {
	Host     netip.Addr
	Interval time.Duration
}

// String renders the target as "host every Ns".
func (t Target) String() string {
	return fmt.Sprintf("%s every %s", t.Host, t.Interval)
}

// ParseTarget validates a host address and an interval given in whole seconds.
// The address must be a dotted-quad IPv4 literal and the interval an integer >= 1.
func ParseTarget(host, interval string) (Target, error) {
	addr, err := ParseIPv4(host)
	if err != nil {
		return Target{}, err
	}

	secs, err := ParseInterval(interval)
	if err != nil {
		return Target{}, err
	}

	return Target{Host: addr, Interval: time.Duration(secs) * time.Second}, nil
}

// ParseIPv4 accepts only dotted-quad IPv4 literals. IPv6 (including
// IPv4-mapped forms), zones, and hostnames are rejected.
func ParseIPv4(s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() {
		return netip.Addr{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid IPv4 address: %q", s),
			"Use a dotted-quad address like 192.168.1.10")
	}
	return addr, nil
}

// MaxIntervalSeconds is the longest interval that still fits in a time.Duration.
const MaxIntervalSeconds = math.MaxInt64 / int64(time.Second)

// ParseInterval parses a polling interval in whole seconds. It must be >= 1
// and no more than MaxIntervalSeconds.
func ParseInterval(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Invalid interval: %q", s),
			"The interval is a whole number of seconds, e.g. 5")
	}
	if n < 1 {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval should be minimum 1 second, got %d", n),
			"The interval is a whole number of seconds, e.g. 5")
	}
	if int64(n) > MaxIntervalSeconds {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval should be at most %d seconds, got %d", MaxIntervalSeconds, n),
			"The interval is a whole number of seconds, e.g. 5")
	}
	return n, nil
}
