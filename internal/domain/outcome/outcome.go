// Package outcome defines the team status vocabulary and the one winning-status set
// every view classifies records with.
package outcome

// Status values seen in the results data.
const (
	Winner                = "Winner"
	JointWinner           = "Joint Winner"
	FirstPrize            = "First Prize"
	SecondPrize           = "Second Prize"
	ThirdPrize            = "Third Prize"
	ConsolationPrize      = "Consolation Prize"
	FutureInnovatorsAward = "Future Innovators Award"
	GirlsAchieverAward    = "Girls Achiever Award"
	QuantumFrontierAward  = "Quantum Frontier Award"
	Shortlisted           = "Shortlisted"
	Waitlist              = "Waitlist"
)

// winning is the closed winning set in canonical order.
var winning = [...]string{ //nolint:gochecknoglobals // fixed vocabulary
	Winner,
	JointWinner,
	FirstPrize,
	SecondPrize,
	ThirdPrize,
	ConsolationPrize,
	FutureInnovatorsAward,
	GirlsAchieverAward,
	QuantumFrontierAward,
}

// rank maps a known status to its display position.
var rank = func() map[string]int { //nolint:gochecknoglobals // fixed vocabulary
	m := make(map[string]int, len(winning)+2)
	for i, s := range winning {
		m[s] = i
	}
	m[Shortlisted] = len(winning)
	m[Waitlist] = len(winning) + 1
	return m
}()

// IsWinner reports whether status is a declared win. It depends on status alone.
func IsWinner(status string) bool {
	r, ok := rank[status]
	return ok && r < len(winning)
}

// WinningStatuses returns a copy of the winning set in canonical order.
func WinningStatuses() []string {
	out := make([]string, len(winning))
	copy(out, winning[:])
	return out
}

// Rank returns the display position of a known status.
func Rank(status string) (int, bool) {
	r, ok := rank[status]
	return r, ok
}

// Order returns statuses in display order: winning statuses in canonical order,
// then Shortlisted and Waitlist, then unrecognized values in their given order.
// Duplicates are removed.
func Order(statuses []string) []string {
	known := make([]string, len(rank))
	var unknown []string
	seen := make(map[string]struct{}, len(statuses))
	for _, s := range statuses {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if r, ok := rank[s]; ok {
			known[r] = s
			continue
		}
		unknown = append(unknown, s)
	}
	out := make([]string, 0, len(seen))
	for _, s := range known {
		if s != "" {
			out = append(out, s)
		}
	}
	return append(out, unknown...)
}
