package policies

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"proto2ros/internal/shared"
	"proto2ros/internal/types"
)

// DefaultMaxAttempts bounds the numeric disambiguator search. Running out
// of attempts is reported as a persistent collision.
const DefaultMaxAttempts = 99

type ResolutionOutcome string

const (
	// OutcomeClaimed: the name was free and is now owned by the hint.
	OutcomeClaimed ResolutionOutcome = "claimed"
	// OutcomeRenamed: a disambiguated name was claimed for the hint.
	OutcomeRenamed ResolutionOutcome = "renamed"
	// OutcomeSatisfied: the same hint already owns the final name.
	OutcomeSatisfied ResolutionOutcome = "satisfied"
	// OutcomeConflict: no free slot could be found.
	OutcomeConflict ResolutionOutcome = "conflict"
)

type Resolution struct {
	Name    string
	Emit    bool
	Outcome ResolutionOutcome
}

// Registry maps an output identifier to the hint that owns it. One owner
// at a time; ownership is never overwritten.
type Registry struct {
	owners map[string]string
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{owners: map[string]string{}}
}

func (r *Registry) Owner(name string) (string, bool) {
	hint, ok := r.owners[name]
	return hint, ok
}

// Claim records hint as the owner of name. It returns false when another
// hint already owns the name.
func (r *Registry) Claim(name string, hint string) bool {
	if owner, ok := r.owners[name]; ok {
		return owner == hint
	}
	r.owners[name] = hint
	r.order = append(r.order, name)
	return true
}

// Occupied reports whether name is owned by a hint other than hint.
func (r *Registry) Occupied(name string, hint string) bool {
	owner, ok := r.owners[name]
	return ok && owner != hint
}

// Names returns claimed identifiers in claim order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) Len() int {
	return len(r.order)
}

// CollisionResolver assigns globally unique identifiers on a
// first-come-first-served basis over a shared Registry.
type CollisionResolver struct {
	Registry    *Registry
	MaxAttempts int
}

func NewCollisionResolver(registry *Registry) CollisionResolver {
	return CollisionResolver{Registry: registry, MaxAttempts: DefaultMaxAttempts}
}

// Resolve claims candidate for hint or computes the acronym-prefixed
// alternative when another hint already owns it.
func (c CollisionResolver) Resolve(candidate string, hint string) Resolution {
	owner, claimed := c.Registry.Owner(candidate)
	if !claimed {
		c.Registry.Claim(candidate, hint)
		return Resolution{Name: candidate, Emit: true, Outcome: OutcomeClaimed}
	}
	if owner == hint {
		return Resolution{Name: candidate, Emit: false, Outcome: OutcomeSatisfied}
	}

	acronym := shared.Acronym(hint)
	var name string
	var found bool
	switch {
	case acronym == "":
		name, found = c.nextWithNumber(candidate, "", hint, 2)
	case strings.HasPrefix(candidate, acronym):
		rest := candidate[len(acronym):]
		if num, tail, ok := splitLeadingNumber(rest); ok {
			name, found = c.nextWithNumber(acronym, tail, hint, num+1)
		} else {
			name, found = c.nextWithNumber(acronym, rest, hint, 2)
		}
	default:
		name = acronym + candidate
		found = !c.Registry.Occupied(name, hint)
		if !found {
			name, found = c.nextWithNumber(acronym, candidate, hint, 2)
		}
	}
	if !found {
		return Resolution{Name: candidate, Emit: false, Outcome: OutcomeConflict}
	}
	if _, exists := c.Registry.Owner(name); exists {
		return Resolution{Name: name, Emit: false, Outcome: OutcomeSatisfied}
	}
	c.Registry.Claim(name, hint)
	return Resolution{Name: name, Emit: true, Outcome: OutcomeRenamed}
}

func (c CollisionResolver) nextWithNumber(prefix string, rest string, hint string, start int) (string, bool) {
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	for i := 0; i < attempts; i++ {
		candidate := fmt.Sprintf("%s%d%s", prefix, start+i, rest)
		if !c.Registry.Occupied(candidate, hint) {
			return candidate, true
		}
	}
	return "", false
}

var leadingNumber = regexp.MustCompile(`^(\d+)(.*)$`)

func splitLeadingNumber(value string) (int, string, bool) {
	match := leadingNumber.FindStringSubmatch(value)
	if match == nil {
		return 0, "", false
	}
	num, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, "", false
	}
	return num, match[2], true
}

var versionSuffix = regexp.MustCompile(`(?i)V[1-9]$`)

// VersionedConflictMarker is appended to output names that have a sibling
// differing only by a trailing version suffix.
const VersionedConflictMarker = "XX"

// VersionedConflicts returns the desired output names ending in V1..V9 for
// which another request anywhere in the batch shares the same stem once
// the suffix is stripped. Hints are ignored on purpose.
func VersionedConflicts(requests []types.InterfaceRequest) map[string]bool {
	variants := map[string][]string{}
	for _, req := range requests {
		base := versionSuffix.ReplaceAllString(req.DesiredOutputName, "")
		variants[base] = append(variants[base], req.DesiredOutputName)
	}
	conflicts := map[string]bool{}
	for _, req := range requests {
		name := req.DesiredOutputName
		if !versionSuffix.MatchString(name) {
			continue
		}
		base := versionSuffix.ReplaceAllString(name, "")
		for _, other := range variants[base] {
			if other != name {
				conflicts[name] = true
				break
			}
		}
	}
	return conflicts
}

// MarkVersionedConflicts appends the conflict marker to every request whose
// desired output name is a versioned conflict.
func MarkVersionedConflicts(requests []types.InterfaceRequest) []types.InterfaceRequest {
	conflicts := VersionedConflicts(requests)
	out := make([]types.InterfaceRequest, len(requests))
	for i, req := range requests {
		if conflicts[req.DesiredOutputName] {
			req.DesiredOutputName += VersionedConflictMarker
		}
		out[i] = req
	}
	return out
}
