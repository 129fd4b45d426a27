package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"proto2ros/internal/policies"
	"proto2ros/internal/types"
)

type visitKey struct {
	typeName  string
	hint      string
	candidate string
}

// TranslationContext carries the mutable state of one generation run. It is
// built once per run and threaded through every translation; nothing in it
// is shared between runs.
type TranslationContext struct {
	Messages *policies.Registry
	Services *policies.Registry
	Records  *types.RecordSet
	Manifest []types.ManifestEntry
	Warnings []types.Warning

	visited map[visitKey]string
}

func NewTranslationContext() *TranslationContext {
	return &TranslationContext{
		Messages: policies.NewRegistry(),
		Services: policies.NewRegistry(),
		Records:  types.NewRecordSet(),
		visited:  map[visitKey]string{},
	}
}

// Warn records a best-effort problem and mirrors it to the run log.
func (tc *TranslationContext) Warn(ctx context.Context, kind types.WarningKind, subject string, format string, args ...any) {
	w := types.Warning{Kind: kind, Subject: subject, Message: fmt.Sprintf(format, args...)}
	tc.Warnings = append(tc.Warnings, w)
	event := log.Ctx(ctx).Warn()
	if kind == types.WarningInfo {
		event = log.Ctx(ctx).Info()
	}
	event.Str("kind", string(kind)).Str("subject", subject).Msg(w.Message)
}

// WarningCounts groups recorded warnings by kind.
func (tc *TranslationContext) WarningCounts() map[string]int {
	counts := map[string]int{}
	for _, w := range tc.Warnings {
		counts[string(w.Kind)]++
	}
	return counts
}

func (tc *TranslationContext) visitedName(key visitKey) (string, bool) {
	name, ok := tc.visited[key]
	return name, ok
}

func (tc *TranslationContext) markVisited(key visitKey, name string) {
	tc.visited[key] = name
}

// renameVisited points every visit that resolved to from at to.
func (tc *TranslationContext) renameVisited(from string, to string) {
	for key, name := range tc.visited {
		if name == from {
			tc.visited[key] = to
		}
	}
}
