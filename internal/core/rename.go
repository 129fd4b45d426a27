package core

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"proto2ros/internal/policies"
	"proto2ros/internal/types"
)

var arrayBrackets = regexp.MustCompile(`\[.*\]`)

// BuildSanitizePlan computes the normalized name of every record. A rename
// whose target is already taken is rejected and the record keeps its name;
// rejected names are planned as identity so references to them survive the
// content rewrite.
func BuildSanitizePlan(records *types.RecordSet) (types.RenamePlan, []types.Warning) {
	plan := types.RenamePlan{}
	var warnings []types.Warning
	for _, kind := range []types.RecordKind{types.RecordKindMessage, types.RecordKindService} {
		names := records.Names(kind)
		targets := make(map[string]string, len(names))
		taken := map[string]bool{}
		for _, name := range names {
			target := NormalizeIdentifier(name)
			targets[name] = target
			if target == name {
				taken[name] = true
			}
		}
		renames := types.RenameMap{}
		for _, name := range names {
			target := targets[name]
			if target == name {
				renames[name] = name
				continue
			}
			if taken[target] {
				warnings = append(warnings, types.Warning{
					Kind:    types.WarningRenameConflict,
					Subject: name + kind.Extension(),
					Message: "normalized name " + target + " already taken, keeping original",
				})
				renames[name] = name
				taken[name] = true
				continue
			}
			taken[target] = true
			renames[name] = target
		}
		if len(renames) > 0 {
			plan[kind] = renames
		}
	}
	return plan, warnings
}

// RenameCount returns the number of entries of plan that change a name.
func RenameCount(plan types.RenamePlan) int {
	count := 0
	for _, renames := range plan {
		for from, to := range renames {
			if from != to {
				count++
			}
		}
	}
	return count
}

// ApplyRenames runs the rename transaction: field type references in every
// record first, then record names, then manifest identifiers. Field types
// only ever reference messages. With normalizeUnknown set, references to
// names outside the plan are normalized too.
func ApplyRenames(records *types.RecordSet, manifest []types.ManifestEntry, plan types.RenamePlan, normalizeUnknown bool) []types.ManifestEntry {
	messageRenames := plan[types.RecordKindMessage]
	rebuilt := types.NewRecordSet()
	for _, rec := range records.Records() {
		rec.Lines = RewriteLines(rec.Lines, messageRenames, normalizeUnknown)
		if renamed, ok := plan.Lookup(rec.Kind, rec.Name); ok {
			rec.Name = renamed
		}
		rebuilt.Put(rec)
	}
	*records = *rebuilt

	out := make([]types.ManifestEntry, len(manifest))
	for i, entry := range manifest {
		if renamed, ok := plan.Lookup(entry.Kind, entry.Identifier); ok {
			entry.Identifier = renamed
		}
		out[i] = entry
	}
	return out
}

// RewriteLines applies RewriteLine to every line.
func RewriteLines(lines []string, renames types.RenameMap, normalizeUnknown bool) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = RewriteLine(line, renames, normalizeUnknown)
	}
	return out
}

// RewriteLine renames the field type of a `<type>[N] <name>` line. Comments,
// constants, separators, primitives and package-qualified types are kept.
func RewriteLine(line string, renames types.RenameMap, normalizeUnknown bool) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || trimmed == "---" || strings.Contains(trimmed, "=") {
		return line
	}
	tokens := strings.Fields(trimmed)
	if len(tokens) != 2 {
		return line
	}
	typeName, fieldName := tokens[0], tokens[1]
	if strings.Contains(typeName, "/") {
		return line
	}
	base := arrayBrackets.ReplaceAllString(typeName, "")
	if policies.IsROSPrimitive(base) {
		return line
	}
	renamed, ok := renames[base]
	if !ok {
		if !normalizeUnknown {
			return line
		}
		renamed = NormalizeIdentifier(base)
	}
	if renamed == base {
		return line
	}
	return renamed + typeName[len(base):] + " " + fieldName
}

// Sanitize normalizes every record name of the run and rewrites references
// and manifest entries to match.
func (tc *TranslationContext) Sanitize(ctx context.Context) types.RenamePlan {
	plan, warnings := BuildSanitizePlan(tc.Records)
	for _, w := range warnings {
		tc.Warn(ctx, w.Kind, w.Subject, "%s", w.Message)
	}
	tc.Manifest = ApplyRenames(tc.Records, tc.Manifest, plan, true)
	log.Ctx(ctx).Debug().Int("renamed", RenameCount(plan)).Msg("sanitized record names")
	return plan
}
