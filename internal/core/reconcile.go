package core

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"proto2ros/internal/policies"
	"proto2ros/internal/shared"
	"proto2ros/internal/types"
)

// ReconcilePlan finds topics whose records ended up with mixed naming: at
// least one identifier in the acronym+topic form and at least one without
// it. Every non-compliant sibling is planned to gain its own origin acronym.
// Renames whose target already exists are reported and left out.
func ReconcilePlan(records *types.RecordSet, manifest []types.ManifestEntry) (types.RenamePlan, []types.Warning) {
	var topics []string
	byTopic := map[string][]types.ManifestEntry{}
	for _, entry := range manifest {
		if entry.SourceTopic == "" || entry.Identifier == "" {
			continue
		}
		if _, ok := byTopic[entry.SourceTopic]; !ok {
			topics = append(topics, entry.SourceTopic)
		}
		byTopic[entry.SourceTopic] = append(byTopic[entry.SourceTopic], entry)
	}

	plan := types.RenamePlan{}
	var warnings []types.Warning
	for _, topic := range topics {
		entries := byTopic[topic]
		distinct := map[string]bool{}
		compliant, nonCompliant := 0, 0
		for _, entry := range entries {
			distinct[entry.Identifier] = true
			if acronymCompliant(entry, topic) {
				compliant++
			} else {
				nonCompliant++
			}
		}
		if len(distinct) < 2 || compliant == 0 || nonCompliant == 0 {
			continue
		}
		for _, entry := range entries {
			if acronymCompliant(entry, topic) {
				continue
			}
			if _, planned := plan.Lookup(entry.Kind, entry.Identifier); planned {
				continue
			}
			target := shared.Acronym(entry.OriginHint) + entry.Identifier
			if target == entry.Identifier {
				continue
			}
			if records.Has(entry.Kind, target) {
				warnings = append(warnings, types.Warning{
					Kind:    types.WarningRenameConflict,
					Subject: entry.FileName(),
					Message: "target " + target + entry.Kind.Extension() + " already exists, rename skipped",
				})
				continue
			}
			if plan[entry.Kind] == nil {
				plan[entry.Kind] = types.RenameMap{}
			}
			plan[entry.Kind][entry.Identifier] = target
		}
	}
	return plan, warnings
}

func acronymCompliant(entry types.ManifestEntry, topic string) bool {
	acronym := shared.Acronym(entry.OriginHint)
	stem := strings.TrimSuffix(entry.Identifier, policies.VersionedConflictMarker)
	return acronym != "" && stem == acronym+topic
}

// Reconcile applies ReconcilePlan to the run's records and manifest.
func (tc *TranslationContext) Reconcile(ctx context.Context) types.RenamePlan {
	plan, warnings := ReconcilePlan(tc.Records, tc.Manifest)
	for _, w := range warnings {
		tc.Warn(ctx, w.Kind, w.Subject, "%s", w.Message)
	}
	if !plan.Empty() {
		tc.Manifest = ApplyRenames(tc.Records, tc.Manifest, plan, false)
	}
	log.Ctx(ctx).Debug().Int("renamed", RenameCount(plan)).Msg("reconciled topic names")
	return plan
}
