package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"proto2ros/internal/core"
	"proto2ros/internal/ports"
	"proto2ros/internal/types"
)

// Sanitize re-runs identifier normalization over existing output
// directories, and over a manifest when one is given.
func (s Service) Sanitize(ctx context.Context, req SanitizeRequest) (RenameResult, error) {
	if strings.TrimSpace(req.MsgOutput) == "" && strings.TrimSpace(req.SrvOutput) == "" {
		return RenameResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("msg or srv output directory is required")
	}
	store := s.recordStore(req.MsgOutput, req.SrvOutput)
	tc, err := s.loadContext(store, req.ManifestPath)
	if err != nil {
		return RenameResult{}, err
	}
	plan := tc.Sanitize(ctx)
	if err := s.persistRenames(store, tc, plan, req.ManifestPath); err != nil {
		return RenameResult{}, err
	}
	renamed := core.RenameCount(plan)
	log.Ctx(ctx).Info().Int("renamed", renamed).Msg("interfaces sanitized")
	return RenameResult{Renamed: renamed, Plan: plan, Warnings: tc.Warnings}, nil
}

// Reconcile re-runs cross-topic reconciliation from a manifest and the
// records it describes.
func (s Service) Reconcile(ctx context.Context, req ReconcileRequest) (RenameResult, error) {
	if strings.TrimSpace(req.ManifestPath) == "" {
		return RenameResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	store := s.recordStore(req.MsgOutput, req.SrvOutput)
	tc, err := s.loadContext(store, req.ManifestPath)
	if err != nil {
		return RenameResult{}, err
	}
	plan := tc.Reconcile(ctx)
	if err := s.persistRenames(store, tc, plan, req.ManifestPath); err != nil {
		return RenameResult{}, err
	}
	renamed := core.RenameCount(plan)
	log.Ctx(ctx).Info().Int("renamed", renamed).Msg("topics reconciled")
	return RenameResult{Renamed: renamed, Plan: plan, Warnings: tc.Warnings}, nil
}

func (s Service) loadContext(store ports.RecordStorePort, manifestPath string) (*core.TranslationContext, error) {
	records, err := store.Load()
	if err != nil {
		return nil, err
	}
	tc := core.NewTranslationContext()
	tc.Records = records
	if strings.TrimSpace(manifestPath) != "" {
		manifest, err := s.manifestFile(filepath.Dir(manifestPath)).ReadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		tc.Manifest = manifest
	}
	return tc, nil
}

// persistRenames writes the renamed records first, then removes the files
// of their old names, then rewrites the manifest.
func (s Service) persistRenames(store ports.RecordStorePort, tc *core.TranslationContext, plan types.RenamePlan, manifestPath string) error {
	for _, rec := range tc.Records.Records() {
		if err := store.Write(rec); err != nil {
			return err
		}
	}
	for kind, renames := range plan {
		for from, to := range renames {
			if from == to || tc.Records.Has(kind, from) {
				continue
			}
			if err := store.Remove(kind, from); err != nil {
				return err
			}
		}
	}
	if strings.TrimSpace(manifestPath) == "" {
		return nil
	}
	return s.manifestFile(filepath.Dir(manifestPath)).WriteManifest(tc.Manifest)
}
