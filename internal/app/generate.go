package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"proto2ros/internal/adapters"
	"proto2ros/internal/core"
	"proto2ros/internal/policies"
	"proto2ros/internal/ports"
	"proto2ros/internal/shared"
	"proto2ros/internal/types"
)

func (s Service) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	logger := log.Ctx(ctx)
	if err := validateGenerateRequest(req); err != nil {
		return GenerateResult{}, err
	}
	if err := s.Packages.ValidateVersion(req.PackageVersion); err != nil {
		return GenerateResult{}, err
	}
	docOutput := strings.TrimSpace(req.DocOutput)
	if docOutput == "" {
		docOutput = req.MsgOutput
	}

	docs, pre, err := s.loadDocuments(ctx, req.IDLDirs, req.IDLExt, req.ProjectsFile)
	if err != nil {
		return GenerateResult{}, err
	}
	corpus, err := adapters.NewSchemaCorpusAdapter(s.Fs, req.ProtoDirs, req.SchemaExt, req.CacheSize)
	if err != nil {
		return GenerateResult{}, err
	}
	if _, err := corpus.Files(); err != nil {
		return GenerateResult{}, err
	}
	scanner := core.NewBlockScanner(corpus)
	translator := core.NewTranslator(core.NewHintResolver(scanner, req.TopLevelDirs), req.HeaderType)

	var batches [][]types.InterfaceDocument
	var outputs []GenerateOutput
	if req.PerProject {
		for _, doc := range docs {
			batches = append(batches, []types.InterfaceDocument{doc})
			outputs = append(outputs, GenerateOutput{
				Project: doc.Stem,
				MsgDir:  filepath.Join(req.MsgOutput, doc.Stem),
				SrvDir:  filepath.Join(req.SrvOutput, doc.Stem),
				DocDir:  filepath.Join(docOutput, doc.Stem),
			})
		}
	} else {
		batches = append(batches, docs)
		outputs = append(outputs, GenerateOutput{MsgDir: req.MsgOutput, SrvDir: req.SrvOutput, DocDir: docOutput})
	}

	for i, batch := range batches {
		out := &outputs[i]
		tc := core.NewTranslationContext()
		tc.Warnings = append(tc.Warnings, pre...)
		renamed, skipped := s.translateBatch(ctx, tc, translator, batch)
		out.Report = types.RunReport{
			Documents:       len(batch),
			Requests:        countRequests(batch),
			RPCRequests:     countRPCs(batch),
			Skipped:         skipped,
			Messages:        len(tc.Records.Names(types.RecordKindMessage)),
			Services:        len(tc.Records.Names(types.RecordKindService)),
			ManifestEntries: len(tc.Manifest),
			Renamed:         renamed,
			Warnings:        tc.WarningCounts(),
		}
		out.Manifest = tc.Manifest
		out.Warnings = tc.Warnings
		out.Records = tc.Records.Records()
		if err := s.flush(req, *out); err != nil {
			return GenerateResult{}, err
		}
		logger.Info().
			Str("project", out.Project).
			Int("messages", out.Report.Messages).
			Int("services", out.Report.Services).
			Int("warnings", len(out.Warnings)).
			Msg("interfaces generated")
	}
	return GenerateResult{Outputs: outputs}, nil
}

// translateBatch runs one context over the documents in input order. It
// returns the number of renames applied by the reconciliation and sanitizing
// passes, and the number of requests that produced no record.
func (s Service) translateBatch(ctx context.Context, tc *core.TranslationContext, translator core.Translator, docs []types.InterfaceDocument) (int, int) {
	var requests []types.InterfaceRequest
	var rpcs []types.RPCRequest
	for _, doc := range docs {
		requests = append(requests, doc.Requests...)
		rpcs = append(rpcs, doc.RPCs...)
	}
	requests = policies.MarkVersionedConflicts(requests)

	skipped := 0
	for _, req := range requests {
		if strings.TrimSpace(req.SourceType) == "" {
			tc.Warn(ctx, types.WarningNotFound, req.Topic, "topic without a type name in %s", req.Document)
			skipped++
			continue
		}
		if name, _ := translator.Translate(ctx, tc, req); name == "" {
			skipped++
		}
	}
	services := core.NewServiceTranslator(translator)
	for _, rpc := range rpcs {
		if name, _ := services.Translate(ctx, tc, rpc); name == "" {
			skipped++
		}
	}

	reconciled := tc.Reconcile(ctx)
	sanitized := tc.Sanitize(ctx)
	return core.RenameCount(reconciled) + core.RenameCount(sanitized), skipped
}

func (s Service) flush(req GenerateRequest, out GenerateOutput) error {
	store := s.recordStore(out.MsgDir, out.SrvDir)
	for _, rec := range out.Records {
		if err := store.Write(rec); err != nil {
			return err
		}
	}
	if err := s.manifestFile(out.DocDir).WriteManifest(out.Manifest); err != nil {
		return err
	}
	artifacts := s.runArtifacts(out.DocDir)
	if err := artifacts.WriteWarnings(out.Warnings); err != nil {
		return err
	}
	if err := artifacts.WriteReport(out.Report); err != nil {
		return err
	}
	if strings.TrimSpace(req.PackageName) == "" {
		return nil
	}
	name := req.PackageName
	if out.Project != "" {
		name = req.PackageName + "_" + shared.SnakeCase(out.Project)
	}
	return s.Packages.WritePackage(types.PackageMeta{
		Name:    name,
		Version: req.PackageVersion,
		Dir:     filepath.Join(out.DocDir, "package"),
	}, out.Records)
}

// loadDocuments discovers and extracts interface documents, applying the
// project allow-list. Problems with single documents become warnings.
func (s Service) loadDocuments(ctx context.Context, roots []string, ext string, projectsFile string) ([]types.InterfaceDocument, []types.Warning, error) {
	logger := log.Ctx(ctx)
	documents := s.documents(ext)
	paths, err := documents.Discover(roots)
	if err != nil {
		return nil, nil, err
	}

	var warnings []types.Warning
	allowed := map[string]struct{}{}
	if strings.TrimSpace(projectsFile) != "" {
		projects, err := s.Projects.LoadProjects(projectsFile)
		if err != nil {
			warnings = append(warnings, types.Warning{
				Kind:    types.WarningNotFound,
				Subject: projectsFile,
				Message: "projects file not found, no project filtering applied",
			})
			logger.Warn().Err(err).Str("path", projectsFile).Msg("projects file not loaded")
		}
		for _, project := range projects {
			allowed[project] = struct{}{}
		}
	}

	var docs []types.InterfaceDocument
	for _, path := range paths {
		doc, err := documents.Extract(path)
		if err != nil {
			warnings = append(warnings, types.Warning{Kind: types.WarningNotFound, Subject: path, Message: "interface document unreadable, skipped"})
			logger.Warn().Err(err).Str("path", path).Msg("interface document skipped")
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[doc.Stem]; !ok {
				logger.Debug().Str("document", doc.Stem).Msg("document not in project list")
				continue
			}
		}
		docs = append(docs, doc)
	}
	return docs, warnings, nil
}

func (s Service) documents(ext string) ports.InterfaceDocPort {
	if strings.TrimSpace(ext) == "" {
		return s.Documents
	}
	return adapters.NewInterfaceDocAdapter(s.Fs, ext)
}

func validateGenerateRequest(req GenerateRequest) error {
	switch {
	case len(req.ProtoDirs) == 0:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one proto directory is required")
	case len(req.IDLDirs) == 0:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one interface document directory is required")
	case strings.TrimSpace(req.MsgOutput) == "":
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("msg output directory is required")
	case strings.TrimSpace(req.SrvOutput) == "":
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("srv output directory is required")
	}
	return nil
}

func countRequests(docs []types.InterfaceDocument) int {
	n := 0
	for _, doc := range docs {
		n += len(doc.Requests)
	}
	return n
}

func countRPCs(docs []types.InterfaceDocument) int {
	n := 0
	for _, doc := range docs {
		n += len(doc.RPCs)
	}
	return n
}
