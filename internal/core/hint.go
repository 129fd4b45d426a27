package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"proto2ros/internal/types"
)

// Lookup describes one block resolution.
type Lookup struct {
	Kind types.BlockKind
	Name string
	Hint types.ContextHint
	// TopLevel first restricts candidates to the configured top-level
	// message directories, then retries without that restriction.
	TopLevel bool
	// PreferFile is tried before any hint-driven search when set.
	PreferFile types.CorpusFile
}

// HintResolver narrows block lookups with a decreasing-prefix hint search.
// A full hint match always wins over a shorter one; the unhinted scan is
// the last resort.
type HintResolver struct {
	Scanner      BlockScanner
	TopLevelDirs []string
}

func NewHintResolver(scanner BlockScanner, topLevelDirs []string) HintResolver {
	return HintResolver{Scanner: scanner, TopLevelDirs: topLevelDirs}
}

func (r HintResolver) Resolve(ctx context.Context, lookup Lookup) (types.SchemaBlock, bool) {
	logger := log.Ctx(ctx)
	if lookup.PreferFile.Path != "" {
		if block, ok := r.Scanner.FindInFile(ctx, lookup.PreferFile, lookup.Kind, lookup.Name); ok {
			logger.Debug().Str("name", lookup.Name).Str("file", block.OriginFile.ID()).Msg("resolved in enclosing file")
			return block, true
		}
	}

	var topLevel []string
	if lookup.TopLevel && len(r.TopLevelDirs) > 0 {
		topLevel = r.TopLevelDirs
	}

	// Every hinted attempt runs before any unhinted one.
	phases := [][]string{nil}
	if topLevel != nil {
		phases = [][]string{topLevel, nil}
	}
	for _, dirs := range phases {
		for n := len(lookup.Hint); n >= 1; n-- {
			if block, ok := r.find(ctx, lookup, lookup.Hint.Prefix(n), dirs); ok {
				return block, true
			}
		}
	}
	if topLevel != nil {
		if block, ok := r.find(ctx, lookup, nil, topLevel); ok {
			return block, true
		}
	}

	block, ok := r.Scanner.Find(ctx, lookup.Kind, lookup.Name, ScanFilter{})
	if ok {
		logger.Debug().Str("name", lookup.Name).Str("file", block.OriginFile.ID()).Msg("resolved without hint")
	}
	return block, ok
}

func (r HintResolver) find(ctx context.Context, lookup Lookup, prefix types.ContextHint, dirs []string) (types.SchemaBlock, bool) {
	filter := ScanFilter{PathContains: prefix.PathFilter(), DirSegments: dirs}
	block, ok := r.Scanner.Find(ctx, lookup.Kind, lookup.Name, filter)
	if ok {
		log.Ctx(ctx).Debug().
			Str("name", lookup.Name).
			Str("hint", prefix.String()).
			Bool("top_level", dirs != nil).
			Str("file", block.OriginFile.ID()).
			Msg("resolved with hint")
	}
	return block, ok
}
