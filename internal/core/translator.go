package core

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"proto2ros/internal/policies"
	"proto2ros/internal/shared"
	"proto2ros/internal/types"
)

// DefaultHeaderType is the synthetic first field of every top-level record.
const DefaultHeaderType = "std_msgs/Header"

// skippedBytesField is the payload member of the oneof wrapper convention;
// it has no ROS equivalent.
const skippedBytesField = "raw_bytes"

// Translator expands schema messages into ROS records. Recursion into
// nested types is driven by an explicit frame stack so cycles and emission
// order are visible in one loop.
type Translator struct {
	Resolver   HintResolver
	HeaderType string
}

func NewTranslator(resolver HintResolver, headerType string) Translator {
	if headerType == "" {
		headerType = DefaultHeaderType
	}
	return Translator{Resolver: resolver, HeaderType: headerType}
}

type frameField struct {
	Field
	Origin    types.CorpusFile
	Separator bool
}

type frame struct {
	kind     types.RecordKind
	key      visitKey
	name     string
	hint     string
	fields   []frameField
	next     int
	lines    []string
	enums    map[string]struct{}
	renameTo string
}

func newFrame(kind types.RecordKind, key visitKey, name string, hint string) *frame {
	return &frame{kind: kind, key: key, name: name, hint: hint, enums: map[string]struct{}{}}
}

func messageFields(block types.SchemaBlock) []frameField {
	parsed := ParseFields(block.RawText)
	fields := make([]frameField, 0, len(parsed))
	for _, f := range parsed {
		fields = append(fields, frameField{Field: f, Origin: block.OriginFile})
	}
	return fields
}

// Translate emits the record for one interface request plus every nested
// record it needs. It returns the final identifier and whether a new
// top-level record was emitted.
func (t Translator) Translate(ctx context.Context, tc *TranslationContext, req types.InterfaceRequest) (string, bool) {
	assert.NotEmpty(ctx, req.SourceType, "interface request must name a source type")
	logger := log.Ctx(ctx)

	block, ok := t.Resolver.Resolve(ctx, Lookup{
		Kind:     types.BlockKindMessage,
		Name:     req.SourceType,
		Hint:     req.ContextHint,
		TopLevel: true,
	})
	if !ok {
		tc.Warn(ctx, types.WarningNotFound, req.SourceType, "message block not found (hint %q)", req.ContextHint.String())
		return "", false
	}

	hint := block.OriginHint()
	candidate := req.DesiredOutputName
	if candidate == "" {
		candidate = req.SourceType
	}
	key := visitKey{typeName: req.SourceType, hint: hint, candidate: candidate}
	if name, seen := tc.visitedName(key); seen {
		tc.Warn(ctx, types.WarningInfo, name, "message already generated for hint %q, skipped", hint)
		return name, false
	}

	res := policies.NewCollisionResolver(tc.Messages).Resolve(candidate, hint)
	switch res.Outcome {
	case policies.OutcomeConflict:
		tc.Warn(ctx, types.WarningPersistentCollision, candidate, "no free name for hint %q, record dropped", hint)
		return "", false
	case policies.OutcomeSatisfied:
		tc.markVisited(key, res.Name)
		tc.Warn(ctx, types.WarningInfo, res.Name, "message already generated for hint %q, skipped", hint)
		return res.Name, false
	case policies.OutcomeRenamed:
		tc.Warn(ctx, types.WarningInfo, candidate, "name conflict, renamed to %s", res.Name)
	}
	tc.markVisited(key, res.Name)

	root := newFrame(types.RecordKindMessage, key, res.Name, hint)
	root.fields = messageFields(block)
	root.lines = append(root.lines, t.HeaderType+" header")
	name := t.run(ctx, tc, root)

	tc.Manifest = append(tc.Manifest, types.ManifestEntry{
		Identifier:  name,
		Kind:        types.RecordKindMessage,
		SourceTopic: req.SourceType,
		EventName:   req.EventName,
		OriginHint:  hint,
	})
	logger.Debug().Str("record", name).Str("hint", hint).Msg("translated interface request")
	return name, true
}

// run drains the frame stack rooted at root and returns the final name of
// the root record.
func (t Translator) run(ctx context.Context, tc *TranslationContext, root *frame) string {
	stack := []*frame{root}
	rootName := root.name
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next < len(top.fields) {
			field := top.fields[top.next]
			top.next++
			if nested := t.expandField(ctx, tc, top, field); nested != nil {
				stack = append(stack, nested)
			}
			continue
		}
		stack = stack[:len(stack)-1]
		name := t.finish(ctx, tc, top, stack)
		if top == root {
			rootName = name
		}
	}
	return rootName
}

// finish stores a completed frame as a record, applying any outer rename
// requested while its nested types were expanded. A rename is applied to
// stored records and to the pending frames still on the stack.
func (t Translator) finish(ctx context.Context, tc *TranslationContext, fr *frame, pending []*frame) string {
	name := fr.name
	if fr.renameTo != "" && fr.renameTo != fr.name {
		if tc.Messages.Claim(fr.renameTo, fr.hint) && !tc.Records.Has(fr.kind, fr.renameTo) {
			tc.Warn(ctx, types.WarningInfo, fr.name, "nested type shares the name, renamed to %s", fr.renameTo)
			renames := types.RenameMap{fr.name: fr.renameTo}
			for _, rec := range tc.Records.Records() {
				if stored, ok := tc.Records.Get(rec.Kind, rec.Name); ok {
					stored.Lines = RewriteLines(stored.Lines, renames, false)
				}
			}
			fr.lines = RewriteLines(fr.lines, renames, false)
			for _, parent := range pending {
				parent.lines = RewriteLines(parent.lines, renames, false)
			}
			tc.renameVisited(fr.name, fr.renameTo)
			name = fr.renameTo
		} else {
			tc.Warn(ctx, types.WarningPersistentCollision, fr.renameTo, "rename target already owned, keeping %s", fr.name)
		}
	}
	tc.Records.Put(types.OutputRecord{Name: name, Kind: fr.kind, Lines: fr.lines})
	log.Ctx(ctx).Debug().Str("record", name).Str("kind", string(fr.kind)).Int("lines", len(fr.lines)).Msg("record emitted")
	return name
}

// expandField appends the lines for one field to fr. A nested message that
// still has to be generated is returned as a new frame.
func (t Translator) expandField(ctx context.Context, tc *TranslationContext, fr *frame, f frameField) *frame {
	if f.Separator {
		fr.lines = append(fr.lines, "---")
		return nil
	}
	subject := fr.name + "." + f.Name
	fieldName := f.Name
	if len(fieldName) > MaxIdentifierLength {
		fieldName, _ = ShortenName(fieldName, "", MaxIdentifierLength)
		tc.Warn(ctx, types.WarningNameTooLong, subject, "field name truncated to %s", fieldName)
	}
	suffix := arraySuffix(f.Field)

	if f.Type == "bytes" {
		if f.Name == skippedBytesField {
			tc.Warn(ctx, types.WarningSkippedField, subject, "bytes payload of a oneof wrapper is not translated")
			return nil
		}
		size := "[]"
		if n, ok := VariableMaxSize(f.Options); ok {
			size = fmt.Sprintf("[%d]", n)
		}
		fr.lines = append(fr.lines, "uint8"+size+" "+fieldName)
		return nil
	}

	if rosType, ok := scalarField(f.Field); ok {
		fr.lines = append(fr.lines, rosType+suffix+" "+fieldName)
		return nil
	}

	hint, base := types.SplitFullName(f.Type)
	lookup := Lookup{Name: base, Hint: hint}
	if hint.Empty() {
		lookup.PreferFile = f.Origin
	}

	lookup.Kind = types.BlockKindEnum
	if enum, ok := t.Resolver.Resolve(ctx, lookup); ok {
		t.expandEnum(ctx, tc, fr, enum, fieldName, suffix, subject)
		return nil
	}

	lookup.Kind = types.BlockKindMessage
	block, ok := t.Resolver.Resolve(ctx, lookup)
	if !ok {
		tc.Warn(ctx, types.WarningNotFound, subject, "type %s not found, field skipped", f.Type)
		return nil
	}
	return t.expandMessage(ctx, tc, fr, block, fieldName, suffix, subject)
}

func (t Translator) expandMessage(ctx context.Context, tc *TranslationContext, fr *frame, block types.SchemaBlock, fieldName string, suffix string, subject string) *frame {
	hint := block.OriginHint()
	key := visitKey{typeName: block.Name, hint: hint, candidate: block.Name}
	if name, seen := tc.visitedName(key); seen {
		fr.lines = append(fr.lines, name+suffix+" "+fieldName)
		return nil
	}

	res := policies.NewCollisionResolver(tc.Messages).Resolve(block.Name, hint)
	if res.Outcome == policies.OutcomeConflict {
		tc.Warn(ctx, types.WarningPersistentCollision, subject, "no free name for %s from %q, field skipped", block.Name, hint)
		return nil
	}
	if res.Outcome == policies.OutcomeRenamed {
		tc.Warn(ctx, types.WarningInfo, block.Name, "name conflict, renamed to %s", res.Name)
	}
	tc.markVisited(key, res.Name)
	fr.lines = append(fr.lines, res.Name+suffix+" "+fieldName)

	if !res.Emit {
		return nil
	}
	if fr.kind == types.RecordKindMessage && block.Name == fr.name && hint != fr.hint {
		fr.renameTo = shared.Acronym(fr.hint) + fr.name
	}
	nested := newFrame(types.RecordKindMessage, key, res.Name, hint)
	nested.fields = messageFields(block)
	return nested
}

func (t Translator) expandEnum(ctx context.Context, tc *TranslationContext, fr *frame, enum types.SchemaBlock, fieldName string, suffix string, subject string) {
	constants := ParseEnumConstants(enum.RawText)
	if len(constants) == 0 {
		tc.Warn(ctx, types.WarningEmptyDefinition, enum.Name, "enum has no constants")
		fr.lines = append(fr.lines, "uint8"+suffix+" "+fieldName, "# empty enum: "+enum.Name)
		return
	}
	values := make([]int64, 0, len(constants))
	for _, c := range constants {
		values = append(values, c.Value)
	}
	intType := policies.EnumIntegerType(values)

	enumKey := enum.OriginFile.ID() + "#" + enum.Name
	if _, used := fr.enums[enumKey]; used {
		fr.lines = append(fr.lines, intType+suffix+" "+fieldName+"  # Uses enum "+enum.Name)
		return
	}

	lines := []string{intType + suffix + " " + fieldName, "# enum " + enum.Name}
	for _, c := range constants {
		name, truncated, ok := EnumConstantName(c.Name)
		if !ok {
			tc.Warn(ctx, types.WarningNameTooLong, subject, "enum constant %s cannot fit, field skipped", c.Name)
			return
		}
		if truncated {
			tc.Warn(ctx, types.WarningNameTooLong, enum.Name+"."+c.Name, "enum constant truncated to C_%s", name)
		}
		lines = append(lines, fmt.Sprintf("%s C_%s = %d", intType, name, c.Value))
	}
	fr.enums[enumKey] = struct{}{}
	fr.lines = append(fr.lines, lines...)
}

func arraySuffix(f Field) string {
	if !f.Repeated {
		return ""
	}
	if n, ok := RepeatedMaxCount(f.Options); ok {
		return fmt.Sprintf("[%d]", n)
	}
	return "[]"
}

// scalarField maps a scalar field to its ROS type, honouring the integer
// width annotation.
func scalarField(f Field) (string, bool) {
	if strings.Contains(f.Type, ".") {
		return "", false
	}
	rosType, ok := policies.ScalarType(f.Type)
	if !ok {
		return "", false
	}
	if size, ok := PrimitiveByteSize(f.Options); ok {
		if resized, ok := policies.ResizeInteger(rosType, size); ok {
			return resized, true
		}
	}
	return rosType, true
}
