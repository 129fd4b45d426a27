package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"proto2ros/internal/policies"
	"proto2ros/internal/types"
)

// ServiceTranslator emits one .srv record per RPC method. Message types the
// request or response reference go through the shared message machinery.
type ServiceTranslator struct {
	Messages Translator
}

func NewServiceTranslator(messages Translator) ServiceTranslator {
	return ServiceTranslator{Messages: messages}
}

// Translate returns the service record name and whether it was emitted.
func (s ServiceTranslator) Translate(ctx context.Context, tc *TranslationContext, req types.RPCRequest) (string, bool) {
	subject := req.ServiceName + "/" + req.Method
	hint, serviceName := types.SplitFullName(req.ServiceName)
	if serviceName == "" || req.Method == "" {
		tc.Warn(ctx, types.WarningNotFound, subject, "rpc definition without service or method name")
		return "", false
	}
	service, ok := s.Messages.Resolver.Resolve(ctx, Lookup{Kind: types.BlockKindService, Name: serviceName, Hint: hint})
	if !ok {
		tc.Warn(ctx, types.WarningNotFound, subject, "service block not found")
		return "", false
	}
	reqType, respType, ok := ParseRPC(service.RawText, req.Method)
	if !ok {
		tc.Warn(ctx, types.WarningNotFound, subject, "rpc method not declared in service %s", serviceName)
		return "", false
	}

	var fields []frameField
	for i, typeName := range []string{reqType, respType} {
		if i == 1 {
			fields = append(fields, frameField{Separator: true})
		}
		typeHint, base := types.SplitFullName(typeName)
		lookup := Lookup{Kind: types.BlockKindMessage, Name: base, Hint: typeHint}
		if typeHint.Empty() {
			lookup.PreferFile = service.OriginFile
		}
		block, found := s.Messages.Resolver.Resolve(ctx, lookup)
		if !found {
			tc.Warn(ctx, types.WarningNotFound, subject, "message %s not found, %s half left empty", typeName, half(i))
			continue
		}
		fields = append(fields, messageFields(block)...)
	}

	hintName := service.OriginHint()
	res := policies.NewCollisionResolver(tc.Services).Resolve(req.Method, hintName)
	switch res.Outcome {
	case policies.OutcomeConflict:
		tc.Warn(ctx, types.WarningPersistentCollision, req.Method, "no free service name for hint %q, record dropped", hintName)
		return "", false
	case policies.OutcomeSatisfied:
		tc.Warn(ctx, types.WarningInfo, res.Name, "service already generated for hint %q, skipped", hintName)
		return res.Name, false
	case policies.OutcomeRenamed:
		tc.Warn(ctx, types.WarningInfo, req.Method, "service name conflict, renamed to %s", res.Name)
	}

	key := visitKey{typeName: serviceName + "." + req.Method, hint: hintName, candidate: req.Method}
	root := newFrame(types.RecordKindService, key, res.Name, hintName)
	root.fields = fields
	name := s.Messages.run(ctx, tc, root)
	log.Ctx(ctx).Debug().Str("service", name).Str("rpc", subject).Msg("translated rpc method")
	return name, true
}

func half(i int) string {
	if i == 0 {
		return "request"
	}
	return "response"
}
