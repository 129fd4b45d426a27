package app

import (
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"proto2ros/internal/types"
)

// Inspect summarises a manifest by source topic.
func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	path := strings.TrimSpace(req.ManifestPath)
	if path == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	entries, err := s.manifestFile("").ReadManifest(path)
	if err != nil {
		return InspectResult{}, err
	}

	result := InspectResult{Entries: len(entries)}
	byTopic := map[string]*InspectTopicSummary{}
	for _, entry := range entries {
		switch entry.Kind {
		case types.RecordKindService:
			result.Services++
		default:
			result.Messages++
		}
		summary, ok := byTopic[entry.SourceTopic]
		if !ok {
			summary = &InspectTopicSummary{Topic: entry.SourceTopic}
			byTopic[entry.SourceTopic] = summary
		}
		summary.Identifiers = appendUnique(summary.Identifiers, entry.Identifier)
		summary.Origins = appendUnique(summary.Origins, entry.OriginHint)
	}

	topics := make([]string, 0, len(byTopic))
	for topic := range byTopic {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	for _, topic := range topics {
		summary := byTopic[topic]
		sort.Strings(summary.Identifiers)
		sort.Strings(summary.Origins)
		result.Topics = append(result.Topics, *summary)
		if len(summary.Identifiers) > 1 {
			result.Mixed = append(result.Mixed, topic)
		}
	}
	return result, nil
}

func appendUnique(values []string, value string) []string {
	for _, existing := range values {
		if existing == value {
			return values
		}
	}
	return append(values, value)
}
