package adapters

import (
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"

	"proto2ros/internal/ports"
	"proto2ros/internal/shared"
	"proto2ros/internal/types"
)

var (
	eventStart      = regexp.MustCompile(`\bevent\b\s*\{`)
	rpcStart        = regexp.MustCompile(`\brpc_definition\b\s*\{`)
	eventNameField  = regexp.MustCompile(`event_name:\s*"([^"]+)"`)
	topicNameField  = regexp.MustCompile(`topic_name:\s*"([\w.]+)(?:::(\w+))?"`)
	rpcServiceField = regexp.MustCompile(`rpc_service_name:\s*"([^"]+)"`)
	rpcMethodField  = regexp.MustCompile(`method_vsidl_name:\s*"([^"]+)"`)
)

// InterfaceDocAdapter discovers and extracts interface description
// documents. Extraction is a single linear pass over lines.
type InterfaceDocAdapter struct {
	Fs  afero.Fs
	Ext string
}

func NewInterfaceDocAdapter(fs afero.Fs, ext string) InterfaceDocAdapter {
	if ext == "" {
		ext = ".sdvsidl"
	}
	return InterfaceDocAdapter{Fs: fs, Ext: ext}
}

func (a InterfaceDocAdapter) Discover(roots []string) ([]string, error) {
	var paths []string
	for _, root := range roots {
		exists, err := afero.DirExists(a.Fs, root)
		if err != nil || !exists {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("interface document root not found: " + root).
				WithCause(err)
		}
		found, err := walkSorted(a.Fs, root, a.Ext)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to scan interface document root " + root).
				WithCause(err)
		}
		for _, rel := range found {
			paths = append(paths, strings.TrimSuffix(root, "/")+"/"+rel)
		}
	}
	return paths, nil
}

func (a InterfaceDocAdapter) Extract(path string) (types.InterfaceDocument, error) {
	data, err := afero.ReadFile(a.Fs, path)
	if err != nil {
		return types.InterfaceDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read interface document " + path).
			WithCause(err)
	}
	doc := types.InterfaceDocument{Path: path, Stem: shared.FileStem(path)}
	lines := strings.Split(string(data), "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		switch {
		case eventStart.MatchString(line):
			block, next := collectBlock(lines, i)
			i = next - 1
			eventName := ""
			if match := eventNameField.FindStringSubmatch(block); match != nil {
				eventName = match[1]
			}
			for _, match := range topicNameField.FindAllStringSubmatch(block, -1) {
				doc.Requests = append(doc.Requests, newInterfaceRequest(match[1], match[2], eventName, doc.Stem))
			}
		case rpcStart.MatchString(line):
			block, next := collectBlock(lines, i)
			i = next - 1
			service := rpcServiceField.FindStringSubmatch(block)
			if service == nil {
				continue
			}
			for _, method := range rpcMethodField.FindAllStringSubmatch(block, -1) {
				doc.RPCs = append(doc.RPCs, types.RPCRequest{ServiceName: service[1], Method: method[1], Document: doc.Stem})
			}
		default:
			if match := topicNameField.FindStringSubmatch(line); match != nil {
				doc.Requests = append(doc.Requests, newInterfaceRequest(match[1], match[2], "", doc.Stem))
			}
		}
	}
	return doc, nil
}

// collectBlock joins lines from start until braces balance and returns the
// block text and the index of the first line after it.
func collectBlock(lines []string, start int) (string, int) {
	depth := 0
	var block []string
	i := start
	for ; i < len(lines); i++ {
		block = append(block, lines[i])
		depth += strings.Count(lines[i], "{") - strings.Count(lines[i], "}")
		if depth <= 0 {
			i++
			break
		}
	}
	return strings.Join(block, "\n"), i
}

func newInterfaceRequest(topic string, suffix string, eventName string, document string) types.InterfaceRequest {
	hint, sourceType := types.SplitFullName(topic)
	desired := sourceType
	if suffix != "" {
		desired += shared.PascalCase(suffix)
	}
	return types.InterfaceRequest{
		SourceType:        sourceType,
		ContextHint:       hint,
		DesiredOutputName: desired,
		EventName:         eventName,
		Topic:             topic,
		Document:          document,
	}
}

var _ ports.InterfaceDocPort = InterfaceDocAdapter{}
