package types

// InterfaceRequest is one topic/event occurrence discovered in an interface
// description document.
type InterfaceRequest struct {
	// SourceType is the bare schema type name (last segment of the topic).
	SourceType string
	// ContextHint is derived from the topic path minus its last segment.
	ContextHint ContextHint
	// DesiredOutputName is SourceType, optionally suffixed with the
	// PascalCase form of a "::SUFFIX" topic qualifier.
	DesiredOutputName string
	EventName         string
	// Topic is the fully-qualified topic as written in the document.
	Topic    string
	Document string
}

// RPCRequest is one method of an rpc_definition block.
type RPCRequest struct {
	// ServiceName is the fully-qualified service name.
	ServiceName string
	Method      string
	Document    string
}

// InterfaceDocument is the shallow extraction of one interface description
// file.
type InterfaceDocument struct {
	Path     string
	Stem     string
	Requests []InterfaceRequest
	RPCs     []RPCRequest
}
