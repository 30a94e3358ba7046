// Package core holds the Knowledge Object domain: the descriptors read from an
// old version folder, the documents derived from them, and the Store port the
// converter writes through.
package core

import "encoding/json"

// Default JSON-LD contexts and types of the two-tier layout.
const (
	ObjectContext         = "http://kgrid.org/koio/contexts/knowledgeobject.jsonld"
	ImplementationContext = "http://kgrid.org/koio/contexts/implementation.jsonld"

	TypeKnowledgeObject = "koio:KnowledgeObject"
	TypeImplementation  = "koio:Implementation"

	MetadataFile           = "metadata.json"
	ModelDir               = "model"
	ServiceSpecFile        = "service-specification.yaml"
	DeploymentSpecFile     = "deployment-specification.yaml"
	implementationTitleSfx = " Implementation"
)

// VersionDescriptor is the version-level metadata.json of the old layout.
// Contributors, citations and keywords are carried verbatim since real
// descriptors use both strings and arrays for them. Description is nil when
// the key is absent, which is not the same as an empty description.
type VersionDescriptor struct {
	ArkID        string          `json:"arkId"`
	Title        string          `json:"title"`
	Description  *string         `json:"description"`
	Contributors json.RawMessage `json:"contributors,omitempty"`
	Citations    json.RawMessage `json:"citations,omitempty"`
	Keywords     json.RawMessage `json:"keywords,omitempty"`
	Service      string          `json:"service"`
}

// ModelDescriptor is model/metadata.json of the old layout.
type ModelDescriptor struct {
	Resource     string `json:"resource"`
	AdapterType  string `json:"adapterType"`
	FunctionName string `json:"functionName"`
}

// TopLevelMetadata is the object-level JSON-LD document written to the
// parent of the version folder.
type TopLevelMetadata struct {
	ID                string          `json:"@id"`
	Type              string          `json:"@type"`
	Identifier        string          `json:"identifier"`
	Title             string          `json:"title"`
	Description       string          `json:"description,omitempty"`
	Contributors      json.RawMessage `json:"contributors,omitempty"`
	Citations         json.RawMessage `json:"citations,omitempty"`
	Keywords          json.RawMessage `json:"keywords,omitempty"`
	HasImplementation []string        `json:"hasImplementation"`
	Context           []string        `json:"@context"`
}

// ImplementationMetadata is the implementation-level JSON-LD document.
type ImplementationMetadata struct {
	ID                         string          `json:"@id"`
	Type                       string          `json:"@type"`
	Identifier                 string          `json:"identifier"`
	Title                      string          `json:"title"`
	Description                *string         `json:"description,omitempty"`
	Keywords                   json.RawMessage `json:"keywords,omitempty"`
	HasServiceSpecification    string          `json:"hasServiceSpecification"`
	HasDeploymentSpecification string          `json:"hasDeploymentSpecification"`
	HasPayload                 string          `json:"hasPayload"`
	Context                    []string        `json:"@context"`
}

// Endpoint describes how to invoke the payload.
type Endpoint struct {
	AdapterType string `yaml:"adapterType" json:"adapterType"`
	Artifact    string `yaml:"artifact" json:"artifact"`
	Entry       string `yaml:"entry" json:"entry"`
}

// DeploymentSpec is the generated deployment-specification.yaml.
type DeploymentSpec struct {
	Endpoints map[string]Endpoint `yaml:"endpoints" json:"endpoints"`
}

// ServiceSpec is a loaded service specification. Implementations must not
// mutate the receiver: WithServerURL returns a patched copy.
type ServiceSpec interface {
	// ServerURL returns the url of the first declared server.
	ServerURL() (string, error)
	// WithServerURL returns a copy whose first server url is replaced.
	WithServerURL(url string) (ServiceSpec, error)
}
