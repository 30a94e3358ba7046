package fs

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/koconv/pkg/core"
)

// ServiceDocument is a service specification kept as a YAML node tree, so
// key order, comments and unrelated content survive the url patch.
// It is immutable: WithServerURL re-parses the source bytes.
type ServiceDocument struct {
	raw  []byte
	root *yaml.Node
}

// ParseServiceDocument parses YAML (or JSON) service specification bytes.
func ParseServiceDocument(data []byte) (*ServiceDocument, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("service specification is empty")
	}
	return &ServiceDocument{raw: data, root: doc.Content[0]}, nil
}

// ServerURL implements core.ServiceSpec.
func (d *ServiceDocument) ServerURL() (string, error) {
	node, err := serverURLNode(d.root)
	if err != nil {
		return "", err
	}
	return node.Value, nil
}

// WithServerURL implements core.ServiceSpec.
func (d *ServiceDocument) WithServerURL(url string) (core.ServiceSpec, error) {
	clone, err := ParseServiceDocument(d.raw)
	if err != nil {
		return nil, err
	}
	node, err := serverURLNode(clone.root)
	if err != nil {
		return nil, err
	}
	node.Value = url

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(clone.root); err != nil {
		return nil, fmt.Errorf("failed to encode service specification: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	clone.raw = buf.Bytes()
	return clone, nil
}

// MarshalYAML emits the node tree unchanged.
func (d *ServiceDocument) MarshalYAML() (interface{}, error) {
	return d.root, nil
}

// serverURLNode walks servers[0].url.
func serverURLNode(root *yaml.Node) (*yaml.Node, error) {
	servers := mappingValue(root, "servers")
	if servers == nil || servers.Kind != yaml.SequenceNode || len(servers.Content) == 0 {
		return nil, core.ErrNoServer
	}
	url := mappingValue(servers.Content[0], "url")
	if url == nil || url.Kind != yaml.ScalarNode {
		return nil, core.ErrNoServer
	}
	return url, nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

var _ core.ServiceSpec = (*ServiceDocument)(nil)
