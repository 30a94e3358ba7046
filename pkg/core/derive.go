package core

import (
	"fmt"
	"path"
	"strings"
)

// URLMode controls what happens to server url segments after the one
// replaced by the implementation name.
type URLMode string

const (
	// URLTruncate drops every segment after the replaced one.
	URLTruncate URLMode = "truncate"
	// URLReplace keeps the trailing segments.
	URLReplace URLMode = "replace"
)

// ParseURLMode accepts the names used in configuration. Empty means truncate.
func ParseURLMode(s string) (URLMode, error) {
	switch URLMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", URLTruncate:
		return URLTruncate, nil
	case URLReplace:
		return URLReplace, nil
	}
	return "", fmt.Errorf("unknown url mode %q", s)
}

// SpecNames are the file names of the generated specifications inside the
// implementation directory.
type SpecNames struct {
	Service    string
	Deployment string
}

// DefaultSpecNames returns the names used by the two-tier layout.
func DefaultSpecNames() SpecNames {
	return SpecNames{Service: ServiceSpecFile, Deployment: DeploymentSpecFile}
}

// ObjectID derives the top-level @id from an arkId: its second and third
// slash-delimited segments joined by a hyphen.
func ObjectID(arkID string) (string, error) {
	parts := strings.Split(arkID, "/")
	if len(parts) < 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidArkID, arkID)
	}
	return parts[1] + "-" + parts[2], nil
}

// PayloadName is the file name the payload gets under the implementation
// directory. A two-segment resource keeps only its second segment, anything
// else is used whole.
func PayloadName(resource string) string {
	parts := strings.Split(resource, "/")
	if len(parts) == 2 {
		return parts[1]
	}
	return resource
}

func (v VersionDescriptor) description() string {
	if v.Description == nil {
		return ""
	}
	return *v.Description
}

// BuildTopLevel derives the object-level metadata.
func BuildTopLevel(v VersionDescriptor, target, context string) (TopLevelMetadata, error) {
	id, err := ObjectID(v.ArkID)
	if err != nil {
		return TopLevelMetadata{}, err
	}
	return TopLevelMetadata{
		ID:                id,
		Type:              TypeKnowledgeObject,
		Identifier:        v.ArkID,
		Title:             v.Title,
		Description:       v.description(),
		Contributors:      v.Contributors,
		Citations:         v.Citations,
		Keywords:          v.Keywords,
		HasImplementation: []string{id + "/" + target},
		Context:           []string{context},
	}, nil
}

// BuildImplementation derives the implementation-level metadata. The spec
// file names are relative to the implementation directory.
func BuildImplementation(v VersionDescriptor, m ModelDescriptor, target string, names SpecNames, context string) ImplementationMetadata {
	return ImplementationMetadata{
		ID:                         target,
		Type:                       TypeImplementation,
		Identifier:                 target,
		Title:                      v.Title + implementationTitleSfx,
		Description:                v.Description,
		Keywords:                   v.Keywords,
		HasServiceSpecification:    path.Join(target, names.Service),
		HasDeploymentSpecification: path.Join(target, names.Deployment),
		HasPayload:                 target + "/" + PayloadName(m.Resource),
		Context:                    []string{context},
	}
}

// BuildDeploymentSpec derives the deployment specification. It always has
// exactly one endpoint, keyed by "/" + functionName.
func BuildDeploymentSpec(m ModelDescriptor) DeploymentSpec {
	return DeploymentSpec{
		Endpoints: map[string]Endpoint{
			"/" + m.FunctionName: {
				AdapterType: m.AdapterType,
				Artifact:    PayloadName(m.Resource),
				Entry:       m.FunctionName,
			},
		},
	}
}

// RewriteServerURL keeps the first three slash-delimited segments of rawURL
// and puts target in the fourth position. A scheme separator ("://") counts as
// a single delimiter, so both "/naan/name/v1" and "https://host/v1/old" keep
// their prefix. Segments after the fourth are dropped in URLTruncate mode and
// kept in URLReplace mode. Missing prefix segments are not padded.
func RewriteServerURL(rawURL, target string, mode URLMode) string {
	scheme := ""
	rest := rawURL
	keep := 3
	if i := strings.Index(rawURL, "://"); i >= 0 {
		scheme = rawURL[:i+3]
		rest = rawURL[i+3:]
		keep = 2
	}

	parts := strings.Split(rest, "/")
	var tail []string
	if len(parts) > keep {
		tail = parts[keep+1:]
		parts = parts[:keep]
	}

	out := make([]string, 0, len(parts)+1+len(tail))
	out = append(out, parts...)
	out = append(out, target)
	if mode == URLReplace {
		out = append(out, tail...)
	}
	return scheme + strings.Join(out, "/")
}
