package core

import "path/filepath"

// Contexts are the JSON-LD @context URIs stamped on the two metadata levels.
type Contexts struct {
	Object         string
	Implementation string
}

// DefaultContexts returns the koio contexts.
func DefaultContexts() Contexts {
	return Contexts{Object: ObjectContext, Implementation: ImplementationContext}
}

// Plan is everything one conversion derives before touching the disk: the
// documents to write and every source and destination path.
type Plan struct {
	Layout         Layout
	TopLevel       TopLevelMetadata
	Implementation ImplementationMetadata
	Deployment     DeploymentSpec

	TopLevelPath       string
	ImplementationPath string
	PayloadSource      string
	PayloadPath        string
	ServiceSource      string
	ServicePath        string
	DeploymentPath     string
}

// NewPlan derives the object tree from the two descriptors.
func NewPlan(l Layout, v VersionDescriptor, m ModelDescriptor, names SpecNames, ctx Contexts) (Plan, error) {
	top, err := BuildTopLevel(v, l.Target, ctx.Object)
	if err != nil {
		return Plan{}, err
	}
	impl := BuildImplementation(v, m, l.Target, names, ctx.Implementation)

	return Plan{
		Layout:             l,
		TopLevel:           top,
		Implementation:     impl,
		Deployment:         BuildDeploymentSpec(m),
		TopLevelPath:       filepath.Join(l.ParentDir, MetadataFile),
		ImplementationPath: filepath.Join(l.ImplementationDir(), MetadataFile),
		PayloadSource:      filepath.Join(l.SourceDir, ModelDir, filepath.FromSlash(m.Resource)),
		PayloadPath:        l.output(impl.HasPayload),
		ServiceSource:      l.source(v.Service),
		ServicePath:        l.output(impl.HasServiceSpecification),
		DeploymentPath:     l.output(impl.HasDeploymentSpecification),
	}, nil
}
