// Package koconv is the Composition Root for the Knowledge Object converter.
//
// It migrates a version folder of the old single-version layout into the
// two-tier layout, where object-level metadata lives in the object directory
// and each implementation gets its own folder:
//
//	objects/fk4test/
//	├── metadata.json                      (object level, @type koio:KnowledgeObject)
//	├── v0.1.0/                            (old version folder, left untouched)
//	└── js-impl/
//	    ├── metadata.json                  (implementation level)
//	    ├── content.js                     (payload)
//	    ├── service-specification.yaml     (server url points at js-impl)
//	    └── deployment-specification.yaml  (generated)
//
// Usage:
//
//	report, err := koconv.Convert(ctx, "objects/fk4test/v0.1.0", "js-impl",
//		koconv.WithPolicy(koconv.PolicyCollect),
//		koconv.WithLogger(logger),
//	)
//
// Descriptor and service specification failures abort before anything is
// written. Write failures follow the configured Policy.
package koconv
