// +k8s:deepcopy-gen=package

// Package v1alpha1 holds the on-disk document types for cluster
// topologies and placement plans, shaped like Kubernetes API objects
// (TypeMeta/ObjectMeta, generated-style DeepCopy) even though nothing
// here is ever submitted to an API server — the document format just
// reuses a shape this codebase's authors already know, and gets
// sigs.k8s.io/yaml round-tripping for free.
package v1alpha1
