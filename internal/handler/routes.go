package handler

// APIV1Prefix is the base path of the JSON API.
const APIV1Prefix = "/api/v1"

// Paths mounted at the root next to the API.
const (
	LivenessPath  = "/live"
	ReadinessPath = "/ready"
	DocsPath      = "/docs"
	OpenAPIPath   = "/openapi.yaml"
)

// RootPrefixes lists the path prefixes this package serves outside the
// localized site; the routing gate must not redirect them.
func RootPrefixes() []string {
	return []string{"/api", LivenessPath, ReadinessPath, DocsPath, OpenAPIPath}
}
