// Package api ships the OpenAPI document with the binary.
package api

import _ "embed"

//go:embed openapi.yaml
var OpenAPI []byte
