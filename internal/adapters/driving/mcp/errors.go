// Package mcp provides an MCP (Model Context Protocol) server adapter
// exposing semantic catalog search to AI assistants.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
