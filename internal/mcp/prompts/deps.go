// Package prompts contains MCP prompt implementations for ghspec.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	SpecFile string
}
