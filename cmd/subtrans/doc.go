// Package main hosts the subtrans CLI entrypoint and command graph.
//
// The Cobra command tree maps terminal invocations onto the subtitle session:
// converting between SRT and ASS, translating a file through the configured
// provider, applying an edited draft, inspecting cues, and serving the
// session over HTTP. Configuration resolution, logger setup, and translator
// construction (including the optional translation memory) live in
// commandContext so subcommands only describe their own flags and output.
package main
