// Package app contains the core application logic. It loads and validates
// the run configuration, then dispatches to the pipeline of the selected
// mode, decoupled from any specific entrypoint like a CLI.
package app
