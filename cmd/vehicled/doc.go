// Command vehicled is the runtime's executable entry point: it loads
// configuration, wires the diagnostics store and introspection server, and
// drives the module controller through its full lifecycle until shutdown.
//
// Flags and config binding go through Cobra/viper (spf13/cobra,
// go-extras/cobraflags, jzelinskie/cobrautil/v2); the bootstrap sequence is
// flag parse -> load config -> logger -> construct -> run.
package main
