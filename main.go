package main

import "github.com/xll-gen/bin2hdr/cmd"

// main is the entry point of the bin2hdr CLI application.
// It executes the root command which handles argument parsing and subcommand dispatch.
func main() {
	cmd.Execute()
}
