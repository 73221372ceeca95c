// Package main is the entry point for the covrun CLI.
package main

import "covrun.dev/pkg/covrun/cmd"

func main() {
	cmd.Execute()
}
