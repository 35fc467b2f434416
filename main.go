// Package main is the entry point for the mwt CLI.
package main

import "github.com/phi-fell/mwt/cmd"

func main() {
	cmd.Execute()
}
