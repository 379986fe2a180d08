// This is free and unencumbered software released into the public domain.
// See the UNLICENSE file for details.

// Package main - enigma simulates the three rotor Enigma I cipher machine
// used by the German armed forces from the 1930s.
package main

import "github.com/bgallie/enigma/cmd"

func main() {
	cmd.Execute()
}
