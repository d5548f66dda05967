// Package main provides the entry point for the Tranquil Trails CLI.
//
// Usage:
//
//	tranquil serve
//	tranquil detect --model chili leaf.jpg
//	tranquil chat "Bagaimana cara merawat padi?"
//
// See --help for all available options.
package main

func main() {
	Execute()
}
