// Package main provides the CLI entrypoint for fxui.
package main

func main() {
	Execute()
}
