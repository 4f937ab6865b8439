// Package main provides the CLI entrypoint for slidefx.
package main

func main() {
	Execute()
}
