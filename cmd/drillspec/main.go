// Package main provides the drillspec CLI for validating drill bit
// parameter sets and handing them to the model builder.
package main

func main() {
	Execute()
}
