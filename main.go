// Command recipepipe scrapes recipe pages into structured data and serves
// them over HTTP.
package main

import "github.com/gaurav-prasanna/recipepipe/cmd"

func main() {
	cmd.Execute()
}
