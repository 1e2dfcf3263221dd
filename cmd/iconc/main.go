// Command iconc compiles a tree of SVG icon sources into a static Go
// geometry table.
package main

import "iconc/cmd/iconc/cmd"

func main() {
	cmd.Execute()
}
