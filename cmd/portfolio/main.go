package main

import "github.com/zyna-b/portfolio/cmd/portfolio/cmd"

func main() {
	cmd.Execute()
}
