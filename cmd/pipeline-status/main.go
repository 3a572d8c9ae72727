package main

import "github.com/davarch/pipeline-status/cmd/pipeline-status/cli"

func main() {
	cli.Execute()
}
