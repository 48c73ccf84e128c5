package main

import "github.com/ilya-kolchinsky/GMeetSummarizer/internal/cli"

func main() {
	cli.Main()
}
