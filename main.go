package main

import "github.com/nikogura/portfolio-cv/cmd"

func main() {
	cmd.Execute()
}
