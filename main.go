package main

import "github.com/fakeyudi/bocleaner/cmd"

func main() {
	cmd.Execute()
}
