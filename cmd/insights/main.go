package main

import "github.com/healthmitra/insights/cmd/insights/command"

func main() {
	command.Execute()
}
