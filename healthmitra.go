package main

import "github.com/healthmitra/insights/api"

func main() {
	api.MainLoop()
}
