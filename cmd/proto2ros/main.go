package main

import "proto2ros/internal/cli"

func main() {
	cli.Execute()
}
