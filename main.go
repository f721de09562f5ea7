package main

import "searchbench/cmd"

func main() {
	cmd.Execute()
}
