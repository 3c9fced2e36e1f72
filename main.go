package main

import "jobscout/cmd"

func main() {
	cmd.Execute()
}
