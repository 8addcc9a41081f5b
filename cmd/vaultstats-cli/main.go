package main

import "vaultstats/cmd/vaultstats-cli/cmd"

func main() {
	cmd.Execute()
}
