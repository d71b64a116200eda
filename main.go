package main

import "github.com/KaramelBytes/tableone-cli/cmd"

func main() {
	cmd.Execute()
}
