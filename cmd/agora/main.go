package main

import (
	"agoranet.io/agora/cmd/agora/cmd"
)

func main() {
	cmd.Execute()
}
