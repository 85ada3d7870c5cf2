package main

import (
	"github/omnikey/wallet-session/cmd"
)

func main() {
	cmd.Execute()
}
