// Command walletctl talks to the DFX and LOCK backends from the command line.
package main

import "github.com/R3E-Network/wallet_layer/cmd/walletctl/cmd"

func main() {
	cmd.Execute()
}
