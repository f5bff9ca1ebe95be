// Command easywallet is a command line interface to the cardano-wallet
// composition engine: manage wallets and policies, send, mint, burn,
// delegate and withdraw.
package main

import (
	"os"

	"github.com/easyada/cardano-wallet/chain"
	"github.com/easyada/cardano-wallet/cmd/utils"
	"github.com/easyada/cardano-wallet/log"
	"github.com/easyada/cardano-wallet/params"
	"github.com/easyada/cardano-wallet/wallet"
	"github.com/urfave/cli/v2"
)

var (
	clientIdentifier = "easywallet"
	// Git SHA1 commit hash of the release (set via linker flags)
	gitCommit = ""
	gitDate   = ""
	// The app that holds all commands and flags.
	app = utils.NewApp(clientIdentifier, gitCommit, gitDate, "the easywallet command line interface")
)

func initApp() {
	app.HideVersion = true // we have a command to print the version
	app.Commands = []*cli.Command{
		newWalletCommand,
		newPolicyCommand,
		balanceCommand,
		sendCommand,
		mintCommand,
		burnCommand,
		delegateCommand,
		withdrawCommand,
		utils.VersionCommand,
	}
	app.Flags = []cli.Flag{
		utils.ConfigFileFlag,
		utils.LogFileFlag,
		utils.LogRotationFlag,
		utils.LogMaxAgeFlag,
		utils.VerbosityFlag,
		utils.JSONFormatFlag,
		utils.ColorFormatFlag,
	}
}

func main() {
	initApp()
	if err := app.Run(os.Args); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func newNode(config *params.WalletConfig) *chain.BlockfrostNode {
	return chain.NewNode(
		chain.NetworkFromName(config.Network),
		chain.ServerFromName(config.Network),
		params.GetBlockfrostProjectID(config.Network),
	)
}

// initWallet loads config, builds the chain context and opens the wallet.
func initWallet(ctx *cli.Context, name string) (*wallet.Wallet, error) {
	utils.SetLogger(ctx)
	config := params.LoadConfig(utils.GetConfigFilePath(ctx), true)
	return wallet.NewWallet(name, config.KeysDir, newNode(config))
}
