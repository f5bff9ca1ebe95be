package main

import (
	"fmt"

	"github.com/easyada/cardano-wallet/log"
	"github.com/easyada/cardano-wallet/params"
	"github.com/easyada/cardano-wallet/wallet"
	"github.com/urfave/cli/v2"
)

var (
	nameFlag = &cli.StringFlag{
		Name:     "name",
		Usage:    "wallet name",
		Required: true,
	}
	toFlag = &cli.StringFlag{
		Name:     "to",
		Usage:    "receive address",
		Required: true,
	}
	adaFlag = &cli.Float64Flag{
		Name:  "ada",
		Usage: "amount in ada",
	}
	lovelaceFlag = &cli.Int64Flag{
		Name:  "lovelace",
		Usage: "amount in lovelace",
	}
	policyFlag = &cli.StringFlag{
		Name:     "policy",
		Usage:    "token policy name",
		Required: true,
	}
	assetFlag = &cli.StringFlag{
		Name:     "asset",
		Usage:    "asset name",
		Required: true,
	}
	quantityFlag = &cli.Int64Flag{
		Name:  "quantity",
		Usage: "token quantity",
		Value: 1,
	}
	poolFlag = &cli.StringFlag{
		Name:     "pool",
		Usage:    "stake pool ID (bech32 or hex)",
		Required: true,
	}
	expiresFlag = &cli.Uint64Flag{
		Name:  "expires",
		Usage: "policy expiration slot (0 = never)",
	}
	messageFlag = &cli.StringFlag{
		Name:  "message",
		Usage: "transaction message metadata",
	}
	noSubmitFlag = &cli.BoolFlag{
		Name:  "no-submit",
		Usage: "sign but do not submit",
	}
	awaitFlag = &cli.BoolFlag{
		Name:  "await",
		Usage: "wait for on-chain confirmation",
	}
	noRegisterFlag = &cli.BoolFlag{
		Name:  "no-register",
		Usage: "skip stake registration",
	}
)

var newWalletCommand = &cli.Command{
	Action:    newWallet,
	Name:      "new-wallet",
	Usage:     "Create (or open) a named wallet",
	ArgsUsage: " ",
	Flags:     []cli.Flag{nameFlag},
}

var newPolicyCommand = &cli.Command{
	Action:    newPolicy,
	Name:      "new-policy",
	Usage:     "Generate a minting policy signed by the wallet",
	ArgsUsage: " ",
	Flags:     []cli.Flag{nameFlag, policyFlag, expiresFlag},
}

var balanceCommand = &cli.Command{
	Action:    balance,
	Name:      "balance",
	Usage:     "Show wallet balance and utxos",
	ArgsUsage: " ",
	Flags:     []cli.Flag{nameFlag},
}

var sendCommand = &cli.Command{
	Action:    send,
	Name:      "send",
	Usage:     "Send ada to an address",
	ArgsUsage: " ",
	Flags:     []cli.Flag{nameFlag, toFlag, adaFlag, lovelaceFlag, messageFlag, noSubmitFlag, awaitFlag},
}

var mintCommand = &cli.Command{
	Action:    mint,
	Name:      "mint",
	Usage:     "Mint tokens under a saved policy",
	ArgsUsage: " ",
	Flags:     []cli.Flag{nameFlag, toFlag, policyFlag, assetFlag, quantityFlag, messageFlag, awaitFlag},
}

var burnCommand = &cli.Command{
	Action:    burn,
	Name:      "burn",
	Usage:     "Burn tokens under a saved policy",
	ArgsUsage: " ",
	Flags:     []cli.Flag{nameFlag, policyFlag, assetFlag, quantityFlag, awaitFlag},
}

var delegateCommand = &cli.Command{
	Action:    delegate,
	Name:      "delegate",
	Usage:     "Delegate the wallet's stake to a pool",
	ArgsUsage: " ",
	Flags:     []cli.Flag{nameFlag, poolFlag, noRegisterFlag, awaitFlag},
}

var withdrawCommand = &cli.Command{
	Action:    withdraw,
	Name:      "withdraw",
	Usage:     "Withdraw all staking rewards",
	ArgsUsage: " ",
	Flags:     []cli.Flag{nameFlag, awaitFlag},
}

func newWallet(ctx *cli.Context) error {
	w, err := initWallet(ctx, ctx.String(nameFlag.Name))
	if err != nil {
		return err
	}
	fmt.Println("address:", w.Address())
	if stakeAddr, err := w.StakeAddress(); err == nil {
		fmt.Println("stake address:", stakeAddr)
	}
	return nil
}

func newPolicy(ctx *cli.Context) error {
	w, err := initWallet(ctx, ctx.String(nameFlag.Name))
	if err != nil {
		return err
	}
	policy, err := wallet.GeneratePolicy(
		ctx.String(policyFlag.Name),
		w.SigningKey().PubKey(),
		ctx.Uint64(expiresFlag.Name),
	)
	if err != nil {
		return err
	}
	if err := policy.Save(params.GetConfig().PolicyDir); err != nil {
		return err
	}
	fmt.Println("policy:", policy.Name)
	fmt.Println("policy id:", policy.PolicyID)
	return nil
}

func balance(ctx *cli.Context) error {
	w, err := initWallet(ctx, ctx.String(nameFlag.Name))
	if err != nil {
		return err
	}
	if err := w.Sync(); err != nil {
		return err
	}
	fmt.Println("address:", w.Address())
	fmt.Println("balance:", w.Balance())
	fmt.Println("utxos:", len(w.UTxOs()))
	for policyID, byName := range w.TokenBalances() {
		for name, quantity := range byName {
			fmt.Printf("token: %s.%s = %d\n", policyID, name, quantity)
		}
	}
	return nil
}

func send(ctx *cli.Context) error {
	w, err := initWallet(ctx, ctx.String(nameFlag.Name))
	if err != nil {
		return err
	}
	var amount wallet.Amount
	switch {
	case ctx.IsSet(lovelaceFlag.Name):
		amount = wallet.Lovelace(ctx.Int64(lovelaceFlag.Name))
	case ctx.IsSet(adaFlag.Name):
		amount = wallet.Ada(ctx.Float64(adaFlag.Name))
	default:
		return fmt.Errorf("must specify --ada or --lovelace")
	}

	result, err := w.Transact(&wallet.TransactArgs{
		Outputs:  []*wallet.Output{wallet.NewOutput(ctx.String(toFlag.Name), amount)},
		Message:  ctx.String(messageFlag.Name),
		NoSubmit: ctx.Bool(noSubmitFlag.Name),
		Await:    ctx.Bool(awaitFlag.Name),
	})
	if err != nil {
		return err
	}
	log.Info("send finished", "txHash", result.TxHash, "submitted", result.Submitted)
	return nil
}

func mint(ctx *cli.Context) error {
	w, err := initWallet(ctx, ctx.String(nameFlag.Name))
	if err != nil {
		return err
	}
	policy, err := wallet.LoadPolicy(ctx.String(policyFlag.Name), params.GetConfig().PolicyDir)
	if err != nil {
		return err
	}
	token, err := wallet.NewToken(policy, ctx.Int64(quantityFlag.Name), ctx.String(assetFlag.Name), nil)
	if err != nil {
		return err
	}
	result, err := w.Transact(&wallet.TransactArgs{
		Mints:   []*wallet.Token{token},
		Outputs: []*wallet.Output{wallet.NewOutput(ctx.String(toFlag.Name), wallet.Lovelace(0), token)},
		Message: ctx.String(messageFlag.Name),
		Await:   ctx.Bool(awaitFlag.Name),
	})
	if err != nil {
		return err
	}
	log.Info("mint finished", "txHash", result.TxHash)
	return nil
}

func burn(ctx *cli.Context) error {
	w, err := initWallet(ctx, ctx.String(nameFlag.Name))
	if err != nil {
		return err
	}
	policy, err := wallet.LoadPolicy(ctx.String(policyFlag.Name), params.GetConfig().PolicyDir)
	if err != nil {
		return err
	}
	token, err := wallet.NewToken(policy, -ctx.Int64(quantityFlag.Name), ctx.String(assetFlag.Name), nil)
	if err != nil {
		return err
	}
	result, err := w.Transact(&wallet.TransactArgs{
		Mints: []*wallet.Token{token},
		Await: ctx.Bool(awaitFlag.Name),
	})
	if err != nil {
		return err
	}
	log.Info("burn finished", "txHash", result.TxHash)
	return nil
}

func delegate(ctx *cli.Context) error {
	w, err := initWallet(ctx, ctx.String(nameFlag.Name))
	if err != nil {
		return err
	}
	args := &wallet.TransactArgs{
		Delegations: wallet.DelegateSelf(ctx.String(poolFlag.Name)),
		Await:       ctx.Bool(awaitFlag.Name),
	}
	if !ctx.Bool(noRegisterFlag.Name) {
		args.Registrations = wallet.RegisterSelf()
	}
	result, err := w.Transact(args)
	if err != nil {
		return err
	}
	log.Info("delegate finished", "txHash", result.TxHash)
	return nil
}

func withdraw(ctx *cli.Context) error {
	w, err := initWallet(ctx, ctx.String(nameFlag.Name))
	if err != nil {
		return err
	}
	result, err := w.Transact(&wallet.TransactArgs{
		Withdrawals: wallet.WithdrawAll(),
		Await:       ctx.Bool(awaitFlag.Name),
	})
	if err != nil {
		return err
	}
	log.Info("withdraw finished", "txHash", result.TxHash)
	return nil
}
