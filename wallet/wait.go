package wallet

import (
	"time"

	"github.com/easyada/cardano-wallet/chain"
	"github.com/easyada/cardano-wallet/log"
	"github.com/easyada/cardano-wallet/params"
)

// awaitConfirmation blocks until the chain context reports the transaction
// in a block, polling at the configured interval. Query failures are treated
// as "not yet confirmed". Runs until confirmed; callers needing a bound wrap
// the Transact call with their own cancellation.
func (w *Wallet) awaitConfirmation(txHash string) {
	querier, ok := w.node.(chain.TxQuerier)
	if !ok {
		log.Warn("chain context cannot look up transactions, skip confirmation wait", "txHash", txHash)
		return
	}
	interval := time.Duration(params.GetConfirmInterval()) * time.Second
	for {
		time.Sleep(interval)
		info, err := querier.TxInfo(txHash)
		if err != nil {
			log.Trace("transaction not yet confirmed", "txHash", txHash, "err", err)
			continue
		}
		if info != nil && info.BlockHeight > 0 {
			log.Info("transaction confirmed", "txHash", txHash, "block", info.BlockHeight)
			return
		}
	}
}
