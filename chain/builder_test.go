package chain

import (
	"testing"

	cardanosdk "github.com/echovl/cardano-go"
	"github.com/echovl/cardano-go/crypto"
	"github.com/stretchr/testify/require"
)

const testChangeAddr = "addr1q862w5ru0hpxl4r6vezgtegrfqve0dm2dp3yj2f7y4arrf223wd3fr6qcumc6873am478xnxmfp8lgpe6q6ju9ttjgns2xavze"

type stubNode struct {
	network cardanosdk.Network
}

func (n *stubNode) UTxOs(cardanosdk.Address) ([]cardanosdk.UTxO, error) { return nil, nil }

func (n *stubNode) Tip() (*cardanosdk.NodeTip, error) {
	return &cardanosdk.NodeTip{Block: 10, Epoch: 1, Slot: 100}, nil
}

func (n *stubNode) SubmitTx(*cardanosdk.Tx) (*cardanosdk.Hash32, error) { return nil, nil }

func (n *stubNode) ProtocolParams() (*cardanosdk.ProtocolParams, error) {
	return &cardanosdk.ProtocolParams{MinFeeA: 44, MinFeeB: 155381}, nil
}

func (n *stubNode) Network() cardanosdk.Network { return n.network }

func testStakingKeyHash() []byte {
	hash := make([]byte, 28)
	for i := range hash {
		hash[i] = byte(i + 1)
	}
	return hash
}

func testWithdrawalTx(t *testing.T) (*cardanosdk.Tx, cardanosdk.Address) {
	t.Helper()
	addr, err := cardanosdk.NewAddress(testChangeAddr)
	require.NoError(t, err)
	tx := &cardanosdk.Tx{
		Body: cardanosdk.TxBody{
			Outputs: []*cardanosdk.TxOutput{
				{Address: addr, Amount: cardanosdk.NewValue(5_000_000)},
			},
			Fee: 170_000,
		},
	}
	return tx, addr
}

func TestApplyWithdrawalsRewardAccountKeys(t *testing.T) {
	tb := NewTxBuilder(&stubNode{network: cardanosdk.Mainnet})
	tx, addr := testWithdrawalTx(t)
	keyHash := testStakingKeyHash()

	req := &TxRequest{
		ChangeAddress: addr,
		Withdrawals:   map[string]uint64{string(keyHash): 3_000_000},
	}
	got, err := tb.applyWithdrawals(tx, req, []crypto.PrvKey{tb.fakePrvKey})
	require.NoError(t, err)

	wdrls, ok := got.Body.Withdrawals.(map[string]cardanosdk.Coin)
	require.True(t, ok)
	require.Len(t, wdrls, 1)
	for account, coin := range wdrls {
		require.EqualValues(t, 3_000_000, coin)
		// 29-byte reward account: mainnet key header + staking key hash
		require.Len(t, account, 29)
		require.Equal(t, byte(0xe1), account[0])
		require.Equal(t, string(keyHash), account[1:])
	}

	feeDelta := got.Body.Fee - 170_000
	require.True(t, feeDelta > 0)
	require.EqualValues(t, cardanosdk.Coin(5_000_000+3_000_000)-feeDelta, got.Body.Outputs[0].Amount.Coin)
	require.Len(t, got.WitnessSet.VKeyWitnessSet, 1)
}

func TestApplyWithdrawalsTestnetHeader(t *testing.T) {
	tb := NewTxBuilder(&stubNode{network: cardanosdk.Testnet})
	tx, addr := testWithdrawalTx(t)

	req := &TxRequest{
		ChangeAddress: addr,
		Withdrawals:   map[string]uint64{string(testStakingKeyHash()): 3_000_000},
	}
	got, err := tb.applyWithdrawals(tx, req, []crypto.PrvKey{tb.fakePrvKey})
	require.NoError(t, err)
	wdrls, ok := got.Body.Withdrawals.(map[string]cardanosdk.Coin)
	require.True(t, ok)
	for account := range wdrls {
		require.Equal(t, byte(0xe0), account[0])
	}
}

func TestApplyWithdrawalsBelowMarginalFee(t *testing.T) {
	tb := NewTxBuilder(&stubNode{network: cardanosdk.Mainnet})
	tx, addr := testWithdrawalTx(t)

	req := &TxRequest{
		ChangeAddress: addr,
		Withdrawals:   map[string]uint64{string(testStakingKeyHash()): 100},
	}
	_, err := tb.applyWithdrawals(tx, req, []crypto.PrvKey{tb.fakePrvKey})
	require.Error(t, err)
}
