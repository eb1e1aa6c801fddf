package bridge

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/findy-network/findy-bridge/agent/async"
	"github.com/findy-network/findy-bridge/agent/sdk"
	"github.com/findy-network/findy-bridge/agent/sdk/mocksdk"
	"github.com/findy-network/findy-bridge/agent/sdkerr"
	"github.com/golang/mock/gomock"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walletConfig(id string) string {
	return fmt.Sprintf(`{"id":"%s"}`, id)
}

func testVerkey(seed byte) string {
	raw := make([]byte, verkeyLen)
	for i := range raw {
		raw[i] = seed + byte(i)
	}
	return base58.Encode(raw)
}

func failure(t *testing.T, p *async.Promise) *sdkerr.StructuredError {
	t.Helper()
	_, err := p.Await()
	require.Error(t, err)
	var se *sdkerr.StructuredError
	require.ErrorAs(t, err, &se)
	return se
}

func openWallet(t *testing.T, b *Bridge, id string) int {
	t.Helper()
	h, err := async.Await[int](b.OpenWallet(walletConfig(id), `{"key":"4Vwsj6Qcczmhk2Ak7H5GGvFE1cQCdRtWfW4jchahNUoE"}`))
	require.NoError(t, err)
	return h
}

func TestOpenWallet_ConcurrentSameID(t *testing.T) {
	wallets := newFakeWallets()
	wallets.gate = make(chan struct{})
	b := New(sdk.SDK{Wallets: wallets})

	const callers = 8
	handles := make([]int, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handles[i], errs[i] = async.Await[int](b.OpenWallet(walletConfig("w1"), "{}"))
		}(i)
	}
	close(wallets.gate)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, handles[0], handles[i])
	}
	assert.Equal(t, int32(1), wallets.opens.Load())
	assert.Equal(t, map[string]int{"w1": handles[0]}, b.OpenWallets())
}

func TestWallet_Scenario(t *testing.T) {
	wallets := newFakeWallets()
	b := New(sdk.SDK{Wallets: wallets, DIDs: fakeDIDs{}})

	for i := 1; i <= 6; i++ {
		assert.Equal(t, i, openWallet(t, b, fmt.Sprintf("other%d", i)))
	}

	var wg sync.WaitGroup
	var h1, h2 int
	wg.Add(2)
	go func() { defer wg.Done(); h1 = openWallet(t, b, "w1") }()
	go func() { defer wg.Done(); h2 = openWallet(t, b, "w1") }()
	wg.Wait()
	assert.Equal(t, 7, h1)
	assert.Equal(t, 7, h2)
	assert.Equal(t, int32(7), wallets.opens.Load())

	vk, err := async.Await[string](b.KeyForLocalDid(7, "did"))
	require.NoError(t, err)
	assert.Equal(t, "verkey", vk)

	_, err = b.CloseWallet(7).Await()
	require.NoError(t, err)
	assert.Equal(t, int32(1), wallets.closes.Load())

	se := failure(t, b.KeyForLocalDid(7, "did"))
	assert.Equal(t, 0, se.Code)
	assert.Equal(t, "BridgeHandleNotFound", se.Name)

	se = failure(t, b.CloseWallet(7))
	assert.Equal(t, "BridgeHandleNotFound", se.Name)
	assert.Equal(t, "wallet handle 7 not found", se.Message)
	assert.Equal(t, int32(1), wallets.closes.Load(), "no double release")

	_, ok := b.OpenWallets()["w1"]
	assert.False(t, ok)

	// lowest free handle is given again
	assert.Equal(t, 7, openWallet(t, b, "w2"))
}

func TestOpenWallet_NativeFailure(t *testing.T) {
	wallets := newFakeWallets()
	wallets.failing = sdkerr.WalletNotFoundError
	b := New(sdk.SDK{Wallets: wallets})

	se := failure(t, b.OpenWallet(walletConfig("w1"), "{}"))
	assert.Equal(t, sdkerr.WalletNotFoundError, se.Code)
	assert.Equal(t, "WalletNotFoundError", se.Name)
	assert.Empty(t, b.OpenWallets())
	assert.Equal(t, 0, b.wallets.Registry().Len())
}

func TestOpenWallet_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{"no id", `{"storage_type":"default"}`},
		{"empty id", `{"id":""}`},
		{"not json", `id=w1`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			wallets := newFakeWallets()
			b := New(sdk.SDK{Wallets: wallets})

			se := failure(t, b.OpenWallet(tt.config, "{}"))
			assert.Equal(t, "BridgeInvalidArgument", se.Name)
			assert.Equal(t, int32(0), wallets.opens.Load())
		})
	}
}

func TestCredentialSearch_Cursors(t *testing.T) {
	creds := &fakeAnoncreds{}
	b := New(sdk.SDK{Wallets: newFakeWallets(), Anoncreds: creds})
	wh := openWallet(t, b, "w1")

	var wg sync.WaitGroup
	got := make([]int, 2)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h, err := async.Await[int](b.ProverSearchCredentialsForProofReq(wh, "{}", ""))
			assert.NoError(t, err)
			got[i] = h
		}(i)
	}
	wg.Wait()
	assert.ElementsMatch(t, []int{0, 1}, got)

	_, err := b.ProverCloseCredentialsSearchForProofReq(0).Await()
	require.NoError(t, err)

	_, err = b.ProverFetchCredentialsForProofReq(1, "attr1_referent", 10).Await()
	require.NoError(t, err)

	se := failure(t, b.ProverFetchCredentialsForProofReq(0, "attr1_referent", 10))
	assert.Equal(t, "BridgeHandleNotFound", se.Name)
	se = failure(t, b.ProverCloseCredentialsSearchForProofReq(0))
	assert.Equal(t, "BridgeHandleNotFound", se.Name)
	assert.Equal(t, 0, se.Code)
	assert.Equal(t, int32(1), creds.closed.Load())

	// cursors are not reused
	h, err := async.Await[int](b.ProverSearchCredentialsForProofReq(wh, "{}", ""))
	require.NoError(t, err)
	assert.Equal(t, 2, h)
}

func TestCredentialSearch_IllegalCount(t *testing.T) {
	b := New(sdk.SDK{Wallets: newFakeWallets(), Anoncreds: &fakeAnoncreds{}})
	se := failure(t, b.ProverFetchCredentialsForProofReq(0, "r", 0))
	assert.Equal(t, "BridgeInvalidArgument", se.Name)
}

func TestUnsupported(t *testing.T) {
	tests := []struct {
		name string
		s    sdk.SDK
	}{
		{"nil capability", sdk.SDK{Wallets: newFakeWallets()}},
		{"partial capability", sdk.SDK{Wallets: newFakeWallets(), Records: partialRecords{}}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.s)
			wh := openWallet(t, b, "w1")

			se := failure(t, b.AddWalletRecord(wh, "kind", "id", "value", "{}"))
			assert.Equal(t, 0, se.Code)
			assert.Equal(t, "BridgeUnsupported", se.Name)
			assert.Contains(t, se.Message, "addWalletRecord")
		})
	}
}

func TestPanickingCapability(t *testing.T) {
	// fakeWallets doesn't implement Create
	b := New(sdk.SDK{Wallets: newFakeWallets()})
	se := failure(t, b.CreateWallet(walletConfig("w1"), "{}"))
	assert.Equal(t, 0, se.Code)
	assert.NotEmpty(t, se.Message)
}

func TestGenerateNonce_Fallback(t *testing.T) {
	b := New(sdk.SDK{})
	nonce, err := async.Await[string](b.GenerateNonce())
	require.NoError(t, err)
	assert.NotEmpty(t, nonce)
	assert.Regexp(t, `^[0-9]+$`, nonce)
}

func TestCrypto_Verkeys(t *testing.T) {
	full := testVerkey(1)
	abbr := "~" + base58.Encode(make([]byte, abbrVerkeyLen))

	tests := []struct {
		name string
		vk   string
		ok   bool
	}{
		{"full", full, true},
		{"abbreviated", abbr, true},
		{"not base58", "0OIl", false},
		{"short", base58.Encode([]byte{1, 2, 3}), false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			crypto := &fakeCrypto{}
			b := New(sdk.SDK{Crypto: crypto})
			_, err := b.CryptoAnonCrypt(tt.vk, []byte("msg")).Await()
			if tt.ok {
				assert.NoError(t, err)
				assert.Equal(t, []byte("msg"), crypto.msg)
				return
			}
			assert.Equal(t, "BridgeInvalidArgument", sdkerr.Normalize(err).Name)
			assert.Nil(t, crypto.msg)
		})
	}
}

func TestPackMessage_NoReceivers(t *testing.T) {
	b := New(sdk.SDK{Wallets: newFakeWallets(), Crypto: &fakeCrypto{}})
	se := failure(t, b.PackMessage(1, []byte("msg"), nil, ""))
	assert.Equal(t, "BridgeInvalidArgument", se.Name)
}

func TestResults(t *testing.T) {
	b := New(sdk.SDK{
		Wallets:   newFakeWallets(),
		DIDs:      fakeDIDs{},
		Ledger:    fakeLedger{},
		Anoncreds: &fakeAnoncreds{},
	})
	wh := openWallet(t, b, "w1")

	d, err := async.Await[DIDResult](b.CreateAndStoreMyDid(wh, "{}"))
	require.NoError(t, err)
	assert.Equal(t, DIDResult{DID: "did", Verkey: "verkey"}, d)

	s, err := async.Await[ParsedResponse](b.IssuerCreateSchema("did", "email", "1.0", `["email"]`))
	require.NoError(t, err)
	assert.Equal(t, "did:2:email:1.0", s.ID)
	assert.JSONEq(t, `{"name":"email"}`, s.JSON)

	c, err := async.Await[IssuedCredential](b.IssuerCreateCredential(wh, "", "", "", "", 0))
	require.NoError(t, err)
	assert.Equal(t, IssuedCredential{Credential: "cred", RevocID: "1", RevocRegDelta: "delta"}, c)

	delta, err := async.Await[ParsedDeltaResponse](b.ParseGetRevocRegDeltaResponse("{}"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1600000000), delta.Timestamp)

	se := failure(t, b.ParseGetRevocRegResponse("{}"))
	assert.Equal(t, 0, se.Code)
	assert.Contains(t, se.Message, "timestamp")
}

func TestPool_OpenReuseClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pools := mocksdk.NewMockPools(ctrl)
	gomock.InOrder(
		pools.EXPECT().Open("FINDY_LEDGER", "").Return(handleResult(42)).Times(1),
		pools.EXPECT().Close(42).Return(success()).Times(1),
	)
	b := New(sdk.SDK{Pools: pools})

	h, err := async.Await[int](b.OpenPoolLedger("FINDY_LEDGER", ""))
	require.NoError(t, err)
	assert.Equal(t, 1, h)

	h2, err := async.Await[int](b.OpenPoolLedger("FINDY_LEDGER", ""))
	require.NoError(t, err)
	assert.Equal(t, h, h2)
	assert.Equal(t, map[string]int{"FINDY_LEDGER": 1}, b.OpenPools())

	_, err = b.ClosePoolLedger(h).Await()
	require.NoError(t, err)
	assert.Empty(t, b.OpenPools())

	se := failure(t, b.ClosePoolLedger(h))
	assert.Equal(t, "BridgeHandleNotFound", se.Name)
	assert.Equal(t, 0, se.Code)
	assert.Equal(t, "pool handle 1 not found", se.Message)
}

func TestWalletSearch_DoubleClose(t *testing.T) {
	records := &fakeRecords{}
	b := New(sdk.SDK{Wallets: newFakeWallets(), Records: records})
	wh := openWallet(t, b, "w1")

	sh, err := async.Await[int](b.OpenWalletSearch(wh, "kind", "{}", "{}"))
	require.NoError(t, err)
	assert.Equal(t, 1, sh)

	_, err = b.FetchWalletSearchNextRecords(wh, sh, 5).Await()
	require.NoError(t, err)

	_, err = b.CloseWalletSearch(sh).Await()
	require.NoError(t, err)

	se := failure(t, b.CloseWalletSearch(sh))
	assert.Equal(t, "BridgeHandleNotFound", se.Name)
	assert.Equal(t, 0, se.Code)
	assert.Equal(t, "search handle 1 not found", se.Message)
	assert.Equal(t, int32(1), records.closed.Load(), "no double release")

	se = failure(t, b.FetchWalletSearchNextRecords(wh, sh, 5))
	assert.Equal(t, "BridgeHandleNotFound", se.Name)
}

func TestBridgeFailure_Message(t *testing.T) {
	b := New(sdk.SDK{Wallets: newFakeWallets()})

	se := failure(t, b.ExportWallet(3, "{}"))
	assert.Equal(t, "BridgeHandleNotFound", se.Name)
	assert.Equal(t, "wallet handle 3 not found", se.Message)

	se = failure(t, b.OpenWallet(walletConfig(""), "{}"))
	assert.Equal(t, "wallet config has no id", se.Message)
}

func TestPool_Failures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pools := mocksdk.NewMockPools(ctrl)
	pools.EXPECT().Open("missing", "").
		Return(errResult(sdkerr.PoolLedgerTimeout, `{"message":"timeout","backtrace":"bt"}`))
	pools.EXPECT().SetProtocolVersion(uint64(2)).Return(success())
	b := New(sdk.SDK{Pools: pools})

	se := failure(t, b.OpenPoolLedger("missing", ""))
	assert.Equal(t, sdkerr.PoolLedgerTimeout, se.Code)
	assert.Equal(t, "PoolLedgerTimeout", se.Name)
	assert.Equal(t, "timeout", se.Message)
	assert.Equal(t, "bt", se.Backtrace)
	assert.Empty(t, b.OpenPools())

	se = failure(t, b.OpenPoolLedger("", ""))
	assert.Equal(t, "BridgeInvalidArgument", se.Name)

	_, err := b.SetProtocolVersion(2).Await()
	require.NoError(t, err)
	se = failure(t, b.SetProtocolVersion(0))
	assert.Equal(t, "BridgeInvalidArgument", se.Name)
}

func TestShutdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pools := mocksdk.NewMockPools(ctrl)
	pools.EXPECT().Open("pool", "").Return(handleResult(3))
	pools.EXPECT().Close(3).Return(success())

	wallets := newFakeWallets()
	creds := &fakeAnoncreds{}
	b := New(sdk.SDK{Wallets: wallets, Pools: pools, Anoncreds: creds})

	openWallet(t, b, "w1")
	wh := openWallet(t, b, "w2")
	_, err := b.OpenPoolLedger("pool", "").Await()
	require.NoError(t, err)
	_, err = b.ProverSearchCredentialsForProofReq(wh, "{}", "").Await()
	require.NoError(t, err)

	b.Shutdown()
	assert.Equal(t, 0, wallets.open())
	assert.Empty(t, b.OpenWallets())
	assert.Empty(t, b.OpenPools())
	assert.Equal(t, int32(1), creds.closed.Load())
}

func TestCall(t *testing.T) {
	crypto := &fakeCrypto{}
	b := New(sdk.SDK{Wallets: newFakeWallets(), Crypto: crypto})

	args := func(vs ...any) []json.RawMessage {
		raw := make([]json.RawMessage, len(vs))
		for i, v := range vs {
			d, err := json.Marshal(v)
			require.NoError(t, err)
			raw[i] = d
		}
		return raw
	}

	h, err := async.Await[int](b.Call("openWallet", args(walletConfig("w1"), "{}")))
	require.NoError(t, err)
	assert.Equal(t, 1, h)

	h, err = async.Await[int](b.Call("openWallet", []json.RawMessage{
		json.RawMessage(walletConfig("w1")),
		json.RawMessage(`{}`),
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, h, "config as a JSON object")

	vk := testVerkey(7)
	_, err = b.Call("cryptoAnonCrypt", []json.RawMessage{
		json.RawMessage(`"` + vk + `"`),
		json.RawMessage(`[1,2,3]`),
	}).Await()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, crypto.msg)

	tests := []struct {
		name string
		op   string
		args []json.RawMessage
		want string
	}{
		{"unknown", "openDoor", nil, "BridgeUnknownOperation"},
		{"too few", "closeWallet", nil, "BridgeInvalidArgument"},
		{"too many", "closeWallet", args(1, 2), "BridgeInvalidArgument"},
		{"wrong type", "closeWallet", args("one"), "BridgeInvalidArgument"},
		{"stale handle", "closeWallet", args(9), "BridgeHandleNotFound"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			se := failure(t, b.Call(tt.op, tt.args))
			assert.Equal(t, tt.want, se.Name)
			assert.Equal(t, 0, se.Code)
		})
	}
}
