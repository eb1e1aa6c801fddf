package indysdk

import (
	"testing"

	"github.com/findy-network/findy-bridge/agent/sdk"
	"github.com/findy-network/findy-wrapper-go"
	"github.com/stretchr/testify/assert"
)

func TestSupports(t *testing.T) {
	s := New()
	tests := []struct {
		capability any
		op         string
		ok         bool
	}{
		{s.Wallets, "deleteWallet", true},
		{s.DIDs, "listMyDidsWithMeta", true},
		{s.Crypto, "cryptoAuthCrypt", true},
		{s.Crypto, "cryptoAuthDecrypt", true},
		{s.Crypto, "createKey", false},
		{s.Ledger, "submitRequest", true},
		{s.Ledger, "signAndSubmitRequest", true},
		{s.Ledger, "buildNymRequest", true},
		{s.Ledger, "buildGetNymRequest", true},
		{s.Ledger, "buildGetAttribRequest", true},
		{s.Ledger, "buildSchemaRequest", true},
		{s.Ledger, "buildGetSchemaRequest", true},
		{s.Ledger, "parseGetSchemaResponse", true},
		{s.Ledger, "buildCredDefRequest", true},
		{s.Ledger, "buildGetCredDefRequest", true},
		{s.Ledger, "parseGetCredDefResponse", true},
		{s.Ledger, "signRequest", false},
		{s.Ledger, "buildGetTxnRequest", false},
		{s.Ledger, "buildGetRevocRegDeltaRequest", false},
		{s.Ledger, "buildGetTxnAuthorAgreementRequest", false},
		{s.Anoncreds, "proverGetCredential", false},
		{s.Anoncreds, "generateNonce", false},
		{s.Anoncreds, "openBlobStorageReader", false},
		{s.Anoncreds, "proverCreateProof", true},
		{s.Pairwise, "getPairwise", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, sdk.Supports(tt.capability, tt.op), tt.op)
	}
}

func TestUnsupported(t *testing.T) {
	r := <-Ledger{}.SignRequest(1, "did", "{}")
	assert.Error(t, r.Err())
	assert.Contains(t, r.Error(), "signRequest")
}

func TestOrNull(t *testing.T) {
	assert.Equal(t, findy.NullString, orNull(""))
	assert.Equal(t, "raw", orNull("raw"))
}
