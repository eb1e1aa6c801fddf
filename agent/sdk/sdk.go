/*
Package sdk is the boundary between the bridge and the native libindy SDK.
Every native call returns a Channel which delivers exactly one dto.Result,
the same way findy-wrapper-go does. The capabilities are separate interfaces
so that a partial SDK build, a fake or a mock can be plugged in per domain. A
nil capability means that the SDK build doesn't have it.
*/
package sdk

import (
	"github.com/findy-network/findy-wrapper-go/dto"
)

// Channel is the native result channel. findy.Channel values are assignable
// to it.
type Channel = chan dto.Result

// Wallets is the wallet life-cycle of the SDK.
type Wallets interface {
	Create(config, credentials string) Channel
	Open(config, credentials string) Channel
	Close(wallet int) Channel
	Delete(config, credentials string) Channel
	Export(wallet int, exportConfig string) Channel
	Import(config, credentials, importConfig string) Channel
	GenerateKey(config string) Channel
}

// DIDs is the DID storage of the wallet.
type DIDs interface {
	CreateAndStore(wallet int, didJSON string) Channel
	Key(pool, wallet int, did string) Channel
	LocalKey(wallet int, did string) Channel
	StoreTheir(wallet int, identityJSON string) Channel
	SetMeta(wallet int, did, meta string) Channel
	Meta(wallet int, did string) Channel
	ListWithMeta(wallet int) Channel
}

// Pairwise is the pairwise storage of the wallet.
type Pairwise interface {
	Create(wallet int, theirDID, myDID, meta string) Channel
	Get(wallet int, theirDID string) Channel
	List(wallet int) Channel
	SetMeta(wallet int, theirDID, meta string) Channel
}

// Crypto is the key and message crypto of the SDK.
type Crypto interface {
	CreateKey(wallet int, keyJSON string) Channel
	AnonCrypt(recipientVerkey string, msg []byte) Channel
	AnonDecrypt(wallet int, recipientVerkey string, msg []byte) Channel
	AuthCrypt(wallet int, senderVerkey, recipientVerkey string, msg []byte) Channel
	AuthDecrypt(wallet int, recipientVerkey string, msg []byte) Channel
	Sign(wallet int, signerVerkey string, msg []byte) Channel
	Verify(signerVerkey string, msg, signature []byte) Channel
	Pack(wallet int, senderVerkey string, msg []byte, receiverKeys ...string) Channel
	Unpack(wallet int, jwe []byte) Channel
}

// Pools is the pool ledger connection life-cycle.
type Pools interface {
	SetProtocolVersion(version uint64) Channel
	CreateConfig(name, config string) Channel
	Open(name, config string) Channel
	Close(pool int) Channel
}

// Ledger is the ledger request building, signing and submission.
type Ledger interface {
	SubmitRequest(pool int, request string) Channel
	SignRequest(wallet int, submitterDID, request string) Channel
	SignAndSubmitRequest(pool, wallet int, submitterDID, request string) Channel

	BuildGetTxnRequest(submitterDID, ledgerType string, seqNo int) Channel
	BuildNymRequest(submitterDID, targetDID, verkey, alias, role string) Channel
	BuildGetNymRequest(submitterDID, targetDID string) Channel
	ParseGetNymResponse(response string) Channel
	BuildGetAttribRequest(submitterDID, targetDID, raw, hash, enc string) Channel
	BuildSchemaRequest(submitterDID, data string) Channel
	BuildGetSchemaRequest(submitterDID, id string) Channel
	ParseGetSchemaResponse(response string) Channel
	BuildCredDefRequest(submitterDID, data string) Channel
	BuildGetCredDefRequest(submitterDID, id string) Channel
	ParseGetCredDefResponse(response string) Channel
	BuildGetRevocRegDefRequest(submitterDID, id string) Channel
	ParseGetRevocRegDefResponse(response string) Channel
	BuildGetRevocRegRequest(submitterDID, revRegDefID string, timestamp int64) Channel
	ParseGetRevocRegResponse(response string) Channel
	BuildGetRevocRegDeltaRequest(submitterDID, revRegDefID string, from, to int64) Channel
	ParseGetRevocRegDeltaResponse(response string) Channel
	BuildGetTxnAuthorAgreementRequest(submitterDID, data string) Channel
	AppendTxnAuthorAgreementAcceptanceToRequest(request, text, version, taaDigest, mechanism string, time uint64) Channel

	ReadSchema(pool int, submitterDID, id string) Channel
	WriteSchema(pool, wallet int, submitterDID, schema string) Channel
	ReadCredDef(pool int, submitterDID, id string) Channel
	WriteCredDef(pool, wallet int, submitterDID, credDef string) Channel
	WriteDID(pool, wallet int, submitterDID, targetDID, verkey, alias, role string) Channel
}

// Anoncreds is the issuer, prover and verifier side of anoncreds.
type Anoncreds interface {
	IssuerCreateSchema(issuerDID, name, version, attrs string) Channel
	IssuerCreateAndStoreCredentialDef(wallet int, issuerDID, schema, tag, signatureType, config string) Channel
	IssuerCreateCredentialOffer(wallet int, credDefID string) Channel
	IssuerCreateCredential(wallet int, offer, request, values, revRegID string, blobReader int) Channel

	ProverCreateMasterSecret(wallet int, masterSecretID string) Channel
	ProverCreateCredentialReq(wallet int, proverDID, offer, credDef, masterSecretID string) Channel
	ProverStoreCredential(wallet int, credID, reqMeta, cred, credDef, revRegDef string) Channel
	ProverDeleteCredential(wallet int, credID string) Channel
	ProverGetCredential(wallet int, credID string) Channel
	ProverGetCredentials(wallet int, filter string) Channel
	ProverGetCredentialsForProofReq(wallet int, proofReq string) Channel
	ProverSearchCredentialsForProofReq(wallet int, proofReq, extraQuery string) Channel
	ProverFetchCredentialsForProofReq(search int, referent string, count int) Channel
	ProverCloseCredentialsSearchForProofReq(search int) Channel
	ProverCreateProof(wallet int, proofReq, requestedCreds, masterSecret, schemas, credDefs, revStates string) Channel

	VerifierVerifyProof(proofReq, proof, schemas, credDefs, revRegDefs, revRegs string) Channel
	GenerateNonce() Channel
	CreateRevocationState(blobReader int, revRegDef, revRegDelta string, timestamp int64, credRevID string) Channel
	OpenBlobStorageReader(kind, config string) Channel
}

// Records is the non-secrets record storage of the wallet.
type Records interface {
	Add(wallet int, kind, id, value, tags string) Channel
	UpdateValue(wallet int, kind, id, value string) Channel
	UpdateTags(wallet int, kind, id, tags string) Channel
	AddTags(wallet int, kind, id, tags string) Channel
	DeleteTags(wallet int, kind, id, tagNames string) Channel
	Delete(wallet int, kind, id string) Channel
	Get(wallet int, kind, id, options string) Channel
	OpenSearch(wallet int, kind, query, options string) Channel
	FetchNext(wallet, search, count int) Channel
	CloseSearch(search int) Channel
}

// Partial is implemented by a capability which lacks some of its calls in
// the current SDK build. The bridge rejects the unsupported operations before
// calling the capability.
type Partial interface {
	Supports(op string) bool
}

// Supports tells if the capability c can run the bridge operation op.
func Supports(c any, op string) bool {
	if c == nil {
		return false
	}
	if p, ok := c.(Partial); ok {
		return p.Supports(op)
	}
	return true
}

// SDK is the set of the native capabilities the bridge uses.
type SDK struct {
	Wallets   Wallets
	DIDs      DIDs
	Pairwise  Pairwise
	Crypto    Crypto
	Pools     Pools
	Ledger    Ledger
	Anoncreds Anoncreds
	Records   Records
}

// Result returns a Channel which already holds r.
func Result(r dto.Result) Channel {
	ch := make(Channel, 1)
	ch <- r
	return ch
}

// Fail returns a Channel which holds a failure without an SDK code.
func Fail(msg string) Channel {
	return Result(dto.Result{Er: dto.Err{Error: msg}})
}
