/*
Package indysdk implements the sdk capabilities with libindy thru
findy-wrapper-go. The JSON payloads of the bridge are decoded to the wrapper's
typed configs where the wrapper wants them. Calls the wrapper doesn't offer
answer with an unsupported failure.
*/
package indysdk

import (
	"encoding/json"
	"fmt"

	"github.com/findy-network/findy-bridge/agent/sdk"
	"github.com/findy-network/findy-wrapper-go"
	"github.com/findy-network/findy-wrapper-go/anoncreds"
	"github.com/findy-network/findy-wrapper-go/config"
	"github.com/findy-network/findy-wrapper-go/crypto"
	"github.com/findy-network/findy-wrapper-go/did"
	"github.com/findy-network/findy-wrapper-go/dto"
	"github.com/findy-network/findy-wrapper-go/ledger"
	"github.com/findy-network/findy-wrapper-go/pairwise"
	"github.com/findy-network/findy-wrapper-go/pool"
	"github.com/findy-network/findy-wrapper-go/wallet"
	"github.com/golang/glog"
)

// New returns the libindy SDK. Non-secrets records are not part of the
// wrapper and are left out.
func New() sdk.SDK {
	return sdk.SDK{
		Wallets:   Wallets{},
		DIDs:      DIDs{},
		Pairwise:  Pairwise{},
		Crypto:    Crypto{},
		Pools:     Pools{},
		Ledger:    Ledger{},
		Anoncreds: Anoncreds{},
	}
}

// SetCryptoThreads sets the size of libindy's crypto thread pool.
func SetCryptoThreads(n int) {
	config.Set(config.SystemConfig{CryptoThreadPoolSize: n})
}

// missing are the bridge operations the wrapper doesn't have.
var missing = map[string]bool{
	"createKey": true,

	"signRequest":                                 true,
	"buildGetTxnRequest":                          true,
	"parseGetNymResponse":                         true,
	"buildGetRevocRegDefRequest":                  true,
	"parseGetRevocRegDefResponse":                 true,
	"buildGetRevocRegRequest":                     true,
	"parseGetRevocRegResponse":                    true,
	"buildGetRevocRegDeltaRequest":                true,
	"parseGetRevocRegDeltaResponse":               true,
	"buildGetTxnAuthorAgreementRequest":           true,
	"appendTxnAuthorAgreementAcceptanceToRequest": true,

	"proverDeleteCredential":          true,
	"proverGetCredential":             true,
	"proverGetCredentials":            true,
	"proverGetCredentialsForProofReq": true,
	"generateNonce":                   true,
	"createRevocationState":           true,
	"openBlobStorageReader":           true,
}

func supports(op string) bool {
	return !missing[op]
}

func unsupported(name string) sdk.Channel {
	return sdk.Fail(fmt.Sprintf("%s is not supported by this SDK build", name))
}

func decode(what, s string, v any) error {
	if s == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("decode %s: %w", what, err)
	}
	return nil
}

func failed(err error) sdk.Channel {
	return sdk.Fail(err.Error())
}

// blocking runs a blocking wrapper call and delivers its outcome as a result.
func blocking(f func() (dto.Result, error)) sdk.Channel {
	ch := make(sdk.Channel, 1)
	go func() {
		r, err := f()
		if err != nil {
			r.Er = dto.Err{Error: err.Error()}
		}
		ch <- r
	}()
	return ch
}

func str(s1, s2 string) dto.Result {
	return dto.Result{Data: dto.Data{Str1: s1, Str2: s2}}
}

type Wallets struct{}

func (Wallets) Supports(op string) bool { return supports(op) }

func walletArgs(config, credentials string) (cfg wallet.Config, creds wallet.Credentials, err error) {
	if err = decode("wallet config", config, &cfg); err != nil {
		return
	}
	err = decode("wallet credentials", credentials, &creds)
	return
}

func (Wallets) Create(config, credentials string) sdk.Channel {
	cfg, creds, err := walletArgs(config, credentials)
	if err != nil {
		return failed(err)
	}
	return wallet.Create(cfg, creds)
}

func (Wallets) Open(config, credentials string) sdk.Channel {
	cfg, creds, err := walletArgs(config, credentials)
	if err != nil {
		return failed(err)
	}
	return wallet.Open(cfg, creds)
}

func (Wallets) Close(w int) sdk.Channel {
	return wallet.Close(w)
}

func (Wallets) Delete(config, credentials string) sdk.Channel {
	cfg, creds, err := walletArgs(config, credentials)
	if err != nil {
		return failed(err)
	}
	return wallet.Delete(cfg, creds)
}

func (Wallets) Export(w int, exportConfig string) sdk.Channel {
	var creds wallet.Credentials
	if err := decode("export config", exportConfig, &creds); err != nil {
		return failed(err)
	}
	return wallet.Export(w, creds)
}

func (Wallets) Import(config, credentials, importConfig string) sdk.Channel {
	cfg, creds, err := walletArgs(config, credentials)
	if err != nil {
		return failed(err)
	}
	var importCreds wallet.Credentials
	if err := decode("import config", importConfig, &importCreds); err != nil {
		return failed(err)
	}
	return wallet.Import(cfg, creds, importCreds)
}

func (Wallets) GenerateKey(config string) sdk.Channel {
	var cfg struct {
		Seed string `json:"seed"`
	}
	if err := decode("key config", config, &cfg); err != nil {
		return failed(err)
	}
	return wallet.GenerateKey(cfg.Seed)
}

type DIDs struct{}

func (DIDs) Supports(op string) bool { return supports(op) }

func (DIDs) CreateAndStore(w int, didJSON string) sdk.Channel {
	var d did.Did
	if err := decode("did", didJSON, &d); err != nil {
		return failed(err)
	}
	return did.CreateAndStore(w, d)
}

func (DIDs) Key(p, w int, theDID string) sdk.Channel {
	return did.Key(p, w, theDID)
}

func (DIDs) LocalKey(w int, theDID string) sdk.Channel {
	return did.LocalKey(w, theDID)
}

func (DIDs) StoreTheir(w int, identityJSON string) sdk.Channel {
	return did.StoreTheir(w, identityJSON)
}

func (DIDs) SetMeta(w int, theDID, meta string) sdk.Channel {
	return did.SetMeta(w, theDID, meta)
}

func (DIDs) Meta(w int, theDID string) sdk.Channel {
	return did.Meta(w, theDID)
}

func (DIDs) ListWithMeta(w int) sdk.Channel {
	return did.List(w)
}

type Pairwise struct{}

func (Pairwise) Create(w int, theirDID, myDID, meta string) sdk.Channel {
	return pairwise.Create(w, theirDID, myDID, meta)
}

func (Pairwise) List(w int) sdk.Channel {
	return pairwise.List(w)
}

func (Pairwise) SetMeta(w int, theirDID, meta string) sdk.Channel {
	return pairwise.SetMeta(w, theirDID, meta)
}

func (Pairwise) Get(w int, theirDID string) sdk.Channel {
	return pairwise.Get(w, theirDID)
}

type Crypto struct{}

func (Crypto) Supports(op string) bool { return supports(op) }

func (Crypto) CreateKey(int, string) sdk.Channel {
	return unsupported("createKey")
}

func (Crypto) AnonCrypt(recipientVerkey string, msg []byte) sdk.Channel {
	return crypto.AnonCrypt(recipientVerkey, msg)
}

func (Crypto) AnonDecrypt(w int, recipientVerkey string, msg []byte) sdk.Channel {
	return crypto.AnonDecrypt(w, recipientVerkey, msg)
}

func (Crypto) AuthCrypt(w int, senderVerkey, recipientVerkey string, msg []byte) sdk.Channel {
	return crypto.AuthCrypt(w, senderVerkey, recipientVerkey, msg)
}

func (Crypto) AuthDecrypt(w int, recipientVerkey string, msg []byte) sdk.Channel {
	return crypto.AuthDecrypt(w, recipientVerkey, msg)
}

func (Crypto) Sign(w int, signerVerkey string, msg []byte) sdk.Channel {
	return crypto.SignMsg(w, signerVerkey, msg)
}

func (Crypto) Verify(signerVerkey string, msg, signature []byte) sdk.Channel {
	return crypto.VerifySignature(signerVerkey, msg, signature)
}

func (Crypto) Pack(w int, senderVerkey string, msg []byte, receiverKeys ...string) sdk.Channel {
	if senderVerkey == "" {
		senderVerkey = findy.NullString
	}
	if glog.V(5) {
		glog.Infof("pack %d bytes for %d receivers", len(msg), len(receiverKeys))
	}
	return crypto.Pack(w, senderVerkey, msg, receiverKeys...)
}

func (Crypto) Unpack(w int, jwe []byte) sdk.Channel {
	if glog.V(5) {
		glog.Infof("unpack %d bytes", len(jwe))
	}
	return crypto.UnpackMessage(w, jwe)
}

type Pools struct{}

func (Pools) SetProtocolVersion(version uint64) sdk.Channel {
	return pool.SetProtocolVersion(version)
}

func (Pools) CreateConfig(name, config string) sdk.Channel {
	var cfg struct {
		GenesisTxn string `json:"genesis_txn"`
	}
	if err := decode("pool config", config, &cfg); err != nil {
		return failed(err)
	}
	return pool.CreateConfig(name, pool.Config{GenesisTxn: cfg.GenesisTxn})
}

// Open opens the pool ledger by its config name. The runtime config is not
// used by the wrapper.
func (Pools) Open(name, config string) sdk.Channel {
	if config != "" && glog.V(1) {
		glog.Infof("pool %s: runtime config ignored", name)
	}
	return pool.OpenLedger(name)
}

func (Pools) Close(p int) sdk.Channel {
	return pool.CloseLedger(p)
}

type Ledger struct{}

func (Ledger) Supports(op string) bool { return supports(op) }

func (Ledger) SubmitRequest(p int, request string) sdk.Channel {
	return ledger.SubmitRequest(p, request)
}

func (Ledger) SignRequest(int, string, string) sdk.Channel {
	return unsupported("signRequest")
}

func (Ledger) SignAndSubmitRequest(p, w int, submitterDID, request string) sdk.Channel {
	return ledger.SignAndSubmitRequest(p, w, submitterDID, request)
}

func (Ledger) BuildGetTxnRequest(string, string, int) sdk.Channel {
	return unsupported("buildGetTxnRequest")
}

func (Ledger) BuildNymRequest(submitterDID, targetDID, verkey, alias, role string) sdk.Channel {
	return ledger.BuildNymRequest(submitterDID, targetDID, verkey, orNull(alias), orNull(role))
}

func (Ledger) BuildGetNymRequest(submitterDID, targetDID string) sdk.Channel {
	return ledger.BuildGetNymRequest(submitterDID, targetDID)
}

func (Ledger) ParseGetNymResponse(string) sdk.Channel {
	return unsupported("parseGetNymResponse")
}

// BuildGetAttribRequest takes the attribute selectors in libindy's order. The
// wrapper wants the hash first.
func (Ledger) BuildGetAttribRequest(submitterDID, targetDID, raw, hash, enc string) sdk.Channel {
	return ledger.BuildGetAttribRequest(orNull(submitterDID), targetDID,
		orNull(hash), orNull(raw), orNull(enc))
}

func (Ledger) BuildSchemaRequest(submitterDID, data string) sdk.Channel {
	return ledger.BuildSchemaRequest(submitterDID, data)
}

func (Ledger) BuildGetSchemaRequest(submitterDID, id string) sdk.Channel {
	return ledger.BuildGetSchemaRequest(submitterDID, id)
}

func (Ledger) ParseGetSchemaResponse(response string) sdk.Channel {
	return ledger.ParseGetSchemaResponse(response)
}

func (Ledger) BuildCredDefRequest(submitterDID, data string) sdk.Channel {
	return ledger.BuildCredDefRequest(submitterDID, data)
}

func (Ledger) BuildGetCredDefRequest(submitterDID, id string) sdk.Channel {
	return ledger.BuildGetCredDefRequest(orNull(submitterDID), id)
}

func (Ledger) ParseGetCredDefResponse(response string) sdk.Channel {
	return ledger.ParseGetCredDefResponse(response)
}

func (Ledger) BuildGetRevocRegDefRequest(string, string) sdk.Channel {
	return unsupported("buildGetRevocRegDefRequest")
}

func (Ledger) ParseGetRevocRegDefResponse(string) sdk.Channel {
	return unsupported("parseGetRevocRegDefResponse")
}

func (Ledger) BuildGetRevocRegRequest(string, string, int64) sdk.Channel {
	return unsupported("buildGetRevocRegRequest")
}

func (Ledger) ParseGetRevocRegResponse(string) sdk.Channel {
	return unsupported("parseGetRevocRegResponse")
}

func (Ledger) BuildGetRevocRegDeltaRequest(string, string, int64, int64) sdk.Channel {
	return unsupported("buildGetRevocRegDeltaRequest")
}

func (Ledger) ParseGetRevocRegDeltaResponse(string) sdk.Channel {
	return unsupported("parseGetRevocRegDeltaResponse")
}

func (Ledger) BuildGetTxnAuthorAgreementRequest(string, string) sdk.Channel {
	return unsupported("buildGetTxnAuthorAgreementRequest")
}

func (Ledger) AppendTxnAuthorAgreementAcceptanceToRequest(string, string, string, string, string, uint64) sdk.Channel {
	return unsupported("appendTxnAuthorAgreementAcceptanceToRequest")
}

func (Ledger) ReadSchema(p int, submitterDID, id string) sdk.Channel {
	return blocking(func() (dto.Result, error) {
		sID, schema, err := ledger.ReadSchema(p, submitterDID, id)
		return str(sID, schema), err
	})
}

func (Ledger) WriteSchema(p, w int, submitterDID, schema string) sdk.Channel {
	return blocking(func() (dto.Result, error) {
		return dto.Result{}, ledger.WriteSchema(p, w, submitterDID, schema)
	})
}

func (Ledger) ReadCredDef(p int, submitterDID, id string) sdk.Channel {
	return blocking(func() (dto.Result, error) {
		cdID, credDef, err := ledger.ReadCredDef(p, submitterDID, id)
		return str(cdID, credDef), err
	})
}

func (Ledger) WriteCredDef(p, w int, submitterDID, credDef string) sdk.Channel {
	return blocking(func() (dto.Result, error) {
		return dto.Result{}, ledger.WriteCredDef(p, w, submitterDID, credDef)
	})
}

func (Ledger) WriteDID(p, w int, submitterDID, targetDID, verkey, alias, role string) sdk.Channel {
	return blocking(func() (dto.Result, error) {
		return dto.Result{}, ledger.WriteDID(p, w, submitterDID, targetDID, verkey, alias, role)
	})
}

type Anoncreds struct{}

func (Anoncreds) Supports(op string) bool { return supports(op) }

func orNull(s string) string {
	if s == "" {
		return findy.NullString
	}
	return s
}

func (Anoncreds) IssuerCreateSchema(issuerDID, name, version, attrs string) sdk.Channel {
	return anoncreds.IssuerCreateSchema(issuerDID, name, version, attrs)
}

func (Anoncreds) IssuerCreateAndStoreCredentialDef(w int, issuerDID, schema, tag, signatureType, config string) sdk.Channel {
	return anoncreds.IssuerCreateAndStoreCredentialDef(w, issuerDID, schema, tag,
		orNull(signatureType), orNull(config))
}

func (Anoncreds) IssuerCreateCredentialOffer(w int, credDefID string) sdk.Channel {
	return anoncreds.IssuerCreateCredentialOffer(w, credDefID)
}

func (Anoncreds) IssuerCreateCredential(w int, offer, request, values, revRegID string, blobReader int) sdk.Channel {
	if revRegID == "" {
		blobReader = findy.NullHandle
	}
	return anoncreds.IssuerCreateCredential(w, offer, request, values, orNull(revRegID), blobReader)
}

func (Anoncreds) ProverCreateMasterSecret(w int, masterSecretID string) sdk.Channel {
	return anoncreds.ProverCreateMasterSecret(w, masterSecretID)
}

func (Anoncreds) ProverCreateCredentialReq(w int, proverDID, offer, credDef, masterSecretID string) sdk.Channel {
	return anoncreds.ProverCreateCredentialReq(w, proverDID, offer, credDef, masterSecretID)
}

func (Anoncreds) ProverStoreCredential(w int, credID, reqMeta, cred, credDef, revRegDef string) sdk.Channel {
	return anoncreds.ProverStoreCredential(w, orNull(credID), reqMeta, cred, credDef, orNull(revRegDef))
}

func (Anoncreds) ProverDeleteCredential(int, string) sdk.Channel {
	return unsupported("proverDeleteCredential")
}

func (Anoncreds) ProverGetCredential(int, string) sdk.Channel {
	return unsupported("proverGetCredential")
}

func (Anoncreds) ProverGetCredentials(int, string) sdk.Channel {
	return unsupported("proverGetCredentials")
}

func (Anoncreds) ProverGetCredentialsForProofReq(int, string) sdk.Channel {
	return unsupported("proverGetCredentialsForProofReq")
}

func (Anoncreds) ProverSearchCredentialsForProofReq(w int, proofReq, extraQuery string) sdk.Channel {
	return anoncreds.ProverSearchCredentialsForProofReq(w, proofReq, orNull(extraQuery))
}

func (Anoncreds) ProverFetchCredentialsForProofReq(search int, referent string, count int) sdk.Channel {
	return anoncreds.ProverFetchCredentialsForProofReq(search, referent, count)
}

func (Anoncreds) ProverCloseCredentialsSearchForProofReq(search int) sdk.Channel {
	return anoncreds.ProverCloseCredentialsSearchForProofReq(search)
}

func (Anoncreds) ProverCreateProof(w int, proofReq, requestedCreds, masterSecret, schemas, credDefs, revStates string) sdk.Channel {
	return anoncreds.ProverCreateProof(w, proofReq, requestedCreds, masterSecret, schemas, credDefs, revStates)
}

func (Anoncreds) VerifierVerifyProof(proofReq, proof, schemas, credDefs, revRegDefs, revRegs string) sdk.Channel {
	return anoncreds.VerifierVerifyProof(proofReq, proof, schemas, credDefs, revRegDefs, revRegs)
}

func (Anoncreds) GenerateNonce() sdk.Channel {
	return unsupported("generateNonce")
}

func (Anoncreds) CreateRevocationState(int, string, string, int64, string) sdk.Channel {
	return unsupported("createRevocationState")
}

func (Anoncreds) OpenBlobStorageReader(string, string) sdk.Channel {
	return unsupported("openBlobStorageReader")
}
