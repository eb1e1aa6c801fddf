package bridge

import (
	"github.com/findy-network/findy-bridge/agent/async"
	"github.com/findy-network/findy-bridge/agent/sdk"
	"github.com/findy-network/findy-bridge/agent/sdkerr"
	"github.com/findy-network/findy-bridge/agent/utils"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// IssuerCreateSchema returns the schema id with the schema JSON.
func (b *Bridge) IssuerCreateSchema(issuerDid, name, version, attrs string) *async.Promise {
	return b.call("issuerCreateSchema", b.sdk.Anoncreds, func() (any, error) {
		return parsed(b.future(b.sdk.Anoncreds.IssuerCreateSchema(issuerDid, name, version, attrs)))
	})
}

// IssuerCreateAndStoreCredentialDef returns the credential definition id
// with the credential definition JSON.
func (b *Bridge) IssuerCreateAndStoreCredentialDef(wh int, issuerDid, schemaJSON, tag, signatureType, configJSON string) *async.Promise {
	return b.call("issuerCreateAndStoreCredentialDef", b.sdk.Anoncreds, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return parsed(b.future(b.sdk.Anoncreds.IssuerCreateAndStoreCredentialDef(
			w, issuerDid, schemaJSON, tag, signatureType, configJSON)))
	})
}

func (b *Bridge) IssuerCreateCredentialOffer(wh int, credDefID string) *async.Promise {
	return b.call("issuerCreateCredentialOffer", b.sdk.Anoncreds, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return b.future(b.sdk.Anoncreds.IssuerCreateCredentialOffer(w, credDefID)).Str1()
	})
}

// IssuerCreateCredential issues the credential. The blob reader is the
// native handle given by OpenBlobStorageReader, and it's used only with a
// revocation registry.
func (b *Bridge) IssuerCreateCredential(wh int, credOffer, credReq, credValues, revRegID string, blobReader int) *async.Promise {
	return b.call("issuerCreateCredential", b.sdk.Anoncreds, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		cred, revocID, delta := try.To3(b.future(b.sdk.Anoncreds.IssuerCreateCredential(
			w, credOffer, credReq, credValues, revRegID, blobReader)).Strs())
		return IssuedCredential{
			Credential:    cred,
			RevocID:       revocID,
			RevocRegDelta: delta,
		}, nil
	})
}

func (b *Bridge) ProverCreateMasterSecret(wh int, masterSecretID string) *async.Promise {
	return b.call("proverCreateMasterSecret", b.sdk.Anoncreds, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return b.future(b.sdk.Anoncreds.ProverCreateMasterSecret(w, masterSecretID)).Str1()
	})
}

func (b *Bridge) ProverCreateCredentialReq(wh int, proverDid, credOfferJSON, credDefJSON, masterSecretID string) *async.Promise {
	return b.call("proverCreateCredentialReq", b.sdk.Anoncreds, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		req, meta, _ := try.To3(b.future(b.sdk.Anoncreds.ProverCreateCredentialReq(
			w, proverDid, credOfferJSON, credDefJSON, masterSecretID)).Strs())
		return CredentialRequest{Request: req, Metadata: meta}, nil
	})
}

// ProverStoreCredential stores the credential and returns its id.
func (b *Bridge) ProverStoreCredential(wh int, credID, credReqMetadataJSON, credJSON, credDefJSON, revRegDefJSON string) *async.Promise {
	return b.call("proverStoreCredential", b.sdk.Anoncreds, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return b.future(b.sdk.Anoncreds.ProverStoreCredential(
			w, credID, credReqMetadataJSON, credJSON, credDefJSON, revRegDefJSON)).Str1()
	})
}

func (b *Bridge) ProverDeleteCredential(wh int, credID string) *async.Promise {
	return b.call("proverDeleteCredential", b.sdk.Anoncreds, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return nothing(b.future(b.sdk.Anoncreds.ProverDeleteCredential(w, credID)).Err())
	})
}

func (b *Bridge) ProverGetCredential(wh int, credID string) *async.Promise {
	return b.call("proverGetCredential", b.sdk.Anoncreds, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return b.future(b.sdk.Anoncreds.ProverGetCredential(w, credID)).Str1()
	})
}

func (b *Bridge) ProverGetCredentials(wh int, filter string) *async.Promise {
	return b.call("proverGetCredentials", b.sdk.Anoncreds, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return b.future(b.sdk.Anoncreds.ProverGetCredentials(w, filter)).Str1()
	})
}

func (b *Bridge) ProverGetCredentialsForProofReq(wh int, proofRequest string) *async.Promise {
	return b.call("proverGetCredentialsForProofReq", b.sdk.Anoncreds, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return b.future(b.sdk.Anoncreds.ProverGetCredentialsForProofReq(w, proofRequest)).Str1()
	})
}

// ProverSearchCredentialsForProofReq opens a credential search cursor. The
// cursor handles are counted from zero and they aren't reused.
func (b *Bridge) ProverSearchCredentialsForProofReq(wh int, proofRequest, extraQuery string) *async.Promise {
	return b.call("proverSearchCredentialsForProofReq", b.sdk.Anoncreds, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		native := try.To1(b.future(b.sdk.Anoncreds.ProverSearchCredentialsForProofReq(
			w, proofRequest, extraQuery)).Int())
		h := b.credSearches.Insert(&search{native: native})
		glog.V(3).Infof("credential search (%d) opened", h)
		return h, nil
	})
}

func (b *Bridge) ProverFetchCredentialsForProofReq(sh int, itemReferent string, count int) *async.Promise {
	return b.call("proverFetchCredentialsForProofReq", b.sdk.Anoncreds, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		if count <= 0 {
			return nil, sdkerr.Bridgef(sdkerr.InvalidArgument, "illegal count %d", count)
		}
		s, release := try.To2(b.borrowCredSearch(sh))
		defer release()
		return b.future(b.sdk.Anoncreds.ProverFetchCredentialsForProofReq(s, itemReferent, count)).Str1()
	})
}

func (b *Bridge) ProverCloseCredentialsSearchForProofReq(sh int) *async.Promise {
	return b.call("proverCloseCredentialsSearchForProofReq", b.sdk.Anoncreds, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		s, e := b.credSearches.Remove(sh)
		if e != nil {
			return nil, notFound(e)
		}
		try.To(b.future(b.sdk.Anoncreds.ProverCloseCredentialsSearchForProofReq(s.native)).Err())
		glog.V(3).Infof("credential search (%d) closed", sh)
		return nil, nil
	})
}

func (b *Bridge) ProverCreateProof(wh int, proofReqJSON, requestedCredentialsJSON, masterSecretID, schemasJSON, credentialDefsJSON, revocStatesJSON string) *async.Promise {
	return b.call("proverCreateProof", b.sdk.Anoncreds, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return b.future(b.sdk.Anoncreds.ProverCreateProof(w, proofReqJSON,
			requestedCredentialsJSON, masterSecretID, schemasJSON,
			credentialDefsJSON, revocStatesJSON)).Str1()
	})
}

func (b *Bridge) VerifierVerifyProof(proofRequestJSON, proofJSON, schemasJSON, credentialDefsJSON, revocRegDefsJSON, revocRegsJSON string) *async.Promise {
	return b.call("verifierVerifyProof", b.sdk.Anoncreds, func() (any, error) {
		return b.future(b.sdk.Anoncreds.VerifierVerifyProof(proofRequestJSON,
			proofJSON, schemasJSON, credentialDefsJSON, revocRegDefsJSON,
			revocRegsJSON)).Yes()
	})
}

// GenerateNonce returns a decimal 80 bit nonce. If the SDK cannot give one
// the nonce is generated here.
func (b *Bridge) GenerateNonce() *async.Promise {
	const name = "generateNonce"
	return b.disp.Invoke(declared(name), func() (any, error) {
		if !sdk.Supports(b.sdk.Anoncreds, name) {
			return utils.NewNonceStr(), nil
		}
		return b.future(b.sdk.Anoncreds.GenerateNonce()).Str1()
	})
}

func (b *Bridge) CreateRevocationState(blobReader int, revRegDef, revRegDelta string, timestamp int64, credRevID string) *async.Promise {
	return b.call("createRevocationState", b.sdk.Anoncreds, func() (any, error) {
		return b.future(b.sdk.Anoncreds.CreateRevocationState(
			blobReader, revRegDef, revRegDelta, timestamp, credRevID)).Str1()
	})
}

// OpenBlobStorageReader returns the native handle of the tails reader. The
// reader lives as long as the SDK process.
func (b *Bridge) OpenBlobStorageReader(kind, tailsConfig string) *async.Promise {
	return b.call("openBlobStorageReader", b.sdk.Anoncreds, func() (any, error) {
		return b.future(b.sdk.Anoncreds.OpenBlobStorageReader(kind, tailsConfig)).Int()
	})
}
