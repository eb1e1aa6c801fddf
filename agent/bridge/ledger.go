package bridge

import (
	"github.com/findy-network/findy-bridge/agent/async"
	"github.com/findy-network/findy-bridge/agent/sdkerr"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// SubmitRequest sends the request to the pool and returns the response.
func (b *Bridge) SubmitRequest(ph int, requestJSON string) *async.Promise {
	return b.call("submitRequest", b.sdk.Ledger, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		p, release := try.To2(b.borrowPool(ph))
		defer release()
		return b.future(b.sdk.Ledger.SubmitRequest(p, requestJSON)).Str1()
	})
}

func (b *Bridge) SignRequest(wh int, submitterDid, requestJSON string) *async.Promise {
	return b.call("signRequest", b.sdk.Ledger, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return b.future(b.sdk.Ledger.SignRequest(w, submitterDid, requestJSON)).Str1()
	})
}

func (b *Bridge) SignAndSubmitRequest(ph, wh int, submitterDid, requestJSON string) *async.Promise {
	return b.call("signAndSubmitRequest", b.sdk.Ledger, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		p, releasePool := try.To2(b.borrowPool(ph))
		defer releasePool()
		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return b.future(b.sdk.Ledger.SignAndSubmitRequest(p, w, submitterDid, requestJSON)).Str1()
	})
}

func (b *Bridge) BuildGetTxnRequest(submitterDid, ledgerType string, seqNo int) *async.Promise {
	return b.call("buildGetTxnRequest", b.sdk.Ledger, func() (any, error) {
		return b.future(b.sdk.Ledger.BuildGetTxnRequest(submitterDid, ledgerType, seqNo)).Str1()
	})
}

func (b *Bridge) BuildNymRequest(submitterDid, targetDid, verkey, alias, role string) *async.Promise {
	return b.call("buildNymRequest", b.sdk.Ledger, func() (any, error) {
		return b.future(b.sdk.Ledger.BuildNymRequest(submitterDid, targetDid, verkey, alias, role)).Str1()
	})
}

func (b *Bridge) BuildGetNymRequest(submitterDid, targetDid string) *async.Promise {
	return b.call("buildGetNymRequest", b.sdk.Ledger, func() (any, error) {
		return b.future(b.sdk.Ledger.BuildGetNymRequest(submitterDid, targetDid)).Str1()
	})
}

func (b *Bridge) ParseGetNymResponse(response string) *async.Promise {
	return b.call("parseGetNymResponse", b.sdk.Ledger, func() (any, error) {
		return b.future(b.sdk.Ledger.ParseGetNymResponse(response)).Str1()
	})
}

func (b *Bridge) BuildGetAttribRequest(submitterDid, targetDid, raw, hash, enc string) *async.Promise {
	return b.call("buildGetAttribRequest", b.sdk.Ledger, func() (any, error) {
		return b.future(b.sdk.Ledger.BuildGetAttribRequest(submitterDid, targetDid, raw, hash, enc)).Str1()
	})
}

func (b *Bridge) BuildSchemaRequest(submitterDid, data string) *async.Promise {
	return b.call("buildSchemaRequest", b.sdk.Ledger, func() (any, error) {
		return b.future(b.sdk.Ledger.BuildSchemaRequest(submitterDid, data)).Str1()
	})
}

func (b *Bridge) BuildGetSchemaRequest(submitterDid, id string) *async.Promise {
	return b.call("buildGetSchemaRequest", b.sdk.Ledger, func() (any, error) {
		return b.future(b.sdk.Ledger.BuildGetSchemaRequest(submitterDid, id)).Str1()
	})
}

func (b *Bridge) ParseGetSchemaResponse(response string) *async.Promise {
	return b.call("parseGetSchemaResponse", b.sdk.Ledger, func() (any, error) {
		return parsed(b.future(b.sdk.Ledger.ParseGetSchemaResponse(response)))
	})
}

func (b *Bridge) BuildCredDefRequest(submitterDid, data string) *async.Promise {
	return b.call("buildCredDefRequest", b.sdk.Ledger, func() (any, error) {
		return b.future(b.sdk.Ledger.BuildCredDefRequest(submitterDid, data)).Str1()
	})
}

func (b *Bridge) BuildGetCredDefRequest(submitterDid, id string) *async.Promise {
	return b.call("buildGetCredDefRequest", b.sdk.Ledger, func() (any, error) {
		return b.future(b.sdk.Ledger.BuildGetCredDefRequest(submitterDid, id)).Str1()
	})
}

func (b *Bridge) ParseGetCredDefResponse(response string) *async.Promise {
	return b.call("parseGetCredDefResponse", b.sdk.Ledger, func() (any, error) {
		return parsed(b.future(b.sdk.Ledger.ParseGetCredDefResponse(response)))
	})
}

func (b *Bridge) BuildGetRevocRegDefRequest(submitterDid, revocRegDefID string) *async.Promise {
	return b.call("buildGetRevocRegDefRequest", b.sdk.Ledger, func() (any, error) {
		return b.future(b.sdk.Ledger.BuildGetRevocRegDefRequest(submitterDid, revocRegDefID)).Str1()
	})
}

func (b *Bridge) ParseGetRevocRegDefResponse(response string) *async.Promise {
	return b.call("parseGetRevocRegDefResponse", b.sdk.Ledger, func() (any, error) {
		return parsed(b.future(b.sdk.Ledger.ParseGetRevocRegDefResponse(response)))
	})
}

func (b *Bridge) BuildGetRevocRegRequest(submitterDid, revocRegDefID string, timestamp int64) *async.Promise {
	return b.call("buildGetRevocRegRequest", b.sdk.Ledger, func() (any, error) {
		return b.future(b.sdk.Ledger.BuildGetRevocRegRequest(submitterDid, revocRegDefID, timestamp)).Str1()
	})
}

func (b *Bridge) ParseGetRevocRegResponse(response string) *async.Promise {
	return b.call("parseGetRevocRegResponse", b.sdk.Ledger, func() (any, error) {
		return parsedDelta(b.future(b.sdk.Ledger.ParseGetRevocRegResponse(response)))
	})
}

// BuildGetRevocRegDeltaRequest builds the delta request of the interval. A
// negative from means the delta from the registry creation.
func (b *Bridge) BuildGetRevocRegDeltaRequest(submitterDid, revocRegDefID string, from, to int64) *async.Promise {
	return b.call("buildGetRevocRegDeltaRequest", b.sdk.Ledger, func() (any, error) {
		if from >= 0 && to < from {
			return nil, sdkerr.Bridgef(sdkerr.InvalidArgument,
				"illegal interval [%d, %d]", from, to)
		}
		return b.future(b.sdk.Ledger.BuildGetRevocRegDeltaRequest(submitterDid, revocRegDefID, from, to)).Str1()
	})
}

func (b *Bridge) ParseGetRevocRegDeltaResponse(response string) *async.Promise {
	return b.call("parseGetRevocRegDeltaResponse", b.sdk.Ledger, func() (any, error) {
		return parsedDelta(b.future(b.sdk.Ledger.ParseGetRevocRegDeltaResponse(response)))
	})
}

func (b *Bridge) BuildGetTxnAuthorAgreementRequest(submitterDid, data string) *async.Promise {
	return b.call("buildGetTxnAuthorAgreementRequest", b.sdk.Ledger, func() (any, error) {
		return b.future(b.sdk.Ledger.BuildGetTxnAuthorAgreementRequest(submitterDid, data)).Str1()
	})
}

func (b *Bridge) AppendTxnAuthorAgreementAcceptanceToRequest(requestJSON, text, version, taaDigest, mechanism string, time uint64) *async.Promise {
	return b.call("appendTxnAuthorAgreementAcceptanceToRequest", b.sdk.Ledger, func() (any, error) {
		return b.future(b.sdk.Ledger.AppendTxnAuthorAgreementAcceptanceToRequest(
			requestJSON, text, version, taaDigest, mechanism, time)).Str1()
	})
}

// ReadSchema reads the schema from the ledger. The result is the schema id
// with the schema JSON.
func (b *Bridge) ReadSchema(ph int, submitterDid, id string) *async.Promise {
	return b.call("readSchema", b.sdk.Ledger, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		p, release := try.To2(b.borrowPool(ph))
		defer release()
		return parsed(b.future(b.sdk.Ledger.ReadSchema(p, submitterDid, id)))
	})
}

func (b *Bridge) WriteSchema(ph, wh int, submitterDid, schemaJSON string) *async.Promise {
	return b.call("writeSchema", b.sdk.Ledger, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		p, releasePool := try.To2(b.borrowPool(ph))
		defer releasePool()
		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return nothing(b.future(b.sdk.Ledger.WriteSchema(p, w, submitterDid, schemaJSON)).Err())
	})
}

func (b *Bridge) ReadCredDef(ph int, submitterDid, id string) *async.Promise {
	return b.call("readCredDef", b.sdk.Ledger, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		p, release := try.To2(b.borrowPool(ph))
		defer release()
		return parsed(b.future(b.sdk.Ledger.ReadCredDef(p, submitterDid, id)))
	})
}

func (b *Bridge) WriteCredDef(ph, wh int, submitterDid, credDefJSON string) *async.Promise {
	return b.call("writeCredDef", b.sdk.Ledger, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		p, releasePool := try.To2(b.borrowPool(ph))
		defer releasePool()
		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return nothing(b.future(b.sdk.Ledger.WriteCredDef(p, w, submitterDid, credDefJSON)).Err())
	})
}

// WriteDid writes the NYM of the target DID signed by the submitter.
func (b *Bridge) WriteDid(ph, wh int, submitterDid, targetDid, verkey, alias, role string) *async.Promise {
	return b.call("writeDid", b.sdk.Ledger, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		if verkey != "" {
			try.To(checkVerkey("target verkey", verkey))
		}
		p, releasePool := try.To2(b.borrowPool(ph))
		defer releasePool()
		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return nothing(b.future(b.sdk.Ledger.WriteDID(p, w, submitterDid, targetDid, verkey, alias, role)).Err())
	})
}
