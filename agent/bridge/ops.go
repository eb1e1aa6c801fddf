package bridge

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/findy-network/findy-bridge/agent/async"
	"github.com/findy-network/findy-bridge/agent/sdkerr"
	"github.com/golang/glog"
)

// operations declares every bridge operation and where it runs. The pool
// connections and the ledger round trips run on workers.
var operations = map[string]async.Policy{
	"createWallet":      async.Inline,
	"openWallet":        async.Inline,
	"closeWallet":       async.Inline,
	"deleteWallet":      async.Inline,
	"exportWallet":      async.Inline,
	"importWallet":      async.Inline,
	"generateWalletKey": async.Inline,

	"createAndStoreMyDid": async.Inline,
	"keyForDid":           async.Inline,
	"keyForLocalDid":      async.Inline,
	"storeTheirDid":       async.Inline,
	"setDidMetadata":      async.Inline,
	"getDidMetadata":      async.Inline,
	"listMyDidsWithMeta":  async.Inline,

	"createPairwise":      async.Inline,
	"getPairwise":         async.Inline,
	"listPairwise":        async.Inline,
	"setPairwiseMetadata": async.Inline,

	"createKey":         async.Inline,
	"cryptoAnonCrypt":   async.Inline,
	"cryptoAnonDecrypt": async.Inline,
	"cryptoAuthCrypt":   async.Inline,
	"cryptoAuthDecrypt": async.Inline,
	"cryptoSign":        async.Inline,
	"cryptoVerify":      async.Inline,
	"packMessage":       async.Inline,
	"unpackMessage":     async.Inline,

	"setProtocolVersion":     async.Inline,
	"createPoolLedgerConfig": async.Inline,
	"openPoolLedger":         async.Worker,
	"closePoolLedger":        async.Worker,

	"submitRequest":                               async.Worker,
	"signRequest":                                 async.Inline,
	"signAndSubmitRequest":                        async.Worker,
	"buildGetTxnRequest":                          async.Inline,
	"buildNymRequest":                             async.Inline,
	"buildGetNymRequest":                          async.Inline,
	"parseGetNymResponse":                         async.Inline,
	"buildGetAttribRequest":                       async.Inline,
	"buildSchemaRequest":                          async.Inline,
	"buildGetSchemaRequest":                       async.Inline,
	"parseGetSchemaResponse":                      async.Inline,
	"buildCredDefRequest":                         async.Inline,
	"buildGetCredDefRequest":                      async.Inline,
	"parseGetCredDefResponse":                     async.Inline,
	"buildGetRevocRegDefRequest":                  async.Inline,
	"parseGetRevocRegDefResponse":                 async.Inline,
	"buildGetRevocRegRequest":                     async.Inline,
	"parseGetRevocRegResponse":                    async.Inline,
	"buildGetRevocRegDeltaRequest":                async.Inline,
	"parseGetRevocRegDeltaResponse":               async.Inline,
	"buildGetTxnAuthorAgreementRequest":           async.Inline,
	"appendTxnAuthorAgreementAcceptanceToRequest": async.Inline,
	"readSchema":                                  async.Worker,
	"writeSchema":                                 async.Worker,
	"readCredDef":                                 async.Worker,
	"writeCredDef":                                async.Worker,
	"writeDid":                                    async.Worker,

	"issuerCreateSchema":                      async.Inline,
	"issuerCreateAndStoreCredentialDef":       async.Inline,
	"issuerCreateCredentialOffer":             async.Inline,
	"issuerCreateCredential":                  async.Inline,
	"proverCreateMasterSecret":                async.Inline,
	"proverCreateCredentialReq":               async.Inline,
	"proverStoreCredential":                   async.Inline,
	"proverDeleteCredential":                  async.Inline,
	"proverGetCredential":                     async.Inline,
	"proverGetCredentials":                    async.Inline,
	"proverGetCredentialsForProofReq":         async.Inline,
	"proverSearchCredentialsForProofReq":      async.Inline,
	"proverFetchCredentialsForProofReq":       async.Inline,
	"proverCloseCredentialsSearchForProofReq": async.Inline,
	"proverCreateProof":                       async.Inline,
	"verifierVerifyProof":                     async.Inline,
	"generateNonce":                           async.Inline,
	"createRevocationState":                   async.Inline,
	"openBlobStorageReader":                   async.Inline,

	"addWalletRecord":              async.Inline,
	"updateWalletRecordValue":      async.Inline,
	"updateWalletRecordTags":       async.Inline,
	"addWalletRecordTags":          async.Inline,
	"deleteWalletRecordTags":       async.Inline,
	"deleteWalletRecord":           async.Inline,
	"getWalletRecord":              async.Inline,
	"openWalletSearch":             async.Inline,
	"fetchWalletSearchNextRecords": async.Inline,
	"closeWalletSearch":            async.Inline,
}

func declared(name string) async.Op {
	policy, ok := operations[name]
	if !ok {
		glog.Warningf("operation %s not declared, running inline", name)
	}
	return async.Op{Name: name, Policy: policy}
}

// OpInfo describes one operation for the listings.
type OpInfo struct {
	Name   string   `json:"name"`
	Policy string   `json:"policy"`
	Params []string `json:"params"`
}

// Operations lists the operations sorted by name.
func Operations() []OpInfo {
	bt := reflect.TypeOf(&Bridge{})
	ops := make([]OpInfo, 0, len(operations))
	for name, policy := range operations {
		info := OpInfo{Name: name, Policy: policy.String()}
		if m, ok := bt.MethodByName(methodName(name)); ok {
			// the receiver is the first input
			for i := 1; i < m.Type.NumIn(); i++ {
				info.Params = append(info.Params, m.Type.In(i).String())
			}
		}
		ops = append(ops, info)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	return ops
}

func methodName(op string) string {
	r, size := utf8.DecodeRuneInString(op)
	return string(unicode.ToUpper(r)) + op[size:]
}

var promiseType = reflect.TypeOf((*async.Promise)(nil))

// Call runs the operation by its name. The args are the positional JSON
// encoded arguments of the operation. Byte arguments are JSON arrays of
// numbers or base64 strings. A JSON object or array given for a string
// argument is passed as its JSON text.
func (b *Bridge) Call(name string, args []json.RawMessage) *async.Promise {
	if _, ok := operations[name]; !ok {
		return async.Rejected(name, sdkerr.Bridgef(sdkerr.UnknownOperation,
			"unknown operation %q", name))
	}
	m := reflect.ValueOf(b).MethodByName(methodName(name))
	if !m.IsValid() || m.Type().NumOut() != 1 || m.Type().Out(0) != promiseType {
		return async.Rejected(name, sdkerr.Bridgef(sdkerr.UnknownOperation,
			"operation %q has no method", name))
	}

	mt := m.Type()
	if len(args) != mt.NumIn() {
		return async.Rejected(name, sdkerr.Bridgef(sdkerr.InvalidArgument,
			"%s takes %d arguments, got %d", name, mt.NumIn(), len(args)))
	}
	in := make([]reflect.Value, mt.NumIn())
	for i := range in {
		if mt.In(i).Kind() == reflect.String && composite(args[i]) {
			in[i] = reflect.ValueOf(string(args[i])).Convert(mt.In(i))
			continue
		}
		v := reflect.New(mt.In(i))
		if err := json.Unmarshal(args[i], v.Interface()); err != nil {
			return async.Rejected(name, sdkerr.Bridgef(sdkerr.InvalidArgument,
				"%s argument %d: %v", name, i+1, err))
		}
		in[i] = v.Elem()
	}
	return m.Call(in)[0].Interface().(*async.Promise)
}

func composite(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && (raw[0] == '{' || raw[0] == '[')
}
