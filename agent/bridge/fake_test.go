package bridge

import (
	"sync"
	"sync/atomic"

	"github.com/findy-network/findy-bridge/agent/sdk"
	"github.com/findy-network/findy-wrapper-go/dto"
)

func handleResult(h int) sdk.Channel {
	r := dto.Result{}
	r.SetHandle(h)
	return sdk.Result(r)
}

func strResult(s1, s2, s3 string) sdk.Channel {
	return sdk.Result(dto.Result{Data: dto.Data{Str1: s1, Str2: s2, Str3: s3}})
}

func errResult(code int, text string) sdk.Channel {
	return sdk.Result(dto.Result{Er: dto.Err{Code: code, Error: text}})
}

func success() sdk.Channel {
	return sdk.Result(dto.Result{})
}

// fakeWallets opens wallets in memory. Calls it doesn't implement panic thru
// the nil interface.
type fakeWallets struct {
	sdk.Wallets

	gate    chan struct{}
	failing int

	opens  atomic.Int32
	closes atomic.Int32

	mu       sync.Mutex
	next     int
	natives  map[int]string
	exported []int
}

func newFakeWallets() *fakeWallets {
	return &fakeWallets{next: 100, natives: make(map[int]string)}
}

func (f *fakeWallets) Open(config, _ string) sdk.Channel {
	f.opens.Add(1)
	if f.failing != 0 {
		return errResult(f.failing, "")
	}
	ch := make(sdk.Channel, 1)
	go func() {
		if f.gate != nil {
			<-f.gate
		}
		f.mu.Lock()
		f.next++
		n := f.next
		f.natives[n] = config
		f.mu.Unlock()

		r := dto.Result{}
		r.SetHandle(n)
		ch <- r
	}()
	return ch
}

func (f *fakeWallets) Close(w int) sdk.Channel {
	f.closes.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.natives[w]; !ok {
		return errResult(200, "")
	}
	delete(f.natives, w)
	return success()
}

func (f *fakeWallets) Export(w int, _ string) sdk.Channel {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exported = append(f.exported, w)
	return success()
}

func (f *fakeWallets) GenerateKey(string) sdk.Channel {
	return strResult("walletkey", "", "")
}

func (f *fakeWallets) open() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.natives)
}

type fakeAnoncreds struct {
	sdk.Anoncreds

	next    atomic.Int32
	closed  atomic.Int32
	fetched sync.Map
}

func (f *fakeAnoncreds) ProverSearchCredentialsForProofReq(int, string, string) sdk.Channel {
	return handleResult(int(f.next.Add(1)) + 500)
}

func (f *fakeAnoncreds) ProverFetchCredentialsForProofReq(search int, referent string, _ int) sdk.Channel {
	f.fetched.Store(search, referent)
	return strResult("[]", "", "")
}

func (f *fakeAnoncreds) ProverCloseCredentialsSearchForProofReq(int) sdk.Channel {
	f.closed.Add(1)
	return success()
}

func (f *fakeAnoncreds) IssuerCreateSchema(issuerDID, name, version, _ string) sdk.Channel {
	return strResult(issuerDID+":2:"+name+":"+version, `{"name":"`+name+`"}`, "")
}

func (f *fakeAnoncreds) IssuerCreateCredential(int, string, string, string, string, int) sdk.Channel {
	return strResult("cred", "1", "delta")
}

type fakeCrypto struct {
	sdk.Crypto

	mu  sync.Mutex
	msg []byte
}

func (f *fakeCrypto) AnonCrypt(_ string, msg []byte) sdk.Channel {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msg = msg
	return success()
}

type fakeDIDs struct {
	sdk.DIDs
}

func (fakeDIDs) CreateAndStore(int, string) sdk.Channel {
	return strResult("did", "verkey", "")
}

func (fakeDIDs) LocalKey(int, string) sdk.Channel {
	return strResult("verkey", "", "")
}

type fakeLedger struct {
	sdk.Ledger
}

func (fakeLedger) ParseGetRevocRegDeltaResponse(string) sdk.Channel {
	return strResult("id", "{}", "1600000000")
}

func (fakeLedger) ParseGetRevocRegResponse(string) sdk.Channel {
	return strResult("id", "{}", "not a number")
}

// partialRecords supports nothing.
type partialRecords struct {
	sdk.Records
}

func (partialRecords) Supports(string) bool { return false }

// fakeRecords keeps only the search cursors.
type fakeRecords struct {
	sdk.Records

	next   atomic.Int32
	closed atomic.Int32
}

func (f *fakeRecords) OpenSearch(int, string, string, string) sdk.Channel {
	return handleResult(int(f.next.Add(1)) + 300)
}

func (f *fakeRecords) FetchNext(int, int, int) sdk.Channel {
	return strResult(`{"records":[]}`, "", "")
}

func (f *fakeRecords) CloseSearch(int) sdk.Channel {
	f.closed.Add(1)
	return success()
}
