package bridge

import (
	"strings"

	"github.com/findy-network/findy-bridge/agent/async"
	"github.com/findy-network/findy-bridge/agent/sdkerr"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/mr-tron/base58"
)

const (
	verkeyLen     = 32
	abbrVerkeyLen = 16
)

// AuthDecrypted is the outcome of the authenticated decryption.
type AuthDecrypted struct {
	TheirVerkey string `json:"theirVerkey"`
	Message     []byte `json:"message"`
}

// checkVerkey returns an InvalidArgument error if vk isn't a base58 encoded
// full or abbreviated verkey.
func checkVerkey(what, vk string) error {
	raw, err := base58.Decode(strings.TrimPrefix(vk, "~"))
	if err != nil {
		return sdkerr.Bridgef(sdkerr.InvalidArgument, "%s %q: %v", what, vk, err)
	}
	if l := len(raw); l != verkeyLen && l != abbrVerkeyLen {
		return sdkerr.Bridgef(sdkerr.InvalidArgument,
			"%s %q: illegal length %d", what, vk, l)
	}
	return nil
}

func (b *Bridge) CreateKey(wh int, keyJSON string) *async.Promise {
	return b.call("createKey", b.sdk.Crypto, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return b.future(b.sdk.Crypto.CreateKey(w, keyJSON)).Str1()
	})
}

func (b *Bridge) CryptoAnonCrypt(theirKey string, message []byte) *async.Promise {
	return b.call("cryptoAnonCrypt", b.sdk.Crypto, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		try.To(checkVerkey("recipient verkey", theirKey))
		return b.future(b.sdk.Crypto.AnonCrypt(theirKey, message)).Bytes()
	})
}

func (b *Bridge) CryptoAnonDecrypt(wh int, recipientVk string, encrypted []byte) *async.Promise {
	return b.call("cryptoAnonDecrypt", b.sdk.Crypto, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		try.To(checkVerkey("recipient verkey", recipientVk))
		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return b.future(b.sdk.Crypto.AnonDecrypt(w, recipientVk, encrypted)).Bytes()
	})
}

func (b *Bridge) CryptoAuthCrypt(wh int, senderVk, recipientVk string, message []byte) *async.Promise {
	return b.call("cryptoAuthCrypt", b.sdk.Crypto, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		try.To(checkVerkey("sender verkey", senderVk))
		try.To(checkVerkey("recipient verkey", recipientVk))
		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return b.future(b.sdk.Crypto.AuthCrypt(w, senderVk, recipientVk, message)).Bytes()
	})
}

// CryptoAuthDecrypt returns the sender's verkey with the decrypted message.
func (b *Bridge) CryptoAuthDecrypt(wh int, recipientVk string, encrypted []byte) *async.Promise {
	return b.call("cryptoAuthDecrypt", b.sdk.Crypto, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		try.To(checkVerkey("recipient verkey", recipientVk))
		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		r := try.To1(b.future(b.sdk.Crypto.AuthDecrypt(w, recipientVk, encrypted)).Result())
		return AuthDecrypted{TheirVerkey: r.Str1(), Message: r.Bytes()}, nil
	})
}

func (b *Bridge) CryptoSign(wh int, signerVk string, message []byte) *async.Promise {
	return b.call("cryptoSign", b.sdk.Crypto, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		try.To(checkVerkey("signer verkey", signerVk))
		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return b.future(b.sdk.Crypto.Sign(w, signerVk, message)).Bytes()
	})
}

func (b *Bridge) CryptoVerify(signerVk string, message, signature []byte) *async.Promise {
	return b.call("cryptoVerify", b.sdk.Crypto, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		try.To(checkVerkey("signer verkey", signerVk))
		return b.future(b.sdk.Crypto.Verify(signerVk, message, signature)).Yes()
	})
}

// PackMessage packs the message to the receivers. An empty senderVk packs
// it anonymously.
func (b *Bridge) PackMessage(wh int, message []byte, receiverKeys []string, senderVk string) *async.Promise {
	return b.call("packMessage", b.sdk.Crypto, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		if len(receiverKeys) == 0 {
			return nil, sdkerr.Bridgef(sdkerr.InvalidArgument, "no receiver keys")
		}
		for _, rk := range receiverKeys {
			try.To(checkVerkey("receiver verkey", rk))
		}
		if senderVk != "" {
			try.To(checkVerkey("sender verkey", senderVk))
		}
		w, release := try.To2(b.borrowWallet(wh))
		defer release()

		if glog.V(5) {
			glog.Infof("pack %d bytes to %d receivers", len(message), len(receiverKeys))
		}
		return b.future(b.sdk.Crypto.Pack(w, senderVk, message, receiverKeys...)).Bytes()
	})
}

func (b *Bridge) UnpackMessage(wh int, jwe []byte) *async.Promise {
	return b.call("unpackMessage", b.sdk.Crypto, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return b.future(b.sdk.Crypto.Unpack(w, jwe)).Bytes()
	})
}
