package sdkerr

import "strconv"

// Libindy error codes used by the bridge itself. The full table is in names.
const (
	Success                  = 0
	CommonInvalidStructure   = 113
	WalletInvalidHandle      = 200
	WalletAlreadyExistsError = 203
	WalletNotFoundError      = 204
	WalletAlreadyOpenedError = 206
	WalletItemNotFound       = 212
	PoolLedgerInvalidHandle  = 301
	PoolLedgerTimeout        = 307
)

var names = map[int]string{
	0: "Success",

	100: "CommonInvalidParam1",
	101: "CommonInvalidParam2",
	102: "CommonInvalidParam3",
	103: "CommonInvalidParam4",
	104: "CommonInvalidParam5",
	105: "CommonInvalidParam6",
	106: "CommonInvalidParam7",
	107: "CommonInvalidParam8",
	108: "CommonInvalidParam9",
	109: "CommonInvalidParam10",
	110: "CommonInvalidParam11",
	111: "CommonInvalidParam12",
	112: "CommonInvalidState",
	113: "CommonInvalidStructure",
	114: "CommonIOError",
	115: "CommonInvalidParam13",
	116: "CommonInvalidParam14",
	117: "CommonInvalidParam15",
	118: "CommonInvalidParam16",
	119: "CommonInvalidParam17",
	120: "CommonInvalidParam18",
	121: "CommonInvalidParam19",
	122: "CommonInvalidParam20",
	123: "CommonInvalidParam21",
	124: "CommonInvalidParam22",
	125: "CommonInvalidParam23",
	126: "CommonInvalidParam24",
	127: "CommonInvalidParam25",
	128: "CommonInvalidParam26",
	129: "CommonInvalidParam27",

	200: "WalletInvalidHandle",
	201: "WalletUnknownTypeError",
	202: "WalletTypeAlreadyRegisteredError",
	203: "WalletAlreadyExistsError",
	204: "WalletNotFoundError",
	205: "WalletIncompatiblePoolError",
	206: "WalletAlreadyOpenedError",
	207: "WalletAccessFailed",
	208: "WalletInputError",
	209: "WalletDecodingError",
	210: "WalletStorageError",
	211: "WalletEncryptionError",
	212: "WalletItemNotFound",
	213: "WalletItemAlreadyExists",
	214: "WalletQueryError",

	300: "PoolLedgerNotCreatedError",
	301: "PoolLedgerInvalidPoolHandle",
	302: "PoolLedgerTerminated",
	303: "LedgerNoConsensusError",
	304: "LedgerInvalidTransaction",
	305: "LedgerSecurityError",
	306: "PoolLedgerConfigAlreadyExistsError",
	307: "PoolLedgerTimeout",
	308: "PoolIncompatibleProtocolVersion",
	309: "LedgerNotFound",

	400: "AnoncredsRevocationRegistryFullError",
	401: "AnoncredsInvalidUserRevocId",
	404: "AnoncredsMasterSecretDuplicateNameError",
	405: "AnoncredsProofRejected",
	406: "AnoncredsCredentialRevoked",
	407: "AnoncredsCredDefAlreadyExistsError",

	500: "UnknownCryptoTypeError",

	600: "DidAlreadyExistsError",

	700: "PaymentUnknownMethodError",
	701: "PaymentIncompatibleMethodsError",
	702: "PaymentInsufficientFundsError",
	703: "PaymentSourceDoesNotExistError",
	704: "PaymentOperationNotSupportedError",
	705: "PaymentExtraFundsError",
	706: "TransactionNotAllowedError",
}

// Name returns the symbolic libindy name of the code. Codes outside the
// table get a generic name which still carries the number.
func Name(code int) string {
	if n, ok := names[code]; ok {
		return n
	}
	return "UnknownIndyError" + strconv.Itoa(code)
}

// Known tells if the code is in the libindy code table.
func Known(code int) bool {
	_, ok := names[code]
	return ok
}
