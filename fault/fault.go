// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type BalanceError GenericError
type ExecutionError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type NotReadyError GenericError
type ProcessError GenericError
type StateError GenericError
type UnauthorisedError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised     = ExistsError("already initialised")
	ErrAmountBelowFee         = InvalidError("amount does not exceed fee")
	ErrAmountOverflow         = InvalidError("amount overflow")
	ErrAssetKindMismatch      = InvalidError("asset kind mismatch")
	ErrCertificateFileExists  = ExistsError("certificate file already exists")
	ErrConfigurationNotTable  = InvalidError("configuration must return a table")
	ErrDatabaseVersion        = ProcessError("incompatible database version")
	ErrExternalDataMissing    = NotReadyError("external data is required")
	ErrFingerprintMismatch    = InvalidError("certificate fingerprint mismatch")
	ErrInsufficientBalance    = BalanceError("insufficient balance")
	ErrInsufficientFees       = BalanceError("insufficient accumulated fees")
	ErrInvalidAccount         = InvalidError("invalid account")
	ErrInvalidAssetKind       = InvalidError("invalid asset kind")
	ErrInvalidChain           = InvalidError("invalid chain")
	ErrInvalidConnection      = InvalidError("invalid connection address")
	ErrInvalidCount           = InvalidError("invalid count")
	ErrInvalidCriteria        = InvalidError("invalid measurement criteria")
	ErrInvalidFeeRate         = InvalidError("invalid fee rate")
	ErrInvalidFingerprint     = InvalidError("invalid certificate fingerprint")
	ErrInvalidIpAddress       = InvalidError("invalid IP address")
	ErrInvalidLoggerChannel   = InvalidError("invalid logger channel")
	ErrInvalidOutcome         = InvalidError("invalid outcome")
	ErrInvalidOutcomeKind     = InvalidError("invalid outcome kind")
	ErrInvalidPrivateKey      = InvalidError("invalid private key")
	ErrInvalidPrivateKeyFile  = InvalidError("invalid private key file")
	ErrInvalidPublicKey       = InvalidError("invalid public key")
	ErrInvalidPublicKeyFile   = InvalidError("invalid public key file")
	ErrInvalidStructPointer   = InvalidError("invalid struct pointer")
	ErrInvocationFailed       = ExecutionError("external invocation failed")
	ErrKeyFileAlreadyExists   = ExistsError("key file already exists")
	ErrLinkedVaultNotFound    = NotFoundError("linked vault not found")
	ErrLinkedVaultOpen        = NotReadyError("linked vault is still open")
	ErrMissingParameters      = InvalidError("missing parameters")
	ErrNoOutcomes             = InvalidError("outcome list is empty")
	ErrNotConnected           = ProcessError("not connected")
	ErrNotCreator             = UnauthorisedError("caller is not the vault creator")
	ErrNotFeeRecipient        = UnauthorisedError("caller is not the fee recipient")
	ErrNotInitialised         = NotFoundError("not initialised")
	ErrOperatorNotPermitted   = UnauthorisedError("operator command is not permitted on this chain")
	ErrOracleDataMissing      = NotReadyError("oracle data is required")
	ErrOracleNotAuthorised    = NotReadyError("oracle identity is not authorised")
	ErrOutcomeNotFound        = NotFoundError("outcome not found")
	ErrRateLimiting           = ProcessError("rate limiting")
	ErrRecordCorrupt          = ProcessError("record is corrupt")
	ErrReservedAccount        = InvalidError("reserved system account")
	ErrShuttingDown           = ProcessError("engine is shutting down")
	ErrSnapshotCorrupt        = ProcessError("snapshot is corrupt")
	ErrSnapshotVersion        = ProcessError("incompatible snapshot version")
	ErrTargetNotCreator       = InvalidError("return target must be the creator")
	ErrTargetRequired         = InvalidError("outcome target is required")
	ErrTooManyOutcomes        = InvalidError("too many outcomes")
	ErrTransferFailed         = ExecutionError("asset transfer failed")
	ErrUnknownAccountEncoding = InvalidError("cannot decode account")
	ErrValueExceedsHeld       = InvalidError("attached value exceeds held amount")
	ErrVaultNotFound          = NotFoundError("vault not found")
	ErrVaultNotOpen           = StateError("vault is not open")
	ErrVaultNotResolved       = StateError("vault is not resolved")
	ErrZeroAmount             = InvalidError("amount must be greater than zero")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e BalanceError) Error() string      { return string(e) }
func (e ExecutionError) Error() string    { return string(e) }
func (e ExistsError) Error() string       { return string(e) }
func (e InvalidError) Error() string      { return string(e) }
func (e NotFoundError) Error() string     { return string(e) }
func (e NotReadyError) Error() string     { return string(e) }
func (e ProcessError) Error() string      { return string(e) }
func (e StateError) Error() string        { return string(e) }
func (e UnauthorisedError) Error() string { return string(e) }

// determine the class of an error
func IsErrBalance(e error) bool      { _, ok := e.(BalanceError); return ok }
func IsErrExecution(e error) bool    { _, ok := e.(ExecutionError); return ok }
func IsErrExists(e error) bool       { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool      { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool     { _, ok := e.(NotFoundError); return ok }
func IsErrNotReady(e error) bool     { _, ok := e.(NotReadyError); return ok }
func IsErrProcess(e error) bool      { _, ok := e.(ProcessError); return ok }
func IsErrState(e error) bool        { _, ok := e.(StateError); return ok }
func IsErrUnauthorised(e error) bool { _, ok := e.(UnauthorisedError); return ok }

// IsRetryable - a failed call may succeed later without changing its
// arguments, only unauthorised and not found are terminal for the call
func IsRetryable(e error) bool {
	if nil == e {
		return false
	}
	return !IsErrUnauthorised(e) && !IsErrNotFound(e)
}

// all errors that can be sent across the RPC boundary as plain text
var registry = map[string]error{}

func init() {
	for _, e := range []error{
		ErrAmountBelowFee, ErrAmountOverflow, ErrAssetKindMismatch,
		ErrExternalDataMissing, ErrInsufficientBalance, ErrInsufficientFees,
		ErrInvalidAccount, ErrInvalidAssetKind, ErrInvalidCount,
		ErrInvalidCriteria, ErrInvalidOutcome, ErrInvalidOutcomeKind,
		ErrInvocationFailed, ErrLinkedVaultNotFound,
		ErrLinkedVaultOpen, ErrMissingParameters, ErrNoOutcomes, ErrNotCreator,
		ErrNotFeeRecipient, ErrOperatorNotPermitted, ErrOracleDataMissing, ErrOracleNotAuthorised,
		ErrOutcomeNotFound,
		ErrRateLimiting, ErrReservedAccount, ErrShuttingDown, ErrTargetNotCreator,
		ErrTargetRequired, ErrTooManyOutcomes, ErrTransferFailed,
		ErrUnknownAccountEncoding, ErrValueExceedsHeld, ErrVaultNotFound,
		ErrVaultNotOpen, ErrVaultNotResolved, ErrZeroAmount,
	} {
		registry[e.Error()] = e
	}
}

// FromMessage - recover a typed error from its message text
//
// returns a GenericError if the text is not one of the known errors
func FromMessage(message string) error {
	if e, ok := registry[message]; ok {
		return e
	}
	return GenericError(message)
}
