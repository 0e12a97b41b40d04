// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/dispatch"
	"github.com/bitmark-inc/vaultd/entropy"
	"github.com/bitmark-inc/vaultd/event"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/fee"
	"github.com/bitmark-inc/vaultd/history"
	"github.com/bitmark-inc/vaultd/ledger"
	"github.com/bitmark-inc/vaultd/oracle"
	"github.com/bitmark-inc/vaultd/storage"
	"github.com/bitmark-inc/vaultd/vault"
)

// Notifier - receives each event after it has been committed
type Notifier interface {
	Notify(e *event.Event)
}

// Advancer - a history source that can finalise on demand
type Advancer interface {
	Advance() (history.Marker, error)
}

// Options - collaborators and settings
type Options struct {
	Chain        string
	FeeRate      uint64
	FeeRecipient account.Address
	History      history.Source
	Oracles      oracle.Authoriser
	Invoker      dispatch.Invoker // nil: dispatch.Accept
	Notifier     Notifier         // nil: events are only stored
	Now          func() time.Time // nil: time.Now
	Operator     bool             // allow issue and advance
}

// Engine - vault operations over one database
type Engine struct {
	sync.Mutex

	log        *logger.L
	db         *storage.DB
	chain      string
	balances   *ledger.Balances
	fees       *fee.Ledger
	store      *vault.Store
	sources    entropy.Sources
	dispatcher *dispatch.Dispatcher
	invoker    dispatch.Invoker
	notifier   Notifier
	now        func() time.Time
	operator   bool
	closed     bool
}

// reason carried by reverts of invocations found parked at start
const interruptedReason = "invocation interrupted"

// New - create an engine
func New(db *storage.DB, options Options) (*Engine, error) {
	if nil == db || nil == options.History {
		return nil, fault.ErrMissingParameters
	}
	if "" == options.Chain {
		return nil, fault.ErrInvalidChain
	}

	balances := ledger.New()
	fees, err := fee.New(options.FeeRate, options.FeeRecipient, balances)
	if nil != err {
		return nil, err
	}
	store := vault.NewStore(balances, fees)

	e := &Engine{
		log:        logger.New("engine"),
		db:         db,
		chain:      options.Chain,
		balances:   balances,
		fees:       fees,
		store:      store,
		dispatcher: dispatch.New(balances),
		invoker:    options.Invoker,
		notifier:   options.Notifier,
		now:        options.Now,
		operator:   options.Operator,
		sources: entropy.Sources{
			Store:   store,
			History: options.History,
			Oracles: options.Oracles,
		},
	}
	if nil == e.invoker {
		e.invoker = dispatch.Accept{}
	}
	if nil == e.now {
		e.now = time.Now
	}

	e.log.Infof("chain: %s  fee rate: %d  recipient: %s  operator: %t", e.chain, fees.Rate(), fees.Recipient(), e.operator)

	if err := e.restorePending(); nil != err {
		e.log.Criticalf("restore of parked invocations failed: %s", err)
		return nil, err
	}
	return e, nil
}

// Close - stop recording outcomes of invocations still in progress
//
// their balances stay parked and are restored by the next New
func (e *Engine) Close() {
	e.Lock()
	defer e.Unlock()
	e.closed = true
	e.log.Info("closed")
}

// revert every invocation left parked by a stop between the call
// and its outcome, the vault becomes Resolved again
func (e *Engine) restorePending() error {
	pending, err := e.dispatcher.ListPending(e.db)
	if nil != err {
		return err
	}
	for _, pi := range pending {
		original := pi.Original
		trx := e.db.Begin()
		if err := e.dispatcher.Restore(trx, pi); nil != err {
			trx.Abort()
			return err
		}
		e.store.Put(trx, original)

		kind := vault.OutcomeKind(0)
		if o, err := original.Chosen(); nil == err {
			kind = o.Effect.Kind()
		}
		err := e.commit(trx, &event.Event{
			Kind:        event.ExecutionReverted,
			Timestamp:   e.timestamp(),
			VaultId:     original.Id,
			Asset:       original.AssetKind,
			Amount:      pi.Value,
			OutcomeKind: kind,
			Reason:      interruptedReason,
		})
		if nil != err {
			return err
		}
		e.log.Warnf("vault: %d  interrupted invocation reverted  restored: %d", original.Id, pi.Parked)
	}
	return nil
}

// store the event and commit, then notify
func (e *Engine) commit(trx *storage.Transaction, ev *event.Event) error {
	if err := event.Record(trx, ev); nil != err {
		trx.Abort()
		return err
	}
	if err := trx.Commit(); nil != err {
		return err
	}
	e.log.Debugf("event: %d  kind: %s  vault: %d", ev.Sequence, ev.Kind, ev.VaultId)
	if nil != e.notifier {
		e.notifier.Notify(ev)
	}
	return nil
}

// the sequence the next committed event will carry
func nextSequence(trx storage.Reader) uint64 {
	return event.Last(trx) + 1
}

func (e *Engine) timestamp() time.Time {
	return e.now().UTC()
}
