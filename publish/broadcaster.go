// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/json"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/event"
	"github.com/bitmark-inc/vaultd/messagebus"
	"github.com/bitmark-inc/vaultd/zmqutil"
)

const (
	broadcasterZapDomain = "broadcaster"
)

// Broadcaster - background process sending queued events on PUB sockets
type Broadcaster struct {
	log     *logger.L
	chain   string
	queue   *messagebus.Queue
	socket4 *zmq.Socket
	socket6 *zmq.Socket
}

func (b *Broadcaster) initialise(privateKey []byte, publicKey []byte, broadcast []string) error {
	log := b.log
	log.Info("initialising…")

	socket4, socket6, err := zmqutil.NewBind(log, zmq.PUB, broadcasterZapDomain, privateKey, publicKey, broadcast)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return err
	}
	b.socket4 = socket4
	b.socket6 = socket6
	return nil
}

// Run - wait for queued events and publish them
func (b *Broadcaster) Run(args interface{}, shutdown <-chan struct{}) {
	log := b.log
	log.Info("starting…")

	defer func() {
		if nil != b.socket4 {
			b.socket4.Close()
		}
		if nil != b.socket6 {
			b.socket6.Close()
		}
	}()

	queue := b.queue.Chan()
loop:
	for {
		log.Debug("waiting…")
		select {
		case <-shutdown:
			break loop
		case item := <-queue:
			e, ok := item.Item.(*event.Event)
			if !ok {
				log.Warnf("from: %q  ignored item: %v", item.From, item.Item)
				continue loop
			}
			if err := b.process(e); nil != err {
				log.Errorf("publish error: %s", err)
			}
		}
	}
	log.Info("stopped")
}

func (b *Broadcaster) process(e *event.Event) error {
	log := b.log

	frames, err := packMessage(b.chain, e)
	if nil != err {
		return err
	}
	log.Debugf("publish: %s  sequence: %d", e.Kind, e.Sequence)

	for _, socket := range []*zmq.Socket{b.socket4, b.socket6} {
		if nil == socket {
			continue
		}
		if _, err := socket.SendMessage(frames); nil != err {
			return err
		}
	}
	return nil
}

// frames: chain, kind, JSON event
func packMessage(chain string, e *event.Event) ([][]byte, error) {
	data, err := json.Marshal(e)
	if nil != err {
		return nil, err
	}
	return [][]byte{
		[]byte(chain),
		[]byte(e.Kind),
		data,
	}, nil
}
