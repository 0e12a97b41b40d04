// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node - RPC service for node information and events
package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/counter"
	"github.com/bitmark-inc/vaultd/engine"
	"github.com/bitmark-inc/vaultd/event"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/history"
	"github.com/bitmark-inc/vaultd/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// limit for count
const maximumEventList = 100

// Engine - the operations used by this service
type Engine interface {
	Info() *engine.Info
	Events(uint64, int) ([]*event.Event, error)
	Advance() (history.Marker, error)
}

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Engine  Engine
	counter *counter.Counter
}

// New - create the service
func New(log *logger.L, start time.Time, version string, counter *counter.Counter, engine Engine) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		Engine:  engine,
		counter: counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	engine.Info
	RPCs    uint64 `json:"rpcs"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Info = *node.Engine.Info()
	reply.RPCs = node.counter.Uint64()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}

// ---

// EventsArguments - arguments for RPC
type EventsArguments struct {
	Start uint64 `json:"start"`
	Count int    `json:"count"`
}

// EventsReply - result from RPC
type EventsReply struct {
	Events    []*event.Event `json:"events"`
	NextStart uint64         `json:"nextStart"`
}

// Events - stored events in sequence order
func (node *Node) Events(arguments *EventsArguments, reply *EventsReply) error {
	if nil == arguments {
		return fault.ErrMissingParameters
	}
	if err := ratelimit.LimitN(node.Limiter, arguments.Count, maximumEventList); nil != err {
		return err
	}

	events, err := node.Engine.Events(arguments.Start, arguments.Count)
	if nil != err {
		return err
	}
	reply.Events = events
	reply.NextStart = arguments.Start
	if n := len(events); n > 0 {
		reply.NextStart = events[n-1].Sequence + 1
	}
	return nil
}

// ---

// AdvanceArguments - empty arguments for advance request
type AdvanceArguments struct{}

// Advance - finalise a history marker on an operator node
func (node *Node) Advance(_ *AdvanceArguments, reply *history.Marker) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	m, err := node.Engine.Advance()
	if nil != err {
		return err
	}
	node.Log.Infof("advance: height: %d  digest: %s", m.Height, m.Digest)
	*reply = m
	return nil
}
