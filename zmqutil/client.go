// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"crypto/rand"
	"sync"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/vaultd/fault"
)

const identifierSize = 32

// Client - a CURVE REQ connection to a single server
//
// each Request is one send and one receive, a failed exchange closes
// the socket and the next Request reconnects
type Client struct {
	sync.Mutex
	publicKey       []byte
	privateKey      []byte
	serverPublicKey []byte
	address         string
	v6              bool
	timeout         time.Duration
	socket          *zmq.Socket
}

// NewClient - create an unconnected client
func NewClient(privateKey []byte, publicKey []byte, timeout time.Duration) (*Client, error) {
	if KeySize != len(publicKey) {
		return nil, fault.ErrInvalidPublicKey
	}
	if KeySize != len(privateKey) {
		return nil, fault.ErrInvalidPrivateKey
	}
	return &Client{
		publicKey:  append([]byte{}, publicKey...),
		privateKey: append([]byte{}, privateKey...),
		timeout:    timeout,
	}, nil
}

// Connect - set the server, the socket is opened on first use
func (client *Client) Connect(hostPort string, serverPublicKey []byte) error {
	if KeySize != len(serverPublicKey) {
		return fault.ErrInvalidPublicKey
	}
	address, v6, err := CanonicalAddress(hostPort)
	if nil != err {
		return err
	}

	client.Lock()
	defer client.Unlock()

	client.closeSocket()
	client.address = address
	client.v6 = v6
	client.serverPublicKey = append([]byte{}, serverPublicKey...)
	return nil
}

// Request - send a multipart message and wait for the reply
func (client *Client) Request(parts ...[]byte) ([][]byte, error) {
	client.Lock()
	defer client.Unlock()

	if "" == client.address {
		return nil, fault.ErrNotConnected
	}
	if nil == client.socket {
		if err := client.openSocket(); nil != err {
			return nil, err
		}
	}

	last := len(parts) - 1
	for i, part := range parts {
		flag := zmq.SNDMORE
		if i == last {
			flag = 0
		}
		if _, err := client.socket.SendBytes(part, flag); nil != err {
			client.closeSocket()
			return nil, err
		}
	}

	reply, err := client.socket.RecvMessageBytes(0)
	if nil != err {
		client.closeSocket()
		return nil, err
	}
	return reply, nil
}

// Close - close the socket and forget the server
func (client *Client) Close() error {
	client.Lock()
	defer client.Unlock()
	client.address = ""
	return client.closeSocket()
}

// String - server endpoint
func (client *Client) String() string {
	return client.address
}

// must hold lock
func (client *Client) openSocket() error {
	socket, err := zmq.NewSocket(zmq.REQ)
	if nil != err {
		return err
	}

	identifier := make([]byte, identifierSize)
	if _, err := rand.Read(identifier); nil != err {
		socket.Close()
		return err
	}

	options := []func() error{
		func() error { return socket.SetCurveServer(0) },
		func() error { return socket.SetCurvePublickey(string(client.publicKey)) },
		func() error { return socket.SetCurveSecretkey(string(client.privateKey)) },
		func() error { return socket.SetIdentity(string(identifier)) },
		func() error { return socket.SetCurveServerkey(string(client.serverPublicKey)) },
		func() error { return socket.SetLinger(0) },
		func() error { return socket.SetReqCorrelate(1) },
		func() error { return socket.SetReqRelaxed(1) },
		func() error { return socket.SetIpv6(client.v6) },
	}
	// zero means no timeout
	if 0 != client.timeout {
		options = append(options,
			func() error { return socket.SetSndtimeo(client.timeout) },
			func() error { return socket.SetRcvtimeo(client.timeout) },
		)
	}
	for _, set := range options {
		if err := set(); nil != err {
			socket.Close()
			return err
		}
	}

	if err := socket.Connect(client.address); nil != err {
		socket.Close()
		return err
	}
	client.socket = socket
	return nil
}

// must hold lock
func (client *Client) closeSocket() error {
	if nil == client.socket {
		return nil
	}
	err := client.socket.Close()
	client.socket = nil
	return err
}
