// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/background"
	"github.com/bitmark-inc/vaultd/chain"
	"github.com/bitmark-inc/vaultd/counter"
	"github.com/bitmark-inc/vaultd/dispatch"
	"github.com/bitmark-inc/vaultd/engine"
	"github.com/bitmark-inc/vaultd/history"
	"github.com/bitmark-inc/vaultd/messagebus"
	"github.com/bitmark-inc/vaultd/oracle"
	"github.com/bitmark-inc/vaultd/publish"
	"github.com/bitmark-inc/vaultd/rpc/certificate"
	"github.com/bitmark-inc/vaultd/rpc/listeners"
	"github.com/bitmark-inc/vaultd/rpc/server"
	"github.com/bitmark-inc/vaultd/storage"
	"github.com/bitmark-inc/vaultd/zmqutil"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if nil != err {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// general info
	log.Infof("chain: %s  operator: %t", theConfiguration.Chain, chain.IsOperator(theConfiguration.Chain))
	log.Infof("database: %q", theConfiguration.Database.Name)

	// connection info
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "Publishing", theConfiguration.Publishing)
	log.Debugf("%s = %#v", "Invoker", theConfiguration.Invoker)

	// start the data storage
	log.Info("initialise storage")
	db, err := storage.Open(theConfiguration.Database.Name, false)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer db.Close()

	log.Info("initialise history")
	historyChain, err := history.New(db, theConfiguration.Chain, time.Now)
	if nil != err {
		log.Criticalf("history initialise error: %s", err)
		exitwithstatus.Message("history initialise error: %s", err)
	}

	log.Info("initialise oracles")
	oracles, err := oracle.Load(theConfiguration.Oracles.File)
	if nil != err {
		log.Criticalf("oracle list: %q  error: %s", theConfiguration.Oracles.File, err)
		exitwithstatus.Message("oracle list: %q  error: %s", theConfiguration.Oracles.File, err)
	}
	log.Infof("oracle list: %q  authorised: %d", oracles.Path(), len(oracles.Entries()))

	engineOptions := engine.Options{
		Chain:        theConfiguration.Chain,
		FeeRate:      theConfiguration.Fees.RateBasisPoints,
		FeeRecipient: theConfiguration.FeeRecipient,
		History:      historyChain,
		Oracles:      oracles,
		Operator:     chain.IsOperator(theConfiguration.Chain),
	}

	// these commands are allowed to access the internal database
	if len(arguments) > 0 {
		e, err := engine.New(db, engineOptions)
		if nil != err {
			exitwithstatus.Message("engine initialise error: %s", err)
		}
		if processDataCommand(log, arguments, e) {
			return
		}
	}

	// initialise encryption
	err = zmqutil.StartAuthentication()
	if nil != err {
		log.Criticalf("zmq.AuthStart: error: %s", err)
		exitwithstatus.Message("zmq.AuthStart: error: %s", err)
	}

	// background processes started after the engine is ready
	processes := background.Processes{}

	queue := messagebus.New(messagebus.DefaultSize)
	if theConfiguration.Publishing.Enabled() {
		log.Info("initialise publish")
		broadcaster, err := publish.New(&theConfiguration.Publishing, theConfiguration.Chain, queue)
		if nil != err {
			log.Criticalf("publish initialise error: %s", err)
			exitwithstatus.Message("publish initialise error: %s", err)
		}
		processes = append(processes, broadcaster)
		engineOptions.Notifier = queue
	}

	if "" != theConfiguration.Invoker.Connect {
		log.Info("initialise invoker")
		remote, err := newRemoteInvoker(&theConfiguration.Invoker, theConfiguration.InvokerTimeout())
		if nil != err {
			log.Criticalf("invoker initialise error: %s", err)
			exitwithstatus.Message("invoker initialise error: %s", err)
		}
		defer remote.Close()
		engineOptions.Invoker = remote
	}

	log.Info("initialise engine")
	e, err := engine.New(db, engineOptions)
	if nil != err {
		log.Criticalf("engine initialise error: %s", err)
		exitwithstatus.Message("engine initialise error: %s", err)
	}
	// before the database closes, after rpc has stopped
	defer e.Close()

	if interval := theConfiguration.HistoryInterval(); interval > 0 {
		processes = append(processes, history.NewFinaliser(historyChain, interval))
	}

	if "" != theConfiguration.Oracles.File {
		watcher, err := oracle.NewWatcher(oracles)
		if nil != err {
			log.Criticalf("oracle watcher error: %s", err)
			exitwithstatus.Message("oracle watcher error: %s", err)
		}
		processes = append(processes, watcher)
	}

	// start up the rpc listener
	log.Info("initialise rpc")
	rpcListener, err := newRPCListener(log, &theConfiguration.ClientRPC, e)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	if err := rpcListener.Serve(); nil != err {
		log.Criticalf("rpc serve error: %s", err)
		exitwithstatus.Message("rpc serve error: %s", err)
	}
	defer rpcListener.Close()

	bg := background.Start(processes, nil)
	defer bg.Stop()

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		go memstats(queue)
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}

// read the certificate files and prepare the TLS listener
func newRPCListener(log *logger.L, configuration *listeners.RPCConfiguration, e *engine.Engine) (listeners.Listener, error) {
	certificateData, err := os.ReadFile(configuration.Certificate)
	if nil != err {
		return nil, err
	}
	keyData, err := os.ReadFile(configuration.PrivateKey)
	if nil != err {
		return nil, err
	}

	tlsConfiguration, fingerprint, err := certificate.Get(log, "client_rpc", string(certificateData), string(keyData))
	if nil != err {
		return nil, err
	}

	var connections counter.Counter
	rpcServer := server.Create(logger.New("rpc"), version, &connections, e)

	return listeners.NewRPC(configuration, logger.New("client_rpc"), &connections, rpcServer, tlsConfiguration, fingerprint)
}

// connect to the executor with the node's CURVE identity
func newRemoteInvoker(configuration *InvokerType, timeout time.Duration) (*dispatch.Remote, error) {
	serverKey, err := zmqutil.ReadPublicKey(configuration.ServerKey)
	if nil != err {
		return nil, err
	}
	privateKey, err := zmqutil.ReadPrivateKeyFile(configuration.PrivateKey)
	if nil != err {
		return nil, err
	}
	publicKey, err := zmqutil.ReadPublicKeyFile(configuration.PublicKey)
	if nil != err {
		return nil, err
	}
	return dispatch.NewRemote(configuration.Connect, serverKey, privateKey, publicKey, timeout)
}
