// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/chain"
	"github.com/bitmark-inc/vaultd/configuration"
	"github.com/bitmark-inc/vaultd/publish"
	"github.com/bitmark-inc/vaultd/rpc/listeners"
	"github.com/bitmark-inc/vaultd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultPublicKeyFile   = "vaultd.public"
	defaultPrivateKeyFile  = "vaultd.private"
	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultLevelDBDirectory = "data"

	defaultLogDirectory = "log"
	defaultLogFile      = "vaultd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients      = 10
	defaultFeeRate         = 100 // 1%
	defaultHistoryInterval = 60  // seconds
	defaultInvokerTimeout  = 10  // seconds
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - location of the leveldb files
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// FeeType - protocol fee settings
type FeeType struct {
	RateBasisPoints uint64 `gluamapper:"rate_basis_points" json:"rate_basis_points"`
	Recipient       string `gluamapper:"recipient" json:"recipient"`
}

// OracleType - the allow-list of oracle identities
type OracleType struct {
	File string `gluamapper:"file" json:"file"`
}

// HistoryType - history finaliser settings
type HistoryType struct {
	Interval int `gluamapper:"interval" json:"interval"` // seconds, zero: only on demand
}

// InvokerType - remote executor for external invocations
//
// a blank connect accepts every invocation locally
type InvokerType struct {
	Connect    string `gluamapper:"connect" json:"connect"`
	ServerKey  string `gluamapper:"server_public_key" json:"server_public_key"`
	PrivateKey string `gluamapper:"private_key" json:"private_key"`
	PublicKey  string `gluamapper:"public_key" json:"public_key"`
	Timeout    int    `gluamapper:"timeout" json:"timeout"` // seconds
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Chain         string       `gluamapper:"chain" json:"chain"`
	Database      DatabaseType `gluamapper:"database" json:"database"`

	Fees    FeeType     `gluamapper:"fees" json:"fees"`
	Oracles OracleType  `gluamapper:"oracles" json:"oracles"`
	History HistoryType `gluamapper:"history" json:"history"`
	Invoker InvokerType `gluamapper:"invoker" json:"invoker"`

	ClientRPC  listeners.RPCConfiguration `gluamapper:"client_rpc" json:"client_rpc"`
	Publishing publish.Configuration      `gluamapper:"publishing" json:"publishing"`
	Logging    logger.Configuration       `gluamapper:"logging" json:"logging"`

	// derived
	FeeRecipient account.Address `gluamapper:"-" json:"fee_recipient_address"`
}

// HistoryInterval - finaliser period, zero for none
func (c *Configuration) HistoryInterval() time.Duration {
	return time.Duration(c.History.Interval) * time.Second
}

// InvokerTimeout - how long to wait for the executor
func (c *Configuration) InvokerTimeout() time.Duration {
	return time.Duration(c.Invoker.Timeout) * time.Second
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Chain:         chain.Vault,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      "", // chain default
		},

		Fees: FeeType{
			RateBasisPoints: defaultFeeRate,
		},

		History: HistoryType{
			Interval: defaultHistoryInterval,
		},

		Invoker: InvokerType{
			PrivateKey: defaultPrivateKeyFile,
			PublicKey:  defaultPublicKeyFile,
			Timeout:    defaultInvokerTimeout,
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Publishing: publish.Configuration{
			PrivateKey: defaultPrivateKeyFile,
			PublicKey:  defaultPublicKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	variables := map[string]string{
		"home": os.Getenv("HOME"),
	}
	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); nil != err {
		return nil, err
	}

	// abort if the chain name is not recognised
	name, ok := chain.Normalise(options.Chain)
	if !ok {
		return nil, fmt.Errorf("chain: %q is not supported", options.Chain)
	}
	options.Chain = name

	if "" == options.Database.Name {
		options.Database.Name = chain.DatabaseName(options.Chain)
	}

	if "" == options.Fees.Recipient {
		return nil, fmt.Errorf("fees: recipient is required")
	}
	options.FeeRecipient, err = account.FromBase58(options.Fees.Recipient)
	if nil != err {
		return nil, fmt.Errorf("fees: recipient: %q  error: %s", options.Fees.Recipient, err)
	}
	if err := options.FeeRecipient.Validate(); nil != err {
		return nil, fmt.Errorf("fees: recipient: %q  error: %s", options.Fees.Recipient, err)
	}

	if options.History.Interval < 0 {
		return nil, fmt.Errorf("history: interval: %d is negative", options.History.Interval)
	}
	if options.Invoker.Timeout <= 0 {
		return nil, fmt.Errorf("invoker: timeout: %d must be positive", options.Invoker.Timeout)
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.Publishing.PublicKey,
		&options.Publishing.PrivateKey,
		&options.Invoker.PublicKey,
		&options.Invoker.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
		&options.Oracles.File,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("files: %q is not plain name", *f[0])
		}
	}

	// create directories if they do not already exist
	for _, d := range []string{
		options.Database.Directory,
		options.Logging.Directory,
	} {
		if err := os.MkdirAll(d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}
