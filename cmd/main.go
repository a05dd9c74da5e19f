/*
Copyright 2026 SafeNest Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/safenest-labs/safenest"
	"github.com/safenest-labs/safenest/config"
	"github.com/safenest-labs/safenest/internal/notification"
)

// SafeNestCLI represents the CLI application, encapsulating the root Cobra command.
type SafeNestCLI struct {
	cmd *cobra.Command
}

// safenestInstance holds the SafeNest instance and its configuration, shared
// across subcommands.
type safenestInstance struct {
	safenest *safenest.SafeNest
	cnf      *config.Configuration
}

// recoverPanic handles any panics during program execution and logs the error using Logrus.
func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun sets up the configuration and initializes the SafeNest instance
// before running any command.
func preRun(app *safenestInstance) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig("safenest.json")
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		newSafeNest, err := safenest.NewFromConfig(cnf)
		if err != nil {
			notification.NotifyError(err)
			log.Fatal(err)
		}

		app.safenest = newSafeNest
		app.cnf = cnf

		return nil
	}
}

// NewCLI creates the command-line interface for the SafeNest ledger service.
func NewCLI() *SafeNestCLI {
	var configFile string
	s := &safenestInstance{}

	var rootCmd = &cobra.Command{
		Use:   "safenest",
		Short: "Savings vault ledger replay engine",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./safenest.json", "Configuration file for safenest")

	rootCmd.PersistentPreRunE = preRun(s)

	rootCmd.AddCommand(serverCommands(s))
	rootCmd.AddCommand(migrateCommands(s))
	rootCmd.AddCommand(configCommands())

	return &SafeNestCLI{cmd: rootCmd}
}

// executeCLI runs the root command, handling any errors that occur during execution.
func (w SafeNestCLI) executeCLI() {
	if err := w.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
