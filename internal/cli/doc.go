// Package cli implements the command-line interface for loadday.
//
// The cli package provides the Cobra-based CLI. The root command reads the
// session token, fetches the day's puzzle and creates or patches the day's
// notebook; the status subcommand reports the notebook state (text/JSON).
// It coordinates the config, credentials, scraper, notebook and storage
// packages.
package cli
