// Package main provides the entry point for the hacksnooze CLI.
//
// hacksnooze is a command-line client for Hack or Snooze, a
// crowd-sourced link-sharing service in the style of Hacker News.
// It can browse the story feed, submit and remove stories, and
// manage favorites from the terminal.
//
// Usage:
//
//	hacksnooze stories
//	hacksnooze login <username>
//	hacksnooze submit <title> <url>
//
// See --help for all available options.
package main

// main is the entry point for hacksnooze.
func main() {
	Execute()
}
