// Package registry collects the CLI's command implementations and attaches
// them to the cobra tree exactly once.
//
// Candidates are a compile-time list. Anything that implements Command is
// registered under its Name; anything else is skipped without error, so a
// helper value can sit in the same list without being exposed as a verb.
package registry
