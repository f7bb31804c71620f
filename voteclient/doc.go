// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voteclient is the client side of the showcase vote button.

Client wraps the JSON API. Button holds the per-project state machine:

	loading → not-voted | voted
	not-voted → voting → voted (or back to not-voted on failure)

Vote only submits from not-voted. Before Load settles it returns
ErrNotReady, during a submission ErrBusy.

A Button remembers voted projects in a Memory. FileMemory stores them in a
JSON file under the "voted_projects" key. Memory is only a cache of what
the server knows: it is written after the server confirms a vote or
reports that the IP already voted.

	btn := voteclient.NewButton(id, voteclient.New(url), iplookup.New(), mem, notifier)
	btn.Load(ctx)
	err := btn.Vote(ctx)

Outcomes are reported through a Notifier as title, description and a
destructive flag.
*/
package voteclient
