// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package iplookup finds the caller's public IP through JSON echo services.

Services are tried one after another. The first JSON body carrying a
non-empty "ip" (or, failing that, "query") field wins:

	ip := iplookup.New().Resolve(ctx)

When every service fails the result is "unknown", which the server
replaces with the address it observed.
*/
package iplookup
