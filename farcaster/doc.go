// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package farcaster is the read-only client for the social-graph identity
provider.

Login resolves a verified wallet address to a user in two hops:

 1. user-by-verification: address -> fid
 2. user: fid -> {username, display name, avatar}

The fid is the stable identity key the ledger is partitioned on; every
other field is display data the core never depends on.
*/
package farcaster
