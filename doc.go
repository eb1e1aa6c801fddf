/*
Package main is an application package for Findy Bridge. The bridge serves the
libindy SDK to its callers thru asynchronous operations. The SDK's wallets,
pools and searches are given out as the bridge's own integer handles which
stay valid until they are closed.

You can use the bridge roughly for three purposes:

1. As a service: the serve command runs the bridge and its gRPC service. The
service has a single Invoke method which runs an operation by its name with
JSON encoded arguments.

2. As a CLI tool: the call command runs one operation in a running bridge, and
the ops command lists the operations with their argument types.

3. As a Go package: agent/bridge is the operation façade which can be used
directly in the same process.

# Wallet backups

When the wallet backup time is given, the bridge exports every open wallet
once a day to the backup folder and journals the latest backup of each wallet.
*/
package main
