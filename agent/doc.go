/*
Package agent holds the packages of the bridge. The agent package is empty
itself. All the functionality is inside sub-packages.

Summary of the packages:

	async    futures over native result channels, promises and the dispatcher
	backup   scheduled wallet exports and their journal
	bridge   the operation façade over the handle registries
	handle   handle registries and the idempotent-open cache
	sdk      capability interfaces of the native SDK
	sdkerr   structured errors and the libindy code table
	utils    runtime settings, nonces and home folders
*/
package agent
