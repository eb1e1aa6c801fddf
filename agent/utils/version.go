package utils

// Version is the version of the bridge.
const Version = "0.1.0"
